package config

import "strings"

// CleanFileName removes characters not allowed in output file names. Leading
// dots and spaces are dropped so results never become hidden files.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if sym < ' ' || strings.ContainsRune(reservedNameChars, sym) {
			return -1
		}
		return sym
	}, in), ". ")
	if len(out) == 0 {
		out = "_unnamed_"
	}
	return out
}
