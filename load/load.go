// Package load locates program inputs and turns them into UTF-8 text.
//
// Source could be a file, a directory (walked recursively, archives inside
// included) or a path into zip archive: "site.zip/pages" selects every
// matching entry under "pages/", "site.zip/pages/index.html" a single one.
package load

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"mbr/archive"
)

// ErrNotText is returned for inputs recognized as binary content.
var ErrNotText = errors.New("input is not text")

// Input is a single decoded document.
type Input struct {
	// Name is path relative to the source: base name for a file, path under
	// directory or inside archive otherwise.
	Name string
	// Origin is file system path input was read from, archive for entries.
	Origin string
	// Charset is IANA name of the encoding input was decoded from.
	Charset string
	// Raw is content as it was read.
	Raw []byte
	// Text is decoded content.
	Text string
}

// Func is called for every input found. Errors are collected, walking
// continues with the next input.
type Func func(ctx context.Context, in *Input) error

// Loader walks sources.
type Loader struct {
	log        *zap.Logger
	extensions []string
	forced     encoding.Encoding
}

// Option configures Loader.
type Option func(*Loader)

// WithExtensions limits inputs picked up from directories and archives to
// names with one of the suffixes (case insensitive). Without it every regular
// text file is taken.
func WithExtensions(ext ...string) Option {
	return func(l *Loader) {
		for _, e := range ext {
			l.extensions = append(l.extensions, strings.ToLower(e))
		}
	}
}

// WithEncoding forces character set for all inputs, nil means detect.
func WithEncoding(enc encoding.Encoding) Option {
	return func(l *Loader) {
		l.forced = enc
	}
}

func New(log *zap.Logger, opts ...Option) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Loader{log: log.Named("load")}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Walk resolves source and calls fn for every input found there.
func (l *Loader) Walk(ctx context.Context, src string, fn Func) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return l.walkDir(ctx, head, fn)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			pathIn := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			return l.walkArchive(ctx, head, pathIn, "", fn)
		}
		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		data, err := os.ReadFile(head)
		if err != nil {
			return fmt.Errorf("unable to read input: %w", err)
		}
		in, err := l.decode(filepath.Base(head), head, data)
		if err != nil {
			return fmt.Errorf("unable to load input (%s): %w", head, err)
		}
		return fn(ctx, in)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// walkDir visits directory tree in natural path order.
func (l *Loader) walkDir(ctx context.Context, dir string, fn Func) (err error) {
	var paths []string
	werr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			l.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if werr != nil {
		return werr
	}
	slices.SortFunc(paths, naturalCompare)

	count := 0
	for _, path := range paths {
		if cerr := ctx.Err(); cerr != nil {
			return multierr.Append(err, cerr)
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, aerr := isArchiveFile(path)
		if aerr != nil {
			l.log.Warn("Skipping file", zap.String("file", path), zap.Error(aerr))
			continue
		}
		if isArchive {
			err = multierr.Append(err, l.walkArchive(ctx, path, "", filepath.ToSlash(rel), fn))
			continue
		}
		if !l.wanted(path) {
			l.log.Debug("Skipping file, extension not selected", zap.String("file", path))
			continue
		}

		data, rerr := os.ReadFile(path)
		if rerr != nil {
			err = multierr.Append(err, fmt.Errorf("unable to read input (%s): %w", path, rerr))
			continue
		}
		in, derr := l.decode(filepath.ToSlash(rel), path, data)
		if errors.Is(derr, ErrNotText) {
			l.log.Debug("Skipping file, not recognized as text", zap.String("file", path))
			continue
		}
		if derr != nil {
			err = multierr.Append(err, fmt.Errorf("unable to load input (%s): %w", path, derr))
			continue
		}
		count++
		err = multierr.Append(err, fn(ctx, in))
	}
	if count == 0 {
		l.log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return err
}

// walkArchive visits archive entries under pathIn. Names are prefixed with
// pathOut, the archive location relative to walked directory.
func (l *Loader) walkArchive(ctx context.Context, path, pathIn, pathOut string, fn Func) (err error) {
	count := 0
	werr := archive.Walk(path, pathIn, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// single entry named explicitly is always taken
		if f.Name != pathIn && !l.wanted(f.Name) {
			l.log.Debug("Skipping file in archive, extension not selected", zap.String("archive", arc), zap.String("file", f.Name))
			return nil
		}

		data, rerr := readEntry(f)
		if rerr != nil {
			err = multierr.Append(err, fmt.Errorf("unable to read input (%s:%s): %w", arc, f.Name, rerr))
			return nil
		}
		name := f.Name
		if pathOut != "" {
			name = pathOut + "/" + name
		}
		in, derr := l.decode(name, arc, data)
		if errors.Is(derr, ErrNotText) && f.Name != pathIn {
			l.log.Debug("Skipping file in archive, not recognized as text", zap.String("archive", arc), zap.String("file", f.Name))
			return nil
		}
		if derr != nil {
			err = multierr.Append(err, fmt.Errorf("unable to load input (%s:%s): %w", arc, f.Name, derr))
			return nil
		}
		count++
		err = multierr.Append(err, fn(ctx, in))
		return nil
	})
	if werr != nil {
		return multierr.Append(err, fmt.Errorf("unable to process archive (%s): %w", path, werr))
	}
	if err == nil && count == 0 {
		if pathIn != "" {
			return fmt.Errorf("input source was not found in archive (%s) => (%s)", path, pathIn)
		}
		l.log.Debug("Nothing to process", zap.String("archive", path))
	}
	return err
}

func (l *Loader) wanted(name string) bool {
	if len(l.extensions) == 0 {
		return true
	}
	return slices.Contains(l.extensions, strings.ToLower(filepath.Ext(name)))
}

// decode converts data to UTF-8. Forced encoding wins, otherwise BOM, meta
// declaration and UTF-8 validity are checked in that order.
func (l *Loader) decode(name, origin string, data []byte) (*Input, error) {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return nil, fmt.Errorf("%w: detected %s", ErrNotText, kind.MIME.Value)
	}

	enc, cs := l.forced, ""
	if enc != nil {
		cs, _ = ianaindex.IANA.Name(enc)
	} else {
		var certain bool
		enc, cs, certain = charset.DetermineEncoding(data, "")
		l.log.Debug("Detected input encoding", zap.String("name", name), zap.String("charset", cs), zap.Bool("certain", certain))
	}

	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("unable to decode input from %s: %w", cs, err)
	}
	return &Input{
		Name:    name,
		Origin:  origin,
		Charset: cs,
		Raw:     data,
		Text:    strings.TrimPrefix(string(text), "\ufeff"),
	}, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// isArchiveFile checks file signature, extension does not matter.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// 262 bytes is enough for any signature filetype knows
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return 0
}
