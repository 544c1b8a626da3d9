package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mbr/common"
	"mbr/config"
	"mbr/inspect"
	"mbr/state"
)

const sourceHelp = `
SOURCE:
    input(s) to process, one of:
        file: "[path_to_file]page.html"
        directory: "[path_to_directory]directory" - all matching files under it, recursively
        archive: "[path_to_archive]site.zip" - all matching files inside archive
        path inside archive: "[path_to_archive]site.zip/[path_in_archive]" - single entry or all matching entries under it

    Only files with extensions listed in configuration are picked when
    walking directories and archives, explicitly named file is always taken.
    Archives found in directories are walked too, nested archives are not.

DESTINATION:
    directory for results, input directory structure is kept and file
    extension follows output type; if absent - STDOUT
`

// formatNames lists output types accepted by the filter.
func formatNames(accept func(common.OutputFmt) bool) string {
	var names []string
	for _, n := range common.OutputFmtNames() {
		if f, err := common.ParseOutputFmt(n); err == nil && accept(f) {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

// inputFlags are shared by all commands reading inputs.
func inputFlags(def string, accept func(common.OutputFmt) bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "to", DefaultText: def,
			Usage: "output `TYPE` (one of: " + formatNames(accept) + ")"},
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"},
			Usage: "overwrite existing files in destination"},
		&cli.StringFlag{Name: "force-cp",
			Usage: "decode ALL inputs using `ENCODING` (IANA character set name)"},
	}
}

func processingCommand(name, usage string, action cli.ActionFunc, def string, accept func(common.OutputFmt) bool, extra ...cli.Flag) *cli.Command {
	return &cli.Command{
		Name:               name,
		Usage:              usage,
		OnUsageError:       passUsageError,
		Action:             action,
		Flags:              append(inputFlags(def, accept), extra...),
		ArgsUsage:          "SOURCE [DESTINATION]",
		CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp,
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		processingCommand("show", "Parses markup and prints document tree", inspect.Show,
			"from configuration", common.OutputFmt.ForMarkup),
		processingCommand("style", "Parses stylesheet and prints rules with selectors ranked by specificity", inspect.Style,
			"from configuration", common.OutputFmt.ForStylesheet),
		processingCommand("match", "Lists stylesheet rules matching each element of the document", inspect.Match,
			"tree", common.OutputFmt.ForMatching,
			&cli.StringFlag{Name: "css", Aliases: []string{"s"}, Required: true,
				Usage: "stylesheet `SOURCE` (same forms as SOURCE, rules of all stylesheets are combined)"}),
		{
			Name:  "dumpconfig",
			Usage: "Writes default or actual configuration (YAML)",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "default", Usage: "write configuration embedded into the program"},
			},
			OnUsageError: passUsageError,
			Action:       dumpConfiguration,
			ArgsUsage:    "[DESTINATION]",
			CustomHelpTemplate: cli.CommandHelpTemplate + `
DESTINATION:
    file to write configuration to, if absent - STDOUT

Actual configuration is defaults merged with configuration file given by
--config. Use --default to start a new configuration file.
`,
		},
	}
}

func dumpConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		err  error
		kind = "actual"
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	var out io.Writer = os.Stdout
	fname := cmd.Args().Get(0)
	if len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	} else {
		fname = "STDOUT"
	}
	env.Log.Info("Writing configuration", zap.String("kind", kind), zap.String("file", fname))

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
