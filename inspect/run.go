// Package inspect implements processing commands: it feeds loaded inputs to
// parsers and writes results either to standard output or into destination
// directory.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"mbr/common"
	"mbr/config"
	"mbr/load"
	"mbr/scan"
	"mbr/state"
)

// stdout receives results when no destination was given.
var stdout io.Writer = os.Stdout

// processFunc turns single input into output content.
type processFunc func(ctx context.Context, in *load.Input) ([]byte, error)

type runner struct {
	env    *state.LocalEnv
	log    *zap.Logger
	loader *load.Loader
	format common.OutputFmt

	src, dst string
	// headers separate outputs of several inputs written to the same stream
	headers bool
	out     io.Writer
}

// newRunner collects arguments and flags shared by processing commands.
// Format falls back to def when "--to" was not given.
func newRunner(ctx context.Context, cmd *cli.Command, def common.OutputFmt, extensions []string) (*runner, error) {
	env := state.EnvFromContext(ctx)
	r := &runner{
		env:    env,
		log:    env.Log.Named(cmd.Name),
		format: def,
		out:    stdout,
	}

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return nil, errors.New("no input source has been specified")
	}
	var err error
	if r.src, err = filepath.Abs(src); err != nil {
		return nil, err
	}
	if dst := cmd.Args().Get(1); len(dst) > 0 {
		if r.dst, err = filepath.Abs(dst); err != nil {
			return nil, err
		}
	}
	if cmd.Args().Len() > 2 {
		r.log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if to := cmd.String("to"); len(to) > 0 {
		if r.format, err = common.ParseOutputFmt(to); err != nil {
			return nil, fmt.Errorf("unknown output format requested: %w", err)
		}
	}
	env.Overwrite = cmd.Bool("overwrite")

	// forced encoding: command line wins over configuration
	cp := cmd.String("force-cp")
	if len(cp) == 0 && env.Cfg != nil {
		cp = env.Cfg.Input.Encoding
	}
	if len(cp) > 0 {
		env.Encoding, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.Encoding == nil {
			r.log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.Encoding = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.Encoding)
			r.log.Debug("Forcefully decoding all inputs", zap.String("charset", n))
		}
	}

	r.headers = !isSingleFile(r.src)
	r.loader = load.New(env.Log, load.WithExtensions(extensions...), load.WithEncoding(env.Encoding))
	return r, nil
}

// isSingleFile reports plain (non archive) file which produces exactly one
// output.
func isSingleFile(src string) bool {
	fi, err := os.Stat(src)
	return err == nil && fi.Mode().IsRegular() && !strings.EqualFold(filepath.Ext(src), ".zip")
}

// run processes every input under source. Failures are logged and collected,
// processing continues with the next input.
func (r *runner) run(ctx context.Context, fn processFunc) error {
	r.log.Debug("Processing starting", zap.String("source", r.src), zap.String("destination", r.destination()), zap.Stringer("format", r.format))
	defer func(start time.Time) {
		r.log.Debug("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	count := 0
	err := r.loader.Walk(ctx, r.src, func(ctx context.Context, in *load.Input) error {
		count++
		r.env.Rpt.StoreData(path.Join("input", in.Name), in.Raw)

		r.log.Debug("Processing input", zap.String("name", in.Name), zap.String("charset", in.Charset))
		data, err := fn(ctx, in)
		if err != nil {
			return r.failed(in, err)
		}
		return r.emit(in, data)
	})
	if err != nil {
		if errs := multierr.Errors(err); len(errs) > 1 {
			return fmt.Errorf("unable to process %d of %d inputs: %w", len(errs), count, err)
		}
		return err
	}
	if count == 0 {
		r.log.Warn("Nothing to process", zap.String("source", r.src))
	}
	return nil
}

// failed reports input failure. Parse errors get line and column computed
// from the decoded text.
func (r *runner) failed(in *load.Input, err error) error {
	var perr *scan.Error
	if !errors.As(err, &perr) {
		r.log.Error("Unable to process input", zap.String("name", in.Name), zap.Error(err))
		return fmt.Errorf("unable to process %s: %w", in.Name, err)
	}
	line, col, excerpt := perr.Position(in.Text)
	r.log.Error("Unable to parse input",
		zap.String("name", in.Name), zap.Stringer("kind", perr.Kind),
		zap.Int("line", line), zap.Int("col", col), zap.String("context", excerpt), zap.Error(err))
	return fmt.Errorf("%s:%d:%d: %w", in.Name, line, col, err)
}

// emit writes output for the input. Without destination everything goes to
// standard output, otherwise input directory structure is kept under
// destination and file extension follows output format.
func (r *runner) emit(in *load.Input, data []byte) error {
	if len(r.dst) == 0 {
		if r.headers {
			if _, err := fmt.Fprintf(r.out, "==> %s <==\n", in.Name); err != nil {
				return err
			}
		}
		_, err := r.out.Write(data)
		return err
	}

	dir, base := path.Split(in.Name)
	base = config.CleanFileName(strings.TrimSuffix(base, path.Ext(base))) + r.format.Ext()
	outputName := filepath.Join(r.dst, filepath.FromSlash(dir), base)

	if _, err := os.Stat(outputName); err == nil {
		if !r.env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		r.log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	r.log.Debug("Output written", zap.String("from", in.Name), zap.String("to", outputName))

	// store result for debugging
	r.env.Rpt.Store(path.Join("result", path.Join(dir, base)), outputName)
	return nil
}

func (r *runner) destination() string {
	if len(r.dst) == 0 {
		return "STDOUT"
	}
	return r.dst
}
