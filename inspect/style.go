package inspect

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mbr/common"
	"mbr/css"
	"mbr/load"
	"mbr/state"
)

// Style parses stylesheets and writes rules with selectors ranked by
// specificity.
func Style(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	r, err := newRunner(ctx, cmd, env.Cfg.Stylesheet.Output, env.Cfg.Input.StyleExtensions)
	if err != nil {
		return err
	}
	if !r.format.ForStylesheet() {
		return fmt.Errorf("output format %s is not supported for stylesheets", r.format)
	}
	return r.run(ctx, showStylesheet(env.StyleParser(), r.format, r.log))
}

func showStylesheet(p *css.Parser, format common.OutputFmt, log *zap.Logger) processFunc {
	return func(_ context.Context, in *load.Input) ([]byte, error) {
		sheet, err := p.Parse(in.Text)
		if err != nil {
			return nil, err
		}
		log.Debug("Stylesheet parsed", zap.String("name", in.Name), zap.Int("rules", len(sheet.Rules)))

		switch format {
		case common.OutputFmtTree:
			return []byte(css.Dump(sheet)), nil
		case common.OutputFmtYaml:
			return sheet.DumpYAML()
		case common.OutputFmtCss:
			return []byte(sheet.String()), nil
		}
		// this should never happen
		return nil, fmt.Errorf("unsupported stylesheet format %s", format)
	}
}
