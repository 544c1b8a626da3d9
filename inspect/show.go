package inspect

import (
	"bytes"
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mbr/common"
	"mbr/dom"
	"mbr/load"
	"mbr/markup"
	"mbr/state"
)

// Show parses markup inputs and writes resulting document trees.
func Show(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	r, err := newRunner(ctx, cmd, env.Cfg.Document.Output, env.Cfg.Input.MarkupExtensions)
	if err != nil {
		return err
	}
	if !r.format.ForMarkup() {
		return fmt.Errorf("output format %s is not supported for documents", r.format)
	}
	return r.run(ctx, showDocument(env.MarkupParser(), r.format, r.log))
}

func showDocument(p *markup.Parser, format common.OutputFmt, log *zap.Logger) processFunc {
	return func(_ context.Context, in *load.Input) ([]byte, error) {
		doc, err := p.Parse(in.Text)
		if err != nil {
			return nil, err
		}
		log.Debug("Document parsed", zap.String("name", in.Name), zap.Int("nodes", countNodes(doc)))
		return renderDocument(doc, format)
	}
}

func renderDocument(doc dom.Node, format common.OutputFmt) ([]byte, error) {
	buf := new(bytes.Buffer)
	switch format {
	case common.OutputFmtTree:
		buf.WriteString(dom.Dump(doc))
	case common.OutputFmtXml:
		if _, err := dom.WriteXML(buf, doc); err != nil {
			return nil, fmt.Errorf("unable to produce xml: %w", err)
		}
	case common.OutputFmtHtml:
		if err := dom.Render(buf, doc); err != nil {
			return nil, fmt.Errorf("unable to render html: %w", err)
		}
		buf.WriteByte('\n')
	default:
		// this should never happen
		return nil, fmt.Errorf("unsupported document format %s", format)
	}
	return buf.Bytes(), nil
}

func countNodes(doc dom.Node) (n int) {
	dom.Walk(doc, func(dom.Node, int) bool {
		n++
		return true
	})
	return n
}
