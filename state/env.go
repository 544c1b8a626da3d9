// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"mbr/config"
	"mbr/css"
	"mbr/markup"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by processing subcommands
	Overwrite bool
	// Encoding forces character set of every input, nil means detect.
	Encoding encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// MarkupParser returns markup parser set up according to configuration.
func (e *LocalEnv) MarkupParser() *markup.Parser {
	var opts []markup.Option
	if e.Cfg != nil {
		opts = append(opts, markup.WithRootTag(e.Cfg.Document.RootTag))
	}
	return markup.NewParser(e.Log, opts...)
}

// StyleParser returns stylesheet parser set up according to configuration.
func (e *LocalEnv) StyleParser() *css.Parser {
	var opts []css.Option
	if e.Cfg != nil {
		opts = append(opts, css.WithNamedColors(e.Cfg.Stylesheet.ResolveNamedColors))
	}
	return css.NewParser(e.Log, opts...)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
