package pipeline

import (
	"github.com/genwalk/genwalk/internal/analyzer"
	"github.com/genwalk/genwalk/internal/envfile"
)

// LoadProcessor parses and validates every environment file into a unit.
// A file that fails to load contributes an error and no unit; the rest of
// the run proceeds.
type LoadProcessor struct{}

func (p *LoadProcessor) Process(ctx *PipelineContext) *PipelineContext {
	for _, path := range ctx.Paths {
		file, err := envfile.Load(path)
		if err != nil {
			ctx.Errors = append(ctx.Errors, err)
			continue
		}
		env, sites, err := file.Build()
		if err != nil {
			ctx.Errors = append(ctx.Errors, err)
			continue
		}
		ctx.Units = append(ctx.Units, &Unit{Path: path, File: file, Env: env, Sites: sites})
	}
	return ctx
}

// CheckProcessor walks the sites of each unit, feeding the shared
// collector in traversal order. Each unit gets its own walker and intern
// cache; environments are independent.
type CheckProcessor struct{}

func (p *CheckProcessor) Process(ctx *PipelineContext) *PipelineContext {
	for _, unit := range ctx.Units {
		w := analyzer.NewWalker(unit.Env, ctx.Collector)
		w.Walk(unit.Sites)
	}
	return ctx
}
