package pipeline

import (
	"github.com/google/uuid"

	"github.com/genwalk/genwalk/internal/ast"
	"github.com/genwalk/genwalk/internal/diagnostics"
	"github.com/genwalk/genwalk/internal/envfile"
	"github.com/genwalk/genwalk/internal/symbols"
)

// Unit is one environment file flowing through the stages.
type Unit struct {
	Path  string
	File  *envfile.File
	Env   *symbols.TypeEnv
	Sites []ast.Node
}

// PipelineContext carries one analysis run through the stages. Diagnostics
// are the recoverable, per-site type errors; Errors are malformed inputs
// that fail their whole unit.
type PipelineContext struct {
	RunID     string
	Paths     []string
	Units     []*Unit
	Errors    []error
	Collector *diagnostics.Collector
}

// NewContext prepares a run over the given environment files.
func NewContext(paths ...string) *PipelineContext {
	return &PipelineContext{
		RunID:     uuid.NewString(),
		Paths:     paths,
		Collector: diagnostics.NewCollector(),
	}
}

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors so one bad unit does not hide the
		// diagnostics of the others.
	}
	return ctx
}
