package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seitarof/gen-uml/internal/diagram"
	"github.com/seitarof/gen-uml/internal/model"
	"github.com/seitarof/gen-uml/internal/parser"
	"github.com/seitarof/gen-uml/internal/relation"
)

// Runner orchestrates parser/model/relation/diagram layers.
type Runner interface {
	Run(ctx context.Context, cfg *Config) (string, error)
}

type runnerImpl struct {
	parser     parser.Parser
	inferencer relation.Inferencer
	emitter    diagram.Emitter
	logger     *zap.Logger
}

// NewRunner creates a default runner implementation.
func NewRunner(
	p parser.Parser,
	inf relation.Inferencer,
	em diagram.Emitter,
	logger *zap.Logger,
) Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &runnerImpl{
		parser:     p,
		inferencer: inf,
		emitter:    em,
		logger:     logger,
	}
}

// NewParser returns the declaration source for cfg.Lang.
func NewParser(cfg *Config, logger *zap.Logger) parser.Parser {
	opts := []parser.Option{
		parser.WithWorkers(cfg.Workers),
		parser.WithExclude(cfg.Exclude...),
		parser.WithLogger(logger),
	}
	if cfg.Lang == LangGo {
		return parser.NewGo(opts...)
	}
	return parser.NewJava(opts...)
}

// Run executes a single scan and returns the path of the rendered diagram.
// Units that fail to parse are skipped; only a failure on the root, or in
// rendering, aborts the run.
func (r *runnerImpl) Run(ctx context.Context, cfg *Config) (string, error) {
	res, err := r.parser.Parse(ctx, cfg.Root)
	if err != nil {
		return "", fmt.Errorf("parse: %w", err)
	}

	built := model.Build(res.Declarations)
	for _, name := range built.Overwritten {
		r.logger.Warn("duplicate class name, later declaration replaces earlier one",
			zap.String("class", name),
		)
	}

	rel := r.inferencer.Infer(built.Classes)
	r.logger.Info("class model built",
		zap.Int("classes", built.Classes.Len()),
		zap.Int("skipped_units", len(res.Failures)),
		zap.Int("inheritance", len(built.Inheritance)),
		zap.Int("associations", len(rel.Associations)),
		zap.Int("compositions", len(rel.Compositions)),
	)

	path, err := r.emitter.Emit(ctx, diagram.Input{
		Classes:      built.Classes,
		Inheritance:  built.Inheritance,
		Associations: rel.Associations,
		Compositions: rel.Compositions,
	}, cfg.OutputBase)
	if err != nil {
		return "", fmt.Errorf("emit: %w", err)
	}
	return path, nil
}
