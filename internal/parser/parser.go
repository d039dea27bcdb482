package parser

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Parser extracts class declarations from a source tree.
type Parser interface {
	Parse(ctx context.Context, root string) (*Result, error)
}

// FileParser turns the content of one source file into declarations.
type FileParser interface {
	Language() string
	Extensions() []string
	ParseFile(ctx context.Context, path string, content []byte) ([]Declaration, error)
}

// Options configures tree traversal.
type Options struct {
	Workers int
	Exclude []string
	Logger  *zap.Logger
}

// Option is a functional option for Options.
type Option func(*Options)

// WithWorkers limits how many files are parsed concurrently.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithExclude skips directories with any of the given base names.
func WithExclude(names ...string) Option {
	return func(o *Options) {
		o.Exclude = append(o.Exclude, names...)
	}
}

// WithLogger sets the logger used to report skipped units.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func buildOptions(opts []Option) Options {
	o := Options{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type treeParser struct {
	file FileParser
	opts Options
}

// NewTree returns a Parser that walks a directory and hands every file with
// one of fp's extensions to fp.
//
// Files are parsed concurrently but merged in lexicographic path order, so a
// class declared twice always resolves to the same declaration.
func NewTree(fp FileParser, opts ...Option) Parser {
	return &treeParser{file: fp, opts: buildOptions(opts)}
}

func (p *treeParser) Parse(ctx context.Context, root string) (*Result, error) {
	files, failures, err := p.collect(root)
	if err != nil {
		return nil, err
	}
	p.opts.Logger.Debug("collected source files",
		zap.String("root", root),
		zap.String("language", p.file.Language()),
		zap.Int("files", len(files)),
	)

	decls := make([][]Declaration, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, file := range files {
		g.Go(func() error {
			content, err := os.ReadFile(file)
			if err != nil {
				errs[i] = err
				return nil
			}
			decls[i], errs[i] = p.file.ParseFile(gctx, file, content)
			return nil
		})
	}
	// Workers report through errs and never fail the group.
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", root, err)
	}

	res := &Result{Failures: failures}
	for i, file := range files {
		if errs[i] != nil {
			res.Failures = append(res.Failures, &UnitError{Unit: file, Err: errs[i]})
			continue
		}
		res.Declarations = append(res.Declarations, decls[i]...)
	}
	for _, f := range res.Failures {
		p.opts.Logger.Warn("skipping unit", zap.String("unit", f.Unit), zap.Error(f.Err))
	}
	return res, nil
}

// collect returns candidate files in lexicographic order. Only an error on
// root itself is fatal; unreadable subdirectories become unit failures.
func (p *treeParser) collect(root string) ([]string, []*UnitError, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", root, err)
	}

	var files []string
	var failures []*UnitError
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			failures = append(failures, &UnitError{Unit: path, Err: err})
			return nil
		}
		if d.IsDir() {
			if path != root && slices.Contains(p.opts.Exclude, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(p.file.Extensions(), filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", root, err)
	}
	slices.Sort(files)
	return files, failures, nil
}
