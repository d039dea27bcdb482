package generator

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/seitarof/gen-uml/internal/diagram"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Output formats handled without Graphviz.
const (
	FormatDot  = "dot"
	FormatYAML = "yaml"
)

// Config is the renderer configuration.
type Config struct {
	// Format is a Graphviz -T format such as pdf, png or svg, or one of
	// FormatDot and FormatYAML.
	Format  string
	DotPath string
	View    bool
}

// FileWriter writes generated files to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

// Executor runs an external command to completion.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Viewer opens a rendered document.
type Viewer interface {
	Open(ctx context.Context, path string) error
}

type dotRenderer struct {
	cfg    Config
	writer FileWriter
	exec   Executor
	viewer Viewer
	logger *zap.Logger
	tmpl   *template.Template
}

type fileWriter struct{}

type execRunner struct{}

type systemViewer struct {
	exec Executor
}

type templateData struct {
	Name    string
	Comment string
	Nodes   []nodeTemplateData
	Edges   []edgeTemplateData
}

type nodeTemplateData struct {
	ID    string
	Label string
}

type edgeTemplateData struct {
	Source string
	Target string
	Attrs  string
}

// New returns the renderer for cfg.Format. A nil viewer disables viewing
// even when cfg.View is set.
func New(cfg Config, w FileWriter, x Executor, v Viewer, logger *zap.Logger) diagram.Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Format == FormatYAML {
		return &yamlRenderer{writer: w}
	}
	if cfg.DotPath == "" {
		cfg.DotPath = "dot"
	}
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"quote": quote,
	}).ParseFS(templateFS, "templates/*.tmpl"))
	return &dotRenderer{cfg: cfg, writer: w, exec: x, viewer: v, logger: logger, tmpl: tmpl}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

// NewExecutor runs commands with os/exec.
func NewExecutor() Executor {
	return &execRunner{}
}

// NewSystemViewer opens files with the platform's default application.
func NewSystemViewer(x Executor) Viewer {
	return &systemViewer{exec: x}
}

// Render writes <outputBase>.dot and, unless the format is dot, runs
// Graphviz to produce <outputBase>.<format>. The DOT file is kept either way.
func (r *dotRenderer) Render(ctx context.Context, d *diagram.Description, outputBase string) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "diagram.dot.tmpl", buildTemplateData(d, filepath.Base(outputBase))); err != nil {
		return "", fmt.Errorf("template: %w", err)
	}

	dotFile := outputBase + ".dot"
	if err := r.writer.Write(dotFile, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	out := dotFile
	if r.cfg.Format != FormatDot {
		out = outputBase + "." + r.cfg.Format
		if err := r.exec.Run(ctx, r.cfg.DotPath, "-T"+r.cfg.Format, "-o", out, dotFile); err != nil {
			return "", fmt.Errorf("graphviz: %w", err)
		}
	}

	if r.cfg.View && r.viewer != nil {
		if err := r.viewer.Open(ctx, out); err != nil {
			r.logger.Warn("could not open viewer", zap.String("path", out), zap.Error(err))
		}
	}
	return out, nil
}

func (w *fileWriter) Write(filename string, data []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filename, data, 0o644)
}

func (e *execRunner) Run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (v *systemViewer) Open(ctx context.Context, path string) error {
	switch runtime.GOOS {
	case "darwin":
		return v.exec.Run(ctx, "open", path)
	case "windows":
		return v.exec.Run(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return v.exec.Run(ctx, "xdg-open", path)
	}
}

func buildTemplateData(d *diagram.Description, name string) templateData {
	data := templateData{
		Name:    name,
		Comment: "Class Diagram",
		Nodes:   make([]nodeTemplateData, 0, len(d.Nodes)),
		Edges:   make([]edgeTemplateData, 0, len(d.Edges)),
	}
	for _, n := range d.Nodes {
		node := nodeTemplateData{ID: n.ID}
		if !n.Placeholder {
			node.Label = recordLabel(n.Label)
		}
		data.Nodes = append(data.Nodes, node)
	}
	for _, e := range d.Edges {
		data.Edges = append(data.Edges, edgeTemplateData{
			Source: e.Source,
			Target: e.Target,
			Attrs:  edgeAttrs(e),
		})
	}
	return data
}

// recordLabel renders a label in Graphviz record syntax: one field per
// section, titled sections left-justified line by line.
func recordLabel(l diagram.Label) string {
	fields := make([]string, 0, len(l.Sections))
	for _, s := range l.Sections {
		var b strings.Builder
		if s.Title == "" {
			for i, line := range s.Lines {
				if i > 0 {
					b.WriteString(`\n`)
				}
				b.WriteString(escapeRecord(line))
			}
		} else {
			b.WriteString(escapeRecord(s.Title))
			b.WriteString(`\l`)
			for _, line := range s.Lines {
				b.WriteString(escapeRecord(line))
				b.WriteString(`\l`)
			}
		}
		fields = append(fields, b.String())
	}
	return "{ " + strings.Join(fields, " | ") + " }"
}

func edgeAttrs(e diagram.Edge) string {
	attrs := []string{"label=" + quote(e.Label)}
	if e.Style.ArrowHead != "" {
		attrs = append(attrs, "arrowhead="+e.Style.ArrowHead)
	}
	if e.Style.Line != "" {
		attrs = append(attrs, "style="+e.Style.Line)
	}
	return strings.Join(attrs, ", ")
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

func escapeRecord(s string) string {
	return recordEscaper.Replace(s)
}

// quote makes a DOT quoted string. Backslashes are left alone so record
// escapes reach Graphviz intact.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
