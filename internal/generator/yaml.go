package generator

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-uml/internal/diagram"
)

// yamlRenderer dumps the description itself, for tools that do their own
// drawing.
type yamlRenderer struct {
	writer FileWriter
}

func (r *yamlRenderer) Render(_ context.Context, d *diagram.Description, outputBase string) (string, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("yaml: %w", err)
	}
	out := outputBase + "." + FormatYAML
	if err := r.writer.Write(out, data); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	return out, nil
}
