package render

import (
	"io"
	"strings"

	"github.com/agenthands/ghrank/internal/core/graph"
	"github.com/agenthands/ghrank/internal/core/model"
)

// Renderer turns a ranked graph into an output document.
type Renderer interface {
	Render(w io.Writer, g *graph.Graph) error
	Extension() string
}

// ForFormat returns the renderer for "json" or "svg".
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONRenderer{}, nil
	case "svg":
		return NewSVGRenderer(), nil
	default:
		return nil, &model.ConfigError{Field: "format", Message: "must be one of json, svg, got " + format}
	}
}
