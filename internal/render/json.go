package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agenthands/ghrank/internal/core/graph"
)

type JSONRenderer struct{}

func (r *JSONRenderer) Extension() string { return ".json" }

func (r *JSONRenderer) Render(w io.Writer, g *graph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}
