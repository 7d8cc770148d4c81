package provider

import (
	"context"

	"github.com/agenthands/ghrank/internal/core/model"
)

// NodeProvider resolves a login to a fresh snapshot of its follow relations.
// limit bounds both the follower and the following lists.
type NodeProvider interface {
	Fetch(ctx context.Context, login string, limit int, withDescriptions bool) (model.NodeSnapshot, error)
}
