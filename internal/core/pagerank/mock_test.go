package pagerank

import (
	"context"

	"github.com/agenthands/ghrank/internal/core/model"
)

type fetchCall struct {
	Login            string
	Limit            int
	WithDescriptions bool
}

type MockProvider struct {
	Nodes map[string]model.NodeSnapshot
	Calls []fetchCall
}

func (m *MockProvider) Fetch(ctx context.Context, login string, limit int, withDescriptions bool) (model.NodeSnapshot, error) {
	m.Calls = append(m.Calls, fetchCall{Login: login, Limit: limit, WithDescriptions: withDescriptions})
	n, ok := m.Nodes[login]
	if !ok {
		return model.NodeSnapshot{}, &model.FetchError{Login: login, Message: "user could not be resolved"}
	}
	return n, nil
}

func (m *MockProvider) fetched() []string {
	var out []string
	for _, c := range m.Calls {
		out = append(out, c.Login)
	}
	return out
}

type MockClassifier struct {
	Categories []string
	Seen       [][]string
}

func (m *MockClassifier) Classify(ctx context.Context, descriptions []string) []string {
	m.Seen = append(m.Seen, descriptions)
	return m.Categories
}

func snapshots(nodes ...model.NodeSnapshot) map[string]model.NodeSnapshot {
	out := make(map[string]model.NodeSnapshot, len(nodes))
	for _, n := range nodes {
		out[n.Login] = n
	}
	return out
}
