package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/ghrank/internal/core/model"
)

type executedQuery struct {
	Query  string
	Params map[string]any
}

type MockDriver struct {
	Executed     []executedQuery
	MockResult   neo4j.EagerResult
	Err          error
	FailAfter    int // fail once this many queries succeeded, when Err is set
	IndicesBuilt bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	if m.Err != nil && len(m.Executed) >= m.FailAfter {
		return neo4j.EagerResult{}, m.Err
	}
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	m.IndicesBuilt = true
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

type MockProvider struct {
	Nodes map[string]model.NodeSnapshot
}

func (m *MockProvider) Fetch(ctx context.Context, login string, limit int, withDescriptions bool) (model.NodeSnapshot, error) {
	n, ok := m.Nodes[login]
	if !ok {
		return model.NodeSnapshot{}, &model.FetchError{Login: login, Message: "user could not be resolved"}
	}
	return n, nil
}
