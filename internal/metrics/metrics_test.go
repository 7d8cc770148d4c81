package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRecorder struct {
	Ops map[string]int
}

func (m *MockRecorder) IncOpTotal(op string, success bool) {
	if m.Ops == nil {
		m.Ops = map[string]int{}
	}
	if success {
		m.Ops[op]++
	}
}
func (m *MockRecorder) ObserveOpSeconds(string, bool, float64) {}
func (m *MockRecorder) ObserveGraphSize(int, int)              {}

func TestTimeOp_UsesRecorder(t *testing.T) {
	rec := &MockRecorder{}
	SetRecorder(rec)
	defer SetRecorder(nil)

	done := TimeOp("github_fetch")
	done(true)
	TimeOp("github_fetch")(false)

	assert.Equal(t, 1, rec.Ops["github_fetch"])
}

func TestEnablePrometheus_ServesMetrics(t *testing.T) {
	handler := EnablePrometheus()
	defer SetRecorder(nil)

	TimeOp("rank_run")(true)
	Default().ObserveGraphSize(3, 2)

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Contains(t, string(body), `ghrank_ops_total{op="rank_run",success="true"} 1`)
	assert.Contains(t, string(body), "ghrank_graph_nodes")
}
