package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/ghrank/internal/core/model"
)

var users = map[string]string{
	"octocat": `{"login": "octocat", "avatarUrl": "https://avatars/octocat",
		"followers": {"nodes": [{"login": "hubot"}, {"login": "monalisa"}]},
		"following": {"nodes": []}}`,
	"hubot": `{"login": "hubot", "avatarUrl": "https://avatars/hubot",
		"followers": {"nodes": []},
		"following": {"nodes": [{"login": "octocat"}]}}`,
	"monalisa": `{"login": "monalisa", "avatarUrl": "https://avatars/monalisa",
		"followers": {"nodes": [{"login": "hubot"}]},
		"following": {"nodes": [{"login": "octocat"}, {"login": "hubot"}]}}`,
}

func fakeGitHub(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables map[string]interface{} `json:"variables"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		user, ok := users[fmt.Sprint(req.Variables["login"])]
		if !ok {
			user = "null"
		}
		_, _ = fmt.Fprintf(w, `{"data": {"user": %s}}`, user)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("GITHUB_GRAPHQL_URL", srv.URL)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("TMPDIR", t.TempDir())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	args = append(args, "-c", filepath.Join(t.TempDir(), "missing.toml"))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_JSONToStdout(t *testing.T) {
	fakeGitHub(t)

	out, err := execute(t, "octocat", "tok", "-f", "json", "-p", "2")
	require.NoError(t, err)

	var doc struct {
		Nodes []model.GraphNode `json:"nodes"`
		Edges []model.GraphEdge `json:"edges"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Nodes, 3)
	assert.Equal(t, "octocat", doc.Nodes[0].Login)
	assert.ElementsMatch(t, []model.GraphEdge{
		{Source: "hubot", Target: "octocat"},
		{Source: "monalisa", Target: "octocat"},
	}, doc.Edges)
}

func TestRoot_SVGToTempDir(t *testing.T) {
	fakeGitHub(t)

	out, err := execute(t, "octocat", "tok", "-p", "1")
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(os.TempDir(), "ghrank", "graph.svg"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRoot_OutputFile(t *testing.T) {
	fakeGitHub(t)

	path := filepath.Join(t.TempDir(), "graph.txt")
	out, err := execute(t, "octocat", "tok", "-o", path, "-f", "svg")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>octocat\nrank: 1")
}

func TestRoot_Errors(t *testing.T) {
	fakeGitHub(t)

	_, err := execute(t, "octocat")
	assert.Error(t, err)

	_, err = execute(t, "octocat", "tok", "-f", "png")
	assert.True(t, errors.Is(err, model.ErrConfig))

	_, err = execute(t, "octocat", "tok", "-d", "1.5")
	assert.True(t, errors.Is(err, model.ErrConfig))

	_, err = execute(t, "ghost", "tok")
	assert.True(t, errors.Is(err, model.ErrFetch))
	assert.Contains(t, err.Error(), "ghost")
}
