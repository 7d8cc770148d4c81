package graph

import (
	"encoding/json"
	"testing"

	"github.com/agenthands/ghrank/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertRank_NewNode(t *testing.T) {
	g := New()
	g.UpsertRank("alice", 0.5, "https://avatars/alice", nil)

	require.Equal(t, 1, g.Len())
	n, ok := g.Node("alice")
	require.True(t, ok)
	assert.Equal(t, 0.5, n.Rank)
	assert.Equal(t, "https://avatars/alice", n.AvatarURL)
	assert.NotNil(t, n.Categories)
	assert.Empty(t, n.Categories)
}

func TestUpsertRank_OverwritesInPlace(t *testing.T) {
	g := New()
	g.UpsertRank("alice", 0.5, "a1", []string{"Web Development"})
	g.UpsertRank("bob", 0.3, "b1", nil)
	g.UpsertRank("alice", 0.2, "a2", nil)

	require.Equal(t, 2, g.Len())
	nodes := g.Nodes()
	assert.Equal(t, "alice", nodes[0].Login, "insertion position is kept")
	assert.Equal(t, 0.2, nodes[0].Rank, "second score wins")
	assert.Equal(t, "a1", nodes[0].AvatarURL, "avatar is not replaced")
	assert.Equal(t, []string{"Web Development"}, nodes[0].Categories, "nil categories keep the old ones")

	g.UpsertRank("alice", 0.7, "", []string{"DevOps"})
	n, _ := g.Node("alice")
	assert.Equal(t, []string{"DevOps"}, n.Categories)
}

func TestUpsertEdgesFromIncoming_Dedupes(t *testing.T) {
	g := New()
	snap := model.NodeSnapshot{Login: "alice", Followers: []string{"bob", "carol", "bob"}}

	g.UpsertEdgesFromIncoming(snap)
	g.UpsertEdgesFromIncoming(snap)

	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []model.GraphEdge{
		{Source: "bob", Target: "alice"},
		{Source: "carol", Target: "alice"},
	}, g.Edges())
}

func TestUpsertEdgesFromIncoming_DirectionMatters(t *testing.T) {
	g := New()
	g.UpsertEdgesFromIncoming(model.NodeSnapshot{Login: "alice", Followers: []string{"bob"}})
	g.UpsertEdgesFromIncoming(model.NodeSnapshot{Login: "bob", Followers: []string{"alice"}})

	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasEdge("bob", "alice"))
	assert.True(t, g.HasEdge("alice", "bob"))
}

func TestUpsertEdgesFromIncoming_SelfLoopKept(t *testing.T) {
	g := New()
	g.UpsertEdgesFromIncoming(model.NodeSnapshot{Login: "alice", Followers: []string{"alice"}})
	assert.True(t, g.HasEdge("alice", "alice"))
}

func TestSortedByRankDescending(t *testing.T) {
	g := New()
	g.UpsertRank("a", 0.2, "", nil)
	g.UpsertRank("b", 0.9, "", nil)
	g.UpsertRank("c", 0.5, "", nil)
	g.UpsertRank("d", 0.5, "", nil)
	g.UpsertRank("e", 0.9, "", nil)
	g.UpsertEdgesFromIncoming(model.NodeSnapshot{Login: "a", Followers: []string{"b", "c"}})

	sorted := g.SortedByRankDescending()

	var order []string
	for _, n := range sorted.Nodes() {
		order = append(order, n.Login)
	}
	assert.Equal(t, []string{"b", "e", "c", "d", "a"}, order, "ties keep their relative order")

	nodes := sorted.Nodes()
	for i := 1; i < len(nodes); i++ {
		assert.GreaterOrEqual(t, nodes[i-1].Rank, nodes[i].Rank)
	}
	assert.Equal(t, g.Edges(), sorted.Edges())

	// the source graph is not reordered
	var original []string
	for _, n := range g.Nodes() {
		original = append(original, n.Login)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, original)

	// both views are independent afterwards
	sorted.UpsertRank("a", 5, "", nil)
	orig, _ := g.Node("a")
	assert.Equal(t, 0.2, orig.Rank)
	n, _ := sorted.Node("a")
	assert.Equal(t, 5.0, n.Rank)
}

func TestNodes_ReturnsCopies(t *testing.T) {
	g := New()
	g.UpsertRank("a", 0.2, "", []string{"Security"})

	nodes := g.Nodes()
	nodes[0].Rank = 100
	nodes[0].Categories[0] = "changed"

	n, _ := g.Node("a")
	assert.Equal(t, 0.2, n.Rank)
	assert.Equal(t, []string{"Security"}, n.Categories)
}

func TestMarshalJSON(t *testing.T) {
	g := New()
	g.UpsertRank("alice", 0.21375, "https://avatars/alice", nil)
	g.UpsertEdgesFromIncoming(model.NodeSnapshot{Login: "alice", Followers: []string{"bob"}})

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodes": [{"login": "alice", "rank": 0.21375, "avatarUrl": "https://avatars/alice", "categories": []}],
		"edges": [{"source": "bob", "target": "alice"}]
	}`, string(data))
}

func TestMarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(New())
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes": [], "edges": []}`, string(data))
}
