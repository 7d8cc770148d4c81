package graph

import (
	"encoding/json"
	"sort"

	"github.com/agenthands/ghrank/internal/core/model"
)

// Graph accumulates the nodes and edges visited by one ranking run.
// It is not safe for concurrent use.
type Graph struct {
	nodes []model.GraphNode
	index map[string]int
	edges []model.GraphEdge
	seen  map[model.EdgeKey]struct{}
}

func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		seen:  make(map[model.EdgeKey]struct{}),
	}
}

// UpsertRank overwrites the rank of an existing node in place, or appends a new one.
// Categories are only replaced on an existing node when categories is non-nil.
func (g *Graph) UpsertRank(login string, rank float64, avatarURL string, categories []string) {
	if i, ok := g.index[login]; ok {
		g.nodes[i].Rank = rank
		if categories != nil {
			g.nodes[i].Categories = cloneStrings(categories)
		}
		return
	}

	if categories == nil {
		categories = []string{}
	}
	g.index[login] = len(g.nodes)
	g.nodes = append(g.nodes, model.GraphNode{
		Login:      login,
		Rank:       rank,
		AvatarURL:  avatarURL,
		Categories: cloneStrings(categories),
	})
}

// UpsertEdgesFromIncoming adds follower -> node for every follower of the snapshot
// that is not already connected.
func (g *Graph) UpsertEdgesFromIncoming(node model.NodeSnapshot) {
	for _, follower := range node.Followers {
		g.addEdge(model.GraphEdge{Source: follower, Target: node.Login})
	}
}

func (g *Graph) addEdge(e model.GraphEdge) {
	if _, ok := g.seen[e.Key()]; ok {
		return
	}
	g.seen[e.Key()] = struct{}{}
	g.edges = append(g.edges, e)
}

// SortedByRankDescending returns a new graph with the nodes stable-sorted by rank,
// highest first. The receiver is left untouched.
func (g *Graph) SortedByRankDescending() *Graph {
	out := g.clone()
	sort.SliceStable(out.nodes, func(i, j int) bool {
		return out.nodes[i].Rank > out.nodes[j].Rank
	})
	for i, n := range out.nodes {
		out.index[n.Login] = i
	}
	return out
}

func (g *Graph) clone() *Graph {
	out := &Graph{
		nodes: make([]model.GraphNode, len(g.nodes)),
		index: make(map[string]int, len(g.index)),
		edges: make([]model.GraphEdge, len(g.edges)),
		seen:  make(map[model.EdgeKey]struct{}, len(g.seen)),
	}
	for i, n := range g.nodes {
		n.Categories = cloneStrings(n.Categories)
		out.nodes[i] = n
		out.index[n.Login] = i
	}
	copy(out.edges, g.edges)
	for k := range g.seen {
		out.seen[k] = struct{}{}
	}
	return out
}

// Node returns a copy of the node with the given login.
func (g *Graph) Node(login string) (model.GraphNode, bool) {
	i, ok := g.index[login]
	if !ok {
		return model.GraphNode{}, false
	}
	n := g.nodes[i]
	n.Categories = cloneStrings(n.Categories)
	return n, true
}

func (g *Graph) HasEdge(source, target string) bool {
	_, ok := g.seen[model.EdgeKey{Source: source, Target: target}]
	return ok
}

// Nodes returns the nodes in their current order.
func (g *Graph) Nodes() []model.GraphNode {
	out := make([]model.GraphNode, len(g.nodes))
	for i, n := range g.nodes {
		n.Categories = cloneStrings(n.Categories)
		out[i] = n
	}
	return out
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []model.GraphEdge {
	out := make([]model.GraphEdge, len(g.edges))
	copy(out, g.edges)
	return out
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

type graphJSON struct {
	Nodes []model.GraphNode `json:"nodes"`
	Edges []model.GraphEdge `json:"edges"`
}

func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphJSON{Nodes: g.Nodes(), Edges: g.Edges()})
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
