package community

import (
	"sort"

	"github.com/agenthands/ghrank/internal/core/model"
)

const DefaultMaxIterations = 20

// LabelPropagationDetector groups users into communities with the Label Propagation Algorithm (LPA).
// Follow edges are treated as undirected; mutual follows weigh double.
type LabelPropagationDetector struct {
	MaxIterations int
	MinSize       int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: DefaultMaxIterations,
		MinSize:       2,
	}
}

// Detect returns the communities ordered by their first member in nodes order,
// each listing its members in nodes order. Communities smaller than MinSize are dropped.
func (d *LabelPropagationDetector) Detect(nodes []model.GraphNode, edges []model.GraphEdge) [][]model.GraphNode {
	if len(nodes) == 0 {
		return nil
	}

	adj := make(map[string]map[string]int, len(nodes)) // node -> neighbor -> weight
	for _, n := range nodes {
		adj[n.Login] = make(map[string]int)
	}
	for _, e := range edges {
		if _, ok := adj[e.Source]; !ok {
			continue
		}
		if _, ok := adj[e.Target]; !ok {
			continue
		}
		if e.Source == e.Target {
			continue
		}
		adj[e.Source][e.Target]++
		adj[e.Target][e.Source]++
	}

	// every node starts in its own community
	labels := make(map[string]string, len(nodes))
	for _, n := range nodes {
		labels[n.Login] = n.Login
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changed := 0
		for _, n := range nodes {
			neighbors := adj[n.Login]
			if len(neighbors) == 0 {
				continue
			}

			counts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				counts[label] += weight
				if counts[label] > maxCount {
					maxCount = counts[label]
				}
			}

			var candidates []string
			for label, count := range counts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}
			// lexicographically largest wins ties, for stable output
			sort.Strings(candidates)
			best := candidates[len(candidates)-1]

			if labels[n.Login] != best {
				labels[n.Login] = best
				changed++
			}
		}
		if changed == 0 {
			break
		}
	}

	var order []string
	clusters := make(map[string][]model.GraphNode)
	for _, n := range nodes {
		label := labels[n.Login]
		if _, ok := clusters[label]; !ok {
			order = append(order, label)
		}
		clusters[label] = append(clusters[label], n)
	}

	var communities [][]model.GraphNode
	for _, label := range order {
		if len(clusters[label]) >= d.MinSize {
			communities = append(communities, clusters[label])
		}
	}
	return communities
}

// Membership maps each login to the index of its community in Detect's result.
// Logins outside any community are absent.
func Membership(communities [][]model.GraphNode) map[string]int {
	out := make(map[string]int)
	for i, c := range communities {
		for _, n := range c {
			out[n.Login] = i
		}
	}
	return out
}
