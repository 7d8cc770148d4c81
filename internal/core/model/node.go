package model

// NodeSnapshot is a user as returned by a node provider for a single visit.
// Snapshots are never cached between visits.
type NodeSnapshot struct {
	Login        string   `json:"login"`
	AvatarURL    string   `json:"avatarUrl"`
	Followers    []string `json:"followers"` // incoming relation
	Following    []string `json:"following"` // outbound relation
	Descriptions []string `json:"descriptions,omitempty"`
}

// OutboundCount is the PageRank denominator for this node.
func (s NodeSnapshot) OutboundCount() int {
	return len(s.Following)
}

type GraphNode struct {
	Login      string   `json:"login"`
	Rank       float64  `json:"rank"`
	AvatarURL  string   `json:"avatarUrl"`
	Categories []string `json:"categories"`
}
