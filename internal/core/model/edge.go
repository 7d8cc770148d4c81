package model

// GraphEdge means Source follows Target.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// EdgeKey identifies an edge by its ordered pair.
type EdgeKey struct {
	Source string
	Target string
}

func (e GraphEdge) Key() EdgeKey {
	return EdgeKey{Source: e.Source, Target: e.Target}
}
