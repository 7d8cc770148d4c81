package render

import (
	"math"

	"github.com/agenthands/ghrank/internal/core/model"
)

type point struct {
	X, Y float64
}

// layout places nodes with a Fruchterman-Reingold simulation. Nodes start on a
// circle in the order given, so the same graph always yields the same picture.
func layout(nodes []model.GraphNode, edges []model.GraphEdge, width, height float64, iterations int) []point {
	n := len(nodes)
	pos := make([]point, n)
	if n == 0 {
		return pos
	}

	cx, cy := width/2, height/2
	if n == 1 {
		pos[0] = point{cx, cy}
		return pos
	}

	radius := math.Min(width, height) / 3
	for i := range pos {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pos[i] = point{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)}
	}

	index := make(map[string]int, n)
	for i, node := range nodes {
		index[node.Login] = i
	}

	k := math.Sqrt(width * height / float64(n))
	temp := width / 10
	cooling := temp / float64(iterations+1)

	disp := make([]point, n)
	for iter := 0; iter < iterations; iter++ {
		for i := range disp {
			disp[i] = point{}
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx, dy, dist := delta(pos[i], pos[j])
				f := k * k / dist
				disp[i].X += dx / dist * f
				disp[i].Y += dy / dist * f
				disp[j].X -= dx / dist * f
				disp[j].Y -= dy / dist * f
			}
		}

		for _, e := range edges {
			s, ok1 := index[e.Source]
			t, ok2 := index[e.Target]
			if !ok1 || !ok2 || s == t {
				continue
			}
			dx, dy, dist := delta(pos[s], pos[t])
			f := dist * dist / k
			disp[s].X -= dx / dist * f
			disp[s].Y -= dy / dist * f
			disp[t].X += dx / dist * f
			disp[t].Y += dy / dist * f
		}

		// weak pull to the centre keeps disconnected parts on the canvas
		for i := range pos {
			disp[i].X += (cx - pos[i].X) * 0.01
			disp[i].Y += (cy - pos[i].Y) * 0.01
		}

		for i := range pos {
			l := math.Hypot(disp[i].X, disp[i].Y)
			if l > 0 {
				step := math.Min(l, temp)
				pos[i].X += disp[i].X / l * step
				pos[i].Y += disp[i].Y / l * step
			}
			pos[i].X = clamp(pos[i].X, 0, width)
			pos[i].Y = clamp(pos[i].Y, 0, height)
		}
		temp -= cooling
	}

	return pos
}

func delta(a, b point) (dx, dy, dist float64) {
	dx, dy = a.X-b.X, a.Y-b.Y
	dist = math.Hypot(dx, dy)
	if dist < 0.01 {
		dist = 0.01
	}
	return dx, dy, dist
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
