package worldmodel

import "go.viam.com/localplan/costmap"

// LethalLineCost is the sentinel LineCost returns when the traced
// segment passes through a lethal, inscribed-inflated, or
// no-information cell (spec.md §4.2, §7: sentinel -1).
const LethalLineCost = -1.0

// LineCost ray-traces the straight segment from (x0,y0) to (x1,y1)
// across cm using integer Bresenham traversal and returns the maximum
// per-cell cost visited, or LethalLineCost if any visited cell is
// LETHAL, INSCRIBED_INFLATED or NO_INFORMATION. It is available to
// extensions (e.g. a coarse pre-check before a full rollout); the core
// rollout in this repo does not call it.
func LineCost(cm costmap.Costmap, x0, y0, x1, y1 float64) float64 {
	cx0, cy0, ok0 := cm.WorldToMap(x0, y0)
	cx1, cy1, ok1 := cm.WorldToMap(x1, y1)
	if !ok0 || !ok1 {
		return LethalLineCost
	}

	maxCost := 0.0
	visit := func(cx, cy int) bool {
		c := cm.GetCost(cx, cy)
		if c == costmap.Lethal || c == costmap.InscribedInflated || c == costmap.NoInformation {
			return false
		}
		if float64(c) > maxCost {
			maxCost = float64(c)
		}
		return true
	}

	if !bresenham(cx0, cy0, cx1, cy1, visit) {
		return LethalLineCost
	}
	return maxCost
}

// bresenham walks the integer grid line from (x0,y0) to (x1,y1),
// calling visit on each cell in order. It stops early and returns false
// the moment visit returns false.
func bresenham(x0, y0, x1, y1 int, visit func(x, y int) bool) bool {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		if !visit(x, y) {
			return false
		}
		if x == x1 && y == y1 {
			return true
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
