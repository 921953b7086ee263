package worldmodel

import (
	"math"

	"go.viam.com/localplan/costmap"
)

// FootprintCells returns the map cells the robot's footprint polygon
// covers at (x,y,theta): just the boundary cells when fillInterior is
// false, or the boundary plus every enclosed cell when true (spec.md
// §6's footprint helper). Its result fits distancefield.Grid's
// MarkWithinRobot; the planner façade does not call it, so no cell is
// marked WithinRobot during FindBestPath.
//
// With an empty footprint (a point robot) this returns just the single
// cell under (x,y).
func FootprintCells(x, y, theta float64, fp Footprint, cm costmap.Costmap, fillInterior bool) [][2]int {
	if len(fp) == 0 {
		if cx, cy, ok := cm.WorldToMap(x, y); ok {
			return [][2]int{{cx, cy}}
		}
		return nil
	}

	cosT, sinT := math.Cos(theta), math.Sin(theta)
	worldX := make([]float64, len(fp))
	worldY := make([]float64, len(fp))
	for i, v := range fp {
		worldX[i] = x + v.X*cosT - v.Y*sinT
		worldY[i] = y + v.X*sinT + v.Y*cosT
	}

	seen := map[[2]int]bool{}
	var cells [][2]int
	add := func(cx, cy int) {
		key := [2]int{cx, cy}
		if !seen[key] {
			seen[key] = true
			cells = append(cells, key)
		}
	}

	minCx, minCy := cm.SizeX(), cm.SizeY()
	maxCx, maxCy := -1, -1

	for i := range worldX {
		j := (i + 1) % len(worldX)
		cx0, cy0, ok0 := cm.WorldToMap(worldX[i], worldY[i])
		cx1, cy1, ok1 := cm.WorldToMap(worldX[j], worldY[j])
		if !ok0 || !ok1 {
			continue
		}
		bresenham(cx0, cy0, cx1, cy1, func(cx, cy int) bool {
			add(cx, cy)
			if cx < minCx {
				minCx = cx
			}
			if cy < minCy {
				minCy = cy
			}
			if cx > maxCx {
				maxCx = cx
			}
			if cy > maxCy {
				maxCy = cy
			}
			return true
		})
	}

	if !fillInterior || maxCx < minCx {
		return cells
	}

	for cy := minCy; cy <= maxCy; cy++ {
		for cx := minCx; cx <= maxCx; cx++ {
			wx, wy := cm.MapToWorld(cx, cy)
			if pointInPolygon(wx, wy, worldX, worldY) {
				add(cx, cy)
			}
		}
	}

	return cells
}

// pointInPolygon is the standard even-odd ray-casting test.
func pointInPolygon(px, py float64, xs, ys []float64) bool {
	inside := false
	n := len(xs)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := xs[i], ys[i]
		xj, yj := xs[j], ys[j]
		if (yi > py) != (yj > py) {
			xCross := (xj-xi)*(py-yi)/(yj-yi) + xi
			if px < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
