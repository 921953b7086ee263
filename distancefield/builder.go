package distancefield

import "go.viam.com/localplan/costmap"

// PlanPose is the minimal shape the builder needs from a global-plan
// waypoint: world-frame coordinates. The planner façade's GlobalPlan
// poses satisfy this by field access; the builder takes plain (x,y)
// pairs so this package stays independent of the planning package's
// Pose type.
type PlanPose struct {
	X, Y float64
}

type bfsNode struct {
	cx, cy int
}

// blocked reports whether a costmap cell should stop the fill: lethal,
// inscribed-inflated and no-information cells are all untraversable for
// the purpose of a distance field, since the robot cannot be certain an
// unknown cell is free.
func blocked(c uint8) bool {
	return c == costmap.Lethal || c == costmap.InscribedInflated || c == costmap.NoInformation
}

// SetTargetCells fills grid (sized to match cm) with, for every free
// cell, the BFS distance in cells to the nearest cell of plan. Cells the
// fill cannot reach stay Unreachable; cells blocked outright are marked
// ObstacleCost. An empty plan leaves every cell Unreachable.
func SetTargetCells(grid *Grid, cm costmap.Costmap, plan []PlanPose) {
	grid.ResizeToMatch(cm)
	if len(plan) == 0 {
		return
	}

	queue := make([]bfsNode, 0, len(plan))
	seen := make(map[[2]int]bool, cm.SizeX()*cm.SizeY()/4)

	for _, p := range plan {
		cx, cy, ok := cm.WorldToMap(p.X, p.Y)
		if !ok {
			continue
		}
		key := [2]int{cx, cy}
		if seen[key] {
			continue
		}
		if blocked(cm.GetCost(cx, cy)) {
			grid.Set(cx, cy, DistanceCell{TargetDist: ObstacleCost})
			seen[key] = true
			continue
		}
		grid.Set(cx, cy, DistanceCell{TargetDist: 0})
		seen[key] = true
		queue = append(queue, bfsNode{cx, cy})
	}

	bfsFill(grid, cm, queue, seen)
}

// SetLocalGoal picks the farthest plan pose that lands inside cm and is
// not itself blocked, walking from the end of the plan backward, and
// fills grid with the BFS distance in cells to that single cell. If no
// plan pose is usable, grid is left all-Unreachable and ok is false.
func SetLocalGoal(grid *Grid, cm costmap.Costmap, plan []PlanPose) (goalX, goalY float64, ok bool) {
	grid.ResizeToMatch(cm)
	for i := len(plan) - 1; i >= 0; i-- {
		cx, cy, inMap := cm.WorldToMap(plan[i].X, plan[i].Y)
		if !inMap || blocked(cm.GetCost(cx, cy)) {
			continue
		}
		seen := map[[2]int]bool{{cx, cy}: true}
		grid.Set(cx, cy, DistanceCell{TargetDist: 0})
		bfsFill(grid, cm, []bfsNode{{cx, cy}}, seen)
		gx, gy := cm.MapToWorld(cx, cy)
		return gx, gy, true
	}
	return 0, 0, false
}

var neighborOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// bfsFill expands queue breadth-first over cm's free cells, writing each
// newly-visited cell's TargetDist into grid. seen tracks cells already
// enqueued or settled so each cell is visited once, the way
// _examples/orange-dot-mapf-het/internal/algo/astar.go tracks visited
// space-time states — here over a plain 2-D grid with uniform edge cost,
// so a FIFO queue suffices in place of that file's priority queue.
func bfsFill(grid *Grid, cm costmap.Costmap, queue []bfsNode, seen map[[2]int]bool) {
	for i := 0; i < len(queue); i++ {
		n := queue[i]
		d := grid.At(n.cx, n.cy).TargetDist
		for _, off := range neighborOffsets {
			nx, ny := n.cx+off[0], n.cy+off[1]
			if nx < 0 || nx >= cm.SizeX() || ny < 0 || ny >= cm.SizeY() {
				continue
			}
			key := [2]int{nx, ny}
			if seen[key] {
				continue
			}
			seen[key] = true
			if blocked(cm.GetCost(nx, ny)) {
				grid.Set(nx, ny, DistanceCell{TargetDist: ObstacleCost})
				continue
			}
			grid.Set(nx, ny, DistanceCell{TargetDist: d + 1})
			queue = append(queue, bfsNode{nx, ny})
		}
	}
}
