// Package distancefield builds and exposes the two distance grids the
// rollout scores against: path_map (distance in cells to the nearest
// global-plan cell) and goal_map (distance in cells to the local goal
// along the plan), per spec.md §3-§4.3 and §6. Building the fields from
// a costmap and a global plan is, per spec.md §1, an external
// collaborator of the planner core; this package is that collaborator's
// reference implementation (a breadth-first fill), not part of the core
// itself.
package distancefield

import "go.viam.com/localplan/costmap"

// Sentinel target_dist values (spec.md §3's DistanceCell invariants).
const (
	// ObstacleCost marks a cell the fill could not traverse.
	ObstacleCost uint32 = 1<<32 - 2
	// Unreachable marks a cell the fill has not yet (or could not)
	// reach; it is also the value every cell resets to.
	Unreachable uint32 = 1<<32 - 1
)

// DistanceCell is one cell of a Grid.
type DistanceCell struct {
	TargetDist  uint32
	WithinRobot bool
}

// Grid is a dense path_map or goal_map, always sized to match the
// costmap it was built from (spec.md §3 invariant).
type Grid struct {
	sizeX, sizeY int
	cells        []DistanceCell
}

// NewGrid allocates a sizeX x sizeY grid, reset to all-Unreachable.
func NewGrid(sizeX, sizeY int) *Grid {
	g := &Grid{sizeX: sizeX, sizeY: sizeY, cells: make([]DistanceCell, sizeX*sizeY)}
	g.Reset()
	return g
}

func (g *Grid) SizeX() int { return g.sizeX }
func (g *Grid) SizeY() int { return g.sizeY }

func (g *Grid) inBounds(cx, cy int) bool {
	return cx >= 0 && cx < g.sizeX && cy >= 0 && cy < g.sizeY
}

func (g *Grid) idx(cx, cy int) int { return cy*g.sizeX + cx }

// At returns the cell at (cx,cy). Out-of-bounds reads return a cell
// carrying the Unreachable sentinel rather than panicking, matching the
// defensive read style of costmap.GridCostmap.GetCost.
func (g *Grid) At(cx, cy int) DistanceCell {
	if !g.inBounds(cx, cy) {
		return DistanceCell{TargetDist: Unreachable}
	}
	return g.cells[g.idx(cx, cy)]
}

// Set writes a cell; out-of-bounds writes are ignored.
func (g *Grid) Set(cx, cy int, cell DistanceCell) {
	if !g.inBounds(cx, cy) {
		return
	}
	g.cells[g.idx(cx, cy)] = cell
}

// Reset sets every cell's TargetDist to Unreachable and WithinRobot to
// false (spec.md §8 P5). It never resizes; ResizeToMatch does that.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = DistanceCell{TargetDist: Unreachable}
	}
}

// ResizeToMatch reallocates the grid if it does not already match cm's
// dimensions, then resets it. The distance grids must always match the
// costmap's size (spec.md §3 invariant); costmaps can be resized
// between ticks (e.g. on a map reload), so the planner calls this
// before every rebuild rather than assuming a fixed size.
func (g *Grid) ResizeToMatch(cm costmap.Costmap) {
	if g.sizeX != cm.SizeX() || g.sizeY != cm.SizeY() {
		g.sizeX, g.sizeY = cm.SizeX(), cm.SizeY()
		g.cells = make([]DistanceCell, g.sizeX*g.sizeY)
	}
	g.Reset()
}

// MarkWithinRobot sets WithinRobot on every cell in cells, leaving
// TargetDist untouched. Scoring treats within_robot cells as if they
// were off the map (spec.md §3 invariant).
func (g *Grid) MarkWithinRobot(cells [][2]int) {
	for _, c := range cells {
		cell := g.At(c[0], c[1])
		cell.WithinRobot = true
		g.Set(c[0], c[1], cell)
	}
}
