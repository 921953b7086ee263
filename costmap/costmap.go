// Package costmap defines the narrow interface the planner core uses to
// read occupancy costs and map between world and cell coordinates
// (spec.md §6). Building and maintaining the costmap itself — inflation,
// sensor fusion, clearing — is out of scope for this repo; GridCostmap
// below is a minimal in-memory reference implementation used by tests
// and the demo binary, not a production costmap.
package costmap

// Cost sentinel values, matching the ROS/nav2 costmap_2d convention the
// corpus's robotics stack follows.
const (
	FreeSpace          uint8 = 0
	InscribedInflated  uint8 = 253
	Lethal             uint8 = 254
	NoInformation      uint8 = 255
)

// Costmap is the external collaborator the rollout and sampler read
// cell costs and coordinate transforms from.
type Costmap interface {
	SizeX() int
	SizeY() int
	Resolution() float64
	GetCost(cx, cy int) uint8
	// WorldToMap returns the cell containing (x,y) and true, or
	// (0,0,false) if (x,y) is outside the map.
	WorldToMap(x, y float64) (cx, cy int, ok bool)
	MapToWorld(cx, cy int) (x, y float64)
}

// GridCostmap is a dense in-memory Costmap backed by a row-major byte
// grid, with the origin at world (0,0) = cell (0,0).
type GridCostmap struct {
	sizeX, sizeY int
	resolution   float64
	cells        []uint8
}

// NewGridCostmap allocates a sizeX x sizeY grid of FreeSpace cells at
// the given resolution (meters/cell).
func NewGridCostmap(sizeX, sizeY int, resolution float64) *GridCostmap {
	return &GridCostmap{
		sizeX:      sizeX,
		sizeY:      sizeY,
		resolution: resolution,
		cells:      make([]uint8, sizeX*sizeY),
	}
}

func (g *GridCostmap) SizeX() int           { return g.sizeX }
func (g *GridCostmap) SizeY() int           { return g.sizeY }
func (g *GridCostmap) Resolution() float64  { return g.resolution }

func (g *GridCostmap) idx(cx, cy int) int { return cy*g.sizeX + cx }

func (g *GridCostmap) inBounds(cx, cy int) bool {
	return cx >= 0 && cx < g.sizeX && cy >= 0 && cy < g.sizeY
}

// GetCost returns NoInformation for any out-of-bounds query rather than
// panicking, matching nav2's defensive convention for edge reads.
func (g *GridCostmap) GetCost(cx, cy int) uint8 {
	if !g.inBounds(cx, cy) {
		return NoInformation
	}
	return g.cells[g.idx(cx, cy)]
}

// SetCost writes a cell's cost; out-of-bounds writes are silently
// ignored (the reference grid is test/demo scaffolding, not a
// production costmap with its own bounds-checking contract).
func (g *GridCostmap) SetCost(cx, cy int, cost uint8) {
	if !g.inBounds(cx, cy) {
		return
	}
	g.cells[g.idx(cx, cy)] = cost
}

func (g *GridCostmap) WorldToMap(x, y float64) (int, int, bool) {
	cx := int(x / g.resolution)
	cy := int(y / g.resolution)
	if x < 0 || y < 0 || !g.inBounds(cx, cy) {
		return 0, 0, false
	}
	return cx, cy, true
}

func (g *GridCostmap) MapToWorld(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * g.resolution, (float64(cy) + 0.5) * g.resolution
}
