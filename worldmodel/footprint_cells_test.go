package worldmodel

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/localplan/costmap"
)

func TestFootprintCellsPointRobotReturnsSingleCell(t *testing.T) {
	cm := costmap.NewGridCostmap(10, 10, 1.0)
	cells := FootprintCells(5.5, 5.5, 0, nil, cm, true)
	test.That(t, cells, test.ShouldResemble, [][2]int{{5, 5}})
}

func TestFootprintCellsPointRobotOutOfBoundsReturnsNil(t *testing.T) {
	cm := costmap.NewGridCostmap(10, 10, 1.0)
	cells := FootprintCells(-5, -5, 0, nil, cm, true)
	test.That(t, cells, test.ShouldBeNil)
}

func TestFootprintCellsSquareFillIncludesCenter(t *testing.T) {
	cm := costmap.NewGridCostmap(20, 20, 1.0)
	fp := Footprint{
		{X: -2, Y: -2, Z: 0}, {X: 2, Y: -2, Z: 0}, {X: 2, Y: 2, Z: 0}, {X: -2, Y: 2, Z: 0},
	}
	cells := FootprintCells(10, 10, 0, fp, cm, true)

	found := false
	for _, c := range cells {
		if c[0] == 10 && c[1] == 10 {
			found = true
		}
	}
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, len(cells), test.ShouldBeGreaterThan, 4)
}

func TestFootprintCellsBoundaryOnlySkipsCenter(t *testing.T) {
	cm := costmap.NewGridCostmap(20, 20, 1.0)
	fp := Footprint{
		{X: -3, Y: -3, Z: 0}, {X: 3, Y: -3, Z: 0}, {X: 3, Y: 3, Z: 0}, {X: -3, Y: 3, Z: 0},
	}
	cells := FootprintCells(10, 10, 0, fp, cm, false)

	found := false
	for _, c := range cells {
		if c[0] == 10 && c[1] == 10 {
			found = true
		}
	}
	test.That(t, found, test.ShouldBeFalse)
}

func TestPointInPolygonUnitSquare(t *testing.T) {
	xs := []float64{0, 1, 1, 0}
	ys := []float64{0, 0, 1, 1}
	test.That(t, pointInPolygon(0.5, 0.5, xs, ys), test.ShouldBeTrue)
	test.That(t, pointInPolygon(2, 2, xs, ys), test.ShouldBeFalse)
}
