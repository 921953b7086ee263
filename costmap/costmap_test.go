package costmap

import (
	"testing"

	"go.viam.com/test"
)

func TestGridCostmapRoundTripsWorldToMap(t *testing.T) {
	g := NewGridCostmap(10, 10, 1.0)
	cx, cy, ok := g.WorldToMap(0.5, 0.5)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cx, test.ShouldEqual, 0)
	test.That(t, cy, test.ShouldEqual, 0)

	x, y := g.MapToWorld(cx, cy)
	test.That(t, x, test.ShouldEqual, 0.5)
	test.That(t, y, test.ShouldEqual, 0.5)
}

func TestGridCostmapWorldToMapOutOfBounds(t *testing.T) {
	g := NewGridCostmap(10, 10, 1.0)
	_, _, ok := g.WorldToMap(-1, 0)
	test.That(t, ok, test.ShouldBeFalse)
	_, _, ok = g.WorldToMap(100, 100)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestGridCostmapGetCostDefaultsToFree(t *testing.T) {
	g := NewGridCostmap(5, 5, 1.0)
	test.That(t, g.GetCost(2, 2), test.ShouldEqual, FreeSpace)
}

func TestGridCostmapGetCostOutOfBoundsIsNoInformation(t *testing.T) {
	g := NewGridCostmap(5, 5, 1.0)
	test.That(t, g.GetCost(-1, 0), test.ShouldEqual, NoInformation)
	test.That(t, g.GetCost(100, 0), test.ShouldEqual, NoInformation)
}

func TestGridCostmapSetCost(t *testing.T) {
	g := NewGridCostmap(5, 5, 1.0)
	g.SetCost(2, 2, Lethal)
	test.That(t, g.GetCost(2, 2), test.ShouldEqual, Lethal)
	test.That(t, g.GetCost(1, 1), test.ShouldEqual, FreeSpace)
}
