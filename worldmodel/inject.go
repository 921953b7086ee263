package worldmodel

// InjectedWorldModel is a test double for WorldModel following the
// corpus's inject convention (see base/utils_test.go's injectDevice):
// a struct of optional Func fields that override behavior per-test,
// falling back to a default (collision-free) implementation when unset.
type InjectedWorldModel struct {
	FootprintCostFunc func(x, y, theta float64, footprint Footprint, inscribedRadius, circumscribedRadius float64) float64
}

// FootprintCost returns 0 (no collision, zero added cost) unless
// FootprintCostFunc has been set.
func (w *InjectedWorldModel) FootprintCost(x, y, theta float64, footprint Footprint, inscribedRadius, circumscribedRadius float64) float64 {
	if w.FootprintCostFunc == nil {
		return 0
	}
	return w.FootprintCostFunc(x, y, theta, footprint, inscribedRadius, circumscribedRadius)
}
