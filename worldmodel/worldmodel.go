// Package worldmodel defines the narrow collaborator interface the
// planner core uses for footprint collision queries (spec.md §6). The
// world model receives the robot's polygon footprint with each query
// and performs the actual geometric intersection test against the
// environment; the core never reaches into its internals.
package worldmodel

import (
	"github.com/golang/geo/r3"
)

// Footprint is the robot's ground-plan polygon, in the robot's own body
// frame (meters, centered near the origin). Z is unused but kept so the
// same vertex type composes with the rest of the corpus's r3.Vector-based
// geometry code.
type Footprint []r3.Vector

// WorldModel is the external collaborator that tests a candidate pose
// against the environment's full polygon geometry (inflation zones,
// other robots, etc. — whatever the world model chooses to consider).
// FootprintCost returns a non-negative cost, or a negative value meaning
// the pose is in collision or otherwise illegal.
type WorldModel interface {
	FootprintCost(x, y, theta float64, footprint Footprint, inscribedRadius, circumscribedRadius float64) float64
}

// InscribedCircumscribedRadii computes the inscribed and circumscribed
// radii of a convex footprint polygon about its centroid-free origin
// (the body frame origin, not necessarily the centroid): the inscribed
// radius is the minimum vertex distance, the circumscribed the maximum.
// The rollout does not use them itself; it passes them to the world
// model with every FootprintCost query, as a cheap broad-phase bound a
// world model can apply before the full polygon test.
func InscribedCircumscribedRadii(fp Footprint) (inscribed, circumscribed float64) {
	if len(fp) == 0 {
		return 0, 0
	}
	inscribed = -1
	for _, v := range fp {
		d := v.Norm()
		if inscribed < 0 || d < inscribed {
			inscribed = d
		}
		if d > circumscribed {
			circumscribed = d
		}
	}
	return inscribed, circumscribed
}
