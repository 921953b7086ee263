// Package planning implements the local trajectory planner core:
// forward-simulation and scoring of candidate trajectories (spec.md
// §4.3), the velocity-space sampler (§4.4), the oscillation/escape
// state machine (§4.5) and the planner façade (§4.6).
package planning

import "go.viam.com/localplan/spatialmath"

// Cost sentinels a Trajectory's Cost can take (spec.md §7). Only a cost
// in the "legal score" range (>= 0) is ever emitted as a drive command;
// the rest are internal bookkeeping for the sampler.
const (
	// CostImpossible marks a step whose goal_dist or path_dist equals
	// the distance field's obstacle sentinel.
	CostImpossible = -2.0
	// CostInitial is the value a Trajectory carries before it has been
	// scored at all.
	CostInitial = -3.0
	// CostOffMap marks a rollout that stepped outside the costmap.
	CostOffMap = -4.0
	// CostFootprintHit marks a rollout whose footprint intersected a
	// lethal cost at some step. The reverse-escape search phase
	// rewrites this sentinel to a small positive cost so the robot
	// still attempts the backup (spec.md §4.4 phase 5, §7).
	CostFootprintHit = -5.0
)

// Trajectory is one scored candidate rollout: the body-velocity sample
// that produced it, the sequence of poses it visited, the aggregate
// cost, and the cached sub-scores later phases of the sampler and the
// façade need without re-deriving them.
type Trajectory struct {
	Sample spatialmath.BodyVelocity
	Points []spatialmath.Pose

	Cost float64

	// GoalCostTraj and PathDistTraj are the spec's required cached
	// sub-scores (spec.md §3): GoalCostTraj is gdist_scale*goal_dist,
	// used by the sampler as the reference-trajectory baseline.
	GoalCostTraj float64
	PathDistTraj float64

	// PathDistCost, OccCost and HeadingDiffCost are the remaining
	// per-term breakdown, kept for diagnostics (SPEC_FULL.md §12)
	// alongside the two terms spec.md requires.
	PathDistCost    float64
	OccCost         float64
	HeadingDiffCost float64
}

// NewTrajectory returns an unscored Trajectory (Cost = CostInitial)
// with its point buffer preallocated to maxN, per spec.md §9's buffer-
// reuse note.
func NewTrajectory(maxN int) *Trajectory {
	return &Trajectory{
		Cost:   CostInitial,
		Points: make([]spatialmath.Pose, 0, maxN),
	}
}

// Reset clears t back to an unscored, empty-points state so the sampler
// can reuse its backing array for the next rollout without reallocating
// (spec.md §9).
func (t *Trajectory) Reset(sample spatialmath.BodyVelocity) {
	t.Sample = sample
	t.Points = t.Points[:0]
	t.Cost = CostInitial
	t.GoalCostTraj = 0
	t.PathDistTraj = 0
	t.PathDistCost = 0
	t.OccCost = 0
	t.HeadingDiffCost = 0
}

// Legal reports whether t can be emitted as a drive command (spec.md
// §3 invariant: a trajectory with negative cost is never emitted).
func (t *Trajectory) Legal() bool {
	return t.Cost >= 0
}

// CloneInto copies t's scalar fields and points into dst, reusing dst's
// backing array instead of allocating. Callers that hand a Trajectory
// back to external code use this to take a stable snapshot of a
// sampler-owned buffer that will otherwise be overwritten on the next
// search.
func (t *Trajectory) CloneInto(dst *Trajectory) {
	dst.Sample = t.Sample
	dst.Cost = t.Cost
	dst.GoalCostTraj = t.GoalCostTraj
	dst.PathDistTraj = t.PathDistTraj
	dst.PathDistCost = t.PathDistCost
	dst.OccCost = t.OccCost
	dst.HeadingDiffCost = t.HeadingDiffCost
	dst.Points = append(dst.Points[:0], t.Points...)
}
