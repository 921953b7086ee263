package planning

import (
	"math"

	"go.viam.com/localplan/spatialmath"
)

// OscillationState is the per-planner, cross-tick anti-oscillation
// record described by spec.md §3-§4.5: a flat set of booleans plus one
// anchor pose, updated every tick by Update and consulted by the
// sampler (via Admits) before a candidate direction is even rolled
// out. Classification only runs when the chosen trajectory made no
// forward progress (vx <= 0); a robot that is driving forward normally
// never touches this state.
type OscillationState struct {
	RotatingLeft, RotatingRight       bool
	StrafeLeft, StrafeRight           bool
	StuckLeft, StuckRight             bool
	StuckLeftStrafe, StuckRightStrafe bool

	anchor     spatialmath.Pose
	haveAnchor bool
}

// Admits reports whether sample is allowed given the currently-set
// stuck flags: a sample that repeats a rotation or strafe direction
// already found unproductive is rejected outright rather than scored
// (spec.md §4.5: "stuck flags are advisory; they may be consulted by
// the sampler to forbid repeating a recently-tried unsuccessful
// direction of rotation or strafe").
func (o *OscillationState) Admits(sample spatialmath.BodyVelocity) bool {
	switch {
	case o.StuckLeft && sample.Vtheta > 0:
		return false
	case o.StuckRight && sample.Vtheta < 0:
		return false
	case o.StuckLeftStrafe && sample.Vy < 0:
		return false
	case o.StuckRightStrafe && sample.Vy > 0:
		return false
	}
	return true
}

// Update advances the state machine for one tick: pose is where the
// robot actually is, chosen is the sample the sampler picked. Per
// spec.md §4.5, classification only happens when chosen.Vx <= 0 (no
// forward progress); the anchor is set to pose immediately after
// classification. Independent of that, if the robot has moved more
// than resetDist from the anchor, every rotating/strafe/stuck flag
// clears.
func (o *OscillationState) Update(pose spatialmath.Pose, chosen spatialmath.BodyVelocity, resetDist float64) {
	if chosen.Vx <= 0 {
		switch {
		case chosen.Vtheta < 0:
			if o.RotatingRight {
				o.StuckRight = true
			}
			o.RotatingRight = true
		case chosen.Vtheta > 0:
			if o.RotatingLeft {
				o.StuckLeft = true
			}
			o.RotatingLeft = true
		}
		switch {
		case chosen.Vy > 0:
			if o.StrafeRight {
				o.StuckRightStrafe = true
			}
			o.StrafeRight = true
		case chosen.Vy < 0:
			if o.StrafeLeft {
				o.StuckLeftStrafe = true
			}
			o.StrafeLeft = true
		}
		o.anchor = pose
		o.haveAnchor = true
	}

	if !o.haveAnchor {
		o.anchor = pose
		o.haveAnchor = true
		return
	}

	dx, dy := pose.X-o.anchor.X, pose.Y-o.anchor.Y
	if resetDist > 0 && spatialmath.Hypot(dx, dy) > resetDist {
		*o = OscillationState{anchor: pose, haveAnchor: true}
	}
}

// Reset clears all oscillation flags, e.g. when a new global plan
// arrives and the prior tick's direction history no longer applies.
func (o *OscillationState) Reset() {
	*o = OscillationState{}
}

// EscapeState tracks whether the planner is in the middle of a
// reverse-escape maneuver (spec.md §4.4 phase 5, §4.5). The façade
// calls Begin whenever FindBestTrajectory reports it had to fall back
// to phase 4/5 (stuck == true), not merely when every phase failed —
// phase 5 rewrites a footprint-hit cost into a small positive value
// specifically so the backup usually succeeds, so "best == nil" alone
// would almost never see the stuck case. Active is cleared once the
// robot has moved escapeResetDist or turned escapeResetTheta away from
// the pose where escaping began.
type EscapeState struct {
	Active     bool
	anchor     spatialmath.Pose
	haveAnchor bool
}

// Begin marks escaping as active, anchoring at pose if it was not
// already active.
func (e *EscapeState) Begin(pose spatialmath.Pose) {
	if !e.Active {
		e.Active = true
		e.anchor = pose
		e.haveAnchor = true
	}
}

// Update clears Active once pose has moved resetDist from the anchor or
// its heading has turned resetTheta away from the anchor's heading.
func (e *EscapeState) Update(pose spatialmath.Pose, resetDist, resetTheta float64) {
	if !e.Active || !e.haveAnchor {
		return
	}
	dx, dy := pose.X-e.anchor.X, pose.Y-e.anchor.Y
	dist := spatialmath.Hypot(dx, dy)
	turned := math.Abs(spatialmath.ShortestAngularDistance(e.anchor.Theta, pose.Theta))
	if (resetDist > 0 && dist > resetDist) || (resetTheta > 0 && turned > resetTheta) {
		e.Active = false
		e.haveAnchor = false
	}
}
