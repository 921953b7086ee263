package planning

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"go.viam.com/localplan/distancefield"
	"go.viam.com/localplan/planconfig"
	"go.viam.com/localplan/spatialmath"
)

// envelope is the admissible velocity box a tick's search is restricted
// to: the configured absolute limits, narrowed by the dynamic window
// (spec.md §4.4 step 1) and by the distance remaining to the local goal
// so a sample can never be asked to overshoot it.
type envelope struct {
	minVx, maxVx         float64
	minVy, maxVy         float64
	minVtheta, maxVtheta float64
}

// computeEnvelope implements spec.md §4.4 step 1. When UseDynamicWindow
// is set, each axis is clamped to what the current velocity can reach in
// one control period given the acceleration limits; otherwise only the
// upper bound on vx and both bounds on vtheta are clamped to what the
// current velocity can reach within sim_time. In both cases the upper
// bound on vx and vtheta is further clamped so a full sim_time step at
// that velocity cannot overshoot the remaining distance to the local
// goal.
func computeEnvelope(cfg planconfig.Config, startVel spatialmath.BodyVelocity, goalDistMeters, headingRemaining float64) envelope {
	lim := cfg.VelocityLimits
	e := envelope{
		minVx: lim.MinVx, maxVx: lim.MaxVx,
		minVy: lim.MinVy, maxVy: lim.MaxVy,
		minVtheta: lim.MinVtheta, maxVtheta: lim.MaxVtheta,
	}

	if cfg.Flags.UseDynamicWindow {
		period := cfg.Sampling.SimPeriod
		if period <= 0 {
			period = cfg.Sampling.SimGranularity
		}
		e.minVx = math.Max(e.minVx, startVel.Vx-cfg.AccelLimits.AX*period)
		e.maxVx = math.Min(e.maxVx, startVel.Vx+cfg.AccelLimits.AX*period)
		e.minVy = math.Max(e.minVy, startVel.Vy-cfg.AccelLimits.AY*period)
		e.maxVy = math.Min(e.maxVy, startVel.Vy+cfg.AccelLimits.AY*period)
		e.minVtheta = math.Max(e.minVtheta, startVel.Vtheta-cfg.AccelLimits.ATheta*period)
		e.maxVtheta = math.Min(e.maxVtheta, startVel.Vtheta+cfg.AccelLimits.ATheta*period)
	}

	if !cfg.Flags.UseDynamicWindow && cfg.Sampling.SimTime > 0 {
		e.maxVx = math.Min(e.maxVx, startVel.Vx+cfg.AccelLimits.AX*cfg.Sampling.SimTime)
		e.maxVtheta = math.Min(e.maxVtheta, startVel.Vtheta+cfg.AccelLimits.ATheta*cfg.Sampling.SimTime)
		e.minVtheta = math.Max(e.minVtheta, startVel.Vtheta-cfg.AccelLimits.ATheta*cfg.Sampling.SimTime)
	}

	if goalDistMeters >= 0 && cfg.Sampling.SimTime > 0 {
		maxReach := goalDistMeters / cfg.Sampling.SimTime
		if e.maxVx > maxReach {
			e.maxVx = maxReach
		}
		if e.maxVx < e.minVx {
			e.maxVx = e.minVx
		}
	}
	if headingRemaining >= 0 && cfg.Sampling.SimTime > 0 {
		maxReach := headingRemaining / cfg.Sampling.SimTime
		if e.maxVtheta > maxReach {
			e.maxVtheta = maxReach
		}
		if e.maxVtheta < e.minVtheta {
			e.maxVtheta = e.minVtheta
		}
	}

	return e
}

// linspace returns n values evenly spaced from lo to hi inclusive, via
// gonum/floats.Span — the same helper the corpus's numeric code
// (e.g. rimage/calib) uses for sample grids.
func linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{hi}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Sampler searches the admissible velocity space for the lowest-cost
// legal trajectory, per spec.md §4.4's five phases. It owns the two
// scratch Trajectory buffers the search reuses across candidates
// (spec.md §9): best holds the winner found so far, scratch is
// overwritten by every candidate rollout and only traded for best when
// it scores lower, so neither buffer is ever reallocated mid-search.
type Sampler struct {
	cfg            planconfig.Config
	env            RolloutEnv
	impossibleCost float64

	scratch   *Trajectory
	best      *Trajectory
	reference *Trajectory

	// refGoalCost is the current tick's reference trajectory's
	// GoalCostTraj (spec.md §4.4): candidates only compete if their own
	// GoalCostTraj is strictly less than this baseline. Set once per
	// FindBestTrajectory call, read by consider and by phase 4's manual
	// accept logic.
	refGoalCost float64
}

// NewSampler builds a Sampler over cfg and env, preallocating all three
// trajectory buffers to maxPoints points.
func NewSampler(cfg planconfig.Config, env RolloutEnv, maxPoints int) *Sampler {
	return &Sampler{
		cfg:            cfg,
		env:            env,
		impossibleCost: float64(distancefield.ObstacleCost),
		scratch:        NewTrajectory(maxPoints),
		best:           NewTrajectory(maxPoints),
		reference:      NewTrajectory(maxPoints),
	}
}

// Reconfigure swaps in a new config and environment for the next
// search; it does not touch the scratch buffers.
func (s *Sampler) Reconfigure(cfg planconfig.Config, env RolloutEnv) {
	s.cfg = cfg
	s.env = env
}

func (s *Sampler) rollout(start spatialmath.Pose, startVel, sample spatialmath.BodyVelocity) {
	GenerateTrajectory(start, startVel, sample, s.cfg.AccelLimits, s.cfg, s.env, s.impossibleCost, s.scratch)
}

// consider scores sample into s.scratch and, if it is legal, beats the
// reference trajectory's GoalCostTraj baseline, and beats s.best (or
// s.best is not yet legal), trades the two buffers so best now holds
// the winner. Returns whether it won. Per spec.md §4.4, the reference
// gate applies independently of the cost comparison: a candidate that
// makes no goal-ward progress over the zero-velocity reference never
// displaces best, no matter how cheap it scores.
func (s *Sampler) consider(start spatialmath.Pose, startVel, sample spatialmath.BodyVelocity) bool {
	s.rollout(start, startVel, sample)
	if !s.scratch.Legal() {
		return false
	}
	if s.scratch.GoalCostTraj >= s.refGoalCost {
		return false
	}
	if s.best.Legal() && s.scratch.Cost >= s.best.Cost {
		return false
	}
	s.best, s.scratch = s.scratch, s.best
	return true
}

// FindBestTrajectory runs all five search phases (spec.md §4.4) and
// returns the winning trajectory (or nil if nothing legal was found)
// plus whether the robot was stuck: phases 1-3 found nothing and the
// search had to fall back to in-place rotation or reverse escape. The
// caller uses the stuck flag to drive EscapeState.Begin, since phase 5
// rewrites a footprint hit into a small positive cost and so usually
// succeeds even when the robot genuinely had no forward option.
//
// escaping, when true, forbids forward motion for the whole search
// (spec.md §3's "forbids forward motion while escaping" invariant) by
// collapsing the envelope's vx upper bound to at most zero before any
// phase runs.
func (s *Sampler) FindBestTrajectory(
	start spatialmath.Pose,
	startVel spatialmath.BodyVelocity,
	goalDistMeters, headingRemaining float64,
	osc *OscillationState,
	escaping bool,
) (*Trajectory, bool) {
	s.best.Reset(spatialmath.BodyVelocity{})
	s.best.Cost = CostInitial

	GenerateTrajectory(start, startVel, spatialmath.BodyVelocity{}, s.cfg.AccelLimits, s.cfg, s.env, s.impossibleCost, s.reference)
	s.refGoalCost = s.reference.GoalCostTraj

	e := computeEnvelope(s.cfg, startVel, goalDistMeters, headingRemaining)
	if escaping {
		e.maxVx = math.Min(e.maxVx, 0)
	}

	yVels := append([]float64{0}, s.cfg.Sampling.ExtraYVels...)

	// Phase 1: forward translation + in-path rotation fan. While
	// escaping, e.maxVx is at most zero, so the sweep below is either
	// empty or yields only vx == 0 samples; no forward sample is ever
	// considered.
	forwardLo := math.Max(0, e.minVx)
	if forwardLo <= e.maxVx {
		for _, vx := range linspace(forwardLo, e.maxVx, s.cfg.Sampling.NX) {
			for _, vtheta := range linspace(e.minVtheta, e.maxVtheta, s.cfg.Sampling.NTheta) {
				for _, vy := range yVels {
					if !osc.Admits(spatialmath.BodyVelocity{Vx: vx, Vy: vy, Vtheta: vtheta}) {
						continue
					}
					s.consider(start, startVel, spatialmath.BodyVelocity{Vx: vx, Vy: vy, Vtheta: vtheta})
				}
			}
		}
	}

	if s.cfg.Flags.Holonomic {
		// Phase 2: pure lateral sweep.
		for _, vy := range linspace(e.minVy, e.maxVy, s.cfg.Sampling.NY) {
			sample := spatialmath.BodyVelocity{Vy: vy}
			if osc.Admits(sample) {
				s.consider(start, startVel, sample)
			}
		}

		// Phase 3: combined lateral + forward. |vy| < 0.01 is skipped
		// here since phase 1 already covers vy == 0 with its own
		// rotation fan; sweeping it again here would just duplicate
		// phase 1's candidates at vtheta == 0. Forward motion is
		// forbidden the same way phase 1 is while escaping.
		if forwardLo <= e.maxVx {
			for _, vx := range linspace(forwardLo, e.maxVx, s.cfg.Sampling.NX) {
				for _, vy := range linspace(e.minVy, e.maxVy, s.cfg.Sampling.NY) {
					if math.Abs(vy) < 0.01 {
						continue
					}
					sample := spatialmath.BodyVelocity{Vx: vx, Vy: vy}
					if osc.Admits(sample) {
						s.consider(start, startVel, sample)
					}
				}
			}
		}
	}

	stuck := !s.best.Legal()

	// Phase 4: in-place rotation, tried only once translation search
	// came up empty. Ties are broken lexicographically by preferring
	// the smaller-magnitude rotation, so the robot doesn't spin faster
	// than it needs to escape.
	if stuck {
		minMag := s.cfg.VelocityLimits.MinInPlaceVtheta
		for _, vtheta := range linspace(e.minVtheta, e.maxVtheta, s.cfg.Sampling.NTheta*2) {
			if math.Abs(vtheta) < minMag {
				continue
			}
			sample := spatialmath.BodyVelocity{Vtheta: vtheta}
			if !osc.Admits(sample) {
				continue
			}
			s.rollout(start, startVel, sample)
			if !s.scratch.Legal() {
				continue
			}
			if s.scratch.GoalCostTraj >= s.refGoalCost {
				continue
			}
			switch {
			case !s.best.Legal():
				s.best, s.scratch = s.scratch, s.best
			case s.scratch.Cost < s.best.Cost:
				s.best, s.scratch = s.scratch, s.best
			case s.scratch.Cost == s.best.Cost && math.Abs(vtheta) < math.Abs(s.best.Sample.Vtheta):
				s.best, s.scratch = s.scratch, s.best
			}
		}
	}

	// Phase 5: reverse escape, tried only if the robot is still stuck
	// after the rotation fan. A footprint hit here is not fatal: the
	// rollout already stopped at the first lethal step, so any nonzero
	// progress backing away from an obstacle is worth a small positive
	// cost rather than being discarded outright.
	if stuck && !s.best.Legal() {
		sample := spatialmath.BodyVelocity{Vx: -math.Abs(s.cfg.Behavior.BackupVel)}
		s.rollout(start, startVel, sample)
		if s.scratch.Cost == CostFootprintHit {
			s.scratch.Cost = 0.01
		}
		if s.scratch.Legal() {
			s.best, s.scratch = s.scratch, s.best
		}
	}

	if !s.best.Legal() {
		return nil, stuck
	}
	return s.best, stuck
}
