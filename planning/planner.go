package planning

import (
	"sync"

	"go.viam.com/localplan/costmap"
	"go.viam.com/localplan/distancefield"
	"go.viam.com/localplan/logging"
	"go.viam.com/localplan/planconfig"
	"go.viam.com/localplan/spatialmath"
	"go.viam.com/localplan/worldmodel"
)

// Stats is a diagnostic snapshot of how the planner's last tick went,
// exposed for the demo binary and for operators debugging a stuck
// robot. It is not part of the scoring contract.
type Stats struct {
	Ticks         int
	TicksLegal    int
	TicksEscaping int

	// LastStuck reports whether the most recent tick had to fall back
	// to phase 4 (in-place rotation) or phase 5 (reverse escape)
	// because no forward or lateral sample beat the reference.
	LastStuck bool
	// LastEscaping mirrors EscapeState.Active as of the end of the
	// most recent tick.
	LastEscaping bool
	// LastOscillation is a copy of the oscillation flags as of the end
	// of the most recent tick.
	LastOscillation OscillationState
}

// Planner is the façade spec.md §4.6 describes: it owns the current
// configuration, the costmap/world-model/plan collaborators, the two
// distance fields, the oscillation/escape state, and the sampler, and
// serializes every access behind a single mutex so a config reload
// (Reconfigure) can never race a rollout (spec.md §5, §9).
type Planner struct {
	mu sync.Mutex

	logger logging.Logger

	cfg                                   planconfig.Config
	cm                                    costmap.Costmap
	wm                                    worldmodel.WorldModel
	footprint                             worldmodel.Footprint
	inscribedRadius, circumscribedRadius float64
	pathMap, goalMap                     *distancefield.Grid
	plan                                  []spatialmath.Pose
	localGoalX, localGoalY                float64
	haveLocalGoal                         bool

	sampler  *Sampler
	scoreBuf *Trajectory
	result   *Trajectory

	osc  OscillationState
	esc  EscapeState
	stat Stats
}

// NewPlanner returns an unconfigured Planner; Reconfigure must be
// called at least once before UpdatePlan or FindBestPath.
func NewPlanner(logger logging.Logger) *Planner {
	return &Planner{logger: logger}
}

// maxRolloutPoints is the preallocated point capacity of every
// Trajectory buffer, set at the first Reconfigure: the step count of a
// heading-scoring rollout, plus one. A non-heading-scoring rollout whose
// sample needs more steps than this grows its buffer by append, and
// later Reconfigure calls do not resize the buffers.
func maxRolloutPoints(cfg planconfig.Config) int {
	n := int(cfg.Sampling.SimTime/cfg.Sampling.SimGranularity) + 1
	if n < 1 {
		n = 1
	}
	return n
}

// Reconfigure validates raw against cm's resolution and swaps it in as
// the planner's active configuration, along with its environment
// collaborators, under the config mutex. It is spec.md §4.6's
// Reconfigure operation.
func (p *Planner) Reconfigure(
	raw planconfig.Config,
	cm costmap.Costmap,
	wm worldmodel.WorldModel,
	footprint worldmodel.Footprint,
	extraYVels string,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cfg, err := planconfig.New(raw, cm.Resolution(), extraYVels)
	if err != nil {
		return err
	}

	p.cfg = cfg
	p.cm = cm
	p.wm = wm
	p.footprint = footprint
	p.inscribedRadius, p.circumscribedRadius = worldmodel.InscribedCircumscribedRadii(footprint)

	if p.pathMap == nil {
		p.pathMap = distancefield.NewGrid(cm.SizeX(), cm.SizeY())
	} else {
		p.pathMap.ResizeToMatch(cm)
	}
	if p.goalMap == nil {
		p.goalMap = distancefield.NewGrid(cm.SizeX(), cm.SizeY())
	} else {
		p.goalMap.ResizeToMatch(cm)
	}

	maxPoints := maxRolloutPoints(cfg)
	if p.sampler == nil {
		p.sampler = NewSampler(cfg, p.env(), maxPoints)
		p.scoreBuf = NewTrajectory(maxPoints)
		p.result = NewTrajectory(maxPoints)
	} else {
		p.sampler.Reconfigure(cfg, p.env())
	}

	p.logger.Infow("planner reconfigured",
		"sizeX", cm.SizeX(), "sizeY", cm.SizeY(), "resolution", cm.Resolution(),
		"holonomic", cfg.Flags.Holonomic, "headingScoring", cfg.Flags.HeadingScoring)
	return nil
}

func (p *Planner) env() RolloutEnv {
	return RolloutEnv{
		Costmap:             p.cm,
		WorldModel:          p.wm,
		Footprint:           p.footprint,
		InscribedRadius:     p.inscribedRadius,
		CircumscribedRadius: p.circumscribedRadius,
		PathMap:             p.pathMap,
		GoalMap:             p.goalMap,
		Plan:                p.plan,
	}
}

// UpdatePlan replaces the global plan the rollout scores against,
// rebuilds both distance fields from it, and clears the oscillation
// flags: a new plan invalidates whatever direction history was
// accumulated against the old one.
func (p *Planner) UpdatePlan(plan []spatialmath.Pose) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.plan = plan

	planPoses := make([]distancefield.PlanPose, len(plan))
	for i, ps := range plan {
		planPoses[i] = distancefield.PlanPose{X: ps.X, Y: ps.Y}
	}
	distancefield.SetTargetCells(p.pathMap, p.cm, planPoses)
	gx, gy, ok := distancefield.SetLocalGoal(p.goalMap, p.cm, planPoses)
	p.localGoalX, p.localGoalY, p.haveLocalGoal = gx, gy, ok

	p.sampler.Reconfigure(p.cfg, p.env())
	p.osc.Reset()
	p.logger.Debugw("plan updated", "points", len(plan), "localGoalOK", ok)
}

// GetLocalGoal returns the world-frame point SetLocalGoal last picked
// from the plan, per spec.md §4.6.
func (p *Planner) GetLocalGoal() (x, y float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.localGoalX, p.localGoalY, p.haveLocalGoal
}

// GetCellCosts implements spec.md §4.6's get_cell_costs / P8: it fails
// (ok == false) iff the world point (x,y) is off the map, its
// path_map or goal_map cell is within_robot, its target_dist is the
// obstacle or unreachable sentinel, or its costmap occupancy cost is
// >= INSCRIBED_INFLATED. On success it returns the four weighted cost
// terms (path_cost, goal_cost, occ_cost, total), using the same
// weights the rollout scores candidates with.
func (p *Planner) GetCellCosts(x, y float64) (pathCost, goalCost, occCost, total float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cx, cy, inMap := p.cm.WorldToMap(x, y)
	if !inMap {
		return 0, 0, 0, 0, false
	}

	pathCell := p.pathMap.At(cx, cy)
	goalCell := p.goalMap.At(cx, cy)
	if pathCell.WithinRobot || goalCell.WithinRobot {
		return 0, 0, 0, 0, false
	}
	if pathCell.TargetDist == distancefield.ObstacleCost || pathCell.TargetDist == distancefield.Unreachable ||
		goalCell.TargetDist == distancefield.ObstacleCost || goalCell.TargetDist == distancefield.Unreachable {
		return 0, 0, 0, 0, false
	}

	occRaw := p.cm.GetCost(cx, cy)
	if occRaw >= costmap.InscribedInflated {
		return 0, 0, 0, 0, false
	}

	pathCost = p.cfg.Weights.PDistScale * float64(pathCell.TargetDist)
	goalCost = p.cfg.Weights.GDistScale * float64(goalCell.TargetDist)
	occCost = p.cfg.Weights.OccDistScale * float64(occRaw)
	return pathCost, goalCost, occCost, pathCost + goalCost + occCost, true
}

// ScoreTrajectory rolls sample out from (start, startVel) against the
// current configuration and returns a scored, standalone Trajectory
// (spec.md §4.6).
func (p *Planner) ScoreTrajectory(start spatialmath.Pose, startVel, sample spatialmath.BodyVelocity) *Trajectory {
	p.mu.Lock()
	defer p.mu.Unlock()

	GenerateTrajectory(start, startVel, sample, p.cfg.AccelLimits, p.cfg, p.env(), float64(distancefield.ObstacleCost), p.scoreBuf)
	out := NewTrajectory(len(p.scoreBuf.Points))
	p.scoreBuf.CloneInto(out)
	return out
}

// CheckTrajectory reports whether sample would produce a legal
// trajectory from (start, startVel), per spec.md §4.6.
func (p *Planner) CheckTrajectory(start spatialmath.Pose, startVel, sample spatialmath.BodyVelocity) bool {
	return p.ScoreTrajectory(start, startVel, sample).Legal()
}

// FindBestPath runs the velocity-space search from (start, startVel)
// and returns the winning trajectory plus whether one was found, per
// spec.md §4.6. When a trajectory is found, the oscillation and escape
// state machines have been advanced for the next tick; when none is
// found, only EscapeState.Begin has run and the oscillation state is
// left as it was.
func (p *Planner) FindBestPath(start spatialmath.Pose, startVel spatialmath.BodyVelocity) (*Trajectory, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stat.Ticks++

	cx, cy, inMap := p.cm.WorldToMap(start.X, start.Y)
	goalDistMeters := -1.0
	if inMap {
		cell := p.goalMap.At(cx, cy)
		if cell.TargetDist != distancefield.Unreachable && cell.TargetDist != distancefield.ObstacleCost {
			goalDistMeters = float64(cell.TargetDist) * p.cm.Resolution()
		}
	}

	best, stuck := p.sampler.FindBestTrajectory(start, startVel, goalDistMeters, -1, &p.osc, p.esc.Active)

	// Phases 1-3 (forward/lateral search) came up empty and the search
	// had to fall back to in-place rotation or reverse escape: begin
	// escaping regardless of whether phase 5 then found a legal
	// backup, since phase 5 rewrites a footprint hit into a small
	// positive cost specifically so it usually succeeds (spec.md §4.4
	// phase 5).
	if stuck {
		p.esc.Begin(start)
		p.stat.TicksEscaping++
	}
	p.stat.LastStuck = stuck

	if best == nil {
		p.stat.LastEscaping = p.esc.Active
		p.stat.LastOscillation = p.osc
		p.logger.Warnw("no legal trajectory found", "stats", p.stat)
		return nil, false
	}

	p.stat.TicksLegal++
	p.esc.Update(start, p.cfg.Behavior.EscapeResetDist, p.cfg.Behavior.EscapeResetTheta)
	p.osc.Update(start, best.Sample, p.cfg.Behavior.OscillationResetDist)
	p.stat.LastEscaping = p.esc.Active
	p.stat.LastOscillation = p.osc
	p.logger.Debugw("tick", "sample", best.Sample, "cost", best.Cost, "stats", p.stat)

	best.CloneInto(p.result)
	return p.result, true
}

// Stats returns a snapshot of the planner's running tick counters.
func (p *Planner) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stat
}
