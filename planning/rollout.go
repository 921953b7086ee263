package planning

import (
	"math"

	"go.viam.com/localplan/costmap"
	"go.viam.com/localplan/distancefield"
	"go.viam.com/localplan/planconfig"
	"go.viam.com/localplan/spatialmath"
	"go.viam.com/localplan/worldmodel"
)

// RolloutEnv bundles the read-only collaborators a rollout needs: the
// costmap and world model (spec.md §6), the robot's footprint and its
// precomputed bounding radii, the two distance fields, and the global
// plan the heading-scoring and simple-attractor branches read from.
type RolloutEnv struct {
	Costmap             costmap.Costmap
	WorldModel          worldmodel.WorldModel
	Footprint           worldmodel.Footprint
	InscribedRadius     float64
	CircumscribedRadius float64
	PathMap             *distancefield.Grid
	GoalMap             *distancefield.Grid
	Plan                []spatialmath.Pose
}

// stepCount computes N per spec.md §4.3 step 1 and the corresponding
// dt, coercing N to at least 1.
func stepCount(sample spatialmath.BodyVelocity, cfg planconfig.Config) (n int, dt float64) {
	simTime := cfg.Sampling.SimTime
	var raw float64
	if !cfg.Flags.HeadingScoring {
		linear := math.Hypot(sample.Vx, sample.Vy) * simTime / cfg.Sampling.SimGranularity
		angular := math.Abs(sample.Vtheta) / cfg.Sampling.AngularSimGranularity
		raw = math.Max(linear, angular)
	} else {
		raw = simTime / cfg.Sampling.SimGranularity
	}
	n = int(math.Round(raw))
	if n < 1 {
		n = 1
	}
	return n, simTime / float64(n)
}

// GenerateTrajectory forward-simulates sample from (start, startVel) and
// scores it into out, per spec.md §4.3. out is reset (and its Points
// buffer reused) before simulation begins.
func GenerateTrajectory(
	start spatialmath.Pose,
	startVel spatialmath.BodyVelocity,
	sample spatialmath.BodyVelocity,
	accel spatialmath.AccelLimits,
	cfg planconfig.Config,
	env RolloutEnv,
	impossibleCost float64,
	out *Trajectory,
) {
	out.Reset(sample)

	n, dt := stepCount(sample, cfg)

	pose := start
	vel := startVel

	var pathDist, goalDist, occCost, headingDiff float64

	for i := 0; i < n; i++ {
		cx, cy, ok := env.Costmap.WorldToMap(pose.X, pose.Y)
		if !ok {
			out.Cost = CostOffMap
			return
		}

		fc := env.WorldModel.FootprintCost(pose.X, pose.Y, pose.Theta, env.Footprint, env.InscribedRadius, env.CircumscribedRadius)
		if fc < 0 {
			out.Cost = CostFootprintHit
			return
		}
		occCost = math.Max(occCost, math.Max(fc, float64(env.Costmap.GetCost(cx, cy))))

		isLast := i == n-1
		switch {
		case cfg.Flags.SimpleAttractor:
			goalDist = squaredDistToFinalGoal(pose, env.Plan)
		case !cfg.Flags.HeadingScoring:
			pathCell := env.PathMap.At(cx, cy)
			goalCell := env.GoalMap.At(cx, cy)
			if pathCell.WithinRobot || goalCell.WithinRobot {
				out.Cost = CostOffMap
				return
			}
			pathDist = float64(pathCell.TargetDist)
			goalDist = float64(goalCell.TargetDist)
		case isLast:
			headingDiff, pathDist, goalDist = headingScore(pose, env.Plan, cfg.Behavior.HeadingLookahead)
		}

		if pathDist == impossibleCost || goalDist == impossibleCost {
			out.Cost = CostImpossible
			return
		}
		if cfg.Weights.PathDistanceMax > 0 && pathDist <= cfg.Weights.PathDistanceMax {
			pathDist = 0
		}
		if math.Abs(headingDiff) < 0.2 {
			headingDiff = 0
		}

		out.Points = append(out.Points, pose)

		vel = spatialmath.StepBodyVelocity(sample, vel, accel, dt)
		pose = spatialmath.StepPose(pose, vel, dt)
	}

	out.PathDistCost = cfg.Weights.PDistScale * pathDist
	out.OccCost = cfg.Weights.OccDistScale * occCost
	out.HeadingDiffCost = cfg.Weights.HDiffScale * headingDiff
	out.GoalCostTraj = cfg.Weights.GDistScale * goalDist
	out.PathDistTraj = out.PathDistCost

	if !cfg.Flags.HeadingScoring {
		out.Cost = out.PathDistCost + out.GoalCostTraj + out.OccCost
	} else {
		out.Cost = out.OccCost + out.PathDistCost + out.HeadingDiffCost + out.GoalCostTraj
	}
}

func squaredDistToFinalGoal(pose spatialmath.Pose, plan []spatialmath.Pose) float64 {
	if len(plan) == 0 {
		return 0
	}
	goal := plan[len(plan)-1]
	dx, dy := pose.X-goal.X, pose.Y-goal.Y
	return dx*dx + dy*dy
}

// headingScore implements spec.md §4.3.1: it walks the plan from the
// goal end toward the start accumulating cumulative arc length, finds
// the plan index closest to pose, looks `lookahead` indices further
// along for the heading target, and returns the heading error plus the
// path_dist/goal_dist side effects.
func headingScore(pose spatialmath.Pose, plan []spatialmath.Pose, lookahead int) (headingDiff, pathDist, goalDist float64) {
	if len(plan) == 0 {
		return 0, 0, 0
	}
	last := len(plan) - 1

	cumDist := make([]float64, len(plan))
	for i := last - 1; i >= 0; i-- {
		dx := plan[i+1].X - plan[i].X
		dy := plan[i+1].Y - plan[i].Y
		cumDist[i] = cumDist[i+1] + math.Hypot(dx, dy)
	}

	bestIdx := 0
	bestDist := math.Inf(1)
	for i, p := range plan {
		dx, dy := pose.X-p.X, pose.Y-p.Y
		d := math.Hypot(dx, dy)
		if d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}

	j := bestIdx + lookahead
	if j > last {
		j = last
	}

	headingDiff = math.Abs(spatialmath.ShortestAngularDistance(pose.Theta, plan[j].Theta))
	pathDist = bestDist
	goalDist = cumDist[j] + float64(last-j)/float64(len(plan))
	if goalDist == 0 {
		goal := plan[last]
		goalDist = math.Hypot(pose.X-goal.X, pose.Y-goal.Y)
	}
	return headingDiff, pathDist, goalDist
}
