package planning

import (
	"math"
	"testing"

	"go.viam.com/test"

	"go.viam.com/localplan/costmap"
	"go.viam.com/localplan/logging"
	"go.viam.com/localplan/planconfig"
	"go.viam.com/localplan/spatialmath"
	"go.viam.com/localplan/worldmodel"
)

// scenario is one end-to-end case from spec.md §8, run against a fresh
// Planner. Each case builds its own costmap/world-model/plan since the
// scenarios differ in flags (holonomic, heading_scoring) as well as
// environment.
type scenario struct {
	name     string
	cfg      func() planconfig.Config
	wm       worldmodel.WorldModel
	obstacle [2]int // zero value for none
	plan     []spatialmath.Pose
	start    spatialmath.Pose
	startVel spatialmath.BodyVelocity
	check    func(t *testing.T, traj *Trajectory, ok bool)
}

func baseScenarioCfg() planconfig.Config {
	return planconfig.Config{
		VelocityLimits: planconfig.VelocityLimits{
			MinVx: -0.3, MaxVx: 1, MinVy: -0.5, MaxVy: 0.5,
			MinVtheta: -1, MaxVtheta: 1, MinInPlaceVtheta: 0.2,
		},
		AccelLimits: spatialmath.AccelLimits{AX: 5, AY: 5, ATheta: 5},
		Sampling: planconfig.SamplingConfig{
			NX: 7, NY: 7, NTheta: 7,
			SimTime: 1.0, SimGranularity: 0.1, AngularSimGranularity: 0.1,
		},
		Weights:  planconfig.CostWeights{PDistScale: 0.6, GDistScale: 0.8, OccDistScale: 0.01},
		Behavior: planconfig.Behavior{HeadingLookahead: 2, BackupVel: 0.2, OscillationResetDist: 0.2, EscapeResetDist: 0.3, EscapeResetTheta: 0.5},
	}
}

func TestPlannerEndToEndScenarios(t *testing.T) {
	scenarios := []scenario{
		{
			// Scenario 1: straight goal.
			name: "straight goal",
			cfg:  baseScenarioCfg,
			plan: []spatialmath.Pose{{X: 0.5, Y: 0.5}, {X: 8.5, Y: 0.5}},
			start: spatialmath.Pose{X: 0.5, Y: 0.5, Theta: 0},
			check: func(t *testing.T, traj *Trajectory, ok bool) {
				t.Helper()
				test.That(t, ok, test.ShouldBeTrue)
				test.That(t, traj.Sample.Vx, test.ShouldBeGreaterThan, 0)
				test.That(t, traj.Cost, test.ShouldBeGreaterThanOrEqualTo, 0)
			},
		},
		{
			// Scenario 3: obstacle blocking forward. cell (2,0) is
			// LETHAL per spec, but a point-robot footprint only
			// touches it once the robot has actually traveled there;
			// the world model here instead reports collision for any
			// pose past x=0.55, standing in for a real world model
			// whose swept-footprint test catches the obstacle well
			// before the robot's center reaches it. Either way, no
			// forward sample should ever come back as best.
			name:     "obstacle blocking forward",
			cfg:      baseScenarioCfg,
			obstacle: [2]int{2, 0},
			wm: &worldmodel.InjectedWorldModel{
				FootprintCostFunc: func(x, y, theta float64, fp worldmodel.Footprint, ir, cr float64) float64 {
					if x > 0.55 {
						return -1
					}
					return 0
				},
			},
			plan:  []spatialmath.Pose{{X: 0.5, Y: 0.5}, {X: 8.5, Y: 0.5}},
			start: spatialmath.Pose{X: 0.5, Y: 0.5, Theta: 0},
			check: func(t *testing.T, traj *Trajectory, ok bool) {
				t.Helper()
				// Either an in-place rotation (vx==0) or a reverse
				// escape (vx<0) must come back; a straight-ahead drive
				// through the lethal cell must not.
				if ok {
					test.That(t, traj.Sample.Vx, test.ShouldBeLessThanOrEqualTo, 0)
				}
			},
		},
	}

	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.name, func(t *testing.T) {
			p := NewPlanner(logging.NewTestLogger(t))
			cm := costmap.NewGridCostmap(10, 10, 1.0)
			if sc.obstacle != [2]int{} {
				cm.SetCost(sc.obstacle[0], sc.obstacle[1], costmap.Lethal)
			}
			wm := sc.wm
			if wm == nil {
				wm = &worldmodel.InjectedWorldModel{}
			}
			test.That(t, p.Reconfigure(sc.cfg(), cm, wm, worldmodel.Footprint{}, ""), test.ShouldBeNil)
			p.UpdatePlan(sc.plan)

			traj, ok := p.FindBestPath(sc.start, sc.startVel)
			sc.check(t, traj, ok)
		})
	}
}

// TestDynamicWindowClampsEnvelope is scenario 5: with dwa on, sim_period
// 0.1, ax=1.0, current vx=2.0, max_vx_cfg=5.0, min_vx_cfg=0.0, the
// search bounds should come out to max_vx=2.1, min_vx=1.9.
func TestDynamicWindowClampsEnvelope(t *testing.T) {
	cfg := planconfig.Config{
		VelocityLimits: planconfig.VelocityLimits{MinVx: 0, MaxVx: 5},
		AccelLimits:    spatialmath.AccelLimits{AX: 1.0},
		Sampling:       planconfig.SamplingConfig{SimPeriod: 0.1, SimTime: 1},
		Flags:          planconfig.Flags{UseDynamicWindow: true},
	}
	e := computeEnvelope(cfg, spatialmath.BodyVelocity{Vx: 2.0}, -1, -1)
	test.That(t, math.Abs(e.maxVx-2.1) < 1e-9, test.ShouldBeTrue)
	test.That(t, math.Abs(e.minVx-1.9) < 1e-9, test.ShouldBeTrue)
}
