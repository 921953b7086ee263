// Command localplan-demo loads a scenario (costmap, global plan, start
// pose) from a JSON file and runs the planner façade against it once,
// printing the chosen drive command — a small example consumer of the
// planning package, the way the corpus ships a cmd/<tool>/main.go
// alongside most of its service libraries.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/localplan/costmap"
	"go.viam.com/localplan/logging"
	"go.viam.com/localplan/planconfig"
	"go.viam.com/localplan/planning"
	"go.viam.com/localplan/spatialmath"
	"go.viam.com/localplan/worldmodel"
)

// scenario is the on-disk shape of a demo input file. Numeric fields
// are decoded through mapstructure the way config.AttributeMap values
// are elsewhere in the corpus, rather than unmarshaled directly into
// typed structs, so a scenario file can carry extra attributes without
// the decode failing.
type scenario struct {
	SizeX       int         `mapstructure:"size_x"`
	SizeY       int         `mapstructure:"size_y"`
	Resolution  float64     `mapstructure:"resolution"`
	Obstacles   [][2]int    `mapstructure:"obstacles"`
	Plan        [][3]float64 `mapstructure:"plan"`
	Start       [3]float64  `mapstructure:"start"`
	StartVel    [3]float64  `mapstructure:"start_vel"`
	MaxVx       float64     `mapstructure:"max_vx"`
	MinVx       float64     `mapstructure:"min_vx"`
	MaxVtheta   float64     `mapstructure:"max_vtheta"`
	MinVtheta   float64     `mapstructure:"min_vtheta"`
	Holonomic   bool        `mapstructure:"holonomic"`
	SimTimeSecs float64     `mapstructure:"sim_time"`
}

func loadScenario(path string) (scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, errors.Wrap(err, "reading scenario file")
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return scenario{}, errors.Wrap(err, "parsing scenario JSON")
	}
	var s scenario
	if err := mapstructure.Decode(generic, &s); err != nil {
		return scenario{}, errors.Wrap(err, "decoding scenario")
	}
	return s, nil
}

func buildPlanner(logger logging.Logger, s scenario) (*planning.Planner, error) {
	if s.SizeX <= 0 || s.SizeY <= 0 {
		return nil, errors.New("scenario size_x/size_y must be positive")
	}
	resolution := s.Resolution
	if resolution <= 0 {
		resolution = 0.05
	}
	cm := costmap.NewGridCostmap(s.SizeX, s.SizeY, resolution)
	for _, o := range s.Obstacles {
		cm.SetCost(o[0], o[1], costmap.Lethal)
	}

	simTime := s.SimTimeSecs
	if simTime <= 0 {
		simTime = 1.5
	}
	raw := planconfig.Config{
		VelocityLimits: planconfig.VelocityLimits{
			MinVx: s.MinVx, MaxVx: s.MaxVx,
			MinVtheta: s.MinVtheta, MaxVtheta: s.MaxVtheta,
			MinInPlaceVtheta: 0.1,
		},
		AccelLimits: spatialmath.AccelLimits{AX: 1.0, AY: 1.0, ATheta: 2.0},
		Sampling: planconfig.SamplingConfig{
			NX: 8, NY: 8, NTheta: 8,
			SimTime: simTime, SimGranularity: 0.05, AngularSimGranularity: 0.05,
		},
		Weights:  planconfig.CostWeights{PDistScale: 0.6, GDistScale: 0.8, OccDistScale: 0.01},
		Flags:    planconfig.Flags{Holonomic: s.Holonomic},
		Behavior: planconfig.Behavior{HeadingLookahead: 3, BackupVel: 0.1, OscillationResetDist: 0.2, EscapeResetDist: 0.3, EscapeResetTheta: 0.5},
	}

	p := planning.NewPlanner(logger)
	if err := p.Reconfigure(raw, cm, &worldmodel.InjectedWorldModel{}, worldmodel.Footprint{}, ""); err != nil {
		return nil, errors.Wrap(err, "reconfiguring planner")
	}

	plan := make([]spatialmath.Pose, len(s.Plan))
	for i, pt := range s.Plan {
		plan[i] = spatialmath.Pose{X: pt[0], Y: pt[1], Theta: pt[2]}
	}
	p.UpdatePlan(plan)
	return p, nil
}

func run(c *cli.Context) error {
	logger := logging.NewLogger("localplan-demo")

	s, err := loadScenario(c.String("scenario"))
	if err != nil {
		return err
	}
	p, err := buildPlanner(logger, s)
	if err != nil {
		return err
	}

	start := spatialmath.Pose{X: s.Start[0], Y: s.Start[1], Theta: s.Start[2]}
	startVel := spatialmath.BodyVelocity{Vx: s.StartVel[0], Vy: s.StartVel[1], Vtheta: s.StartVel[2]}

	traj, ok := p.FindBestPath(start, startVel)
	if !ok {
		fmt.Println("no legal trajectory found")
		return nil
	}

	fmt.Printf("chosen sample: vx=%.3f vy=%.3f vtheta=%.3f cost=%.3f points=%d\n",
		traj.Sample.Vx, traj.Sample.Vy, traj.Sample.Vtheta, traj.Cost, len(traj.Points))
	stats := p.Stats()
	fmt.Printf("stats: ticks=%d legal=%d escaping=%d stuck=%v active_escape=%v\n",
		stats.Ticks, stats.TicksLegal, stats.TicksEscaping, stats.LastStuck, stats.LastEscaping)
	return nil
}

func main() {
	app := &cli.App{
		Name:  "localplan-demo",
		Usage: "run the local trajectory planner once against a scenario file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "scenario",
				Usage:    "path to a scenario JSON file",
				Required: true,
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
