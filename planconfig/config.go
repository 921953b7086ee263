// Package planconfig holds the planner's configuration surface: velocity
// and acceleration limits, rollout sampling parameters, scoring weights
// and behavior flags (spec.md §3, §6). A Config is built once by New and
// is immutable afterwards; the planner façade swaps the whole struct
// under its configuration mutex (spec.md §5, §9).
package planconfig

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/localplan/spatialmath"
)

// VelocityLimits bounds the admissible body velocity.
type VelocityLimits struct {
	MinVx, MaxVx     float64
	MinVy, MaxVy     float64
	MinVtheta        float64
	MaxVtheta        float64
	MinInPlaceVtheta float64
}

// SamplingConfig controls the rollout and the velocity-sample grid.
type SamplingConfig struct {
	NX, NY, NTheta          int
	SimTime                 float64
	SimGranularity          float64
	AngularSimGranularity   float64
	SimPeriod               float64 // dynamic-window step; 0 if unused
	ExtraYVels              []float64
}

// CostWeights scales each rollout cost term.
type CostWeights struct {
	PDistScale      float64
	GDistScale      float64
	OccDistScale    float64
	HDiffScale      float64
	PathDistanceMax float64
}

// Flags toggles alternate scoring and search behaviors.
type Flags struct {
	Holonomic        bool
	UseDynamicWindow bool
	HeadingScoring   bool
	SimpleAttractor  bool
	MeterScoring     bool
}

// Behavior holds the oscillation/escape state machine's tunables.
type Behavior struct {
	BackupVel            float64
	OscillationResetDist float64
	EscapeResetDist      float64
	EscapeResetTheta     float64
	HeadingLookahead     int
}

// Config is the full, validated, immutable configuration snapshot.
type Config struct {
	VelocityLimits VelocityLimits
	AccelLimits    spatialmath.AccelLimits
	Sampling       SamplingConfig
	Weights        CostWeights
	Flags          Flags
	Behavior       Behavior
}

// New validates and coerces raw into a Config, per spec.md §4.6
// reconfigure: sample counts are coerced to >= 1, and if MeterScoring is
// set the three distance-cost scales are multiplied by the costmap
// resolution so cost units come out in meters. extra is a whitespace-
// and/or comma-separated list of additional y velocities to sample
// (e.g. "0.1, -0.1 0.2"); malformed entries are collected and returned
// together via multierr rather than failing on the first bad token.
func New(raw Config, costmapResolution float64, extraYVels string) (Config, error) {
	cfg := raw

	cfg.Sampling.NX = coerceAtLeastOne(cfg.Sampling.NX)
	cfg.Sampling.NY = coerceAtLeastOne(cfg.Sampling.NY)
	cfg.Sampling.NTheta = coerceAtLeastOne(cfg.Sampling.NTheta)

	if cfg.Sampling.SimTime <= 0 {
		return Config{}, errors.New("sim_time must be positive")
	}
	if cfg.Sampling.SimGranularity <= 0 {
		return Config{}, errors.New("sim_granularity must be positive")
	}
	if cfg.Sampling.AngularSimGranularity <= 0 {
		return Config{}, errors.New("angular_sim_granularity must be positive")
	}

	vels, err := parseExtraYVels(extraYVels)
	if err != nil {
		return Config{}, err
	}
	cfg.Sampling.ExtraYVels = vels

	if cfg.Flags.MeterScoring {
		cfg.Weights.PDistScale *= costmapResolution
		cfg.Weights.GDistScale *= costmapResolution
		cfg.Weights.OccDistScale *= costmapResolution
	}

	return cfg, nil
}

func coerceAtLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// parseExtraYVels parses a whitespace/comma separated list of floats,
// e.g. "0.1,-0.1  0.2". An empty string yields a nil slice. Every
// malformed token is reported; parsing does not stop at the first one.
func parseExtraYVels(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, nil
	}
	var out []float64
	var errs error
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "invalid y velocity %q", f))
			continue
		}
		out = append(out, v)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}
