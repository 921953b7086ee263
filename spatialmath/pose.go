// Package spatialmath provides the 2-D pose and velocity types and the
// kinematic integrator the planner rolls trajectories out with.
//
// This is a deliberately small, planar analogue of go.viam.com/rdk's
// spatialmath package: the controller in this repo is a nonholonomic
// ground-base planner, not a multi-DOF arm, so full 3-D orientation
// representations (quaternions, orientation vectors) are unneeded
// complexity. Angles are radians, never normalized by the integrator;
// callers compare them with ShortestAngularDistance.
package spatialmath

import "math"

// Pose is the robot pose in the world frame: position in meters and
// heading in radians.
type Pose struct {
	X, Y, Theta float64
}

// BodyVelocity is a velocity expressed in the robot's body frame: Vx and
// Vy in m/s, Vtheta in rad/s.
type BodyVelocity struct {
	Vx, Vy, Vtheta float64
}

// AccelLimits are strictly positive per-axis acceleration magnitudes.
type AccelLimits struct {
	AX, AY, ATheta float64
}

// ShortestAngularDistance returns the signed difference from-to in
// (-pi, pi], i.e. the shortest way to rotate from "from" to "to".
func ShortestAngularDistance(from, to float64) float64 {
	diff := math.Mod(to-from, 2*math.Pi)
	switch {
	case diff > math.Pi:
		diff -= 2 * math.Pi
	case diff < -math.Pi:
		diff += 2 * math.Pi
	}
	return diff
}

// NormalizeAngle wraps theta into (-pi, pi].
func NormalizeAngle(theta float64) float64 {
	return ShortestAngularDistance(0, theta)
}

// Hypot is a small alias kept local so callers don't need to import math
// just for the straight-line distance used all over the oscillation and
// escape bookkeeping.
func Hypot(dx, dy float64) float64 {
	return math.Hypot(dx, dy)
}
