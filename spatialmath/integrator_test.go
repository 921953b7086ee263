package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestStepVelocityClampsAtTarget(t *testing.T) {
	test.That(t, StepVelocity(1.0, 0.0, 0.5, 1.0), test.ShouldEqual, 0.5)
	test.That(t, StepVelocity(1.0, 0.9, 0.5, 1.0), test.ShouldEqual, 1.0)
	test.That(t, StepVelocity(-1.0, 0.0, 0.5, 1.0), test.ShouldEqual, -0.5)
	test.That(t, StepVelocity(-1.0, -0.9, 0.5, 1.0), test.ShouldEqual, -1.0)
	test.That(t, StepVelocity(2.0, 2.0, 0.5, 1.0), test.ShouldEqual, 2.0)
}

func TestStepPoseStraightLine(t *testing.T) {
	p := StepPose(Pose{0, 0, 0}, BodyVelocity{Vx: 1, Vy: 0, Vtheta: 0}, 2.0)
	test.That(t, p.X, test.ShouldEqual, 2.0)
	test.That(t, p.Y, test.ShouldEqual, 0.0)
	test.That(t, p.Theta, test.ShouldEqual, 0.0)
}

func TestStepPoseRotatesBodyFrame(t *testing.T) {
	// Facing +90deg, body-frame +X should move the robot in world +Y.
	p := StepPose(Pose{0, 0, math.Pi / 2}, BodyVelocity{Vx: 1, Vy: 0, Vtheta: 0}, 1.0)
	test.That(t, p.X, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, p.Y, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestStepPoseDoesNotNormalizeTheta(t *testing.T) {
	p := StepPose(Pose{0, 0, 0}, BodyVelocity{Vtheta: 1}, 10.0)
	test.That(t, p.Theta, test.ShouldEqual, 10.0)
}

func TestStepBodyVelocityPerAxis(t *testing.T) {
	accel := AccelLimits{AX: 1, AY: 1, ATheta: 1}
	v := StepBodyVelocity(BodyVelocity{Vx: 1, Vy: -1, Vtheta: 2}, BodyVelocity{}, accel, 0.5)
	test.That(t, v.Vx, test.ShouldEqual, 0.5)
	test.That(t, v.Vy, test.ShouldEqual, -0.5)
	test.That(t, v.Vtheta, test.ShouldEqual, 0.5)
}

func TestShortestAngularDistance(t *testing.T) {
	for _, a := range []float64{0, 1, -1, math.Pi, -math.Pi, 3.5} {
		test.That(t, math.Abs(ShortestAngularDistance(a, a)), test.ShouldAlmostEqual, 0.0, 1e-9)
	}
	test.That(t, ShortestAngularDistance(0, math.Pi/2), test.ShouldAlmostEqual, math.Pi/2, 1e-9)
	test.That(t, ShortestAngularDistance(0.1, -0.1), test.ShouldAlmostEqual, -0.2, 1e-9)
	// Wraps the short way around.
	d := ShortestAngularDistance(-math.Pi+0.1, math.Pi-0.1)
	test.That(t, math.Abs(d), test.ShouldBeLessThan, 0.3)
}

func TestShortestAngularDistanceBoundedByPi(t *testing.T) {
	for a := -10.0; a < 10.0; a += 0.37 {
		for b := -10.0; b < 10.0; b += 0.53 {
			d := ShortestAngularDistance(a, b)
			test.That(t, math.Abs(d), test.ShouldBeLessThanOrEqualTo, math.Pi+1e-9)
		}
	}
}
