package planning

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/localplan/spatialmath"
)

func TestOscillationAdmitsEverythingInitially(t *testing.T) {
	var o OscillationState
	test.That(t, o.Admits(spatialmath.BodyVelocity{Vtheta: 1}), test.ShouldBeTrue)
	test.That(t, o.Admits(spatialmath.BodyVelocity{Vy: -1}), test.ShouldBeTrue)
}

// TestOscillationStuckLeftAfterRepeatedLeftTurn is the P6/scenario-6
// case (spec.md §8 P6, "Oscillation guard"): two consecutive ticks with
// the pose unchanged, each choosing vθ>0, sets stuck_left after the
// second.
func TestOscillationStuckLeftAfterRepeatedLeftTurn(t *testing.T) {
	var o OscillationState
	pose := spatialmath.Pose{X: 0, Y: 0, Theta: 0}

	o.Update(pose, spatialmath.BodyVelocity{Vtheta: 0.5}, 1.0)
	test.That(t, o.RotatingLeft, test.ShouldBeTrue)
	test.That(t, o.StuckLeft, test.ShouldBeFalse)

	o.Update(pose, spatialmath.BodyVelocity{Vtheta: 0.5}, 1.0)
	test.That(t, o.StuckLeft, test.ShouldBeTrue)
}

func TestOscillationStuckRightAfterRepeatedRightTurn(t *testing.T) {
	var o OscillationState
	pose := spatialmath.Pose{}

	o.Update(pose, spatialmath.BodyVelocity{Vtheta: -0.5}, 1.0)
	o.Update(pose, spatialmath.BodyVelocity{Vtheta: -0.5}, 1.0)
	test.That(t, o.StuckRight, test.ShouldBeTrue)
}

func TestOscillationStuckStrafeFlags(t *testing.T) {
	var o OscillationState
	pose := spatialmath.Pose{}

	o.Update(pose, spatialmath.BodyVelocity{Vy: 0.3}, 1.0)
	o.Update(pose, spatialmath.BodyVelocity{Vy: 0.3}, 1.0)
	test.That(t, o.StuckRightStrafe, test.ShouldBeTrue)

	var o2 OscillationState
	o2.Update(pose, spatialmath.BodyVelocity{Vy: -0.3}, 1.0)
	o2.Update(pose, spatialmath.BodyVelocity{Vy: -0.3}, 1.0)
	test.That(t, o2.StuckLeftStrafe, test.ShouldBeTrue)
}

func TestOscillationForwardMotionNeverClassified(t *testing.T) {
	var o OscillationState
	pose := spatialmath.Pose{}
	o.Update(pose, spatialmath.BodyVelocity{Vx: 1, Vtheta: 0.5}, 1.0)
	o.Update(pose, spatialmath.BodyVelocity{Vx: 1, Vtheta: 0.5}, 1.0)
	test.That(t, o.RotatingLeft, test.ShouldBeFalse)
	test.That(t, o.StuckLeft, test.ShouldBeFalse)
}

func TestOscillationAdmitsForbidsStuckDirection(t *testing.T) {
	var o OscillationState
	pose := spatialmath.Pose{}
	o.Update(pose, spatialmath.BodyVelocity{Vtheta: 0.5}, 1.0)
	o.Update(pose, spatialmath.BodyVelocity{Vtheta: 0.5}, 1.0)
	test.That(t, o.StuckLeft, test.ShouldBeTrue)

	test.That(t, o.Admits(spatialmath.BodyVelocity{Vtheta: 0.5}), test.ShouldBeFalse)
	test.That(t, o.Admits(spatialmath.BodyVelocity{Vtheta: -0.5}), test.ShouldBeTrue)
}

func TestOscillationResetsAfterMovingPastResetDist(t *testing.T) {
	var o OscillationState
	o.Update(spatialmath.Pose{X: 0, Y: 0}, spatialmath.BodyVelocity{Vtheta: 0.5}, 1.0)
	o.Update(spatialmath.Pose{X: 0, Y: 0}, spatialmath.BodyVelocity{Vtheta: 0.5}, 1.0)
	test.That(t, o.StuckLeft, test.ShouldBeTrue)

	o.Update(spatialmath.Pose{X: 2, Y: 0}, spatialmath.BodyVelocity{Vx: 1}, 1.0)
	test.That(t, o.StuckLeft, test.ShouldBeFalse)
	test.That(t, o.RotatingLeft, test.ShouldBeFalse)
}

func TestOscillationResetClearsFlags(t *testing.T) {
	var o OscillationState
	o.Update(spatialmath.Pose{}, spatialmath.BodyVelocity{Vtheta: 0.5}, 1.0)
	test.That(t, o.RotatingLeft, test.ShouldBeTrue)
	o.Reset()
	test.That(t, o.RotatingLeft, test.ShouldBeFalse)
	test.That(t, o.Admits(spatialmath.BodyVelocity{Vtheta: 0.5}), test.ShouldBeTrue)
}

func TestEscapeBeginSetsActiveOnce(t *testing.T) {
	var e EscapeState
	e.Begin(spatialmath.Pose{X: 1, Y: 1})
	test.That(t, e.Active, test.ShouldBeTrue)
	e.Begin(spatialmath.Pose{X: 9, Y: 9})
	test.That(t, e.Active, test.ShouldBeTrue)
}

func TestEscapeUpdateClearsAfterMovingPastResetDist(t *testing.T) {
	var e EscapeState
	e.Begin(spatialmath.Pose{X: 0, Y: 0, Theta: 0})
	e.Update(spatialmath.Pose{X: 0.1, Y: 0, Theta: 0}, 1.0, 1.0)
	test.That(t, e.Active, test.ShouldBeTrue)
	e.Update(spatialmath.Pose{X: 2, Y: 0, Theta: 0}, 1.0, 1.0)
	test.That(t, e.Active, test.ShouldBeFalse)
}

func TestEscapeUpdateClearsAfterTurningPastResetTheta(t *testing.T) {
	var e EscapeState
	e.Begin(spatialmath.Pose{X: 0, Y: 0, Theta: 0})
	e.Update(spatialmath.Pose{X: 0, Y: 0, Theta: 2.0}, 100.0, 1.0)
	test.That(t, e.Active, test.ShouldBeFalse)
}

func TestEscapeUpdateNoopWhenNotActive(t *testing.T) {
	var e EscapeState
	e.Update(spatialmath.Pose{X: 100, Y: 100}, 1.0, 1.0)
	test.That(t, e.Active, test.ShouldBeFalse)
}
