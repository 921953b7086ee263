package spatialmath

import "math"

// StepVelocity moves current toward target at rate accel over duration
// dt, clamping at target: it never overshoots. accel and dt must be
// positive.
func StepVelocity(target, current, accel, dt float64) float64 {
	switch {
	case current < target:
		return math.Min(current+accel*dt, target)
	case current > target:
		return math.Max(current-accel*dt, target)
	default:
		return target
	}
}

// StepPose advances pose by body-frame velocity vel over duration dt
// using the body-to-world rotation. Theta is not normalized.
func StepPose(pose Pose, vel BodyVelocity, dt float64) Pose {
	cos, sin := math.Cos(pose.Theta), math.Sin(pose.Theta)
	return Pose{
		X:     pose.X + (vel.Vx*cos-vel.Vy*sin)*dt,
		Y:     pose.Y + (vel.Vx*sin+vel.Vy*cos)*dt,
		Theta: pose.Theta + vel.Vtheta*dt,
	}
}

// StepBodyVelocity steps all three velocity axes toward target under
// accel over dt, per-axis, using StepVelocity.
func StepBodyVelocity(target, current BodyVelocity, accel AccelLimits, dt float64) BodyVelocity {
	return BodyVelocity{
		Vx:     StepVelocity(target.Vx, current.Vx, accel.AX, dt),
		Vy:     StepVelocity(target.Vy, current.Vy, accel.AY, dt),
		Vtheta: StepVelocity(target.Vtheta, current.Vtheta, accel.ATheta, dt),
	}
}
