package constraint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reconlabs/impact/body"
)

// HingeJoint couples two bodies at a pivot and restricts their relative
// rotation to a single shared axis (door on a frame, wheel on a spindle),
// optionally limited to an angle range.
//
// The positional part follows the ball-socket 3x3 solve. The angular part
// suppresses relative angular velocity orthogonal to the hinge axis, and
// the limits are one-sided impulses about the axis with a non-negative
// accumulated clamp, like a contact's normal impulse.
type HingeJoint struct {
	BodyA *body.RigidBody
	BodyB *body.RigidBody

	LocalAnchorA mgl64.Vec3
	LocalAnchorB mgl64.Vec3

	// Hinge axis in each body's local frame, normalized at construction
	LocalAxisA mgl64.Vec3
	LocalAxisB mgl64.Vec3

	MinAngle  float64
	MaxAngle  float64
	HasLimits bool

	AccumulatedImpulse      mgl64.Vec3
	AccumulatedLowerImpulse float64
	AccumulatedUpperImpulse float64

	// relative orientation captured at construction; Angle measures the
	// twist about the axis relative to this rest pose
	restRotation mgl64.Quat

	angle float64
}

// NewHingeJoint joins a and b at the world-space pivot, hinging about the
// world-space axis. The axis is normalized; anchors and axis are captured
// in each body's local frame.
func NewHingeJoint(a, b *body.RigidBody, pivot, axis mgl64.Vec3) *HingeJoint {
	axis = axis.Normalize()

	return &HingeJoint{
		BodyA:        a,
		BodyB:        b,
		LocalAnchorA: a.WorldToLocal(pivot),
		LocalAnchorB: b.WorldToLocal(pivot),
		LocalAxisA:   a.Transform.Rotation.Inverse().Rotate(axis),
		LocalAxisB:   b.Transform.Rotation.Inverse().Rotate(axis),
		restRotation: a.Transform.Rotation.Inverse().Mul(b.Transform.Rotation),
	}
}

// WithLimits restricts the hinge angle to [min, max] radians, measured as
// twist about the axis from the pose the joint was constructed in.
func (j *HingeJoint) WithLimits(min, max float64) *HingeJoint {
	j.MinAngle = min
	j.MaxAngle = max
	j.HasLimits = true

	return j
}

// Angle returns the current hinge angle in radians
func (j *HingeJoint) Angle() float64 {
	return j.angle
}

// Solve applies the positional coupling, suppresses off-axis relative
// rotation, and enforces the angle limits when set. Returns
// *SingularMatrixError when the positional effective-mass matrix is not
// invertible.
func (j *HingeJoint) Solve(dt, baumgarteFactor float64) error {
	a := j.BodyA
	b := j.BodyB

	// 1. Positional part, identical to the ball socket
	anchorA := a.LocalToWorld(j.LocalAnchorA)
	anchorB := b.LocalToWorld(j.LocalAnchorB)
	rA := anchorA.Sub(a.Transform.Position)
	rB := anchorB.Sub(b.Transform.Position)

	k := effectiveMassMatrix(a, b, rA, rB)
	det := k.Det()
	if math.Abs(det) < minDeterminant {
		return &SingularMatrixError{Op: "hinge solve", Det: det}
	}

	velocityError := b.VelocityAtPoint(anchorB).Sub(a.VelocityAtPoint(anchorA))
	positionError := anchorB.Sub(anchorA)

	lambda := k.Inv().Mul3x1(velocityError.Add(positionError.Mul(baumgarteFactor / dt)).Mul(-1))
	j.AccumulatedImpulse = j.AccumulatedImpulse.Add(lambda)
	applyImpulses(a, b, rA, rB, lambda)

	// 2. Angular part: kill relative angular velocity orthogonal to the
	// axis. Two scalar solves along a tangent basis of body A's world axis,
	// with a bias that re-aligns body B's axis.
	axisA := a.Transform.Rotation.Rotate(j.LocalAxisA)
	axisB := b.Transform.Rotation.Rotate(j.LocalAxisB)

	iaInv := a.WorldInverseInertia()
	ibInv := b.WorldInverseInertia()

	t1, t2 := tangentBasis(axisA)
	axisError := axisA.Cross(axisB)

	for _, t := range [2]mgl64.Vec3{t1, t2} {
		kAxis := iaInv.Mul3x1(t).Dot(t) + ibInv.Mul3x1(t).Dot(t)
		if kAxis < minEffectiveMass {
			continue
		}

		relOmega := b.AngularVelocity.Sub(a.AngularVelocity).Dot(t)
		bias := axisError.Dot(t) * baumgarteFactor / dt

		impulse := t.Mul(-(relOmega + bias) / kAxis)
		a.ApplyAngularImpulse(impulse.Mul(-1))
		b.ApplyAngularImpulse(impulse)
	}

	j.angle = j.currentAngle()

	// 3. Angle limits as one-sided constraints about the axis
	if j.HasLimits {
		kAxis := iaInv.Mul3x1(axisA).Dot(axisA) + ibInv.Mul3x1(axisA).Dot(axisA)
		if kAxis >= minEffectiveMass {
			relOmega := b.AngularVelocity.Sub(a.AngularVelocity).Dot(axisA)

			// Lower limit pushes the angle up, about +axis
			if overshoot := j.MinAngle - j.angle; overshoot > 0 {
				lambdaLimit := -(relOmega - baumgarteFactor*overshoot/dt) / kAxis
				old := j.AccumulatedLowerImpulse
				j.AccumulatedLowerImpulse = math.Max(0, old+lambdaLimit)
				applyAxisImpulses(a, b, axisA, j.AccumulatedLowerImpulse-old)
			}

			// Upper limit pushes the angle down, about -axis
			if overshoot := j.angle - j.MaxAngle; overshoot > 0 {
				lambdaLimit := -(-relOmega - baumgarteFactor*overshoot/dt) / kAxis
				old := j.AccumulatedUpperImpulse
				j.AccumulatedUpperImpulse = math.Max(0, old+lambdaLimit)
				applyAxisImpulses(a, b, axisA.Mul(-1), j.AccumulatedUpperImpulse-old)
			}
		}
	}

	return nil
}

// currentAngle extracts the twist about the hinge axis of the relative
// rotation since construction.
func (j *HingeJoint) currentAngle() float64 {
	relative := j.BodyA.Transform.Rotation.Inverse().Mul(j.BodyB.Transform.Rotation)
	delta := relative.Mul(j.restRotation.Inverse())

	twist := 2 * math.Atan2(delta.V.Dot(j.LocalAxisA), delta.W)
	for twist > math.Pi {
		twist -= 2 * math.Pi
	}
	for twist <= -math.Pi {
		twist += 2 * math.Pi
	}

	return twist
}

// applyAxisImpulses applies an equal and opposite angular impulse pair
// about the given axis: -axis·magnitude to a, +axis·magnitude to b.
func applyAxisImpulses(a, b *body.RigidBody, axis mgl64.Vec3, magnitude float64) {
	a.ApplyAngularImpulse(axis.Mul(-magnitude))
	b.ApplyAngularImpulse(axis.Mul(magnitude))
}

// tangentBasis returns two unit vectors orthogonal to v and to each other
func tangentBasis(v mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	ref := mgl64.Vec3{1, 0, 0}
	if math.Abs(v.X()) > 0.9 {
		ref = mgl64.Vec3{0, 1, 0}
	}

	t1 := v.Cross(ref).Normalize()
	t2 := v.Cross(t1)

	return t1, t2
}
