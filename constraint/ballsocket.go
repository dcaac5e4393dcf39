package constraint

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reconlabs/impact/body"
)

// BallSocketJoint pins one point of each body together while leaving all
// rotation free: a 3-DOF positional coupling (tow coupling, suspension
// pivot). Anchors are stored in each body's local frame; when solved to
// convergence they coincide in world space.
type BallSocketJoint struct {
	BodyA *body.RigidBody
	BodyB *body.RigidBody

	LocalAnchorA mgl64.Vec3
	LocalAnchorB mgl64.Vec3

	// AccumulatedImpulse carries the running impulse total for warm starting
	AccumulatedImpulse mgl64.Vec3
}

// NewBallSocketJoint joins a and b at the given world-space pivot,
// capturing the pivot in each body's local frame.
func NewBallSocketJoint(a, b *body.RigidBody, pivot mgl64.Vec3) *BallSocketJoint {
	return &BallSocketJoint{
		BodyA:        a,
		BodyB:        b,
		LocalAnchorA: a.WorldToLocal(pivot),
		LocalAnchorB: b.WorldToLocal(pivot),
	}
}

// Solve removes the relative velocity at the anchors along all three axes
// with a single 3x3 solve, plus a Baumgarte bias proportional to the anchor
// separation. Returns *SingularMatrixError when the effective-mass matrix
// is not invertible (e.g. both bodies static).
func (j *BallSocketJoint) Solve(dt, baumgarteFactor float64) error {
	a := j.BodyA
	b := j.BodyB

	anchorA := a.LocalToWorld(j.LocalAnchorA)
	anchorB := b.LocalToWorld(j.LocalAnchorB)
	rA := anchorA.Sub(a.Transform.Position)
	rB := anchorB.Sub(b.Transform.Position)

	k := effectiveMassMatrix(a, b, rA, rB)
	det := k.Det()
	if math.Abs(det) < minDeterminant {
		return &SingularMatrixError{Op: "ball socket solve", Det: det}
	}

	velocityError := b.VelocityAtPoint(anchorB).Sub(a.VelocityAtPoint(anchorA))
	positionError := anchorB.Sub(anchorA)

	lambda := k.Inv().Mul3x1(velocityError.Add(positionError.Mul(baumgarteFactor / dt)).Mul(-1))

	j.AccumulatedImpulse = j.AccumulatedImpulse.Add(lambda)
	applyImpulses(a, b, rA, rB, lambda)

	return nil
}
