package constraint

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reconlabs/impact/body"
)

const (
	// minEffectiveMass is the floor under which a constraint direction is
	// considered degenerate (both bodies immovable along it) and the solve
	// becomes a no-op.
	minEffectiveMass = 1e-10

	// minDeterminant is the floor under which the 3x3 effective-mass matrix
	// of a joint is treated as singular.
	minDeterminant = 1e-12
)

// Joint is a two-body coupling solved once per sequential-impulse pass.
// Solve mutates both bodies' velocities in place; the caller must hold
// exclusive access to both bodies for the duration of the call, and is
// expected to iterate over all constraints several times per tick for
// convergence.
type Joint interface {
	Solve(dt, baumgarteFactor float64) error
}

// SingularMatrixError reports a joint whose effective-mass matrix could not
// be inverted, e.g. both bodies static. The configuration is transient;
// callers should skip the constraint and retry on the next tick.
type SingularMatrixError struct {
	Op  string
	Det float64
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("%s: singular effective mass matrix (det=%g)", e.Op, e.Det)
}

// skew returns the cross-product matrix [v]ₓ such that [v]ₓ·w = v × w
func skew(v mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Mat3FromRows(
		mgl64.Vec3{0, -v.Z(), v.Y()},
		mgl64.Vec3{v.Z(), 0, -v.X()},
		mgl64.Vec3{-v.Y(), v.X(), 0},
	)
}

// effectiveMassMatrix builds the 3x3 matrix relating a point impulse at the
// lever arms rA/rB to the change in relative anchor velocity:
// K = (1/mA + 1/mB)·I₃ + [rA]ₓᵀ·IA⁻¹·[rA]ₓ + [rB]ₓᵀ·IB⁻¹·[rB]ₓ
func effectiveMassMatrix(a, b *body.RigidBody, rA, rB mgl64.Vec3) mgl64.Mat3 {
	k := mgl64.Ident3().Mul(a.EffectiveInverseMass() + b.EffectiveInverseMass())

	sA := skew(rA)
	sB := skew(rB)
	k = k.Add(sA.Transpose().Mul3(a.WorldInverseInertia()).Mul3(sA))
	k = k.Add(sB.Transpose().Mul3(b.WorldInverseInertia()).Mul3(sB))

	return k
}

// applyImpulses applies an equal and opposite impulse pair at the given
// lever arms: -impulse to a, +impulse to b
func applyImpulses(a, b *body.RigidBody, rA, rB, impulse mgl64.Vec3) {
	a.ApplyImpulse(impulse.Mul(-1), rA)
	b.ApplyImpulse(impulse, rB)
}
