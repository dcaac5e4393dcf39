package body

import (
	"github.com/go-gl/mathgl/mgl64"
)

// RigidBody represents one rigid body in the reconstructed scene.
//
// Mass is stored as its inverse: 0 means infinite mass. Static bodies are
// immovable regardless of the stored inverse mass, but they may still
// participate in constraints (ground plane, fixed anchor, barrier).
type RigidBody struct {
	Transform Transform

	LinearVelocity  mgl64.Vec3 // m/s
	AngularVelocity mgl64.Vec3 // rad/s

	InverseMass         float64 // 1/kg, 0 for infinite mass
	InverseInertiaLocal mgl64.Mat3

	Static bool
}

// NewBody creates a dynamic body with the given mass (kg) and local-frame
// inertia tensor. The tensor is typically built with one of the inertia
// constructors from this package.
func NewBody(transform Transform, mass float64, inertiaLocal mgl64.Mat3) *RigidBody {
	rb := &RigidBody{
		Transform:           transform,
		InverseMass:         1.0 / mass,
		InverseInertiaLocal: inertiaLocal.Inv(),
	}
	if transform.Rotation.Len() == 0 {
		rb.Transform.Rotation = mgl64.QuatIdent()
	}

	return rb
}

// NewStaticBody creates an immovable body (infinite mass, zero inverse inertia)
func NewStaticBody(transform Transform) *RigidBody {
	rb := &RigidBody{
		Transform: transform,
		Static:    true,
	}
	if transform.Rotation.Len() == 0 {
		rb.Transform.Rotation = mgl64.QuatIdent()
	}

	return rb
}

// immovable reports whether impulses must leave this body untouched:
// static bodies, and bodies with infinite mass
func (rb *RigidBody) immovable() bool {
	return rb.Static || rb.InverseMass == 0
}

// EffectiveInverseMass is the inverse mass seen by the constraint solver.
// Static bodies report 0 regardless of the stored value.
func (rb *RigidBody) EffectiveInverseMass() float64 {
	if rb.Static {
		return 0
	}
	return rb.InverseMass
}

// WorldInverseInertia returns the inverse inertia tensor in world space,
// at the body's current orientation. Zero for immovable bodies.
func (rb *RigidBody) WorldInverseInertia() mgl64.Mat3 {
	if rb.immovable() {
		return mgl64.Mat3{}
	}

	// I_world^(-1) = R * I_local^(-1) * R^T
	R := rb.Transform.Rotation.Mat4().Mat3()
	return R.Mul3(rb.InverseInertiaLocal).Mul3(R.Transpose())
}

// VelocityAtPoint returns the velocity of the world-space point p as carried
// by this body: v + ω × (p − position).
func (rb *RigidBody) VelocityAtPoint(p mgl64.Vec3) mgl64.Vec3 {
	r := p.Sub(rb.Transform.Position)
	return rb.LinearVelocity.Add(rb.AngularVelocity.Cross(r))
}

// LocalToWorld transforms a body-local point into world space
func (rb *RigidBody) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return rb.Transform.Apply(p)
}

// WorldToLocal transforms a world-space point into the body's local frame
func (rb *RigidBody) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return rb.Transform.ApplyInverse(p)
}

// ApplyImpulse applies a linear impulse at lever arm r from the center of
// mass, updating both linear and angular velocity. No-op on static and
// infinite-mass bodies.
func (rb *RigidBody) ApplyImpulse(impulse, r mgl64.Vec3) {
	if rb.immovable() {
		return
	}

	rb.LinearVelocity = rb.LinearVelocity.Add(impulse.Mul(rb.InverseMass))
	rb.AngularVelocity = rb.AngularVelocity.Add(rb.WorldInverseInertia().Mul3x1(r.Cross(impulse)))
}

// ApplyAngularImpulse applies a pure angular impulse. No-op on static and
// infinite-mass bodies.
func (rb *RigidBody) ApplyAngularImpulse(l mgl64.Vec3) {
	if rb.immovable() {
		return
	}

	rb.AngularVelocity = rb.AngularVelocity.Add(rb.WorldInverseInertia().Mul3x1(l))
}
