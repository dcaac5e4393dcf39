package impact

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/reconlabs/impact/body"
	"github.com/reconlabs/impact/constraint"
)

func newSphere(position mgl64.Vec3, mass float64) *body.RigidBody {
	return body.NewBody(
		body.Transform{Position: position, Rotation: mgl64.QuatIdent()},
		mass,
		body.SolidSphereInertia(mass, 1.0),
	)
}

func TestWorld_AddRemoveBody(t *testing.T) {
	world := NewWorld()
	a := newSphere(mgl64.Vec3{}, 1.0)
	b := newSphere(mgl64.Vec3{3, 0, 0}, 1.0)

	world.AddBody(a)
	world.AddBody(b)
	if len(world.Bodies) != 2 {
		t.Fatalf("len(Bodies) = %v, want 2", len(world.Bodies))
	}

	world.RemoveBody(a)
	if len(world.Bodies) != 1 || world.Bodies[0] != b {
		t.Errorf("RemoveBody left %v bodies", len(world.Bodies))
	}
}

func TestWorld_SolveConstraints_CoupledChain(t *testing.T) {
	// Two ball sockets chain a middle and an end body to a static anchor.
	// A single pass per constraint cannot settle the chain; the iterated
	// sequential solve must remove the relative velocity through both links.
	world := NewWorld()
	world.Iterations = 50

	anchor := body.NewStaticBody(body.Transform{Position: mgl64.Vec3{}, Rotation: mgl64.QuatIdent()})
	middle := newSphere(mgl64.Vec3{1, 0, 0}, 2.0)
	end := newSphere(mgl64.Vec3{2, 0, 0}, 2.0)
	end.LinearVelocity = mgl64.Vec3{0, -3, 0}

	world.AddBody(anchor)
	world.AddBody(middle)
	world.AddBody(end)
	world.Joints = []constraint.Joint{
		constraint.NewBallSocketJoint(anchor, middle, mgl64.Vec3{0.5, 0, 0}),
		constraint.NewBallSocketJoint(middle, end, mgl64.Vec3{1.5, 0, 0}),
	}

	if err := world.SolveConstraints(1.0 / 60.0); err != nil {
		t.Fatalf("SolveConstraints returned error: %v", err)
	}

	pivotA := mgl64.Vec3{0.5, 0, 0}
	if rel := middle.VelocityAtPoint(pivotA).Sub(anchor.VelocityAtPoint(pivotA)).Len(); rel > 1e-6 {
		t.Errorf("inner link relative velocity %v after solve, want ~0", rel)
	}

	pivotB := mgl64.Vec3{1.5, 0, 0}
	if rel := end.VelocityAtPoint(pivotB).Sub(middle.VelocityAtPoint(pivotB)).Len(); rel > 1e-6 {
		t.Errorf("outer link relative velocity %v after solve, want ~0", rel)
	}
}

func TestWorld_SolveConstraints_SkipsFailingJoint(t *testing.T) {
	world := NewWorld()

	staticA := body.NewStaticBody(body.Transform{Position: mgl64.Vec3{}, Rotation: mgl64.QuatIdent()})
	staticB := body.NewStaticBody(body.Transform{Position: mgl64.Vec3{1, 0, 0}, Rotation: mgl64.QuatIdent()})
	anchor := body.NewStaticBody(body.Transform{Position: mgl64.Vec3{0, 2, 0}, Rotation: mgl64.QuatIdent()})
	hanging := newSphere(mgl64.Vec3{0, 2.5, 0}, 1.0)
	hanging.LinearVelocity = mgl64.Vec3{0, -1, 0}

	degenerate := constraint.NewBallSocketJoint(staticA, staticB, mgl64.Vec3{0.5, 0, 0})
	healthy := constraint.NewBallSocketJoint(anchor, hanging, mgl64.Vec3{0, 2.2, 0})
	world.Joints = []constraint.Joint{degenerate, healthy}

	err := world.SolveConstraints(1.0 / 60.0)
	if err == nil {
		t.Fatal("SolveConstraints returned nil, want the degenerate joint's error")
	}

	var singular *constraint.SingularMatrixError
	if !errors.As(err, &singular) {
		t.Fatalf("error %v (%T), want to wrap *SingularMatrixError", err, err)
	}

	// the healthy joint must have been solved despite the failure
	if hanging.LinearVelocity == (mgl64.Vec3{0, -1, 0}) {
		t.Error("healthy joint was not solved after the degenerate one failed")
	}
	if healthy.AccumulatedImpulse.Len() == 0 {
		t.Error("healthy joint accumulated no impulse")
	}
}

func TestWorld_SolveConstraints_ContactsAndJointsTogether(t *testing.T) {
	world := NewWorld()

	ground := body.NewStaticBody(body.Transform{Position: mgl64.Vec3{0, -1, 0}, Rotation: mgl64.QuatIdent()})
	sphere := newSphere(mgl64.Vec3{0, 1, 0}, 5.0)
	sphere.LinearVelocity = mgl64.Vec3{0, -2, 0}

	world.AddBody(ground)
	world.AddBody(sphere)

	contactPoint := mgl64.Vec3{0, 0, 0}
	contact := &constraint.ContactConstraint{
		BodyA:       sphere,
		BodyB:       ground,
		PointA:      contactPoint,
		PointB:      contactPoint,
		Normal:      mgl64.Vec3{0, -1, 0},
		Penetration: 0.02,
		Friction:    0.6,
	}
	world.Contacts = []*constraint.ContactConstraint{contact}

	if err := world.SolveConstraints(1.0 / 60.0); err != nil {
		t.Fatalf("SolveConstraints returned error: %v", err)
	}

	if sphere.LinearVelocity.Y() < 0 {
		t.Errorf("sphere still approaching ground: v = %v", sphere.LinearVelocity)
	}
	if contact.AccumulatedNormalImpulse <= 0 {
		t.Errorf("AccumulatedNormalImpulse = %v, want > 0", contact.AccumulatedNormalImpulse)
	}
}
