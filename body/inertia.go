package body

import "github.com/go-gl/mathgl/mgl64"

// Inertia tensor constructors for the primitive solids used to model
// vehicles and scene obstacles. Scene setup supplies masses and dimensions;
// these return the local-frame tensor expected by NewBody.

// SolidBoxInertia returns the inertia tensor of a solid box given its
// half-extents. Vehicles are modelled as boxes sized from their bodywork.
func SolidBoxInertia(mass float64, halfExtents mgl64.Vec3) mgl64.Mat3 {
	x := halfExtents.X() * 2
	y := halfExtents.Y() * 2
	z := halfExtents.Z() * 2

	// I = (m/12) * (dimension1² + dimension2²)
	factor := mass / 12.0

	return mgl64.Diag3(mgl64.Vec3{
		factor * (y*y + z*z),
		factor * (x*x + z*z),
		factor * (x*x + y*y),
	})
}

// SolidSphereInertia returns the inertia tensor of a solid sphere:
// I = (2/5) * m * r², identical on all axes.
func SolidSphereInertia(mass, radius float64) mgl64.Mat3 {
	i := (2.0 / 5.0) * mass * radius * radius

	return mgl64.Diag3(mgl64.Vec3{i, i, i})
}

// SolidCylinderInertia returns the inertia tensor of a solid cylinder whose
// axis of revolution is local Y (a wheel standing upright).
func SolidCylinderInertia(mass, radius, height float64) mgl64.Mat3 {
	iy := 0.5 * mass * radius * radius
	ix := (1.0 / 12.0) * mass * (3*radius*radius + height*height)

	return mgl64.Diag3(mgl64.Vec3{ix, iy, ix})
}
