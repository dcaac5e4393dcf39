package impact

import (
	"errors"

	"github.com/reconlabs/impact/body"
	"github.com/reconlabs/impact/constraint"
)

// Default solver tuning. Baumgarte feeds a fraction of positional error
// back as velocity each step; the slop leaves a small tolerated overlap so
// resting contacts do not jitter.
const (
	DefaultIterations      = 8
	DefaultBaumgarteFactor = 0.2
	DefaultContactSlop     = 0.01
)

// World owns the bodies of one reconstructed scene and the constraints
// currently acting between them. Contacts are replaced every tick by the
// external collision pass; joints persist for the scenario's lifetime.
//
// Solving is strictly sequential: every solve mutates two bodies in place,
// so constraints sharing a body must never run concurrently. Partitioning
// independent constraint groups for parallelism is the caller's problem.
type World struct {
	Bodies   []*body.RigidBody
	Contacts []*constraint.ContactConstraint
	Joints   []constraint.Joint

	Iterations      int
	BaumgarteFactor float64
	ContactSlop     float64
}

// NewWorld creates an empty world with the default solver tuning
func NewWorld() *World {
	return &World{
		Iterations:      DefaultIterations,
		BaumgarteFactor: DefaultBaumgarteFactor,
		ContactSlop:     DefaultContactSlop,
	}
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(b *body.RigidBody) {
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody removes a rigid body from the world
func (w *World) RemoveBody(b *body.RigidBody) {
	k := -1
	for i, candidate := range w.Bodies {
		if candidate == b {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}
}

// SolveConstraints runs the sequential-impulse passes for one tick:
// every contact then every joint, in registration order, repeated
// Iterations times so coupled constraints converge toward a consistent
// solution.
//
// A failing constraint is skipped for the rest of the tick and the others
// keep solving; its error is joined into the returned error for the caller
// to log. A transient degenerate configuration resolves itself on a later
// tick once the bodies have moved.
func (w *World) SolveConstraints(dt float64) error {
	iterations := max(1, w.Iterations)

	var errs []error
	failed := make(map[constraint.Joint]bool)

	for iter := 0; iter < iterations; iter++ {
		for _, c := range w.Contacts {
			// contact degeneracy is a silent no-op, never an error
			_ = c.Solve(dt, w.BaumgarteFactor, w.ContactSlop)
		}

		for _, j := range w.Joints {
			if failed[j] {
				continue
			}
			if err := j.Solve(dt, w.BaumgarteFactor); err != nil {
				failed[j] = true
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}
