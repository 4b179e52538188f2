// Package system drives the rigid-body half of a simulation one
// fixed step at a time. It only integrates: contact resolution for
// rigid bodies lives in rigidresolve and is not wired in here, per
// the narrow surface the rigid-body side exposes today.
package system

import (
	"github.com/fenwick-labs/cyclone/body"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// PhysicsSystem integrates every rigid body in a Set, one step at a
// time. It carries no state of its own beyond the method set; the
// zero value is ready to use.
type PhysicsSystem struct{}

func New() *PhysicsSystem { return &PhysicsSystem{} }

// StartFrame clears every body's force and torque accumulators and
// refreshes derived data, ready for this frame's force generators.
func (s *PhysicsSystem) StartFrame(bodies *body.Set) {
	for _, rb := range bodies.Values() {
		rb.ClearAccumulators()
		rb.UpdateDerivedData()
	}
}

// Step integrates every rigid body by duration.
func (s *PhysicsSystem) Step(bodies *body.Set, duration vecmath.Real) {
	s.Integrate(bodies, duration)
}

// Integrate advances every rigid body by duration using its own
// Newton-Euler integrator.
func (s *PhysicsSystem) Integrate(bodies *body.Set, duration vecmath.Real) {
	for _, rb := range bodies.Values() {
		rb.Integrate(duration)
	}
}
