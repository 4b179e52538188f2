// Package bodyfgen implements the rigid-body force generators: a
// two-body spring and an anchored spring, each connecting a
// body-local point to another endpoint and applying Hooke's law
// along the world-space line between them via AddForceAtPoint (which
// contributes both force and torque).
package bodyfgen

import (
	"github.com/fenwick-labs/cyclone/body"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// ForceGenerator applies a force (and, through its point of
// application, torque) to one rigid body for one integration step.
type ForceGenerator interface {
	UpdateForce(bodies *body.Set, b body.Handle, duration vecmath.Real)
}

// Spring connects two rigid bodies at body-local connection points,
// pulling the two points toward each other with a force of
// SpringConstant * |length - RestLength|. The magnitude is taken as
// an absolute value, so a spring shorter than RestLength also pulls;
// it never pushes.
type Spring struct {
	Other               body.Handle
	ConnectionPoint      vecmath.Vec3 // local to the body UpdateForce is called for
	OtherConnectionPoint vecmath.Vec3 // local to Other
	SpringConstant       vecmath.Real
	RestLength           vecmath.Real
}

func (s *Spring) UpdateForce(bodies *body.Set, h body.Handle, duration vecmath.Real) {
	self, ok := bodies.Get(h)
	if !ok {
		return
	}
	other, ok := bodies.Get(s.Other)
	if !ok {
		return
	}

	lws := self.GetPointInWorldSpace(s.ConnectionPoint)
	lwo := other.GetPointInWorldSpace(s.OtherConnectionPoint)

	force := lws.Sub(lwo)
	magnitude := absR(force.Magnitude()-s.RestLength) * s.SpringConstant
	force = force.Normalized().Scale(-magnitude)

	self.AddForceAtPoint(force, lws)
	other.AddForceAtPoint(force.Neg(), lwo)
}

// AnchoredSpring connects a rigid body's local connection point to a
// fixed world-space anchor.
type AnchoredSpring struct {
	Anchor         vecmath.Vec3
	ConnectionPoint vecmath.Vec3
	SpringConstant vecmath.Real
	RestLength     vecmath.Real
}

func (s *AnchoredSpring) UpdateForce(bodies *body.Set, h body.Handle, duration vecmath.Real) {
	self, ok := bodies.Get(h)
	if !ok {
		return
	}

	lws := self.GetPointInWorldSpace(s.ConnectionPoint)

	force := lws.Sub(s.Anchor)
	magnitude := absR(force.Magnitude()-s.RestLength) * s.SpringConstant
	force = force.Normalized().Scale(-magnitude)

	self.AddForceAtPoint(force, lws)
}

func absR(x vecmath.Real) vecmath.Real {
	if x < 0 {
		return -x
	}
	return x
}
