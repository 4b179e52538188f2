// Package rigidresolve is the rigid-body counterpart to pcontact: a
// sequential, worst-first contact resolver. It is not wired into
// system.PhysicsSystem.Step; callers that want rigid-body collision
// response run broadphase and narrowphase themselves, convert the
// resulting narrowphase.Contacts into rigidresolve.Contacts (adding
// a Restitution), and call Resolver.Resolve explicitly.
package rigidresolve

import (
	"github.com/fenwick-labs/cyclone/arena"
	"github.com/fenwick-labs/cyclone/body"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// Contact describes one rigid body touching or interpenetrating
// another (or an implicit immovable surface, when BodyB is the zero
// handle and HasB is false).
type Contact struct {
	BodyA, BodyB body.Handle
	HasB         bool

	Point       vecmath.Vec3
	Normal      vecmath.Vec3
	Restitution vecmath.Real
	Penetration vecmath.Real

	// BodyAMovement and BodyBMovement are filled in by
	// resolveInterpenetration, mirroring pcontact.Contact's fields.
	BodyAMovement vecmath.Vec3
	BodyBMovement vecmath.Vec3
}

// GeneratorHandle is an arena handle for callers that keep their own
// rigid-body contact sources in an arena.Arena; this package defines
// no contact generator type or set of its own.
type GeneratorHandle = arena.Handle

func velocityAtPoint(rb *body.RigidBody, point vecmath.Vec3) vecmath.Vec3 {
	rel := point.Sub(rb.Position)
	return rb.Velocity.Add(rb.AngularVelocity.Cross(rel))
}

// angularInertia returns (r x n)^T . I^-1_world . (r x n), the
// rotational contribution a body at contact point with relative
// offset r makes to the impulse denominator for normal n.
func angularInertia(rb *body.RigidBody, relativeContactPosition, normal vecmath.Vec3) vecmath.Real {
	torquePerUnitImpulse := relativeContactPosition.Cross(normal)
	rotationPerUnitImpulse := rb.InverseInertiaTensorWorld().Transform(torquePerUnitImpulse)
	velocityPerUnitImpulse := rotationPerUnitImpulse.Cross(relativeContactPosition)
	return velocityPerUnitImpulse.Dot(normal)
}

func (c *Contact) separatingVelocity(bodies *body.Set) vecmath.Real {
	a, _ := bodies.Get(c.BodyA)
	rel := velocityAtPoint(a, c.Point)
	if c.HasB {
		b, _ := bodies.Get(c.BodyB)
		rel = rel.Sub(velocityAtPoint(b, c.Point))
	}
	return rel.Dot(c.Normal)
}

func (c *Contact) resolveVelocity(bodies *body.Set, duration vecmath.Real) {
	sv := c.separatingVelocity(bodies)
	if sv >= 0 {
		return
	}

	a, _ := bodies.Get(c.BodyA)
	var b *body.RigidBody
	if c.HasB {
		b, _ = bodies.Get(c.BodyB)
	}

	newSv := -c.Restitution * sv

	accCausedVelocity := a.LastFrameAcceleration
	if b != nil {
		accCausedVelocity = accCausedVelocity.Sub(b.LastFrameAcceleration)
	}
	accCausedSep := accCausedVelocity.Dot(c.Normal) * duration
	if accCausedSep < 0 {
		newSv += c.Restitution * accCausedSep
		if newSv < 0 {
			newSv = 0
		}
	}

	deltaVelocity := newSv - sv

	relA := c.Point.Sub(a.Position)
	denominator := a.InverseMass + angularInertia(a, relA, c.Normal)

	var relB vecmath.Vec3
	if b != nil {
		relB = c.Point.Sub(b.Position)
		denominator += b.InverseMass + angularInertia(b, relB, c.Normal)
	}
	if denominator <= 0 {
		return
	}

	impulse := deltaVelocity / denominator
	impulseVector := c.Normal.Scale(impulse)

	applyImpulse(a, impulseVector, relA)
	if b != nil {
		applyImpulse(b, impulseVector.Neg(), relB)
	}
}

func applyImpulse(rb *body.RigidBody, impulse, relativeContactPosition vecmath.Vec3) {
	if rb.InverseMass <= 0 {
		return
	}
	rb.Velocity = rb.Velocity.AddScaled(impulse, rb.InverseMass)
	angularImpulse := relativeContactPosition.Cross(impulse)
	rotationChange := rb.InverseInertiaTensorWorld().Transform(angularImpulse)
	rb.AngularVelocity = rb.AngularVelocity.Add(rotationChange)
}

func (c *Contact) resolveInterpenetration(bodies *body.Set) {
	if c.Penetration <= 0 {
		return
	}

	a, _ := bodies.Get(c.BodyA)
	var b *body.RigidBody
	if c.HasB {
		b, _ = bodies.Get(c.BodyB)
	}

	totalInverseMass := a.InverseMass
	if b != nil {
		totalInverseMass += b.InverseMass
	}
	if totalInverseMass <= 0 {
		return
	}

	movePerIMass := c.Normal.Scale(c.Penetration / totalInverseMass)

	c.BodyAMovement = movePerIMass.Scale(a.InverseMass)
	a.Position = a.Position.Add(c.BodyAMovement)
	a.UpdateDerivedData()

	if b != nil {
		c.BodyBMovement = movePerIMass.Scale(-b.InverseMass)
		b.Position = b.Position.Add(c.BodyBMovement)
		b.UpdateDerivedData()
	} else {
		c.BodyBMovement = vecmath.Zero
	}
}

// Resolver sequentially settles a batch of contacts, always resolving
// whichever single contact is currently worst, recomputing every
// contact's separating velocity before each resolution. Iterations
// is the hard cap on how many contacts get resolved per call.
type Resolver struct {
	Iterations     int
	IterationsUsed int
}

func NewResolver(iterations int) *Resolver {
	return &Resolver{Iterations: iterations}
}

// Resolve settles contacts against bodies for one step of duration,
// picking the most-negative-separating-velocity contact each
// iteration, falling back to any contact with positive penetration,
// and stopping once neither condition holds or Iterations is spent.
func (r *Resolver) Resolve(contacts []Contact, bodies *body.Set, duration vecmath.Real) {
	r.IterationsUsed = 0
	iterations := r.Iterations

	for r.IterationsUsed < iterations {
		worst := -1
		worstSv := vecmath.Real(0)

		for i := range contacts {
			sv := contacts[i].separatingVelocity(bodies)
			if sv < worstSv || (worst == -1 && contacts[i].Penetration > 0) {
				worstSv = sv
				worst = i
			}
		}

		if worst == -1 {
			break
		}

		contacts[worst].resolveVelocity(bodies, duration)
		contacts[worst].resolveInterpenetration(bodies)
		r.IterationsUsed++
	}
}
