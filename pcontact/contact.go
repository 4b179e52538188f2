// Package pcontact implements particle contacts and their sequential
// worst-first resolver. Contacts are produced by ContactGenerator
// implementations (see plinks) and settled by Resolver.Resolve.
package pcontact

import (
	"github.com/fenwick-labs/cyclone/arena"
	"github.com/fenwick-labs/cyclone/particle"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// Contact describes one particle touching or interpenetrating
// another (or an implicit immovable surface, when ParticleB is the
// zero handle).
type Contact struct {
	ParticleA particle.Handle
	ParticleB particle.Handle // zero handle => single-body contact
	HasB      bool

	Restitution vecmath.Real
	Normal      vecmath.Vec3
	Penetration vecmath.Real

	// ParticleAMovement and ParticleBMovement are filled in by
	// ResolveInterpenetration; a contact generator that wants to
	// re-evaluate itself after resolution (not needed by any
	// generator in this repository) can read them back.
	ParticleAMovement vecmath.Vec3
	ParticleBMovement vecmath.Vec3
}

// ContactGenerator reports contacts into the caller-owned out slice
// and returns how many it wrote. It must never write past len(out).
type ContactGenerator interface {
	AddContacts(out []Contact, particles *particle.Set) int
}

// GeneratorHandle addresses a ContactGenerator stored in a Set.
type GeneratorHandle = arena.Handle

// Set is a generational arena of contact generators.
type Set struct {
	arena.Arena[ContactGenerator]
}

func NewSet() *Set { return &Set{} }

func (c *Contact) separatingVelocity(particles *particle.Set) vecmath.Real {
	pa, _ := particles.Get(c.ParticleA)
	rel := pa.Velocity
	if c.HasB {
		pb, _ := particles.Get(c.ParticleB)
		rel = rel.Sub(pb.Velocity)
	}
	return rel.Dot(c.Normal)
}

func (c *Contact) resolveVelocity(particles *particle.Set, duration vecmath.Real) {
	sv := c.separatingVelocity(particles)
	if sv >= 0 {
		return
	}

	pa, _ := particles.Get(c.ParticleA)
	var pb *particle.Particle
	if c.HasB {
		pb, _ = particles.Get(c.ParticleB)
	}

	newSv := -c.Restitution * sv

	// Suppress resting-contact jitter caused by this frame's
	// acceleration bias (gravity): subtract the component of sv that
	// the bias alone would have produced, clamped so it never adds
	// energy.
	accCausedVelocity := pa.Acceleration
	if pb != nil {
		accCausedVelocity = accCausedVelocity.Sub(pb.Acceleration)
	}
	accCausedSep := accCausedVelocity.Dot(c.Normal) * duration
	if accCausedSep < 0 {
		newSv += c.Restitution * accCausedSep
		if newSv < 0 {
			newSv = 0
		}
	}

	deltaVelocity := newSv - sv

	totalInverseMass := pa.InverseMass
	if pb != nil {
		totalInverseMass += pb.InverseMass
	}
	if totalInverseMass <= 0 {
		return
	}

	impulse := deltaVelocity / totalInverseMass
	impulsePerIMass := c.Normal.Scale(impulse)

	pa.Velocity = pa.Velocity.AddScaled(impulsePerIMass, pa.InverseMass)
	if pb != nil {
		pb.Velocity = pb.Velocity.AddScaled(impulsePerIMass, -pb.InverseMass)
	}
}

func (c *Contact) resolveInterpenetration(particles *particle.Set) {
	if c.Penetration <= 0 {
		return
	}

	pa, _ := particles.Get(c.ParticleA)
	var pb *particle.Particle
	if c.HasB {
		pb, _ = particles.Get(c.ParticleB)
	}

	totalInverseMass := pa.InverseMass
	if pb != nil {
		totalInverseMass += pb.InverseMass
	}
	if totalInverseMass <= 0 {
		return
	}

	movePerIMass := c.Normal.Scale(c.Penetration / totalInverseMass)

	c.ParticleAMovement = movePerIMass.Scale(pa.InverseMass)
	pa.Position = pa.Position.Add(c.ParticleAMovement)

	if pb != nil {
		c.ParticleBMovement = movePerIMass.Scale(-pb.InverseMass)
		pb.Position = pb.Position.Add(c.ParticleBMovement)
	} else {
		c.ParticleBMovement = vecmath.Zero
	}
}
