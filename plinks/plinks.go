// Package plinks implements the particle contact generators that
// model links between particles: cables and rods (between two
// particles or between a particle and a fixed anchor), plus a ground
// collider.
package plinks

import (
	"github.com/fenwick-labs/cyclone/particle"
	"github.com/fenwick-labs/cyclone/pcontact"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// Cable reports a contact once the distance between two particles
// reaches MaxLength, pulling them back together (it never pushes).
type Cable struct {
	ParticleA, ParticleB particle.Handle
	MaxLength            vecmath.Real
	Restitution          vecmath.Real
}

func (c *Cable) AddContacts(out []pcontact.Contact, particles *particle.Set) int {
	if len(out) == 0 {
		return 0
	}
	pa, ok := particles.Get(c.ParticleA)
	if !ok {
		return 0
	}
	pb, ok := particles.Get(c.ParticleB)
	if !ok {
		return 0
	}

	length := pa.Position.DistanceTo(pb.Position)
	if length < c.MaxLength {
		return 0
	}

	out[0] = pcontact.Contact{
		ParticleA:   c.ParticleA,
		ParticleB:   c.ParticleB,
		HasB:        true,
		Normal:      pa.Position.DirectionTo(pb.Position),
		Penetration: length - c.MaxLength,
		Restitution: c.Restitution,
	}
	return 1
}

// Rod holds two particles at an exact Length, correcting in whichever
// direction is needed (pushing apart if compressed, pulling together
// if stretched). Its contacts always carry Restitution 0.
type Rod struct {
	ParticleA, ParticleB particle.Handle
	Length               vecmath.Real
}

func (r *Rod) AddContacts(out []pcontact.Contact, particles *particle.Set) int {
	if len(out) == 0 {
		return 0
	}
	pa, ok := particles.Get(r.ParticleA)
	if !ok {
		return 0
	}
	pb, ok := particles.Get(r.ParticleB)
	if !ok {
		return 0
	}

	currentLength := pa.Position.DistanceTo(pb.Position)
	if currentLength == r.Length {
		return 0
	}

	normal := pa.Position.DirectionTo(pb.Position)
	penetration := currentLength - r.Length
	if currentLength < r.Length {
		normal = normal.Neg()
		penetration = -penetration
	}

	out[0] = pcontact.Contact{
		ParticleA:   r.ParticleA,
		ParticleB:   r.ParticleB,
		HasB:        true,
		Normal:      normal,
		Penetration: penetration,
		Restitution: 0,
	}
	return 1
}

// AnchoredCable is a Cable anchored to a fixed world point rather
// than a second particle.
type AnchoredCable struct {
	Particle    particle.Handle
	Anchor      vecmath.Vec3
	MaxLength   vecmath.Real
	Restitution vecmath.Real
}

func (c *AnchoredCable) AddContacts(out []pcontact.Contact, particles *particle.Set) int {
	if len(out) == 0 {
		return 0
	}
	p, ok := particles.Get(c.Particle)
	if !ok {
		return 0
	}

	length := p.Position.DistanceTo(c.Anchor)
	if length < c.MaxLength {
		return 0
	}

	out[0] = pcontact.Contact{
		ParticleA:   c.Particle,
		HasB:        false,
		Normal:      p.Position.DirectionTo(c.Anchor),
		Penetration: length - c.MaxLength,
		Restitution: c.Restitution,
	}
	return 1
}

// AnchoredRod is a Rod anchored to a fixed world point.
type AnchoredRod struct {
	Particle particle.Handle
	Anchor   vecmath.Vec3
	Length   vecmath.Real
}

func (r *AnchoredRod) AddContacts(out []pcontact.Contact, particles *particle.Set) int {
	if len(out) == 0 {
		return 0
	}
	p, ok := particles.Get(r.Particle)
	if !ok {
		return 0
	}

	currentLength := p.Position.DistanceTo(r.Anchor)
	if currentLength == r.Length {
		return 0
	}

	normal := p.Position.DirectionTo(r.Anchor)
	penetration := currentLength - r.Length
	if currentLength < r.Length {
		normal = normal.Neg()
		penetration = -penetration
	}

	out[0] = pcontact.Contact{
		ParticleA:   r.Particle,
		HasB:        false,
		Normal:      normal,
		Penetration: penetration,
		Restitution: 0,
	}
	return 1
}

// GroundCollider keeps a particle from sinking below a flat ground
// plane at Y=0, treating the particle as a sphere of ParticleRadius.
//
// Penetration is computed as radius - y (positive = interpenetrating,
// which is the convention the resolver expects). One revision of the
// distilled original computes y - radius instead, which inverts the
// sign and would make the resolver push particles the wrong way.
type GroundCollider struct {
	Particle       particle.Handle
	ParticleRadius vecmath.Real
	Restitution    vecmath.Real
}

func (g *GroundCollider) AddContacts(out []pcontact.Contact, particles *particle.Set) int {
	if len(out) == 0 {
		return 0
	}
	p, ok := particles.Get(g.Particle)
	if !ok {
		return 0
	}

	if p.Position.Y > g.ParticleRadius {
		return 0
	}

	out[0] = pcontact.Contact{
		ParticleA:   g.Particle,
		HasB:        false,
		Normal:      vecmath.UnitY,
		Penetration: g.ParticleRadius - p.Position.Y,
		Restitution: g.Restitution,
	}
	return 1
}
