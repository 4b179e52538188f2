// Package pfgen implements the particle force generators: springs
// (two-body and anchored), bungees, and buoyancy. Each is an
// independent value type dispatched through the ForceGenerator
// capability rather than a class hierarchy.
package pfgen

import (
	"github.com/fenwick-labs/cyclone/particle"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// ForceGenerator applies a force to one particle for one integration
// step. Implementations look up their own other endpoint (another
// particle, a fixed anchor) from their own fields.
type ForceGenerator interface {
	UpdateForce(particles *particle.Set, p particle.Handle, duration vecmath.Real)
}

// Spring pulls a particle toward another particle along Hooke's law.
type Spring struct {
	Other          particle.Handle
	SpringConstant vecmath.Real
	RestLength     vecmath.Real
}

func (s *Spring) UpdateForce(particles *particle.Set, h particle.Handle, duration vecmath.Real) {
	self, ok := particles.Get(h)
	if !ok {
		return
	}
	other, ok := particles.Get(s.Other)
	if !ok {
		return
	}

	force := self.Position.Sub(other.Position)
	magnitude := force.Magnitude()
	magnitude = absR(magnitude-s.RestLength) * s.SpringConstant

	force = force.Normalized().Scale(-magnitude)
	self.AddForce(force)
}

// AnchoredSpring pulls a particle toward a fixed world-space point.
type AnchoredSpring struct {
	Anchor         vecmath.Vec3
	SpringConstant vecmath.Real
	RestLength     vecmath.Real
}

func (s *AnchoredSpring) UpdateForce(particles *particle.Set, h particle.Handle, duration vecmath.Real) {
	self, ok := particles.Get(h)
	if !ok {
		return
	}

	force := self.Position.Sub(s.Anchor)
	magnitude := force.Magnitude()
	magnitude = absR(magnitude-s.RestLength) * s.SpringConstant

	force = force.Normalized().Scale(-magnitude)
	self.AddForce(force)
}

// Bungee behaves like Spring but only pulls, never pushes: below
// rest length it contributes no force at all.
type Bungee struct {
	Other          particle.Handle
	SpringConstant vecmath.Real
	RestLength     vecmath.Real
}

func (s *Bungee) UpdateForce(particles *particle.Set, h particle.Handle, duration vecmath.Real) {
	self, ok := particles.Get(h)
	if !ok {
		return
	}
	other, ok := particles.Get(s.Other)
	if !ok {
		return
	}

	force := self.Position.Sub(other.Position)
	length := force.Magnitude()
	if length <= s.RestLength {
		return
	}

	magnitude := s.SpringConstant * (length - s.RestLength)
	force = force.Normalized().Scale(-magnitude)
	self.AddForce(force)
}

// Buoyancy applies an upward force proportional to how much of a
// submerged volume is below the liquid's surface plane (assumed
// horizontal, at LiquidHeight along +Y).
type Buoyancy struct {
	MaxDepth      vecmath.Real
	Volume        vecmath.Real
	LiquidHeight  vecmath.Real
	LiquidDensity vecmath.Real
}

// NewBuoyancy mirrors the distilled original's constructor, defaulting
// LiquidDensity to water's (1000 kg/m³).
func NewBuoyancy(maxDepth, volume, liquidHeight vecmath.Real) *Buoyancy {
	return &Buoyancy{
		MaxDepth:      maxDepth,
		Volume:        volume,
		LiquidHeight:  liquidHeight,
		LiquidDensity: 1000,
	}
}

func (b *Buoyancy) UpdateForce(particles *particle.Set, h particle.Handle, duration vecmath.Real) {
	self, ok := particles.Get(h)
	if !ok {
		return
	}

	depth := self.Position.Y
	if depth >= b.LiquidHeight+b.MaxDepth {
		return
	}

	force := vecmath.Vec3{}
	if depth <= b.LiquidHeight-b.MaxDepth {
		force.Y = b.LiquidDensity * b.Volume
	} else {
		submersion := (b.LiquidHeight - depth + b.MaxDepth) / (2 * b.MaxDepth)
		force.Y = b.LiquidDensity * b.Volume * submersion
	}

	self.AddForce(force)
}

func absR(x vecmath.Real) vecmath.Real {
	if x < 0 {
		return -x
	}
	return x
}
