// Package particle implements the point-mass subsystem: a Particle
// integrates position and velocity under an accumulated force plus a
// constant per-frame acceleration bias (typically gravity), with
// exponential velocity damping for frame-rate-independent decay.
package particle

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/fenwick-labs/cyclone/arena"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// Particle is a point mass: position, velocity, a constant
// acceleration bias, exponential damping, and inverse mass (zero for
// an immovable/infinite-mass particle).
type Particle struct {
	Position     vecmath.Vec3
	Velocity     vecmath.Vec3
	Acceleration vecmath.Vec3
	Damping      vecmath.Real
	InverseMass  vecmath.Real

	forceAccum vecmath.Vec3

	// Name and ID are cosmetic: never read by Integrate, AddForce, or
	// any resolver. They exist for test failure messages and demo
	// overlays that want to say which particle misbehaved.
	Name string
	ID   uuid.UUID
}

// New constructs a particle with the given mass. mass must not be
// zero; an infinite mass is requested with math.Inf(1), which yields
// an inverse mass of zero (immovable).
func New(mass vecmath.Real) *Particle {
	if mass == 0 {
		panic("particle: mass must be non-zero")
	}
	inv := vecmath.Real(0)
	if !math.IsInf(float64(mass), 1) {
		inv = 1 / mass
	}
	return &Particle{
		Damping:     0.99,
		InverseMass: inv,
		ID:          uuid.New(),
	}
}

// WithPosition, WithVelocity, WithAcceleration, WithDamping, and
// WithName are small builder-style helpers mirroring the
// distilled original's with_* constructors.
func (p *Particle) WithPosition(v vecmath.Vec3) *Particle     { p.Position = v; return p }
func (p *Particle) WithVelocity(v vecmath.Vec3) *Particle     { p.Velocity = v; return p }
func (p *Particle) WithAcceleration(v vecmath.Vec3) *Particle { p.Acceleration = v; return p }
func (p *Particle) WithName(name string) *Particle            { p.Name = name; return p }

func (p *Particle) WithDamping(d vecmath.Real) *Particle {
	if d < 0 || d > 1 {
		panic(fmt.Sprintf("particle: damping must be in [0,1], got %v", d))
	}
	p.Damping = d
	return p
}

// Mass returns the particle's mass, or +Inf if it is immovable.
func (p *Particle) Mass() vecmath.Real {
	if p.InverseMass == 0 {
		return vecmath.Real(math.Inf(1))
	}
	return 1 / p.InverseMass
}

// AddForce accumulates a force to be applied on the next Integrate.
func (p *Particle) AddForce(force vecmath.Vec3) {
	p.forceAccum = p.forceAccum.Add(force)
}

// ClearAccumulator zeroes the accumulated force without integrating.
func (p *Particle) ClearAccumulator() { p.forceAccum = vecmath.Zero }

// Integrate advances position and velocity by duration. Immovable
// particles (InverseMass <= 0) are left untouched. duration must be
// strictly positive.
func (p *Particle) Integrate(duration vecmath.Real) {
	if p.InverseMass <= 0 {
		return
	}
	if duration <= 0 {
		panic("particle: Integrate requires duration > 0")
	}

	p.Position = p.Position.AddScaled(p.Velocity, duration)

	resultingAcc := p.Acceleration.AddScaled(p.forceAccum, p.InverseMass)

	damping := vecmath.Real(math.Pow(float64(p.Damping), float64(duration)))
	p.Velocity = p.Velocity.Scale(damping).AddScaled(resultingAcc, duration)

	p.ClearAccumulator()
}

// KineticEnergy returns 0.5*m*v². An immovable particle (infinite
// mass) reports the maximum representable value rather than +Inf,
// matching the distilled original's saturating behavior.
func (p *Particle) KineticEnergy() vecmath.Real {
	if p.InverseMass == 0 {
		return vecmath.Real(math.MaxFloat64)
	}
	v2 := p.Velocity.SquaredMagnitude()
	return 0.5 * p.Mass() * v2
}

// Handle addresses a Particle stored in a Set.
type Handle = arena.Handle

// Set is a generational arena of particles.
type Set struct {
	arena.Arena[Particle]
}

func NewSet() *Set { return &Set{} }
