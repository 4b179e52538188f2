package pfgen

import (
	"github.com/fenwick-labs/cyclone/arena"
	"github.com/fenwick-labs/cyclone/particle"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// GeneratorHandle addresses a ForceGenerator stored in a Set.
type GeneratorHandle = arena.Handle

// Set is a generational arena of force generators, holding the
// generator values themselves (as opposed to Registry, which pairs a
// stored generator with the particle it acts on).
type Set struct {
	arena.Arena[ForceGenerator]
}

func NewSet() *Set { return &Set{} }

type registration struct {
	particle  particle.Handle
	generator ForceGenerator
}

// Registry pairs particles with the force generators that act on
// them and applies all of them once per frame, the way
// ppipeline.Pipeline.Step does before integration.
type Registry struct {
	registrations []registration
}

func NewRegistry() *Registry { return &Registry{} }

// Register adds a (particle, generator) pairing.
func (r *Registry) Register(p particle.Handle, g ForceGenerator) {
	r.registrations = append(r.registrations, registration{particle: p, generator: g})
}

// Unregister removes the first pairing matching both p and g exactly.
func (r *Registry) Unregister(p particle.Handle, g ForceGenerator) {
	for i, reg := range r.registrations {
		if reg.particle == p && reg.generator == g {
			last := len(r.registrations) - 1
			r.registrations[i] = r.registrations[last]
			r.registrations = r.registrations[:last]
			return
		}
	}
}

// UpdateForces calls UpdateForce on every registered pairing.
func (r *Registry) UpdateForces(particles *particle.Set, duration vecmath.Real) {
	for _, reg := range r.registrations {
		reg.generator.UpdateForce(particles, reg.particle, duration)
	}
}
