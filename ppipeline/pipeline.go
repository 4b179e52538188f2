// Package ppipeline ties the particle subsystem together:
// force application, integration, contact generation, and
// resolution, driven one fixed step at a time.
package ppipeline

import (
	"github.com/fenwick-labs/cyclone/particle"
	"github.com/fenwick-labs/cyclone/pcontact"
	"github.com/fenwick-labs/cyclone/pfgen"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// Pipeline owns a pre-allocated contact scratch buffer, a force
// registry, and a resolver, and drives one step of the particle
// subsystem at a time.
type Pipeline struct {
	Forces   *pfgen.Registry
	resolver *pcontact.Resolver

	contacts             []pcontact.Contact
	contactsUsed         int
	calculateIterations bool
}

// New allocates a pipeline with room for maxContacts contacts per
// step. If iterations is 0, the resolver's iteration cap is
// recomputed each step as 2*contactsUsed.
func New(maxContacts, iterations int) *Pipeline {
	return &Pipeline{
		Forces:              pfgen.NewRegistry(),
		resolver:            pcontact.NewResolver(iterations),
		contacts:            make([]pcontact.Contact, maxContacts),
		calculateIterations: iterations == 0,
	}
}

// StartFrame clears every particle's force accumulator, called once
// before any force generator runs.
func (p *Pipeline) StartFrame(particles *particle.Set) {
	for _, pp := range particles.Values() {
		pp.ClearAccumulator()
	}
}

// GenerateContacts asks a single contact generator to fill the
// unused suffix of the scratch buffer. It is a no-op once the buffer
// is full; additional contacts are silently dropped, per the
// contact-buffer-full failure mode.
func (p *Pipeline) GenerateContacts(cg pcontact.ContactGenerator, particles *particle.Set) {
	free := p.contacts[p.contactsUsed:]
	if len(free) == 0 {
		return
	}
	used := cg.AddContacts(free, particles)
	p.contactsUsed += used
}

// Step applies registered forces, integrates every particle, then
// resolves whatever contacts were generated since the last Step, and
// resets the contact buffer for the next frame.
func (p *Pipeline) Step(particles *particle.Set, duration vecmath.Real) {
	p.Forces.UpdateForces(particles, duration)

	for _, pp := range particles.Values() {
		pp.Integrate(duration)
	}

	if p.contactsUsed > 0 {
		if p.calculateIterations {
			p.resolver.Iterations = p.contactsUsed * 2
		}
		p.resolver.Resolve(p.contacts[:p.contactsUsed], particles, duration)
	}
	p.contactsUsed = 0
}
