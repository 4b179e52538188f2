package pcontact

import "github.com/fenwick-labs/cyclone/particle"
import "github.com/fenwick-labs/cyclone/vecmath"

// Resolver settles a batch of contacts sequentially, worst-first,
// capped at Iterations. If Iterations is zero, Resolve auto-tunes it
// to 2*len(contacts) for that call.
//
// Each iteration is two distinct passes: first scan every contact to
// find the worst one (most negative separating velocity, or failing
// that, any with positive penetration), then resolve exactly that
// one contact and advance the iteration count. One revision of the
// distilled original resolves every contact it scans on the way to
// finding the worst one instead of stopping at the worst — that
// collapses the "worst first" ordering into "natural order", which is
// the bug this two-pass structure avoids.
type Resolver struct {
	Iterations     int
	IterationsUsed int
}

func NewResolver(iterations int) *Resolver {
	return &Resolver{Iterations: iterations}
}

// Resolve settles every contact in contacts in place.
func (r *Resolver) Resolve(contacts []Contact, particles *particle.Set, duration vecmath.Real) {
	if len(contacts) == 0 {
		return
	}

	iterations := r.Iterations
	if iterations == 0 {
		iterations = len(contacts) * 2
	}

	r.IterationsUsed = 0
	for r.IterationsUsed < iterations {
		worst := -1
		worstSv := vecmath.Real(0)

		for i := range contacts {
			sv := contacts[i].separatingVelocity(particles)
			if sv < worstSv || (worst == -1 && contacts[i].Penetration > 0) {
				worstSv = sv
				worst = i
			}
		}

		if worst == -1 {
			break
		}

		contacts[worst].resolveVelocity(particles, duration)
		contacts[worst].resolveInterpenetration(particles)

		r.IterationsUsed++
	}
}
