package pcontact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-labs/cyclone/particle"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// Scenario 2: head-on elastic sphere particles.
func TestHeadOnElasticCollisionSwapsVelocities(t *testing.T) {
	set := particle.NewSet()
	a := set.Insert(*particle.New(1).WithPosition(vecmath.Vec3{X: -1, Y: 0, Z: 0}).WithVelocity(vecmath.Vec3{X: 1, Y: 0, Z: 0}))
	b := set.Insert(*particle.New(1).WithPosition(vecmath.Vec3{X: 1, Y: 0, Z: 0}).WithVelocity(vecmath.Vec3{X: -1, Y: 0, Z: 0}))

	contact := Contact{
		ParticleA:   a,
		ParticleB:   b,
		HasB:        true,
		Restitution: 1,
		Normal:      vecmath.Vec3{X: -1, Y: 0, Z: 0},
		Penetration: 0,
	}

	resolver := NewResolver(10)
	resolver.Resolve([]Contact{contact}, set, 1.0/60)

	pa, _ := set.Get(a)
	pb, _ := set.Get(b)
	assert.InDelta(t, -1, float64(pa.Velocity.X), 1e-9)
	assert.InDelta(t, 1, float64(pb.Velocity.X), 1e-9)

	sv := pa.Velocity.Sub(pb.Velocity).Dot(contact.Normal)
	assert.GreaterOrEqual(t, float64(sv), -1e-9)
}

// Resolver: after one iteration, the selected contact has separating
// velocity >= 0 along its normal.
func TestResolverPostResolveNonNegativeSeparatingVelocity(t *testing.T) {
	set := particle.NewSet()
	a := set.Insert(*particle.New(1).WithVelocity(vecmath.Vec3{X: -2, Y: 0, Z: 0}))
	b := set.Insert(*particle.New(1).WithPosition(vecmath.Vec3{X: 1, Y: 0, Z: 0}))

	contact := Contact{
		ParticleA:   a,
		ParticleB:   b,
		HasB:        true,
		Restitution: 0.5,
		Normal:      vecmath.Vec3{X: 1, Y: 0, Z: 0},
		Penetration: 0,
	}
	contacts := []Contact{contact}

	resolver := NewResolver(1)
	resolver.Resolve(contacts, set, 1.0/60)

	sv := contacts[0].separatingVelocity(set)
	assert.GreaterOrEqual(t, float64(sv), -1e-9)
}

func TestResolveInterpenetrationDistributesByInverseMass(t *testing.T) {
	set := particle.NewSet()
	a := set.Insert(*particle.New(1).WithPosition(vecmath.Zero))
	b := set.Insert(*particle.New(2).WithPosition(vecmath.Vec3{X: 1, Y: 0, Z: 0}))

	contacts := []Contact{{
		ParticleA:   a,
		ParticleB:   b,
		HasB:        true,
		Normal:      vecmath.Vec3{X: 1, Y: 0, Z: 0},
		Penetration: 0.3,
	}}

	resolver := NewResolver(1)
	resolver.Resolve(contacts, set, 1.0/60)

	pa, _ := set.Get(a)
	pb, _ := set.Get(b)
	// a has twice the inverse mass of b, so a should move twice as far.
	require.InDelta(t, 2*pb.Position.Sub(vecmath.Vec3{X: 1, Y: 0, Z: 0}).Magnitude(), pa.Position.Magnitude(), 1e-6)
}

func TestResolverStopsWhenNoContactQualifies(t *testing.T) {
	set := particle.NewSet()
	a := set.Insert(*particle.New(1).WithVelocity(vecmath.Vec3{X: 1, Y: 0, Z: 0}))
	b := set.Insert(*particle.New(1).WithPosition(vecmath.Vec3{X: 5, Y: 0, Z: 0}))

	contacts := []Contact{{
		ParticleA:   a,
		ParticleB:   b,
		HasB:        true,
		Restitution: 1,
		Normal:      vecmath.Vec3{X: 1, Y: 0, Z: 0},
		Penetration: 0,
	}}

	resolver := NewResolver(10)
	resolver.Resolve(contacts, set, 1.0/60)
	assert.Equal(t, 0, resolver.IterationsUsed, "separating contact with no penetration should not be resolved")
}
