package particle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-labs/cyclone/vecmath"
)

func TestNewPanicsOnZeroMass(t *testing.T) {
	assert.Panics(t, func() { New(0) })
}

func TestNewInfiniteMassIsImmovable(t *testing.T) {
	p := New(vecmath.Real(math.Inf(1)))
	assert.Equal(t, vecmath.Real(0), p.InverseMass)
	assert.True(t, math.IsInf(float64(p.Mass()), 1))
}

func TestWithDampingPanicsOutOfRange(t *testing.T) {
	p := New(1)
	assert.Panics(t, func() { p.WithDamping(1.1) })
	assert.Panics(t, func() { p.WithDamping(-0.1) })
}

func TestImmovableParticleIgnoresIntegrate(t *testing.T) {
	p := New(vecmath.Real(math.Inf(1))).WithPosition(vecmath.Vec3{X: 1, Y: 2, Z: 3})
	p.AddForce(vecmath.Vec3{X: 100, Y: 0, Z: 0})
	p.Integrate(1.0 / 60)
	assert.Equal(t, vecmath.Vec3{X: 1, Y: 2, Z: 3}, p.Position)
}

// Scenario 1: free-fall particle.
func TestFreeFallParticle(t *testing.T) {
	p := New(1).
		WithPosition(vecmath.Vec3{X: 0, Y: 10, Z: 0}).
		WithAcceleration(vecmath.Vec3{X: 0, Y: -9.81, Z: 0}).
		WithDamping(1)

	dt := vecmath.Real(1.0 / 60)
	prevY := p.Position.Y
	for i := 0; i < 60; i++ {
		p.Integrate(dt)
		assert.LessOrEqual(t, p.Position.Y, prevY, "height must decrease monotonically under free fall")
		prevY = p.Position.Y
	}

	want := 10 - 0.5*9.81*1.0*1.0
	assert.InDelta(t, want, float64(p.Position.Y), 0.05*math.Abs(want))
	assert.Less(t, p.Position.Y, vecmath.Real(10))
}

// Integrating with damping=1, acceleration=0, force=0 from (p,v) for
// total time T in k uniform substeps yields p + v*T independent of k.
func TestIntegrateSubstepIndependence(t *testing.T) {
	const totalTime = vecmath.Real(1.0)
	start := vecmath.Vec3{X: 1, Y: 2, Z: 3}
	velocity := vecmath.Vec3{X: 0.5, Y: -1, Z: 2}

	run := func(substeps int) vecmath.Vec3 {
		p := New(1).WithPosition(start).WithVelocity(velocity).WithDamping(1)
		dt := totalTime / vecmath.Real(substeps)
		for i := 0; i < substeps; i++ {
			p.Integrate(dt)
		}
		return p.Position
	}

	want := start.AddScaled(velocity, totalTime)

	for _, k := range []int{1, 4, 10, 60} {
		got := run(k)
		require.InDelta(t, float64(want.X), float64(got.X), 1e-9, "k=%d", k)
		require.InDelta(t, float64(want.Y), float64(got.Y), 1e-9, "k=%d", k)
		require.InDelta(t, float64(want.Z), float64(got.Z), 1e-9, "k=%d", k)
	}
}

func TestKineticEnergy(t *testing.T) {
	p := New(2).WithVelocity(vecmath.Vec3{X: 3, Y: 0, Z: 0})
	assert.InDelta(t, 0.5*2*9, float64(p.KineticEnergy()), 1e-9)
}

func TestKineticEnergyImmovableSaturates(t *testing.T) {
	p := New(vecmath.Real(math.Inf(1)))
	assert.Equal(t, vecmath.Real(math.MaxFloat64), p.KineticEnergy())
}

func TestSetInsertAndGet(t *testing.T) {
	s := NewSet()
	h := s.Insert(*New(1))
	got, ok := s.Get(h)
	require.True(t, ok)
	assert.Equal(t, vecmath.Real(1), got.Mass())
}
