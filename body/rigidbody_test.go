package body

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-labs/cyclone/vecmath"
)

func cubeInertia(mass, side vecmath.Real) vecmath.Mat3 {
	i := mass * side * side / 6
	return vecmath.Diag3(i, i, i)
}

func TestNewPanicsOnZeroMass(t *testing.T) {
	assert.Panics(t, func() { New(0, cubeInertia(1, 1)) })
}

func TestNewNormalizesOrientationAndDerivesTransform(t *testing.T) {
	rb := New(1, cubeInertia(1, 1))
	assert.True(t, rb.Orientation.IsNormalized())
	assert.Equal(t, vecmath.IdentityMat4, rb.TransformMatrix())
}

func TestImmovableBodyIgnoresIntegrate(t *testing.T) {
	rb := New(vecmath.Real(math.Inf(1)), cubeInertia(1, 1))
	rb.Position = vecmath.Vec3{X: 1, Y: 2, Z: 3}
	rb.UpdateDerivedData()
	rb.AddForce(vecmath.Vec3{X: 100, Y: 0, Z: 0})
	rb.Integrate(1.0 / 60)
	assert.Equal(t, vecmath.Vec3{X: 1, Y: 2, Z: 3}, rb.Position)
}

func TestAddForceAtPointWakesAndAppliesTorque(t *testing.T) {
	rb := New(1, cubeInertia(1, 1))
	rb.Sleep()
	require.False(t, rb.Awake)

	rb.AddForceAtPoint(vecmath.Vec3{X: 0, Y: 1, Z: 0}, vecmath.Vec3{X: 1, Y: 0, Z: 0})
	assert.True(t, rb.Awake)

	rb.Integrate(1.0 / 60)
	assert.NotEqual(t, vecmath.Zero, rb.AngularVelocity, "off-center force should induce rotation")
}

func TestIntegrateGravityFreeFall(t *testing.T) {
	rb := New(1, cubeInertia(1, 1))
	rb.Acceleration = vecmath.Vec3{X: 0, Y: -9.81, Z: 0}
	rb.LinearDamping = 1
	rb.AngularDamping = 1

	dt := vecmath.Real(1.0 / 60)
	for i := 0; i < 60; i++ {
		rb.Integrate(dt)
	}

	want := -0.5 * 9.81 * 1.0 * 1.0
	assert.InDelta(t, want, float64(rb.Position.Y), 0.05*math.Abs(want))
}

func TestGetPointInWorldAndLocalSpaceRoundTrip(t *testing.T) {
	rb := New(1, cubeInertia(1, 1))
	rb.Position = vecmath.Vec3{X: 1, Y: 2, Z: 3}
	rb.UpdateDerivedData()

	local := vecmath.Vec3{X: 0.5, Y: -0.5, Z: 0.25}
	world := rb.GetPointInWorldSpace(local)
	back := rb.GetPointInLocalSpace(world)

	assert.InDelta(t, float64(local.X), float64(back.X), 1e-6)
	assert.InDelta(t, float64(local.Y), float64(back.Y), 1e-6)
	assert.InDelta(t, float64(local.Z), float64(back.Z), 1e-6)
}

func TestSetInertiaTensorUpdatesWorldInverse(t *testing.T) {
	rb := New(1, cubeInertia(1, 1))
	before := rb.InverseInertiaTensorWorld()
	rb.SetInertiaTensor(cubeInertia(1, 2))
	after := rb.InverseInertiaTensorWorld()
	assert.NotEqual(t, before, after)
}
