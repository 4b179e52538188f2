package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeOrthonormalBasisOrthogonal(t *testing.T) {
	a, b, c, ok := MakeOrthonormalBasis(Vec3{X: 1, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0})
	require.True(t, ok)

	assert.InDelta(t, 0, a.Dot(b), 1e-9)
	assert.InDelta(t, 0, a.Dot(c), 1e-9)
	assert.InDelta(t, 0, b.Dot(c), 1e-9)
	assert.InDelta(t, 1, a.Magnitude(), 1e-9)
	assert.InDelta(t, 1, b.Magnitude(), 1e-9)
	assert.InDelta(t, 1, c.Magnitude(), 1e-9)
}

func TestMakeOrthonormalBasisParallelFails(t *testing.T) {
	_, _, _, ok := MakeOrthonormalBasis(Vec3{X: 1, Y: 0, Z: 0}, Vec3{X: 2, Y: 0, Z: 0})
	assert.False(t, ok)
}
