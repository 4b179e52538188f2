package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// For any Mat3 with nonzero determinant, M * M^-1 = I within 1e-4.
func TestMat3InverseIsIdentity(t *testing.T) {
	m := NewMat3(
		2, 0, 1,
		1, 3, 0,
		0, 1, 2,
	)
	require.NotEqual(t, Real(0), m.Determinant())

	inv := m.Inverse()
	got := m.Mul(inv)

	for i := 0; i < 9; i++ {
		want := Real(0)
		if i%3 == i/3 {
			want = 1
		}
		assert.InDelta(t, float64(want), float64(got.Data[i]), 1e-4)
	}
}

func TestMat3InverseSingularPanics(t *testing.T) {
	m := Diag3(1, 0, 1)
	assert.Panics(t, func() { m.Inverse() })
}

func TestMat3TransformIdentity(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, v, IdentityMat3.Transform(v))
}
