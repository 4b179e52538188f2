package broadphase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-labs/cyclone/body"
	"github.com/fenwick-labs/cyclone/vecmath"
)

func hasPair(contacts []PotentialContact, a, b body.Handle) bool {
	for _, c := range contacts {
		if (c.BodyA == a && c.BodyB == b) || (c.BodyA == b && c.BodyB == a) {
			return true
		}
	}
	return false
}

func cubeInertia(mass, side vecmath.Real) vecmath.Mat3 {
	i := mass * side * side / 6
	return vecmath.Diag3(i, i, i)
}

// Scenario 5: BVH pair pruning.
func TestBvhPairPruning(t *testing.T) {
	bodies := body.NewSet()
	left := bodies.Insert(*body.New(1, cubeInertia(1, 1)))
	mid := bodies.Insert(*body.New(1, cubeInertia(1, 1)))
	right := bodies.Insert(*body.New(1, cubeInertia(1, 1)))

	lb, _ := bodies.Get(left)
	lb.Position = vecmath.Vec3{X: -5, Y: 0, Z: 0}
	mb, _ := bodies.Get(mid)
	mb.Position = vecmath.Vec3{X: 0, Y: 0, Z: 0}
	rb, _ := bodies.Get(right)
	rb.Position = vecmath.Vec3{X: 5, Y: 0, Z: 0}

	// Radius 3: neighbours 5 apart overlap (5 < 6), the outer pair 10
	// apart does not.
	tree := New(left, BoundingSphere{Center: lb.Position, Radius: 3})
	tree.Insert(mid, BoundingSphere{Center: mb.Position, Radius: 3})
	tree.Insert(right, BoundingSphere{Center: rb.Position, Radius: 3})

	contacts := tree.GeneratePotentialContacts(nil)
	assert.True(t, hasPair(contacts, mid, left))
	assert.True(t, hasPair(contacts, mid, right))
	assert.False(t, hasPair(contacts, left, right))

	tree.RemoveBody(mid)
	contacts = tree.GeneratePotentialContacts(nil)
	assert.Empty(t, contacts)
}

func TestBvhRemoveRootEmptiesTree(t *testing.T) {
	bodies := body.NewSet()
	only := bodies.Insert(*body.New(1, cubeInertia(1, 1)))
	tree := New(only, BoundingSphere{Center: vecmath.Zero, Radius: 1})

	require.False(t, tree.Empty())
	tree.RemoveBody(only)
	assert.True(t, tree.Empty())
}

func TestBvhReportedPairsOverlap(t *testing.T) {
	bodies := body.NewSet()
	positions := []vecmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 4, Y: 0, Z: 0},
		{X: 6, Y: 0, Z: 0},
		{X: 100, Y: 100, Z: 100},
	}

	var handles []body.Handle
	for _, pos := range positions {
		h := bodies.Insert(*body.New(1, cubeInertia(1, 1)))
		rb, _ := bodies.Get(h)
		rb.Position = pos
		handles = append(handles, h)
	}

	tree := New(handles[0], BoundingSphere{Center: positions[0], Radius: 0.5})
	for i := 1; i < len(handles); i++ {
		tree.Insert(handles[i], BoundingSphere{Center: positions[i], Radius: 0.5})
	}

	contacts := tree.GeneratePotentialContacts(nil)
	for _, c := range contacts {
		a, _ := bodies.Get(c.BodyA)
		b, _ := bodies.Get(c.BodyB)
		sa := BoundingSphere{Center: a.Position, Radius: 0.5}
		sb := BoundingSphere{Center: b.Position, Radius: 0.5}
		assert.True(t, sa.Overlaps(sb), "reported pair must actually overlap")
	}
}

func TestBvhUpdateTracksMovedBodies(t *testing.T) {
	bodies := body.NewSet()
	a := bodies.Insert(*body.New(1, cubeInertia(1, 1)))
	b := bodies.Insert(*body.New(1, cubeInertia(1, 1)))

	ab, _ := bodies.Get(a)
	bb, _ := bodies.Get(b)
	bb.Position = vecmath.Vec3{X: 10, Y: 0, Z: 0}

	tree := New(a, BoundingSphere{Center: ab.Position, Radius: 0.5})
	tree.Insert(b, BoundingSphere{Center: bb.Position, Radius: 0.5})

	require.Empty(t, tree.GeneratePotentialContacts(nil))

	bb.Position = vecmath.Vec3{X: 0.5, Y: 0, Z: 0}
	tree.Update(bodies)

	contacts := tree.GeneratePotentialContacts(nil)
	assert.True(t, hasPair(contacts, a, b))
}
