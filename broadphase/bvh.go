// Package broadphase implements a dynamic bounding-volume hierarchy
// used to prune rigid-body pairs before the narrow phase runs. Nodes
// live in a generational arena and are addressed by handle, never by
// pointer, so the tree can be freely restructured on insert/remove.
package broadphase

import (
	"github.com/fenwick-labs/cyclone/arena"
	"github.com/fenwick-labs/cyclone/body"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// BoundingVolume is the capability set a volume type must implement
// to be usable as a Bvh's payload. V is the concrete volume type
// itself (BoundingSphere is the only production implementation).
type BoundingVolume[V any] interface {
	// Overlaps reports whether this volume and other intersect.
	Overlaps(other V) bool
	// Size is a monotone proxy for volume, used to decide which
	// subtree to descend into when comparing two Branch/Branch
	// subtrees (sphere: 4/3 * pi * r^3).
	Size() vecmath.Real
	// Enclose returns the smallest volume of this type that contains
	// both this volume and other.
	Enclose(other V) V
	// Growth is a monotone measure of how much this volume would grow
	// if it had to enclose newVolume too (sphere: the increase in
	// squared radius); used by Insert's least-growth heuristic.
	Growth(newVolume V) vecmath.Real
	// SetPosition recenters the volume, used by Update to refresh a
	// leaf from its body's current position.
	SetPosition(pos vecmath.Vec3) V
}

// NodeID addresses a node in a Bvh's arena. The zero NodeID means
// "no such node" (no parent, or an empty tree's root).
type NodeID = arena.Handle

// PotentialContact is an unordered pair of body handles whose
// bounding volumes overlap, as reported by GeneratePotentialContacts.
type PotentialContact struct {
	BodyA, BodyB body.Handle
}

type node[V BoundingVolume[V]] struct {
	parent NodeID
	volume V

	isLeaf bool
	body   body.Handle // valid iff isLeaf

	left, right NodeID // valid iff !isLeaf
}

// Bvh is a dynamic bounding-volume hierarchy over bounding volumes of
// type V, with one leaf per inserted body.
type Bvh[V BoundingVolume[V]] struct {
	nodes       arena.Arena[node[V]]
	root        NodeID
	leafOfBody  map[body.Handle]NodeID
}

// New builds a Bvh with a single leaf for rootBody.
func New[V BoundingVolume[V]](rootBody body.Handle, volume V) *Bvh[V] {
	t := &Bvh[V]{leafOfBody: make(map[body.Handle]NodeID)}
	id := t.nodes.Insert(node[V]{isLeaf: true, body: rootBody, volume: volume})
	t.root = id
	t.leafOfBody[rootBody] = id
	return t
}

// Empty reports whether the tree currently has no bodies.
func (t *Bvh[V]) Empty() bool { return !t.root.Valid() }

// Insert adds a new body/volume leaf to the tree, descending by
// least growth at each Branch and splitting whichever Leaf it lands
// on. If the tree was empty, this becomes the new single-leaf root.
func (t *Bvh[V]) Insert(b body.Handle, volume V) {
	if t.Empty() {
		id := t.nodes.Insert(node[V]{isLeaf: true, body: b, volume: volume})
		t.root = id
		t.leafOfBody[b] = id
		return
	}
	t.insertAt(t.root, b, volume)
}

func (t *Bvh[V]) insertAt(id NodeID, b body.Handle, volume V) {
	n, _ := t.nodes.Get(id)

	if n.isLeaf {
		oldBody, oldVolume := n.body, n.volume

		leftID := t.nodes.Insert(node[V]{parent: id, isLeaf: true, body: oldBody, volume: oldVolume})
		rightID := t.nodes.Insert(node[V]{parent: id, isLeaf: true, body: b, volume: volume})

		n, _ = t.nodes.Get(id) // re-fetch: the two Inserts above may have grown the backing slice
		n.isLeaf = false
		n.body = body.Handle{}
		n.volume = oldVolume.Enclose(volume)
		n.left = leftID
		n.right = rightID

		t.leafOfBody[oldBody] = leftID
		t.leafOfBody[b] = rightID
		return
	}

	left, _ := t.nodes.Get(n.left)
	right, _ := t.nodes.Get(n.right)

	growLeft := left.volume.Growth(volume)
	growRight := right.volume.Growth(volume)

	if growLeft <= growRight {
		t.insertAt(n.left, b, volume)
	} else {
		t.insertAt(n.right, b, volume)
	}

	n, _ = t.nodes.Get(id)
	left, _ = t.nodes.Get(n.left)
	right, _ = t.nodes.Get(n.right)
	n.volume = left.volume.Enclose(right.volume)
}

// RemoveBody removes a body's leaf from the tree, collapsing its
// sibling into its parent and recalculating enclosing volumes up to
// the root. If the removed leaf was the root, the tree becomes
// empty: the next Insert starts a fresh single-leaf tree.
func (t *Bvh[V]) RemoveBody(b body.Handle) {
	id, ok := t.leafOfBody[b]
	if !ok {
		return
	}
	delete(t.leafOfBody, b)

	n, _ := t.nodes.Get(id)
	parentID := n.parent

	if !parentID.Valid() {
		// Removing the root: the tree becomes empty.
		t.nodes.Remove(id)
		t.root = NodeID{}
		return
	}

	parent, _ := t.nodes.Get(parentID)
	var siblingID NodeID
	if parent.left == id {
		siblingID = parent.right
	} else {
		siblingID = parent.left
	}
	sibling, _ := t.nodes.Get(siblingID)
	grandparentID := parent.parent

	// Overwrite parent with sibling's payload (keeping parent's own
	// position in the tree, i.e. its link to the grandparent), then
	// free sibling and the removed leaf.
	*parent = *sibling
	parent.parent = grandparentID
	if !parent.isLeaf {
		if left, ok := t.nodes.Get(parent.left); ok {
			left.parent = parentID
		}
		if right, ok := t.nodes.Get(parent.right); ok {
			right.parent = parentID
		}
	} else {
		t.leafOfBody[parent.body] = parentID
	}

	t.nodes.Remove(siblingID)
	t.nodes.Remove(id)

	t.recalculateUp(parent.parent)
}

func (t *Bvh[V]) recalculateUp(id NodeID) {
	for id.Valid() {
		n, ok := t.nodes.Get(id)
		if !ok {
			return
		}
		left, _ := t.nodes.Get(n.left)
		right, _ := t.nodes.Get(n.right)
		n.volume = left.volume.Enclose(right.volume)
		id = n.parent
	}
}

// Update refreshes every leaf's volume position from its body's
// current position, then rebuilds every branch's enclosing volume
// bottom-up.
func (t *Bvh[V]) Update(bodies *body.Set) {
	if !t.Empty() {
		t.updateAt(t.root, bodies)
	}
}

func (t *Bvh[V]) updateAt(id NodeID, bodies *body.Set) {
	n, _ := t.nodes.Get(id)
	if n.isLeaf {
		if rb, ok := bodies.Get(n.body); ok {
			n.volume = n.volume.SetPosition(rb.Position)
		}
		return
	}
	t.updateAt(n.left, bodies)
	t.updateAt(n.right, bodies)

	n, _ = t.nodes.Get(id)
	left, _ := t.nodes.Get(n.left)
	right, _ := t.nodes.Get(n.right)
	n.volume = left.volume.Enclose(right.volume)
}

// GeneratePotentialContacts appends every overlapping body pair to
// out and returns the extended slice. Every Branch node in the tree
// emits the cross-product query between its two children's subtrees,
// and recurses into each child so nested branches are covered too.
func (t *Bvh[V]) GeneratePotentialContacts(out []PotentialContact) []PotentialContact {
	if t.Empty() {
		return out
	}
	return t.allPotentialContactsAt(t.root, out)
}

func (t *Bvh[V]) potentialContactsBetween(a, b NodeID, out []PotentialContact) []PotentialContact {
	na, _ := t.nodes.Get(a)
	nb, _ := t.nodes.Get(b)

	if !na.volume.Overlaps(nb.volume) {
		return out
	}

	switch {
	case na.isLeaf && nb.isLeaf:
		return append(out, PotentialContact{BodyA: na.body, BodyB: nb.body})

	case na.isLeaf && !nb.isLeaf:
		out = t.potentialContactsBetween(a, nb.left, out)
		out = t.potentialContactsBetween(a, nb.right, out)
		return out

	case !na.isLeaf && nb.isLeaf:
		out = t.potentialContactsBetween(na.left, b, out)
		out = t.potentialContactsBetween(na.right, b, out)
		return out

	default:
		if na.volume.Size() >= nb.volume.Size() {
			out = t.potentialContactsBetween(na.left, b, out)
			out = t.potentialContactsBetween(na.right, b, out)
		} else {
			out = t.potentialContactsBetween(a, nb.left, out)
			out = t.potentialContactsBetween(a, nb.right, out)
		}
		return out
	}
}

func (t *Bvh[V]) allPotentialContactsAt(id NodeID, out []PotentialContact) []PotentialContact {
	n, _ := t.nodes.Get(id)
	if n.isLeaf {
		return out
	}
	out = t.potentialContactsBetween(n.left, n.right, out)
	out = t.allPotentialContactsAt(n.left, out)
	out = t.allPotentialContactsAt(n.right, out)
	return out
}
