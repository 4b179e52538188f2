// Package narrowphase implements primitive/primitive contact
// generation for the three shapes this engine supports: sphere,
// half-space (infinite plane), and cuboid. Each pairing is dispatched
// through its own free function rather than a generic convex-hull
// routine, following the Separating-Axis Test for the cuboid/cuboid
// case.
package narrowphase

import (
	"math"

	"github.com/fenwick-labs/cyclone/body"
	"github.com/fenwick-labs/cyclone/vecmath"
)

// Contact is a rigid-body contact: a world-space point, a unit
// normal pointing from body B toward body A (for a half-space, the
// plane's normal), and the penetration depth along that normal. BodyB/HasB are absent for a contact
// against a static half-space.
type Contact struct {
	BodyA, BodyB body.Handle
	HasB         bool

	Point       vecmath.Vec3
	Normal      vecmath.Vec3
	Penetration vecmath.Real
}

// Sphere is a sphere primitive positioned by a world transform
// (typically the owning body's transform composed with a body-local
// offset).
type Sphere struct {
	Body      body.Handle
	Transform vecmath.Mat4
	Radius    vecmath.Real
}

func (s Sphere) center() vecmath.Vec3 { return s.Transform.Transform(vecmath.Zero) }

// Plane is an infinite half-space: points p with p.Dot(Normal) <=
// Offset are "inside" the solid half of the space. Planes are
// typically static geometry, so Body may be the zero handle.
type Plane struct {
	Body   body.Handle
	HasBody bool
	Normal vecmath.Vec3
	Offset vecmath.Real
}

// Cuboid is an axis-aligned (in its own local frame) box positioned
// by a world transform.
type Cuboid struct {
	Body      body.Handle
	Transform vecmath.Mat4
	HalfSize  vecmath.Vec3
}

func (c Cuboid) axis(i int) vecmath.Vec3 {
	switch i {
	case 0:
		return c.Transform.TransformDirection(vecmath.UnitX)
	case 1:
		return c.Transform.TransformDirection(vecmath.UnitY)
	default:
		return c.Transform.TransformDirection(vecmath.UnitZ)
	}
}

func (c Cuboid) center() vecmath.Vec3 { return c.Transform.Transform(vecmath.Zero) }

var cuboidVertexSigns = [8][3]vecmath.Real{
	{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
	{-1, 1, 1}, {-1, 1, -1}, {-1, -1, 1}, {-1, -1, -1},
}

func (c Cuboid) vertex(i int) vecmath.Vec3 {
	s := cuboidVertexSigns[i]
	local := vecmath.Vec3{X: c.HalfSize.X * s[0], Y: c.HalfSize.Y * s[1], Z: c.HalfSize.Z * s[2]}
	return c.Transform.Transform(local)
}

// SphereAndSphere writes a contact into out[0] and returns 1 if a and
// b overlap; it returns 0 if they do not or if out is empty.
// No contact is produced for exact coincidence (d == 0): the
// separation direction is undefined in that case.
func SphereAndSphere(a, b Sphere, out []Contact) int {
	if len(out) == 0 {
		return 0
	}
	midline := b.center().Sub(a.center())
	size := midline.Magnitude()
	if size <= 0 || size > a.Radius+b.Radius {
		return 0
	}

	normal := midline.Scale(-1 / size)
	out[0] = Contact{
		BodyA:       a.Body,
		BodyB:       b.Body,
		HasB:        true,
		Point:       a.center().AddScaled(midline, 0.5),
		Normal:      normal,
		Penetration: a.Radius + b.Radius - size,
	}
	return 1
}

// SphereAndHalfSpace writes a contact into out[0] and returns 1 if the
// sphere has crossed the plane; otherwise, or if out is empty, it
// returns 0.
func SphereAndHalfSpace(s Sphere, p Plane, out []Contact) int {
	if len(out) == 0 {
		return 0
	}
	center := s.center()
	distance := center.Dot(p.Normal) - s.Radius - p.Offset
	if distance >= 0 {
		return 0
	}

	out[0] = Contact{
		BodyA:       s.Body,
		BodyB:       p.Body,
		HasB:        p.HasBody,
		Normal:      p.Normal,
		Point:       center.AddScaled(p.Normal, -(distance + s.Radius)),
		Penetration: -distance,
	}
	return 1
}

// CuboidAndHalfSpace reports one contact per vertex that has crossed
// the plane, so a box resting flush on a plane produces four
// contacts, an edge two, and a corner one.
func CuboidAndHalfSpace(c Cuboid, p Plane, out []Contact) int {
	used := 0
	for i := 0; i < 8 && used < len(out); i++ {
		v := c.vertex(i)
		distance := v.Dot(p.Normal)
		if distance-p.Offset <= 0 {
			// Point is the vertex moved along the plane normal by its
			// signed distance from the plane: the vertex itself when it
			// touches the plane, otherwise as far again below the plane.
			out[used] = Contact{
				BodyA:       c.Body,
				BodyB:       p.Body,
				HasB:        p.HasBody,
				Normal:      p.Normal,
				Penetration: p.Offset - distance,
				Point:       v.AddScaled(p.Normal, distance-p.Offset),
			}
			used++
		}
	}
	return used
}

// CuboidAndSphere writes a contact into out[0] and returns 1 if the
// sphere overlaps the box, found by clamping the sphere's center (in
// the box's local frame) to the half-extents; otherwise, or if out is
// empty, it returns 0.
func CuboidAndSphere(c Cuboid, s Sphere, out []Contact) int {
	if len(out) == 0 {
		return 0
	}

	centerWorld := s.center()
	centerLocal := c.Transform.TransformInverse(centerWorld)

	if absR(centerLocal.X)-s.Radius > c.HalfSize.X ||
		absR(centerLocal.Y)-s.Radius > c.HalfSize.Y ||
		absR(centerLocal.Z)-s.Radius > c.HalfSize.Z {
		return 0
	}

	closest := vecmath.Vec3{
		X: clamp(centerLocal.X, -c.HalfSize.X, c.HalfSize.X),
		Y: clamp(centerLocal.Y, -c.HalfSize.Y, c.HalfSize.Y),
		Z: clamp(centerLocal.Z, -c.HalfSize.Z, c.HalfSize.Z),
	}

	distSq := closest.DistanceToSquared(centerLocal)
	if distSq > s.Radius*s.Radius {
		return 0
	}

	closestWorld := c.Transform.Transform(closest)
	normal := centerWorld.DirectionTo(closestWorld)

	out[0] = Contact{
		BodyA:       c.Body,
		BodyB:       s.Body,
		HasB:        true,
		Normal:      normal,
		Point:       closestWorld,
		Penetration: s.Radius - sqrtR(distSq),
	}
	return 1
}

func clamp(x, lo, hi vecmath.Real) vecmath.Real {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func absR(x vecmath.Real) vecmath.Real {
	if x < 0 {
		return -x
	}
	return x
}

func sqrtR(x vecmath.Real) vecmath.Real { return vecmath.Real(math.Sqrt(float64(x))) }

func transformCuboidToAxis(c Cuboid, axis vecmath.Vec3) vecmath.Real {
	return c.HalfSize.X*absR(axis.Dot(c.axis(0))) +
		c.HalfSize.Y*absR(axis.Dot(c.axis(1))) +
		c.HalfSize.Z*absR(axis.Dot(c.axis(2)))
}

func cuboidsPenetrationOnAxis(a, b Cuboid, axis vecmath.Vec3, toCenter vecmath.Vec3) vecmath.Real {
	projA := transformCuboidToAxis(a, axis)
	projB := transformCuboidToAxis(b, axis)
	distance := absR(toCenter.Dot(axis))
	return projA + projB - distance
}

// cuboidEdgeEdgeContactPoint is the standard two-line closest-
// approach formula: given a point and direction for each of the two
// colliding edges, returns the midpoint of their closest approach.
func cuboidEdgeEdgeContactPoint(axisA, edgePointA, axisB, edgePointB vecmath.Vec3) vecmath.Vec3 {
	smA := axisA.SquaredMagnitude()
	smB := axisB.SquaredMagnitude()
	dotAB := axisB.Dot(axisA)

	toSt := edgePointA.Sub(edgePointB)
	dpStaA := axisA.Dot(toSt)
	dpStaB := axisB.Dot(toSt)

	denom := smA*smB - dotAB*dotAB
	if absR(denom) < 1e-4 {
		return edgePointA.AddScaled(edgePointB.Sub(edgePointA), 0.5)
	}

	mua := (dotAB*dpStaB - smB*dpStaA) / denom
	mub := (smA*dpStaB - dotAB*dpStaA) / denom

	pointOnA := edgePointA.AddScaled(axisA, mua)
	pointOnB := edgePointB.AddScaled(axisB, mub)

	return pointOnA.AddScaled(pointOnB.Sub(pointOnA), 0.5)
}

// CuboidAndCuboid runs the 15-axis Separating Axis Test and, if no
// axis separates the two boxes, emits a single contact: a
// vertex-against-face contact for axes 0-5, or an edge-edge contact
// constructed from the standard two-line closest approach for axes
// 6-14.
func CuboidAndCuboid(a, b Cuboid, out []Contact) int {
	if len(out) == 0 {
		return 0
	}

	toCenter := b.center().Sub(a.center())

	var axes [15]vecmath.Vec3
	for i := 0; i < 3; i++ {
		axes[i] = a.axis(i)
		axes[3+i] = b.axis(i)
	}
	idx := 6
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes[idx] = axes[i].Cross(axes[3+j])
			idx++
		}
	}

	bestOverlap := vecmath.Real(math.MaxFloat64)
	bestCase := -1

	for i, axis := range axes {
		if axis.SquaredMagnitude() < 1e-3 {
			continue
		}
		n := axis.Normalized()
		overlap := cuboidsPenetrationOnAxis(a, b, n, toCenter)
		if overlap < 0 {
			return 0
		}
		if overlap < bestOverlap {
			bestOverlap = overlap
			bestCase = i
		}
	}

	if bestCase == -1 {
		return 0
	}

	var c Contact
	switch {
	case bestCase < 3:
		// Vertex of b against a face of a.
		c = fillPointFaceCuboidCuboid(a, b, toCenter, bestCase, bestOverlap)
	case bestCase < 6:
		// Same algorithm with a and b swapped (and to_center negated
		// to match), but the contact is still tagged with the
		// original body_a/body_b.
		c = fillPointFaceCuboidCuboid(b, a, toCenter.Neg(), bestCase-3, bestOverlap)
	default:
		c = edgeEdgeContact(a, b, toCenter, bestCase, bestOverlap)
	}
	c.BodyA, c.BodyB = a.Body, b.Body

	out[0] = c
	return 1
}

// fillPointFaceCuboidCuboid builds a vertex(other)-against-face(self)
// contact, where axisIndex selects which of self's axes is the
// colliding face normal. The caller is responsible for tagging the
// returned Contact's BodyA/BodyB; self/other here are whichever
// order the SAT axis case calls for, not necessarily body A/B.
func fillPointFaceCuboidCuboid(self, other Cuboid, toCenter vecmath.Vec3, axisIndex int, overlap vecmath.Real) Contact {
	normal := self.axis(axisIndex)
	if toCenter.Dot(normal) > 0 {
		normal = normal.Neg()
	}

	vertex := other.HalfSize
	if other.axis(0).Dot(normal) < 0 {
		vertex.X = -vertex.X
	}
	if other.axis(1).Dot(normal) < 0 {
		vertex.Y = -vertex.Y
	}
	if other.axis(2).Dot(normal) < 0 {
		vertex.Z = -vertex.Z
	}

	vertexWorld := other.Transform.Transform(vertex)

	return Contact{
		HasB:        true,
		Normal:      normal,
		Point:       vertexWorld,
		Penetration: overlap,
	}
}

// edgeEdgeContact handles SAT cases 6-14: the colliding axis is a
// cross product of one edge from each cuboid.
func edgeEdgeContact(a, b Cuboid, toCenter vecmath.Vec3, caseIndex int, overlap vecmath.Real) Contact {
	axisIndexA := (caseIndex - 6) / 3
	axisIndexB := (caseIndex - 6) % 3

	axisA := a.axis(axisIndexA)
	axisB := b.axis(axisIndexB)
	axis := axisA.Cross(axisB).Normalized()
	if axis.Dot(toCenter) > 0 {
		axis = axis.Neg()
	}

	edgePointA := a.HalfSize
	edgePointB := b.HalfSize

	aOther := [2]int{(axisIndexA + 1) % 3, (axisIndexA + 2) % 3}
	for _, i := range aOther {
		if a.axis(i).Dot(axis) > 0 {
			setComponent(&edgePointA, i, -edgePointA.Component(i))
		}
	}
	setComponent(&edgePointA, axisIndexA, 0)

	bOther := [2]int{(axisIndexB + 1) % 3, (axisIndexB + 2) % 3}
	for _, i := range bOther {
		if b.axis(i).Dot(axis) < 0 {
			setComponent(&edgePointB, i, -edgePointB.Component(i))
		}
	}
	setComponent(&edgePointB, axisIndexB, 0)

	edgePointAWorld := a.Transform.Transform(edgePointA)
	edgePointBWorld := b.Transform.Transform(edgePointB)

	point := cuboidEdgeEdgeContactPoint(axisA, edgePointAWorld, axisB, edgePointBWorld)

	return Contact{
		BodyA:       a.Body,
		BodyB:       b.Body,
		HasB:        true,
		Normal:      axis,
		Point:       point,
		Penetration: overlap,
	}
}

func setComponent(v *vecmath.Vec3, i int, value vecmath.Real) {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}
