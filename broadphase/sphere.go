package broadphase

import (
	"math"

	"github.com/fenwick-labs/cyclone/vecmath"
)

// BoundingSphere is the production BoundingVolume implementation:
// Bvh[BoundingSphere] is the only tree this engine ships.
type BoundingSphere struct {
	Center vecmath.Vec3
	Radius vecmath.Real
}

func (s BoundingSphere) Overlaps(other BoundingSphere) bool {
	sumRadii := s.Radius + other.Radius
	return s.Center.DistanceToSquared(other.Center) < sumRadii*sumRadii
}

func (s BoundingSphere) Size() vecmath.Real {
	return vecmath.Real(1.333333333333333) * 3.14159265358979323846 * s.Radius * s.Radius * s.Radius
}

// Enclose returns the smallest sphere containing both s and other.
// If one sphere already fully contains the other, that larger sphere
// is returned unchanged.
func (s BoundingSphere) Enclose(other BoundingSphere) BoundingSphere {
	centerOffset := other.Center.Sub(s.Center)
	distanceSq := centerOffset.SquaredMagnitude()
	radiusDiff := other.Radius - s.Radius

	if radiusDiff*radiusDiff >= distanceSq {
		if other.Radius >= s.Radius {
			return other
		}
		return s
	}

	distance := vecmath.Real(0)
	if distanceSq > 0 {
		distance = vecmath.Real(math.Sqrt(float64(distanceSq)))
	}
	newRadius := (distance + s.Radius + other.Radius) * 0.5

	newCenter := s.Center
	if distance > 0 {
		newCenter = s.Center.AddScaled(centerOffset, (newRadius-s.Radius)/distance)
	}

	return BoundingSphere{Center: newCenter, Radius: newRadius}
}

// Growth is the increase in squared radius that enclosing newVolume
// would cause, used by Insert's least-growth descent.
func (s BoundingSphere) Growth(newVolume BoundingSphere) vecmath.Real {
	enclosed := s.Enclose(newVolume)
	return enclosed.Radius*enclosed.Radius - s.Radius*s.Radius
}

func (s BoundingSphere) SetPosition(pos vecmath.Vec3) BoundingSphere {
	s.Center = pos
	return s
}

