package vecmath

import "math"

// Vec3 is a three-component vector used throughout the engine for
// position, velocity, force, and torque.
type Vec3 struct {
	X, Y, Z Real
}

var (
	Zero  = Vec3{0, 0, 0}
	UnitX = Vec3{1, 0, 0}
	UnitY = Vec3{0, 1, 0}
	UnitZ = Vec3{0, 0, 1}
	One   = Vec3{1, 1, 1}
)

func NewVec3(x, y, z Real) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s Real) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// AddScaled returns v + o*s, the workhorse of every integrator step.
func (v Vec3) AddScaled(o Vec3, s Real) Vec3 {
	return Vec3{v.X + o.X*s, v.Y + o.Y*s, v.Z + o.Z*s}
}

// ComponentProduct multiplies componentwise.
func (v Vec3) ComponentProduct(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

func (v Vec3) Dot(o Vec3) Real { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) SquaredMagnitude() Real { return v.Dot(v) }

func (v Vec3) Magnitude() Real { return sqrt(v.SquaredMagnitude()) }

// Normalized returns v scaled to unit length. A zero vector is
// returned unchanged rather than producing NaN.
func (v Vec3) Normalized() Vec3 {
	sq := v.SquaredMagnitude()
	if sq <= 0 {
		return v
	}
	return v.Scale(1 / sqrt(sq))
}

func (v Vec3) DistanceTo(o Vec3) Real { return o.Sub(v).Magnitude() }

func (v Vec3) DistanceToSquared(o Vec3) Real { return o.Sub(v).SquaredMagnitude() }

// DirectionTo returns the unit vector pointing from v to o.
func (v Vec3) DirectionTo(o Vec3) Vec3 { return o.Sub(v).Normalized() }

// Component returns the signed value of v along axis index i (0=X,1=Y,2=Z).
func (v Vec3) Component(i int) Real {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func sqrt(x Real) Real { return Real(math.Sqrt(float64(x))) }

func absR(x Real) Real {
	if x < 0 {
		return -x
	}
	return x
}
