package vecmath

// Quat is a Hamilton quaternion, used to represent rigid-body and
// particle-free orientation. R is the scalar part; I, J, K are the
// vector part.
type Quat struct {
	R, I, J, K Real
}

var IdentityQuat = Quat{R: 1}

func NewQuat(r, i, j, k Real) Quat { return Quat{r, i, j, k} }

func (q Quat) SquaredMagnitude() Real { return q.R*q.R + q.I*q.I + q.J*q.J + q.K*q.K }

func (q Quat) Magnitude() Real { return sqrt(q.SquaredMagnitude()) }

// IsNormalized reports whether q is within the engine-wide tolerance
// of unit length: |‖q‖² − 1| ≤ 2e-4.
func (q Quat) IsNormalized() bool {
	d := q.SquaredMagnitude() - 1
	return absR(d) <= 2e-4
}

// Normalized returns q scaled to unit length. A zero quaternion
// normalizes to the identity rotation rather than producing NaN.
func (q Quat) Normalized() Quat {
	sq := q.SquaredMagnitude()
	if sq == 0 {
		return IdentityQuat
	}
	s := 1 / sqrt(sq)
	return Quat{q.R * s, q.I * s, q.J * s, q.K * s}
}

// Conjugate returns the quaternion's conjugate, which is its inverse
// when it is normalized.
func (q Quat) Conjugate() Quat { return Quat{q.R, -q.I, -q.J, -q.K} }

// Inverse is an alias for Conjugate: valid only when q is normalized.
func (q Quat) Inverse() Quat { return q.Conjugate() }

// Mul applies the Hamilton product q*o.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		R: q.R*o.R - q.I*o.I - q.J*o.J - q.K*o.K,
		I: q.R*o.I + q.I*o.R + q.J*o.K - q.K*o.J,
		J: q.R*o.J - q.I*o.K + q.J*o.R + q.K*o.I,
		K: q.R*o.K + q.I*o.J - q.J*o.I + q.K*o.R,
	}
}

// RotatedByVector rotates v by q, returning a pure quaternion with
// the rotated vector as its vector part wrapped in a Vec3.
func (q Quat) RotatedByVector(v Vec3) Vec3 {
	p := Quat{0, v.X, v.Y, v.Z}
	r := q.Mul(p).Mul(q.Conjugate())
	return Vec3{r.I, r.J, r.K}
}

// AddScaledVector implements the orientation-update formula used by
// both the particle-free quaternion utilities and the rigid-body
// integrator: q ← q + ½·(0,v·scale)·q.
func (q Quat) AddScaledVector(v Vec3, scale Real) Quat {
	p := Quat{0, v.X * scale, v.Y * scale, v.Z * scale}
	p = p.Mul(q)
	return Quat{
		R: q.R + p.R*0.5,
		I: q.I + p.I*0.5,
		J: q.J + p.J*0.5,
		K: q.K + p.K*0.5,
	}
}

// ToMat3 builds the rotation matrix represented by q. q is assumed
// normalized; callers that cannot guarantee this should normalize
// first.
func (q Quat) ToMat3() Mat3 {
	xx, yy, zz := q.I*q.I, q.J*q.J, q.K*q.K
	xy, xz, yz := q.I*q.J, q.I*q.K, q.J*q.K
	wx, wy, wz := q.R*q.I, q.R*q.J, q.R*q.K

	return Mat3{Data: [9]Real{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}}
}
