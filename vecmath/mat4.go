package vecmath

// Mat4 is the upper 3×4 of a homogeneous 4×4 transform, row-major:
// Data[0..3] is row 0 (rotation row 0 + translation X), and so on.
// The implicit fourth row is (0 0 0 1).
type Mat4 struct {
	Data [12]Real
}

var IdentityMat4 = Mat4{Data: [12]Real{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
}}

// FromOrientationAndPosition builds the transform for a rigid body:
// the 3×3 rotation block derived from orientation, with position as
// the translation column of each row.
func FromOrientationAndPosition(orientation Quat, position Vec3) Mat4 {
	r := orientation.ToMat3()
	d := &r.Data
	return Mat4{Data: [12]Real{
		d[0], d[1], d[2], position.X,
		d[3], d[4], d[5], position.Y,
		d[6], d[7], d[8], position.Z,
	}}
}

func (m Mat4) rotation() Mat3 {
	d := &m.Data
	return NewMat3(d[0], d[1], d[2], d[4], d[5], d[6], d[8], d[9], d[10])
}

func (m Mat4) translation() Vec3 { return Vec3{m.Data[3], m.Data[7], m.Data[11]} }

// Transform applies the full affine transform to a point.
func (m Mat4) Transform(v Vec3) Vec3 {
	d := &m.Data
	return Vec3{
		d[0]*v.X + d[1]*v.Y + d[2]*v.Z + d[3],
		d[4]*v.X + d[5]*v.Y + d[6]*v.Z + d[7],
		d[8]*v.X + d[9]*v.Y + d[10]*v.Z + d[11],
	}
}

// TransformDirection rotates a direction without translating it.
func (m Mat4) TransformDirection(v Vec3) Vec3 { return m.rotation().Transform(v) }

// TransformInverse maps a world point back into the local frame of
// this transform. Because the rotation block of a rigid transform is
// orthogonal, this subtracts the translation and then applies the
// transpose of the rotation block rather than a general inverse.
func (m Mat4) TransformInverse(v Vec3) Vec3 {
	rel := v.Sub(m.translation())
	return m.rotation().Transpose().Transform(rel)
}

// TransformInverseDirection rotates a world-space direction back into
// local space, again exploiting rotation-block orthogonality.
func (m Mat4) TransformInverseDirection(v Vec3) Vec3 {
	return m.rotation().Transpose().Transform(v)
}

func (m Mat4) Determinant() Real {
	d := &m.Data
	return -d[2]*d[5]*d[8] + d[1]*d[6]*d[8] + d[2]*d[4]*d[9] -
		d[0]*d[6]*d[9] - d[1]*d[4]*d[10] + d[0]*d[5]*d[10]
}

// Inverse returns the general inverse of the 3×4 affine transform.
// For a pure rigid transform prefer TransformInverse, which avoids
// this cofactor computation entirely.
func (m Mat4) Inverse() Mat4 {
	det := m.Determinant()
	if det == 0 {
		panic("vecmath: Mat4.Inverse called on a singular transform")
	}
	d := &m.Data
	invDet := 1 / det

	var r [12]Real
	r[0] = (-d[6]*d[9] + d[5]*d[10]) * invDet
	r[1] = (d[2]*d[9] - d[1]*d[10]) * invDet
	r[2] = (-d[2]*d[5] + d[1]*d[6]) * invDet
	r[3] = (d[3]*d[6]*d[9] - d[2]*d[7]*d[9] - d[3]*d[5]*d[10] + d[1]*d[7]*d[10] + d[2]*d[5]*d[11] - d[1]*d[6]*d[11]) * invDet

	r[4] = (d[6]*d[8] - d[4]*d[10]) * invDet
	r[5] = (-d[2]*d[8] + d[0]*d[10]) * invDet
	r[6] = (d[2]*d[4] - d[0]*d[6]) * invDet
	r[7] = (-d[2]*d[4]*d[11] + d[2]*d[7]*d[8] + d[4]*d[3]*d[10] - d[0]*d[7]*d[10] - d[3]*d[6]*d[8] + d[0]*d[6]*d[11]) * invDet

	r[8] = (-d[5]*d[8] + d[4]*d[9]) * invDet
	r[9] = (d[1]*d[8] - d[0]*d[9]) * invDet
	r[10] = (-d[1]*d[4] + d[0]*d[5]) * invDet
	r[11] = (d[1]*d[4]*d[11] - d[1]*d[7]*d[8] - d[4]*d[3]*d[9] + d[0]*d[7]*d[9] + d[3]*d[5]*d[8] - d[0]*d[5]*d[11]) * invDet

	return Mat4{Data: r}
}

func (m Mat4) Mul(o Mat4) Mat4 {
	var r [12]Real
	a, b := &m.Data, &o.Data
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			var sum Real
			for k := 0; k < 3; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			if col == 3 {
				sum += a[row*4+3]
			}
			r[row*4+col] = sum
		}
	}
	return Mat4{Data: r}
}
