package vecmath

// Mat3 is a row-major 3×3 matrix: Data[0..2] is row 0, Data[3..5] row
// 1, Data[6..8] row 2.
type Mat3 struct {
	Data [9]Real
}

var IdentityMat3 = Mat3{Data: [9]Real{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}}

func NewMat3(m0, m1, m2, m3, m4, m5, m6, m7, m8 Real) Mat3 {
	return Mat3{Data: [9]Real{m0, m1, m2, m3, m4, m5, m6, m7, m8}}
}

// Diag3 builds a diagonal matrix, the shape every inertia tensor in
// this engine takes.
func Diag3(x, y, z Real) Mat3 {
	return NewMat3(
		x, 0, 0,
		0, y, 0,
		0, 0, z,
	)
}

func (m Mat3) at(row, col int) Real { return m.Data[row*3+col] }

// Transform applies the matrix to a vector: m*v.
func (m Mat3) Transform(v Vec3) Vec3 {
	d := &m.Data
	return Vec3{
		d[0]*v.X + d[1]*v.Y + d[2]*v.Z,
		d[3]*v.X + d[4]*v.Y + d[5]*v.Z,
		d[6]*v.X + d[7]*v.Y + d[8]*v.Z,
	}
}

func (m Mat3) Mul(o Mat3) Mat3 {
	a, b := &m.Data, &o.Data
	var r [9]Real
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum Real
			for k := 0; k < 3; k++ {
				sum += a[row*3+k] * b[k*3+col]
			}
			r[row*3+col] = sum
		}
	}
	return Mat3{Data: r}
}

func (m Mat3) Transpose() Mat3 {
	d := &m.Data
	return NewMat3(
		d[0], d[3], d[6],
		d[1], d[4], d[7],
		d[2], d[5], d[8],
	)
}

func (m Mat3) Determinant() Real {
	d := &m.Data
	return d[0]*(d[4]*d[8]-d[5]*d[7]) -
		d[1]*(d[3]*d[8]-d[5]*d[6]) +
		d[2]*(d[3]*d[7]-d[4]*d[6])
}

// Inverse returns the adjugate divided by the determinant. Callers
// must ensure the determinant is non-zero; a singular matrix is a
// construction-time invariant violation, not a degeneracy this
// function silently tolerates.
func (m Mat3) Inverse() Mat3 {
	det := m.Determinant()
	if det == 0 {
		panic("vecmath: Mat3.Inverse called on a singular matrix")
	}
	d := &m.Data
	invDet := 1 / det

	return NewMat3(
		(d[4]*d[8]-d[5]*d[7])*invDet,
		(d[2]*d[7]-d[1]*d[8])*invDet,
		(d[1]*d[5]-d[2]*d[4])*invDet,

		(d[5]*d[6]-d[3]*d[8])*invDet,
		(d[0]*d[8]-d[2]*d[6])*invDet,
		(d[2]*d[3]-d[0]*d[5])*invDet,

		(d[3]*d[7]-d[4]*d[6])*invDet,
		(d[1]*d[6]-d[0]*d[7])*invDet,
		(d[0]*d[4]-d[1]*d[3])*invDet,
	)
}
