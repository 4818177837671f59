package core

import "fmt"

// Matrix4 is a row-major 4x4 matrix.
type Matrix4 struct {
	M [4][4]float32
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	var m Matrix4
	for i := 0; i < 4; i++ {
		m.M[i][i] = 1
	}
	return m
}

// NewMatrix4 builds a matrix from sixteen row-major entries.
func NewMatrix4(
	m00, m01, m02, m03,
	m10, m11, m12, m13,
	m20, m21, m22, m23,
	m30, m31, m32, m33 float32,
) Matrix4 {
	return Matrix4{M: [4][4]float32{
		{m00, m01, m02, m03},
		{m10, m11, m12, m13},
		{m20, m21, m22, m23},
		{m30, m31, m32, m33},
	}}
}

// Mul returns the matrix product m*o.
func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m.M[i][k] * o.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// Transpose returns the transposed matrix.
func (m Matrix4) Transpose() Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r.M[i][j] = m.M[j][i]
		}
	}
	return r
}

// Inverse computes the matrix inverse via cofactor expansion (the closed
// form used by the reference renderer rather than a generic Gauss-Jordan
// elimination), returning an error if the matrix is singular.
func (m Matrix4) Inverse() (Matrix4, error) {
	a := m.M
	s0 := a[0][0]*a[1][1] - a[1][0]*a[0][1]
	s1 := a[0][0]*a[1][2] - a[1][0]*a[0][2]
	s2 := a[0][0]*a[1][3] - a[1][0]*a[0][3]
	s3 := a[0][1]*a[1][2] - a[1][1]*a[0][2]
	s4 := a[0][1]*a[1][3] - a[1][1]*a[0][3]
	s5 := a[0][2]*a[1][3] - a[1][2]*a[0][3]

	c5 := a[2][2]*a[3][3] - a[3][2]*a[2][3]
	c4 := a[2][1]*a[3][3] - a[3][1]*a[2][3]
	c3 := a[2][1]*a[3][2] - a[3][1]*a[2][2]
	c2 := a[2][0]*a[3][3] - a[3][0]*a[2][3]
	c1 := a[2][0]*a[3][2] - a[3][0]*a[2][2]
	c0 := a[2][0]*a[3][1] - a[3][0]*a[2][1]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Matrix4{}, fmt.Errorf("core: singular matrix has no inverse")
	}
	invDet := 1 / det

	var r Matrix4
	r.M[0][0] = (a[1][1]*c5 - a[1][2]*c4 + a[1][3]*c3) * invDet
	r.M[0][1] = (-a[0][1]*c5 + a[0][2]*c4 - a[0][3]*c3) * invDet
	r.M[0][2] = (a[3][1]*s5 - a[3][2]*s4 + a[3][3]*s3) * invDet
	r.M[0][3] = (-a[2][1]*s5 + a[2][2]*s4 - a[2][3]*s3) * invDet

	r.M[1][0] = (-a[1][0]*c5 + a[1][2]*c2 - a[1][3]*c1) * invDet
	r.M[1][1] = (a[0][0]*c5 - a[0][2]*c2 + a[0][3]*c1) * invDet
	r.M[1][2] = (-a[3][0]*s5 + a[3][2]*s2 - a[3][3]*s1) * invDet
	r.M[1][3] = (a[2][0]*s5 - a[2][2]*s2 + a[2][3]*s1) * invDet

	r.M[2][0] = (a[1][0]*c4 - a[1][1]*c2 + a[1][3]*c0) * invDet
	r.M[2][1] = (-a[0][0]*c4 + a[0][1]*c2 - a[0][3]*c0) * invDet
	r.M[2][2] = (a[3][0]*s4 - a[3][1]*s2 + a[3][3]*s0) * invDet
	r.M[2][3] = (-a[2][0]*s4 + a[2][1]*s2 - a[2][3]*s0) * invDet

	r.M[3][0] = (-a[1][0]*c3 + a[1][1]*c1 - a[1][2]*c0) * invDet
	r.M[3][1] = (a[0][0]*c3 - a[0][1]*c1 + a[0][2]*c0) * invDet
	r.M[3][2] = (-a[3][0]*s3 + a[3][1]*s1 - a[3][2]*s0) * invDet
	r.M[3][3] = (a[2][0]*s3 - a[2][1]*s1 + a[2][2]*s0) * invDet

	return r, nil
}
