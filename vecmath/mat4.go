package vecmath

import "math"

// Mat4 is a 4x4 matrix stored in column-major order, matching the
// WebGPU/OpenGL convention used throughout this module: element (row, col)
// lives at index col*4+row.
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul4 multiplies two column-major 4x4 matrices and returns a*b.
func Mul4(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// LookAtRH builds a right-handed view matrix from eye, target and up:
//
//	forward = normalize(target - eye)
//	right   = normalize(forward x up_input)
//	up      = right x forward
func LookAtRH(eye, target, up Vec3) Mat4 {
	forward := Normalize(Sub(target, eye))
	right := Normalize(Cross(forward, up))
	trueUp := Cross(right, forward)

	var m Mat4
	m[0], m[4], m[8], m[12] = right.X, right.Y, right.Z, -Dot(right, eye)
	m[1], m[5], m[9], m[13] = trueUp.X, trueUp.Y, trueUp.Z, -Dot(trueUp, eye)
	m[2], m[6], m[10], m[14] = -forward.X, -forward.Y, -forward.Z, Dot(forward, eye)
	m[3], m[7], m[11], m[15] = 0, 0, 0, 1
	return m
}

// PerspectiveRH builds a right-handed perspective projection matrix mapping
// view-space Z to [0, 1] NDC (the WebGPU/D3D convention), from a vertical
// field of view in radians, aspect ratio, and near/far planes.
func PerspectiveRH(fovYRadians, aspect, near, far float32) Mat4 {
	f := float32(1.0 / math.Tan(float64(fovYRadians)/2.0))
	m := Mat4{}
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (near - far)
	m[11] = -1
	m[14] = (near * far) / (near - far)
	m[15] = 0
	return m
}

// OrthographicRH builds a right-handed orthographic projection matrix mapping
// view-space Z to [0, 1] NDC, from a vertical view height in world units,
// aspect ratio, and near/far planes.
func OrthographicRH(viewHeight, aspect, near, far float32) Mat4 {
	halfHeight := viewHeight / 2
	halfWidth := halfHeight * aspect

	left, right := -halfWidth, halfWidth
	bottom, top := -halfHeight, halfHeight

	m := Mat4{}
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -1 / (far - near)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -near / (far - near)
	m[15] = 1
	return m
}

// TransformPoint applies m to the homogeneous point p (w=1) and performs the
// perspective divide, returning the resulting 3-vector.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w == 0 {
		return Vec3{x, y, z}
	}
	invW := 1 / w
	return Vec3{x * invW, y * invW, z * invW}
}

// TransformDirection applies the upper-left 3x3 of m to v, ignoring
// translation. Used for transforming normals by a rotation-only matrix.
func TransformDirection(m Mat4, v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// TransformHomogeneous applies m to p (w=1) without the perspective divide,
// returning the resulting 4-vector as (x, y, z, w).
func TransformHomogeneous(m Mat4, p Vec3) (x, y, z, w float32) {
	x = m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y = m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z = m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w = m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	return
}
