package sway

import "math"

// Quat is a rotation quaternion. Kept normalized by every constructor and
// operation that can drift.
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat returns the no-rotation quaternion.
func IdentityQuat() Quat { return Quat{W: 1} }

func (q Quat) normalize() Quat {
	m := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if m == 0 {
		return IdentityQuat()
	}
	return Quat{q.W / m, q.X / m, q.Y / m, q.Z / m}
}

func (q Quat) mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

func (q Quat) conjugate() Quat { return Quat{q.W, -q.X, -q.Y, -q.Z} }

// rotate applies the rotation to a vector.
func (q Quat) rotate(v Vec3) Vec3 {
	p := Quat{0, v.X, v.Y, v.Z}
	r := q.mul(p).mul(q.conjugate())
	return Vec3{r.X, r.Y, r.Z}
}

// slerp spherically interpolates toward o. Falls back to normalized linear
// interpolation when the quaternions are nearly parallel.
func (q Quat) slerp(o Quat, t float64) Quat {
	dot := q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
	// Take the short path.
	if dot < 0 {
		o = Quat{-o.W, -o.X, -o.Y, -o.Z}
		dot = -dot
	}
	if dot > 0.9995 {
		return Quat{
			lerpFloat(q.W, o.W, t),
			lerpFloat(q.X, o.X, t),
			lerpFloat(q.Y, o.Y, t),
			lerpFloat(q.Z, o.Z, t),
		}.normalize()
	}
	theta := math.Acos(dot)
	sin := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin
	return Quat{
		q.W*wa + o.W*wb,
		q.X*wa + o.X*wb,
		q.Y*wa + o.Y*wb,
		q.Z*wa + o.Z*wb,
	}.normalize()
}

// QuatFromAxisAngle builds a rotation of angle radians about the given axis.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	m := axis.magnitude()
	if m == 0 {
		return IdentityQuat()
	}
	s := math.Sin(angle/2) / m
	return Quat{W: math.Cos(angle / 2), X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// quatFromRotVec is the exponential map: a rotation vector (axis scaled by
// angle) to a quaternion.
func quatFromRotVec(v Vec3) Quat {
	angle := v.magnitude()
	if angle < 1e-12 {
		return IdentityQuat()
	}
	return QuatFromAxisAngle(v, angle)
}

// rotVec is the logarithmic map: quaternion to rotation vector.
func (q Quat) rotVec() Vec3 {
	n := q.normalize()
	if n.W < 0 {
		n = Quat{-n.W, -n.X, -n.Y, -n.Z}
	}
	sin := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if sin < 1e-12 {
		return Vec3{}
	}
	angle := 2 * math.Atan2(sin, n.W)
	return Vec3{n.X, n.Y, n.Z}.scale(angle / sin)
}

// Transform is a rigid transform: a translation plus a rotation. It is the
// frame of a scene object or of a rigid group pivot.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// IdentityTransform returns the identity rigid transform.
func IdentityTransform() Transform {
	return Transform{Rotation: IdentityQuat()}
}

// Lerp blends toward the target transform: translation linearly, rotation
// spherically.
func (tf Transform) Lerp(to Transform, t float64) Transform {
	return Transform{
		Position: Vec3{
			lerpFloat(tf.Position.X, to.Position.X, t),
			lerpFloat(tf.Position.Y, to.Position.Y, t),
			lerpFloat(tf.Position.Z, to.Position.Z, t),
		},
		Rotation: tf.Rotation.slerp(to.Rotation, t),
	}
}

// Mul composes two transforms: the result applies o first, then tf.
func (tf Transform) Mul(o Transform) Transform {
	return Transform{
		Position: tf.Position.add(tf.Rotation.rotate(o.Position)),
		Rotation: tf.Rotation.mul(o.Rotation).normalize(),
	}
}

// Inverse returns the inverse rigid transform.
func (tf Transform) Inverse() Transform {
	inv := tf.Rotation.conjugate()
	return Transform{
		Position: inv.rotate(tf.Position.scale(-1)),
		Rotation: inv,
	}
}
