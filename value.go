package sway

// Kind identifies an animatable value category. The set is closed: every
// routine that dispatches on Kind switches exhaustively over these values.
type Kind uint8

const (
	KindScalar Kind = iota
	KindVec2
	KindVec3
	KindDim
	KindDim2
	KindTransform
	KindColor
	KindNumberSequence
	KindColorSequence
)

// String returns the kind name as used in warning messages.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindVec2:
		return "Vec2"
	case KindVec3:
		return "Vec3"
	case KindDim:
		return "Dim"
	case KindDim2:
		return "Dim2"
	case KindTransform:
		return "Transform"
	case KindColor:
		return "Color"
	case KindNumberSequence:
		return "NumberSequence"
	case KindColorSequence:
		return "ColorSequence"
	}
	return "Unknown"
}

// Value is an animatable property value. Implementations form a closed set:
// Scalar, Vec2, Vec3, Dim, Dim2, Transform, Color, NumberSequence, and
// ColorSequence.
type Value interface {
	Kind() Kind
}

// Scalar is a plain float64 property value.
type Scalar float64

func (Scalar) Kind() Kind    { return KindScalar }
func (Vec2) Kind() Kind      { return KindVec2 }
func (Vec3) Kind() Kind      { return KindVec3 }
func (Dim) Kind() Kind       { return KindDim }
func (Dim2) Kind() Kind      { return KindDim2 }
func (Transform) Kind() Kind { return KindTransform }
func (Color) Kind() Kind     { return KindColor }

// springable reports whether a kind can drive or be driven by a spring.
// Sequence kinds animate through the keypoint-proxy protocol instead.
func springable(k Kind) bool {
	switch k {
	case KindScalar, KindVec2, KindVec3, KindDim, KindDim2, KindTransform, KindColor:
		return true
	}
	return false
}

// lerpValue interpolates from one value toward another of the same kind.
// Transforms blend positionally and spherically; every other kind
// interpolates componentwise. Returns false when the kinds differ or the
// kind is not interpolable (sequences).
func lerpValue(from, to Value, t float64) (Value, bool) {
	if from == nil || to == nil || from.Kind() != to.Kind() {
		return nil, false
	}
	switch a := from.(type) {
	case Scalar:
		b := to.(Scalar)
		return Scalar(lerpFloat(float64(a), float64(b), t)), true
	case Vec2:
		b := to.(Vec2)
		return Vec2{lerpFloat(a.X, b.X, t), lerpFloat(a.Y, b.Y, t)}, true
	case Vec3:
		b := to.(Vec3)
		return Vec3{lerpFloat(a.X, b.X, t), lerpFloat(a.Y, b.Y, t), lerpFloat(a.Z, b.Z, t)}, true
	case Dim:
		b := to.(Dim)
		return Dim{lerpFloat(a.Scale, b.Scale, t), lerpFloat(a.Offset, b.Offset, t)}, true
	case Dim2:
		b := to.(Dim2)
		return Dim2{
			X: Dim{lerpFloat(a.X.Scale, b.X.Scale, t), lerpFloat(a.X.Offset, b.X.Offset, t)},
			Y: Dim{lerpFloat(a.Y.Scale, b.Y.Scale, t), lerpFloat(a.Y.Offset, b.Y.Offset, t)},
		}, true
	case Transform:
		b := to.(Transform)
		return a.Lerp(b, t), true
	case Color:
		b := to.(Color)
		return Color{lerpFloat(a.R, b.R, t), lerpFloat(a.G, b.G, t), lerpFloat(a.B, b.B, t)}, true
	}
	return nil, false
}

// zeroValue returns the additive identity for a springable kind. The zero
// transform is the identity transform.
func zeroValue(k Kind) Value {
	switch k {
	case KindScalar:
		return Scalar(0)
	case KindVec2:
		return Vec2{}
	case KindVec3:
		return Vec3{}
	case KindDim:
		return Dim{}
	case KindDim2:
		return Dim2{}
	case KindTransform:
		return IdentityTransform()
	case KindColor:
		return Color{}
	}
	return nil
}

// componentCount returns the number of float64 components a springable kind
// flattens to.
func componentCount(k Kind) int {
	switch k {
	case KindScalar:
		return 1
	case KindVec2, KindDim:
		return 2
	case KindVec3, KindColor:
		return 3
	case KindDim2:
		return 4
	case KindTransform:
		return 6
	}
	return 0
}

// flatten decomposes a springable value into float64 components for
// per-component spring integration. Transforms flatten to translation plus
// a rotation vector (axis scaled by angle).
func flatten(v Value) []float64 {
	switch x := v.(type) {
	case Scalar:
		return []float64{float64(x)}
	case Vec2:
		return []float64{x.X, x.Y}
	case Vec3:
		return []float64{x.X, x.Y, x.Z}
	case Dim:
		return []float64{x.Scale, x.Offset}
	case Dim2:
		return []float64{x.X.Scale, x.X.Offset, x.Y.Scale, x.Y.Offset}
	case Transform:
		r := x.Rotation.rotVec()
		return []float64{x.Position.X, x.Position.Y, x.Position.Z, r.X, r.Y, r.Z}
	case Color:
		return []float64{x.R, x.G, x.B}
	}
	return nil
}

// unflatten reassembles a value of the given kind from its components.
func unflatten(k Kind, c []float64) Value {
	switch k {
	case KindScalar:
		return Scalar(c[0])
	case KindVec2:
		return Vec2{c[0], c[1]}
	case KindVec3:
		return Vec3{c[0], c[1], c[2]}
	case KindDim:
		return Dim{c[0], c[1]}
	case KindDim2:
		return Dim2{X: Dim{c[0], c[1]}, Y: Dim{c[2], c[3]}}
	case KindTransform:
		return Transform{
			Position: Vec3{c[0], c[1], c[2]},
			Rotation: quatFromRotVec(Vec3{c[3], c[4], c[5]}),
		}
	case KindColor:
		return Color{c[0], c[1], c[2]}
	}
	return nil
}
