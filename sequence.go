package sway

// NumberKeypoint is one point of a piecewise numeric sequence. Envelope is
// the permitted random deviation around Value.
type NumberKeypoint struct {
	Time     float64
	Value    float64
	Envelope float64
}

// NumberSequence is a piecewise numeric property value with ordered
// keypoints over [0, 1].
type NumberSequence struct {
	Keypoints []NumberKeypoint
}

func (NumberSequence) Kind() Kind { return KindNumberSequence }

// ColorKeypoint is one point of a piecewise color sequence.
type ColorKeypoint struct {
	Time  float64
	Color Color
}

// ColorSequence is a piecewise color property value (a gradient) with
// ordered keypoints over [0, 1].
type ColorSequence struct {
	Keypoints []ColorKeypoint
}

func (ColorSequence) Kind() Kind { return KindColorSequence }
