package sway

import "github.com/tanema/gween/ease"

// EasingStyle selects the easing curve family for a tween.
type EasingStyle uint8

const (
	EaseLinear EasingStyle = iota
	EaseSine
	EaseQuad
	EaseCubic
	EaseQuart
	EaseQuint
	EaseExpo
	EaseCirc
	EaseBack
	EaseElastic
	EaseBounce
)

// EasingDirection selects which end(s) of the curve the easing applies to.
type EasingDirection uint8

const (
	EaseIn EasingDirection = iota
	EaseOut
	EaseInOut
)

// easeFunc maps a style and direction to the corresponding gween easing
// function. Linear ignores the direction.
func easeFunc(s EasingStyle, d EasingDirection) ease.TweenFunc {
	switch s {
	case EaseLinear:
		return ease.Linear
	case EaseSine:
		return pick(d, ease.InSine, ease.OutSine, ease.InOutSine)
	case EaseQuad:
		return pick(d, ease.InQuad, ease.OutQuad, ease.InOutQuad)
	case EaseCubic:
		return pick(d, ease.InCubic, ease.OutCubic, ease.InOutCubic)
	case EaseQuart:
		return pick(d, ease.InQuart, ease.OutQuart, ease.InOutQuart)
	case EaseQuint:
		return pick(d, ease.InQuint, ease.OutQuint, ease.InOutQuint)
	case EaseExpo:
		return pick(d, ease.InExpo, ease.OutExpo, ease.InOutExpo)
	case EaseCirc:
		return pick(d, ease.InCirc, ease.OutCirc, ease.InOutCirc)
	case EaseBack:
		return pick(d, ease.InBack, ease.OutBack, ease.InOutBack)
	case EaseElastic:
		return pick(d, ease.InElastic, ease.OutElastic, ease.InOutElastic)
	case EaseBounce:
		return pick(d, ease.InBounce, ease.OutBounce, ease.InOutBounce)
	}
	return ease.Linear
}

func pick(d EasingDirection, in, out, inOut ease.TweenFunc) ease.TweenFunc {
	switch d {
	case EaseIn:
		return in
	case EaseOut:
		return out
	default:
		return inOut
	}
}

// evalEase maps a raw completion fraction in [0, 1] through an easing
// function.
func evalEase(fn ease.TweenFunc, alpha float64) float64 {
	if alpha <= 0 {
		return float64(fn(0, 0, 1, 1))
	}
	if alpha >= 1 {
		return float64(fn(1, 0, 1, 1))
	}
	return float64(fn(float32(alpha), 0, 1, 1))
}

// parseEasingStyle resolves a loose-table easing style entry: either an
// EasingStyle or its name.
func parseEasingStyle(v any) (EasingStyle, bool) {
	switch x := v.(type) {
	case EasingStyle:
		return x, true
	case string:
		switch x {
		case "Linear":
			return EaseLinear, true
		case "Sine":
			return EaseSine, true
		case "Quad":
			return EaseQuad, true
		case "Cubic":
			return EaseCubic, true
		case "Quart":
			return EaseQuart, true
		case "Quint":
			return EaseQuint, true
		case "Expo":
			return EaseExpo, true
		case "Circ":
			return EaseCirc, true
		case "Back":
			return EaseBack, true
		case "Elastic":
			return EaseElastic, true
		case "Bounce":
			return EaseBounce, true
		}
	}
	return 0, false
}

// parseEasingDirection resolves a loose-table easing direction entry.
func parseEasingDirection(v any) (EasingDirection, bool) {
	switch x := v.(type) {
	case EasingDirection:
		return x, true
	case string:
		switch x {
		case "In":
			return EaseIn, true
		case "Out":
			return EaseOut, true
		case "InOut":
			return EaseInOut, true
		}
	}
	return 0, false
}
