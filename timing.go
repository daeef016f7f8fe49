package sway

import "fmt"

// TweenInfo is the timing configuration of a tween: how long it runs, how
// it eases, and whether it delays, repeats, or reverses.
//
// A RepeatCount of n plays the tween n+1 times. A negative RepeatCount
// repeats forever. When Reverses is set, every forward play is followed by
// a reversed play back to the start.
type TweenInfo struct {
	Duration    float64
	Style       EasingStyle
	Direction   EasingDirection
	RepeatCount int
	Reverses    bool
	DelayTime   float64
}

// DefaultTweenInfo returns the default timing: one second, quadratic
// ease-out, no delay, no repeat, no reverse.
func DefaultTweenInfo() TweenInfo {
	return TweenInfo{Duration: 1, Style: EaseQuad, Direction: EaseOut}
}

// total returns the nominal wall-clock length of the full timeline,
// including delay, repeats, and reverse plays. Infinite repeats report the
// length of a single cycle.
func (ti TweenInfo) total() float64 {
	cycle := ti.Duration
	if ti.Reverses {
		cycle *= 2
	}
	plays := ti.RepeatCount + 1
	if plays < 1 {
		plays = 1
	}
	return ti.DelayTime + cycle*float64(plays)
}

// parseTiming resolves a timing config argument: nil (defaults), a
// TweenInfo (or pointer), or a loosely-keyed map. Recognized map keys and
// their aliases:
//
//	"Time" / "t"                          duration in seconds
//	"EasingStyle" / "Style" / "s"         EasingStyle or style name
//	"EasingDirection" / "Direction" / "d" EasingDirection or direction name
//	"RepeatCount" / "Repeat" / "rc"       int
//	"Reverses" / "Reverse" / "r"          bool
//	"DelayTime" / "Delay" / "dt"          seconds
//
// Unrecognized keys are ignored; values of the wrong type are errors.
func parseTiming(cfg any) (TweenInfo, error) {
	switch c := cfg.(type) {
	case nil:
		return DefaultTweenInfo(), nil
	case TweenInfo:
		return c, nil
	case *TweenInfo:
		if c == nil {
			return DefaultTweenInfo(), nil
		}
		return *c, nil
	case map[string]any:
		return parseTimingMap(c)
	}
	return DefaultTweenInfo(), fmt.Errorf("unsupported timing config type %T", cfg)
}

func parseTimingMap(m map[string]any) (TweenInfo, error) {
	info := DefaultTweenInfo()
	if v, ok := lookup(m, "Time", "t"); ok {
		f, ok := toFloat(v)
		if !ok {
			return info, fmt.Errorf("timing duration: want number, got %T", v)
		}
		info.Duration = f
	}
	if v, ok := lookup(m, "EasingStyle", "Style", "s"); ok {
		s, ok := parseEasingStyle(v)
		if !ok {
			return info, fmt.Errorf("timing easing style: unrecognized value %v", v)
		}
		info.Style = s
	}
	if v, ok := lookup(m, "EasingDirection", "Direction", "d"); ok {
		d, ok := parseEasingDirection(v)
		if !ok {
			return info, fmt.Errorf("timing easing direction: unrecognized value %v", v)
		}
		info.Direction = d
	}
	if v, ok := lookup(m, "RepeatCount", "Repeat", "rc"); ok {
		f, ok := toFloat(v)
		if !ok {
			return info, fmt.Errorf("timing repeat count: want number, got %T", v)
		}
		info.RepeatCount = int(f)
	}
	if v, ok := lookup(m, "Reverses", "Reverse", "r"); ok {
		b, ok := v.(bool)
		if !ok {
			return info, fmt.Errorf("timing reverses: want bool, got %T", v)
		}
		info.Reverses = b
	}
	if v, ok := lookup(m, "DelayTime", "Delay", "dt"); ok {
		f, ok := toFloat(v)
		if !ok {
			return info, fmt.Errorf("timing delay: want number, got %T", v)
		}
		info.DelayTime = f
	}
	return info, nil
}

func lookup(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case Scalar:
		return float64(x), true
	}
	return 0, false
}
