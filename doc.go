// Package sway animates properties of scene-graph objects with two
// interchangeable strategies: time-keyed interpolation (tweens) and
// physically-motivated second-order motion (springs). Both are
// fire-and-forget asynchronous operations with optional completion
// chaining.
//
// # Quick start
//
// Create one [Animator] per running system and step it once per frame:
//
//	anim := sway.NewAnimator()
//
//	node := sway.NewNode("panel")
//	node.SetProperty("X", sway.Scalar(0))
//
//	anim.Tween(node, map[string]any{"Time": 0.5, "Style": "Quad"},
//		map[string]sway.Value{"X": sway.Scalar(100)}, false).
//		AndThen(func() { fmt.Println("arrived") })
//
//	// in the frame loop:
//	anim.Step(1.0 / 60)
//
// There is no internal clock: all background animation work advances
// inside [Animator.Step]. Hosts without a frame loop can use
// [Animator.Run] instead.
//
// # Tweens
//
// [Animator.Tween] plays a batch of property interpolations as one native
// tween, [Animator.TweenFromAlpha] resumes an interpolation partway
// through its timeline, and [Animator.LastTween] returns the most recent
// native handle per object. The most recently issued animation on a given
// (object, property) always wins write access; older ones stop without
// side effects.
//
// # Springs
//
// [Animator.Impulse] perturbs a per-property spring (created on first use,
// reused on repeat impulses) and [Animator.Target] redirects it toward a
// new target from rest. Standalone springs live in a named registry via
// [Animator.CreateSpring] and [Animator.GetSpring];
// [Animator.IsAnimating] reports whether a spring has settled.
//
// # Objects
//
// Anything implementing [Object] can be animated. [Node] is the built-in
// property-bag implementation with hierarchy, change hooks, disposal, and
// rigid group pivots.
package sway
