package sway

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Object is the generic scene-graph property accessor the animation system
// drives. Any object that exposes named property get/set can be animated;
// the object's identity (the interface value) keys all per-object state.
type Object interface {
	// Property returns the named property's current value, or false if the
	// object has no such property.
	Property(name string) (Value, bool)
	// SetProperty writes the named property.
	SetProperty(name string, v Value)
}

// Disposable is implemented by objects whose lifetime can end while an
// animation is in flight. Every per-frame writer stops as soon as its
// target reports IsDisposed.
type Disposable interface {
	IsDisposed() bool
}

// Pivoter is implemented by rigid groups whose frame can be moved as a
// unit. Tweening the "Pivot" pseudo-property on such an object animates the
// whole group through the pivot-proxy protocol.
type Pivoter interface {
	Pivot() Transform
	PivotTo(tf Transform)
}

var nodeIDCounter atomic.Uint32

func nextNodeID() uint32 {
	return nodeIDCounter.Add(1)
}

// Node is a property-bag scene object with hierarchy. It implements Object,
// Disposable, and Pivoter, and is the reference target for the animation
// system as well as the backing type for keypoint and pivot proxies.
//
// Property access, the change hook, and disposal are safe for concurrent
// use, so public Animator calls may target a node while another goroutine
// drives Step. Hierarchy mutation (AddChild, RemoveChild) is not
// synchronized and belongs on one goroutine.
type Node struct {
	ID   uint32
	Name string

	parent   *Node
	children []*Node

	mu       sync.Mutex
	props    map[string]Value
	onChange func(name string, v Value)
	disposed bool
}

// NewNode creates an empty named node.
func NewNode(name string) *Node {
	return &Node{
		ID:    nextNodeID(),
		Name:  name,
		props: make(map[string]Value),
	}
}

// Property returns the named property's current value.
func (n *Node) Property(name string) (Value, bool) {
	n.mu.Lock()
	v, ok := n.props[name]
	n.mu.Unlock()
	return v, ok
}

// SetProperty writes the named property and invokes the change hook. The
// hook runs outside the node's lock, so it may set properties itself.
func (n *Node) SetProperty(name string, v Value) {
	n.mu.Lock()
	n.props[name] = v
	fn := n.onChange
	n.mu.Unlock()
	if fn != nil {
		fn(name, v)
	}
}

// OnPropertyChanged installs the property change hook. At most one hook is
// held; passing nil removes it.
func (n *Node) OnPropertyChanged(fn func(name string, v Value)) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The returned slice is the node's
// own; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

// AddChild appends child to n, removing it from any previous parent first.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. Does nothing if child is not a child
// of n.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Dispose marks the node and its whole subtree as disposed and detaches it
// from its parent. In-flight animations targeting a disposed node stop on
// their next tick without further writes.
func (n *Node) Dispose() {
	if n.IsDisposed() {
		return
	}
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
	n.disposeTree()
}

func (n *Node) disposeTree() {
	n.mu.Lock()
	n.disposed = true
	n.onChange = nil
	n.mu.Unlock()
	for _, c := range n.children {
		c.disposeTree()
	}
}

// IsDisposed reports whether Dispose has been called on the node or one of
// its ancestors.
func (n *Node) IsDisposed() bool {
	n.mu.Lock()
	d := n.disposed
	n.mu.Unlock()
	return d
}

// Pivot returns the node's rigid frame: its "Transform" property, or the
// identity transform when unset.
func (n *Node) Pivot() Transform {
	if v, ok := n.Property("Transform"); ok {
		if tf, ok := v.(Transform); ok {
			return tf
		}
	}
	return IdentityTransform()
}

// PivotTo moves the node's frame to the given transform and carries every
// descendant's "Transform" property along rigidly, preserving each child's
// offset relative to the pivot.
func (n *Node) PivotTo(tf Transform) {
	delta := tf.Mul(n.Pivot().Inverse())
	n.SetProperty("Transform", tf)
	for _, c := range n.children {
		c.applyPivotDelta(delta)
	}
}

func (n *Node) applyPivotDelta(delta Transform) {
	if v, ok := n.Property("Transform"); ok {
		if tf, ok := v.(Transform); ok {
			n.SetProperty("Transform", delta.Mul(tf))
		}
	}
	for _, c := range n.children {
		c.applyPivotDelta(delta)
	}
}

// String implements fmt.Stringer for debug output.
func (n *Node) String() string {
	return fmt.Sprintf("Node(%d %q)", n.ID, n.Name)
}
