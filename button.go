package insk

import (
	"github.com/tanema/gween/ease"
)

// pressFeedbackDuration is how long the optional press-scale tween runs.
const pressFeedbackDuration float32 = 0.08

// Button is a tappable node with enabled, highlighted, and selected states.
//
// Assign appearance nodes to the slots after construction; the button
// attaches and detaches them as its state changes. At least the normal and
// highlighted slots should be set or the button is invisible. The disabled
// slot is only shown when Enabled is set to false, and the selected slots are
// only used together with the selected flag. Call UpdateState once after
// assigning the slots to make the button visible — slot setters do not
// refresh the appearance on their own.
//
// Highlight follows the user's touch: it turns on when a touch goes down
// inside the button's hit region and tracks whether the touch is still
// inside as it moves. With auto-toggle enabled, a touch lifting inside the
// button flips the selected state.
//
// Handlers are plain func values replaced by their setters; the button holds
// no reference to anything beyond the func itself.
type Button struct {
	node *Node
	size Size

	enabled     bool
	highlighted bool
	selected    bool
	autoToggle  bool

	nodeNormal              *Node
	nodeHighlighted         *Node
	nodeDisabled            *Node
	nodeSelectedNormal      *Node
	nodeSelectedHighlighted *Node

	current *Node // appearance node currently attached, nil when none

	touchDown     func(*Button)
	touchUpInside func(*Button)
	touchUp       func(*Button)

	// trackedPointer is the pointer ID of the touch being tracked, or -1.
	// Only the first touch that began inside the button is tracked; other
	// concurrent touches are ignored until it ends or is cancelled.
	trackedPointer int

	pressedScale float64
	scaleTween   *TweenGroup
}

// NewButton creates a button whose rectangular hit region has the given size,
// centered on the node's position.
func NewButton(width, height float64) *Button {
	b := &Button{
		size:           Size{Width: width, Height: height},
		enabled:        true,
		trackedPointer: -1,
		pressedScale:   1,
	}

	n := NewContainer("button")
	n.Interactable = true
	n.HitShape = CenteredHitRect(width, height)
	n.UserData = b
	n.OnTouchDown = b.touchBegan
	n.OnTouchMove = b.touchMoved
	n.OnTouchUp = b.touchEnded
	n.OnTouchCancel = b.touchCancelled
	n.OnUpdate = b.step
	b.node = n

	return b
}

// Node returns the underlying scene graph node. Add it to a scene and
// position it to place the button.
func (b *Button) Node() *Node {
	return b.node
}

// Size returns the button's hit region size.
func (b *Button) Size() Size {
	return b.size
}

// --- State accessors ---

// Enabled reports whether the button accepts input.
func (b *Button) Enabled() bool {
	return b.enabled
}

// SetEnabled enables or disables the button and refreshes the appearance
// immediately, so the disabled slot shows without waiting for a touch.
// While disabled, touches are ignored entirely.
func (b *Button) SetEnabled(enabled bool) {
	b.enabled = enabled
	b.UpdateState()
}

// Highlighted reports whether a tracked touch is currently down inside the
// button. The flag updates from touch handling only.
func (b *Button) Highlighted() bool {
	return b.highlighted
}

// Selected reports the persistent toggle state.
func (b *Button) Selected() bool {
	return b.selected
}

// SetSelected sets the toggle state and refreshes the appearance immediately.
func (b *Button) SetSelected(selected bool) {
	b.selected = selected
	b.UpdateState()
}

// AutoToggleSelection reports whether a touch lifting inside the button
// flips the selected state.
func (b *Button) AutoToggleSelection() bool {
	return b.autoToggle
}

// SetAutoToggleSelection enables or disables selection toggling on completed
// touches. Defaults to off.
func (b *Button) SetAutoToggleSelection(auto bool) {
	b.autoToggle = auto
}

// --- Appearance slots ---
//
// Slot setters do not refresh the appearance; call UpdateState after
// configuring the slots.

// NormalNode returns the appearance shown when enabled and not highlighted.
func (b *Button) NormalNode() *Node { return b.nodeNormal }

// SetNormalNode sets the appearance shown when enabled and not highlighted.
func (b *Button) SetNormalNode(n *Node) { b.nodeNormal = n }

// HighlightedNode returns the appearance shown while a touch is down inside.
func (b *Button) HighlightedNode() *Node { return b.nodeHighlighted }

// SetHighlightedNode sets the appearance shown while a touch is down inside.
func (b *Button) SetHighlightedNode(n *Node) { b.nodeHighlighted = n }

// DisabledNode returns the appearance shown while the button is disabled.
func (b *Button) DisabledNode() *Node { return b.nodeDisabled }

// SetDisabledNode sets the appearance shown while the button is disabled.
// When unset, a disabled button shows nothing.
func (b *Button) SetDisabledNode(n *Node) { b.nodeDisabled = n }

// SelectedNormalNode returns the appearance shown when selected and not
// highlighted.
func (b *Button) SelectedNormalNode() *Node { return b.nodeSelectedNormal }

// SetSelectedNormalNode sets the appearance shown when selected and not
// highlighted.
func (b *Button) SetSelectedNormalNode(n *Node) { b.nodeSelectedNormal = n }

// SelectedHighlightedNode returns the appearance shown when selected with a
// touch down inside.
func (b *Button) SelectedHighlightedNode() *Node { return b.nodeSelectedHighlighted }

// SetSelectedHighlightedNode sets the appearance shown when selected with a
// touch down inside.
func (b *Button) SetSelectedHighlightedNode(n *Node) { b.nodeSelectedHighlighted = n }

// --- Handlers ---

// SetTouchDownHandler sets the handler fired when a touch goes down inside
// the button. Replaces any previous handler; nil clears.
func (b *Button) SetTouchDownHandler(fn func(*Button)) {
	b.touchDown = fn
}

// SetTouchUpInsideHandler sets the handler fired when a touch lifts inside
// the button. Replaces any previous handler; nil clears.
func (b *Button) SetTouchUpInsideHandler(fn func(*Button)) {
	b.touchUpInside = fn
}

// SetTouchUpHandler sets the handler fired when a touch lifts anywhere,
// inside or outside the button. Replaces any previous handler; nil clears.
func (b *Button) SetTouchUpHandler(fn func(*Button)) {
	b.touchUp = fn
}

// --- Appearance ---

// stateNode resolves which appearance slot the current state shows.
// Disabled wins over everything; selected wins over the plain slots.
func (b *Button) stateNode() *Node {
	if !b.enabled {
		return b.nodeDisabled
	}
	if b.selected {
		if b.highlighted {
			return b.nodeSelectedHighlighted
		}
		return b.nodeSelectedNormal
	}
	if b.highlighted {
		return b.nodeHighlighted
	}
	return b.nodeNormal
}

// UpdateState refreshes the visual representation of the button: the
// appearance node matching the current state is attached as a child and the
// previous one detached. Idempotent — calling it again with unchanged state
// does nothing. Call once after assigning the appearance slots to make the
// button visible.
func (b *Button) UpdateState() {
	next := b.stateNode()
	if next == b.current {
		return
	}
	if b.current != nil {
		b.current.RemoveFromParent()
	}
	if next != nil {
		b.node.AddChild(next)
	}
	b.current = next
}

// --- Touch handling ---

// containsLocal reports whether a local point lies inside the hit region.
func (b *Button) containsLocal(lx, ly float64) bool {
	return b.node.HitShape.Contains(lx, ly)
}

func (b *Button) touchBegan(ctx TouchContext) {
	if !b.enabled || b.trackedPointer >= 0 {
		return
	}
	b.trackedPointer = ctx.PointerID
	b.highlighted = true
	b.UpdateState()
	b.startPressFeedback(true)
	if b.touchDown != nil {
		b.touchDown(b)
	}
}

func (b *Button) touchMoved(ctx TouchContext) {
	if ctx.PointerID != b.trackedPointer {
		return
	}
	inside := b.containsLocal(ctx.LocalX, ctx.LocalY)
	if inside == b.highlighted {
		return
	}
	b.highlighted = inside
	b.UpdateState()
	b.startPressFeedback(inside)
}

func (b *Button) touchEnded(ctx TouchContext) {
	if ctx.PointerID != b.trackedPointer {
		return
	}
	b.trackedPointer = -1
	b.highlighted = false
	b.UpdateState()
	b.startPressFeedback(false)
	// A release while disabled ends tracking and clears the highlight but is
	// otherwise ignored: no toggle, no handlers.
	if !b.enabled {
		return
	}
	if b.autoToggle {
		b.selected = !b.selected
		b.UpdateState()
	}
	if b.containsLocal(ctx.LocalX, ctx.LocalY) && b.touchUpInside != nil {
		b.touchUpInside(b)
	}
	if b.touchUp != nil {
		b.touchUp(b)
	}
}

// touchCancelled clears the highlight without firing any handler. A
// cancellation is not a completed interaction: selection is not toggled and
// neither up handler runs.
func (b *Button) touchCancelled(ctx TouchContext) {
	if ctx.PointerID != b.trackedPointer {
		return
	}
	b.trackedPointer = -1
	b.highlighted = false
	b.UpdateState()
	b.startPressFeedback(false)
}

// --- Press feedback ---

// SetPressedScale sets the scale the button node tweens to while pressed.
// 1 (the default) disables the feedback.
func (b *Button) SetPressedScale(scale float64) {
	b.pressedScale = scale
	if scale == 1 {
		b.scaleTween = nil
	}
}

func (b *Button) startPressFeedback(pressed bool) {
	if b.pressedScale == 1 {
		return
	}
	target := 1.0
	if pressed {
		target = b.pressedScale
	}
	b.scaleTween = TweenScale(b.node, target, target, pressFeedbackDuration, ease.OutQuad)
}

// step advances the press feedback tween. Wired to the node's OnUpdate hook.
func (b *Button) step(dt float64) {
	if b.scaleTween == nil {
		return
	}
	b.scaleTween.Update(float32(dt))
	if b.scaleTween.Done {
		b.scaleTween = nil
	}
}
