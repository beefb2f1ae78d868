package insk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// CenteredHitRect returns a HitRect of the given size centered on the local
// origin. Buttons use this for their touch area.
func CenteredHitRect(width, height float64) HitRect {
	return HitRect{X: -width / 2, Y: -height / 2, Width: width, Height: height}
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	startX  float64
	startY  float64
	lastX   float64
	lastY   float64
	hitNode *Node // node latched at press; receives all later events
}

// --- Handler registry ---

type touchHandler struct {
	id uint32
	fn func(TouchContext)
}

type handlerRegistry struct {
	touchDown   []touchHandler
	touchMove   []touchHandler
	touchUp     []touchHandler
	touchCancel []touchHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventTouchDown:
		h.reg.touchDown = removeTouchHandler(h.reg.touchDown, h.id)
	case EventTouchMove:
		h.reg.touchMove = removeTouchHandler(h.reg.touchMove, h.id)
	case EventTouchUp:
		h.reg.touchUp = removeTouchHandler(h.reg.touchUp, h.id)
	case EventTouchCancel:
		h.reg.touchCancel = removeTouchHandler(h.reg.touchCancel, h.id)
	}
}

func removeTouchHandler(s []touchHandler, id uint32) []touchHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = touchHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnTouchDown registers a scene-level callback for touch down events.
func (s *Scene) OnTouchDown(fn func(TouchContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.touchDown = append(s.handlers.touchDown, touchHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTouchDown}
}

// OnTouchMove registers a scene-level callback for held-touch move events.
func (s *Scene) OnTouchMove(fn func(TouchContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.touchMove = append(s.handlers.touchMove, touchHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTouchMove}
}

// OnTouchUp registers a scene-level callback for touch up events.
func (s *Scene) OnTouchUp(fn func(TouchContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.touchUp = append(s.handlers.touchUp, touchHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTouchUp}
}

// OnTouchCancel registers a scene-level callback for touch cancel events.
func (s *Scene) OnTouchCancel(fn func(TouchContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.touchCancel = append(s.handlers.touchCancel, touchHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTouchCancel}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives an AABB from the sprite image.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type != NodeTypeSprite {
		return false
	}
	img := n.customImage
	if img == nil {
		img = WhitePixel
	}
	b := img.Bounds()
	return lx >= 0 && lx <= float64(b.Dx()) && ly >= 0 && ly <= float64(b.Dy())
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}

	// Add this node if it's potentially hit-testable (has shape or image).
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}

	for _, child := range n.sortedChildList() {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle all mouse and touch
// input. World transforms are already refreshed at the start of Scene.Update().
// Injected events take over the mouse pointer for the frame they fire.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	s.processMousePointer()
	s.processTouchPointers()
}

// processMousePointer handles mouse input (pointer 0). Only the primary
// button participates in touch emulation.
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	// Mark all touch slots as unused this frame.
	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	// Check existing mapping.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	// Allocate new slot.
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the touch state machine for a single pointer.
//
// Unlike hover-style dispatch, all events after the press are delivered to
// the node latched at press time, wherever the pointer currently is. Nodes
// that track a press (buttons) need to see the release even when it lands
// outside their bounds.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool) {
	ps := &s.pointers[pointerID]

	if pressed && !ps.down {
		// Just pressed — latch the hit node for this interaction.
		target := s.hitTest(wx, wy)
		ps.down = true
		ps.startX = wx
		ps.startY = wy
		ps.lastX = wx
		ps.lastY = wy
		ps.hitNode = target

		s.fireTouch(EventTouchDown, target, pointerID, wx, wy)
	} else if !pressed && ps.down {
		// Just released.
		s.fireTouch(EventTouchUp, ps.hitNode, pointerID, wx, wy)
		ps.down = false
		ps.hitNode = nil
	} else if pressed && ps.down {
		// Held down, possibly moved.
		if wx != ps.lastX || wy != ps.lastY {
			s.fireTouch(EventTouchMove, ps.hitNode, pointerID, wx, wy)
			ps.lastX = wx
			ps.lastY = wy
		}
	}
	// Not pressed and not down: nothing to do; insk has no hover events.
}

// cancelPointer cancels an in-flight touch for a single pointer.
// No-op if the pointer is not down.
func (s *Scene) cancelPointer(pointerID int) {
	ps := &s.pointers[pointerID]
	if !ps.down {
		return
	}
	s.fireTouch(EventTouchCancel, ps.hitNode, pointerID, ps.lastX, ps.lastY)
	ps.down = false
	ps.hitNode = nil
}

// CancelTouches cancels every in-flight touch, delivering a cancel event to
// each latched node. Call when the host interrupts input (window focus loss,
// scene transition). Cancelled touches fire no up events.
func (s *Scene) CancelTouches() {
	for i := 0; i < maxPointers; i++ {
		s.cancelPointer(i)
	}
	for i := 1; i < maxPointers; i++ {
		s.touchUsed[i] = false
		s.touchMap[i] = 0
	}
}

// --- Event dispatch ---

// phaseForEvent maps a scene event type to the touch phase nodes observe.
func phaseForEvent(event EventType) TouchPhase {
	switch event {
	case EventTouchDown:
		return TouchBegan
	case EventTouchMove:
		return TouchMoved
	case EventTouchUp:
		return TouchEnded
	default:
		return TouchCancelled
	}
}

func (s *Scene) fireTouch(event EventType, node *Node, pointerID int, wx, wy float64) {
	var lx, ly float64
	var userData any
	if node != nil {
		lx, ly = node.WorldToLocal(wx, wy)
		userData = node.UserData
	}
	ctx := TouchContext{
		Node: node, UserData: userData,
		GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		PointerID: pointerID, Phase: phaseForEvent(event),
	}

	// Scene-level handlers first.
	var handlers []touchHandler
	switch event {
	case EventTouchDown:
		handlers = s.handlers.touchDown
	case EventTouchMove:
		handlers = s.handlers.touchMove
	case EventTouchUp:
		handlers = s.handlers.touchUp
	case EventTouchCancel:
		handlers = s.handlers.touchCancel
	}
	for _, h := range handlers {
		h.fn(ctx)
	}

	// Per-node callback.
	if node == nil {
		return
	}
	switch event {
	case EventTouchDown:
		if node.OnTouchDown != nil {
			node.OnTouchDown(ctx)
		}
	case EventTouchMove:
		if node.OnTouchMove != nil {
			node.OnTouchMove(ctx)
		}
	case EventTouchUp:
		if node.OnTouchUp != nil {
			node.OnTouchUp(ctx)
		}
	case EventTouchCancel:
		if node.OnTouchCancel != nil {
			node.OnTouchCancel(ctx)
		}
	}
}
