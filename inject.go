package insk

// syntheticEventKind identifies the kind of an injected pointer event.
type syntheticEventKind uint8

const (
	syntheticPress syntheticEventKind = iota
	syntheticMove
	syntheticRelease
	syntheticCancel
)

// syntheticTouchEvent represents a single injected touch event in screen
// coordinates, fed through the same state machine as real mouse input.
type syntheticTouchEvent struct {
	x, y float64
	kind syntheticEventKind
}

// InjectPress queues a touch press event at the given screen coordinates.
// The event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticTouchEvent{x: x, y: y, kind: syntheticPress})
}

// InjectMove queues a touch move event at the given screen coordinates with
// the touch held down. Use this between InjectPress and InjectRelease to
// simulate a drag across the screen.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticTouchEvent{x: x, y: y, kind: syntheticMove})
}

// InjectRelease queues a touch release event at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticTouchEvent{x: x, y: y, kind: syntheticRelease})
}

// InjectCancel queues a touch cancel event. The in-flight injected touch (if
// any) is cancelled at its last position; no release is delivered.
func (s *Scene) InjectCancel() {
	s.injectQueue = append(s.injectQueue, syntheticTouchEvent{kind: syntheticCancel})
}

// InjectTap is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer on the mouse pointer slot. Returns true if an event
// was consumed (real input is skipped for the frame).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticPress, syntheticMove:
		s.processPointer(0, evt.x, evt.y, true)
	case syntheticRelease:
		s.processPointer(0, evt.x, evt.y, false)
	case syntheticCancel:
		s.cancelPointer(0)
	}
	return true
}
