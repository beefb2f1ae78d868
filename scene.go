package insk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree and input state.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen at the start of Draw when its alpha is
	// non-zero.
	ClearColor Color

	// Input state
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticTouchEvent

	updateFunc func(dt float64)
}

// NewScene creates a new scene with a pre-created root container.
// The root is interactable so children can receive touches.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{root: root}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetUpdateFunc registers a callback invoked once per Update with the frame
// delta time in seconds, after node OnUpdate hooks and before input.
func (s *Scene) SetUpdateFunc(fn func(dt float64)) {
	s.updateFunc = fn
}

// Update refreshes world transforms, runs per-node OnUpdate hooks, and
// processes input. Call once per ebiten Update tick.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	// Refresh world transforms first so hit testing sees accurate positions
	// this frame.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	runUpdateHooks(s.root, dt)
	if s.updateFunc != nil {
		s.updateFunc(dt)
	}
	s.processInput()
}

// runUpdateHooks invokes OnUpdate on node and all descendants, depth-first.
func runUpdateHooks(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		runUpdateHooks(child, dt)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree depth and child count warnings are printed to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
