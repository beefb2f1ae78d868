// Package insk provides a tappable button node for [Ebitengine], modeled
// after SpriteKit's INSKButton, on top of a small retained-mode scene graph.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := insk.NewScene()
//	// ... add nodes and buttons ...
//	insk.Run(scene, insk.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *insk.Scene }
//
//	func (g *Game) Update() error              { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)       { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Buttons
//
// A [Button] owns up to five appearance nodes and swaps them as its state
// changes. Assign the slots after construction and call [Button.UpdateState]
// once to make the button visible:
//
//	btn := insk.NewButton(120, 48)
//	btn.SetNormalNode(normal)
//	btn.SetHighlightedNode(highlighted)
//	btn.UpdateState()
//	btn.SetTouchUpInsideHandler(func(b *insk.Button) {
//		// tapped
//	})
//	btn.Node().SetPosition(320, 240)
//	scene.Root().AddChild(btn.Node())
//
// At least the normal and highlighted slots should be set or the button is
// invisible. Use [Button.SetAutoToggleSelection] for on/off toggle semantics
// and the selected slots for the toggled appearance.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
// Create nodes with [NewContainer] and [NewSprite]; for solid-color
// rectangles, pass a nil image and set [Node.Color] and the scale:
//
//	box := insk.NewSprite("box", nil)
//	box.ScaleX, box.ScaleY = 80, 40
//	box.Color = insk.Color{R: 0.3, G: 0.7, B: 1, A: 1}
//
// # Input
//
// The scene polls mouse and touch input each Update and delivers touch
// begin/move/end/cancel events to the topmost interactable node under the
// press. All events after a press go to the node latched at press time, so
// widgets see releases that land outside their bounds. Synthetic events can
// be queued with [Scene.InjectPress] and friends for tests and automation.
//
// [Ebitengine]: https://ebitengine.org
package insk
