package insk

import (
	"math"
	"testing"
)

// newTestButton creates a 100x100 button with all five appearance slots set
// and the appearance refreshed, attached to a fresh scene at the origin.
func newTestButton(t *testing.T) (*Scene, *Button) {
	t.Helper()
	s := NewScene()
	b := NewButton(100, 100)
	b.SetNormalNode(NewContainer("normal"))
	b.SetHighlightedNode(NewContainer("highlighted"))
	b.SetDisabledNode(NewContainer("disabled"))
	b.SetSelectedNormalNode(NewContainer("selected_normal"))
	b.SetSelectedHighlightedNode(NewContainer("selected_highlighted"))
	b.UpdateState()
	s.Root().AddChild(b.Node())
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	return s, b
}

// attachedAppearance returns the appearance slot currently attached to the
// button node, or nil when none is.
func attachedAppearance(b *Button) *Node {
	for _, child := range b.Node().Children() {
		switch child {
		case b.NormalNode(), b.HighlightedNode(), b.DisabledNode(),
			b.SelectedNormalNode(), b.SelectedHighlightedNode():
			return child
		}
	}
	return nil
}

// --- Defaults ---

func TestButtonDefaults(t *testing.T) {
	b := NewButton(100, 50)
	if !b.Enabled() {
		t.Error("new button should be enabled")
	}
	if b.Highlighted() {
		t.Error("new button should not be highlighted")
	}
	if b.Selected() {
		t.Error("new button should not be selected")
	}
	if b.AutoToggleSelection() {
		t.Error("auto toggle should default to off")
	}
	if b.Size() != (Size{Width: 100, Height: 50}) {
		t.Errorf("Size = %v, want {100 50}", b.Size())
	}
	if !b.Node().Interactable {
		t.Error("button node should be interactable")
	}
	if b.Node().HitShape == nil {
		t.Fatal("button node should have a hit shape")
	}
	// Hit region is centered on the node position.
	if !b.Node().HitShape.Contains(0, 0) || !b.Node().HitShape.Contains(-50, -25) {
		t.Error("hit shape should cover the centered rect")
	}
	if b.Node().HitShape.Contains(51, 0) {
		t.Error("hit shape should not extend past half the width")
	}
}

// --- Appearance selection ---

func TestButtonStateTable(t *testing.T) {
	_, b := newTestButton(t)

	tests := []struct {
		name        string
		enabled     bool
		highlighted bool
		selected    bool
		want        func(*Button) *Node
	}{
		{"normal", true, false, false, (*Button).NormalNode},
		{"highlighted", true, true, false, (*Button).HighlightedNode},
		{"selected normal", true, false, true, (*Button).SelectedNormalNode},
		{"selected highlighted", true, true, true, (*Button).SelectedHighlightedNode},
		{"disabled", false, false, false, (*Button).DisabledNode},
		{"disabled wins over highlight", false, true, false, (*Button).DisabledNode},
		{"disabled wins over selection", false, false, true, (*Button).DisabledNode},
		{"disabled wins over both", false, true, true, (*Button).DisabledNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.enabled = tt.enabled
			b.highlighted = tt.highlighted
			b.selected = tt.selected
			b.UpdateState()

			want := tt.want(b)
			if got := attachedAppearance(b); got != want {
				t.Errorf("attached %v, want %v", got, want)
			}
			// Exactly one appearance node attached at a time.
			count := 0
			for _, child := range b.Node().Children() {
				switch child {
				case b.NormalNode(), b.HighlightedNode(), b.DisabledNode(),
					b.SelectedNormalNode(), b.SelectedHighlightedNode():
					count++
				}
			}
			if count != 1 {
				t.Errorf("%d appearance nodes attached, want 1", count)
			}
		})
	}
}

func TestButtonUnsetSlotShowsNothing(t *testing.T) {
	b := NewButton(100, 100)
	b.SetNormalNode(NewContainer("normal"))
	b.UpdateState()
	if b.Node().NumChildren() != 1 {
		t.Fatalf("NumChildren = %d, want 1", b.Node().NumChildren())
	}

	// No disabled slot set: disabling shows nothing. Not an error.
	b.SetEnabled(false)
	if b.Node().NumChildren() != 0 {
		t.Errorf("disabled button without a disabled slot should show nothing, got %d children",
			b.Node().NumChildren())
	}

	b.SetEnabled(true)
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("re-enabling should restore the normal node")
	}
}

func TestButtonUpdateStateBeforeSetup(t *testing.T) {
	b := NewButton(100, 100)
	// No slots assigned at all — must be safe.
	b.UpdateState()
	b.UpdateState()
	if b.Node().NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", b.Node().NumChildren())
	}
}

func TestButtonUpdateStateIdempotent(t *testing.T) {
	_, b := newTestButton(t)
	if attachedAppearance(b) != b.NormalNode() {
		t.Fatal("normal node should be attached")
	}

	// Append a sentinel after the appearance node. A redundant detach+attach
	// would move the appearance node behind the sentinel.
	sentinel := NewContainer("sentinel")
	b.Node().AddChild(sentinel)
	if b.Node().ChildAt(0) != b.NormalNode() {
		t.Fatal("appearance node should be first")
	}

	b.UpdateState()
	b.UpdateState()
	if b.Node().ChildAt(0) != b.NormalNode() {
		t.Error("repeated UpdateState with unchanged state must not reattach the appearance node")
	}
}

func TestButtonSlotSettersDoNotRefresh(t *testing.T) {
	b := NewButton(100, 100)
	b.SetNormalNode(NewContainer("normal"))
	if b.Node().NumChildren() != 0 {
		t.Error("slot setters must not attach anything before UpdateState")
	}
	b.UpdateState()
	if b.Node().NumChildren() != 1 {
		t.Error("UpdateState should attach the normal node")
	}
}

// --- Touch handling ---

func TestButtonTouchDown(t *testing.T) {
	s, b := newTestButton(t)

	downs := 0
	b.SetTouchDownHandler(func(btn *Button) {
		downs++
		if btn != b {
			t.Error("handler should receive the button")
		}
		if !btn.Highlighted() {
			t.Error("button should be highlighted when the down handler fires")
		}
	})

	s.processPointer(0, 10, 10, true)
	if downs != 1 {
		t.Fatalf("down handler fired %d times, want 1", downs)
	}
	if !b.Highlighted() {
		t.Error("button should be highlighted after touch down")
	}
	if attachedAppearance(b) != b.HighlightedNode() {
		t.Error("highlighted node should be attached after touch down")
	}
}

func TestButtonTouchDownDisabled(t *testing.T) {
	s, b := newTestButton(t)
	b.SetEnabled(false)

	var fired bool
	b.SetTouchDownHandler(func(*Button) { fired = true })

	s.processPointer(0, 10, 10, true)
	if fired {
		t.Error("disabled button must not fire the down handler")
	}
	if b.Highlighted() {
		t.Error("disabled button must not highlight")
	}
	if attachedAppearance(b) != b.DisabledNode() {
		t.Error("disabled node should stay attached")
	}
}

func TestButtonTouchUpInside(t *testing.T) {
	s, b := newTestButton(t)

	var order []string
	b.SetTouchDownHandler(func(*Button) { order = append(order, "down") })
	b.SetTouchUpInsideHandler(func(*Button) { order = append(order, "upinside") })
	b.SetTouchUpHandler(func(*Button) { order = append(order, "up") })

	s.processPointer(0, 10, 10, true)
	s.processPointer(0, 10, 10, false)

	want := []string{"down", "upinside", "up"}
	if len(order) != len(want) {
		t.Fatalf("events = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("events = %v, want %v", order, want)
		}
	}
	if b.Highlighted() {
		t.Error("highlight should clear on touch up")
	}
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("normal node should be attached after touch up")
	}
}

func TestButtonTouchUpOutside(t *testing.T) {
	s, b := newTestButton(t)

	var order []string
	b.SetTouchUpInsideHandler(func(*Button) { order = append(order, "upinside") })
	b.SetTouchUpHandler(func(*Button) { order = append(order, "up") })

	s.processPointer(0, 10, 10, true)
	s.processPointer(0, 500, 500, true) // drag outside
	s.processPointer(0, 500, 500, false)

	if len(order) != 1 || order[0] != "up" {
		t.Fatalf("events = %v, want [up]", order)
	}
	if b.Highlighted() {
		t.Error("highlight should be clear after release outside")
	}
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("normal node should be attached after release outside")
	}
}

func TestButtonHighlightFollowsTouch(t *testing.T) {
	s, b := newTestButton(t)

	s.processPointer(0, 10, 10, true)
	if attachedAppearance(b) != b.HighlightedNode() {
		t.Fatal("highlighted node should be attached while pressed inside")
	}

	s.processPointer(0, 500, 500, true) // leave
	if b.Highlighted() {
		t.Error("highlight should clear when the touch leaves the hit region")
	}
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("normal node should be attached while pressed outside")
	}

	s.processPointer(0, 5, 5, true) // re-enter
	if !b.Highlighted() {
		t.Error("highlight should return when the touch re-enters")
	}
	if attachedAppearance(b) != b.HighlightedNode() {
		t.Error("highlighted node should be attached again")
	}
}

func TestButtonMoveInsideNoChurn(t *testing.T) {
	s, b := newTestButton(t)

	s.processPointer(0, 10, 10, true)
	sentinel := NewContainer("sentinel")
	b.Node().AddChild(sentinel)

	// Moves that stay inside must not touch the appearance attachment.
	s.processPointer(0, 20, 20, true)
	s.processPointer(0, 30, 5, true)
	if b.Node().ChildAt(0) != b.HighlightedNode() {
		t.Error("moving inside the hit region must not reattach the appearance node")
	}
}

func TestButtonAutoToggleSelection(t *testing.T) {
	s, b := newTestButton(t)
	b.SetAutoToggleSelection(true)

	// Completed tap inside flips selected.
	s.processPointer(0, 10, 10, true)
	if b.Selected() {
		t.Fatal("selection must not toggle on touch down")
	}
	s.processPointer(0, 10, 10, false)
	if !b.Selected() {
		t.Fatal("selection should toggle on touch up")
	}
	if attachedAppearance(b) != b.SelectedNormalNode() {
		t.Error("selected normal node should be attached after the toggle")
	}

	// Second tap toggles back.
	s.processPointer(0, 10, 10, true)
	if attachedAppearance(b) != b.SelectedHighlightedNode() {
		t.Error("selected highlighted node should be attached while pressed")
	}
	s.processPointer(0, 10, 10, false)
	if b.Selected() {
		t.Error("second tap should toggle selection off")
	}
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("normal node should be attached after toggling off")
	}
}

func TestButtonAutoToggleOnReleaseOutside(t *testing.T) {
	s, b := newTestButton(t)
	b.SetAutoToggleSelection(true)

	// The toggle happens on any completed touch cycle, inside or outside.
	s.processPointer(0, 10, 10, true)
	s.processPointer(0, 500, 500, true)
	s.processPointer(0, 500, 500, false)
	if !b.Selected() {
		t.Error("completed touch should toggle selection even when released outside")
	}
}

func TestButtonTouchCancel(t *testing.T) {
	s, b := newTestButton(t)
	b.SetAutoToggleSelection(true)

	var fired []string
	b.SetTouchUpInsideHandler(func(*Button) { fired = append(fired, "upinside") })
	b.SetTouchUpHandler(func(*Button) { fired = append(fired, "up") })

	s.processPointer(0, 10, 10, true)
	s.cancelPointer(0)

	if len(fired) != 0 {
		t.Errorf("cancel fired %v, want no handlers", fired)
	}
	if b.Highlighted() {
		t.Error("cancel should clear the highlight")
	}
	if b.Selected() {
		t.Error("cancel must not toggle selection")
	}
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("normal node should be attached after cancel")
	}

	// The button accepts a fresh touch after a cancel.
	s.processPointer(0, 10, 10, true)
	if !b.Highlighted() {
		t.Error("button should track a new touch after a cancel")
	}
}

func TestButtonDisableWhileHighlighted(t *testing.T) {
	s, b := newTestButton(t)

	s.processPointer(0, 10, 10, true)
	if attachedAppearance(b) != b.HighlightedNode() {
		t.Fatal("highlighted node should be attached")
	}

	// Disabling directly swaps the appearance without any touch event.
	b.SetEnabled(false)
	if attachedAppearance(b) != b.DisabledNode() {
		t.Error("disabled node should attach immediately when disabled")
	}

	// The release while disabled fires nothing but still ends the highlight:
	// the flag only holds while a tracked touch remains pressed.
	var fired bool
	b.SetTouchUpHandler(func(*Button) { fired = true })
	s.processPointer(0, 10, 10, false)
	if fired {
		t.Error("release while disabled must not fire handlers")
	}
	if b.Highlighted() {
		t.Error("release while disabled should clear the highlight")
	}

	// Re-enabling shows the normal face, not a stale highlight.
	b.SetEnabled(true)
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("normal node should attach after re-enabling")
	}
}

func TestButtonIgnoresSecondTouch(t *testing.T) {
	s, b := newTestButton(t)

	downs := 0
	ups := 0
	b.SetTouchDownHandler(func(*Button) { downs++ })
	b.SetTouchUpHandler(func(*Button) { ups++ })

	s.processPointer(1, 10, 10, true) // first touch latches
	s.processPointer(2, 5, 5, true)   // concurrent touch ignored
	if downs != 1 {
		t.Fatalf("down fired %d times, want 1", downs)
	}

	s.processPointer(2, 5, 5, false) // ignored release
	if ups != 0 {
		t.Fatal("release of an untracked touch must not fire")
	}
	if !b.Highlighted() {
		t.Error("first touch should still be tracked")
	}

	s.processPointer(1, 10, 10, false)
	if ups != 1 {
		t.Errorf("up fired %d times, want 1", ups)
	}
}

func TestButtonHandlerReplaceAndClear(t *testing.T) {
	s, b := newTestButton(t)

	var first, second int
	b.SetTouchDownHandler(func(*Button) { first++ })
	b.SetTouchDownHandler(func(*Button) { second++ })

	s.processPointer(0, 10, 10, true)
	s.processPointer(0, 10, 10, false)
	if first != 0 || second != 1 {
		t.Errorf("first=%d second=%d, want 0 and 1 (setter replaces)", first, second)
	}

	b.SetTouchDownHandler(nil)
	s.processPointer(0, 10, 10, true)
	s.processPointer(0, 10, 10, false)
	if second != 1 {
		t.Error("nil handler should clear the registration")
	}
}

func TestButtonSetSelectedRefreshes(t *testing.T) {
	_, b := newTestButton(t)

	b.SetSelected(true)
	if attachedAppearance(b) != b.SelectedNormalNode() {
		t.Error("SetSelected(true) should attach the selected normal node")
	}
	b.SetSelected(false)
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("SetSelected(false) should attach the normal node")
	}
}

// --- Spec scenarios ---

func TestButtonScenarioTapInside(t *testing.T) {
	// size=(100,100), only normal/highlighted set, enabled.
	s := NewScene()
	b := NewButton(100, 100)
	b.SetNormalNode(NewContainer("normal"))
	b.SetHighlightedNode(NewContainer("highlighted"))
	b.UpdateState()
	s.Root().AddChild(b.Node())
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	var events []string
	b.SetTouchDownHandler(func(*Button) { events = append(events, "down") })
	b.SetTouchUpInsideHandler(func(*Button) { events = append(events, "upinside") })
	b.SetTouchUpHandler(func(*Button) { events = append(events, "up") })

	s.processPointer(0, 10, 10, true)
	if attachedAppearance(b) != b.HighlightedNode() {
		t.Error("highlighted node should be attached after down at (10,10)")
	}
	s.processPointer(0, 10, 10, false)
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("normal node should be attached after up at (10,10)")
	}

	want := []string{"down", "upinside", "up"}
	for i := range want {
		if i >= len(events) || events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
}

func TestButtonScenarioDragOutAndRelease(t *testing.T) {
	s := NewScene()
	b := NewButton(100, 100)
	b.SetNormalNode(NewContainer("normal"))
	b.SetHighlightedNode(NewContainer("highlighted"))
	b.UpdateState()
	s.Root().AddChild(b.Node())
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	var events []string
	b.SetTouchUpInsideHandler(func(*Button) { events = append(events, "upinside") })
	b.SetTouchUpHandler(func(*Button) { events = append(events, "up") })

	s.processPointer(0, 10, 10, true)
	s.processPointer(0, 500, 500, true)
	s.processPointer(0, 500, 500, false)

	if b.Highlighted() {
		t.Error("highlight should be false in the final state")
	}
	if attachedAppearance(b) != b.NormalNode() {
		t.Error("normal node should be attached in the final state")
	}
	if len(events) != 1 || events[0] != "up" {
		t.Errorf("events = %v, want [up]", events)
	}
}

// --- Press feedback ---

func TestButtonPressedScale(t *testing.T) {
	s, b := newTestButton(t)
	b.SetPressedScale(0.9)

	s.processPointer(0, 10, 10, true)
	// Drive the tween through the node's update hook past the full duration.
	for i := 0; i < 12; i++ {
		b.Node().OnUpdate(float64(pressFeedbackDuration) / 10)
	}
	if math.Abs(b.Node().ScaleX-0.9) > 0.01 || math.Abs(b.Node().ScaleY-0.9) > 0.01 {
		t.Errorf("pressed scale = (%v, %v), want ~(0.9, 0.9)", b.Node().ScaleX, b.Node().ScaleY)
	}

	s.processPointer(0, 10, 10, false)
	for i := 0; i < 12; i++ {
		b.Node().OnUpdate(float64(pressFeedbackDuration) / 10)
	}
	if math.Abs(b.Node().ScaleX-1) > 0.01 {
		t.Errorf("released scale = %v, want ~1", b.Node().ScaleX)
	}
}

func TestButtonPressedScaleDisabledByDefault(t *testing.T) {
	s, b := newTestButton(t)

	s.processPointer(0, 10, 10, true)
	b.Node().OnUpdate(1)
	if b.Node().ScaleX != 1 || b.Node().ScaleY != 1 {
		t.Error("press feedback should be off by default")
	}
}
