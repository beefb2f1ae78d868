package insk

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: uint8(c.A * 255),
	}
}

// Vec2 is a 2D vector used for positions, offsets, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair, used for button hit regions.
type Size struct {
	Width, Height float64
}

// WhitePixel is a 1x1 white image used by default for solid color sprites.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders a custom image or the white pixel
)

// TouchPhase identifies where a touch is in its lifecycle.
type TouchPhase uint8

const (
	TouchBegan     TouchPhase = iota // touch pressed down on a node
	TouchMoved                       // touch moved while held down
	TouchEnded                       // touch lifted
	TouchCancelled                   // touch interrupted; not a completed interaction
)

// EventType identifies a kind of touch event for scene-level registration.
type EventType uint8

const (
	EventTouchDown   EventType = iota // fires when a touch begins on a node
	EventTouchMove                    // fires when a held touch moves
	EventTouchUp                      // fires when a touch is released
	EventTouchCancel                  // fires when a touch is cancelled
)
