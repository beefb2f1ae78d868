package insk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Draw renders the scene tree to the given screen image in painter order
// (depth-first, ZIndex-sorted children). Transforms are refreshed first so
// Draw is correct even when called without a preceding Update.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	walkDrawable(s.root, func(n *Node) {
		drawSprite(screen, n)
	})
}

// walkDrawable traverses the tree in painter order, invoking fn for every
// sprite that would be submitted. Invisible subtrees are skipped entirely,
// matching hit testing; fully transparent sprites are skipped too.
func walkDrawable(n *Node, fn func(*Node)) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeSprite && n.worldAlpha > 0 {
		fn(n)
	}
	for _, child := range n.sortedChildList() {
		walkDrawable(child, fn)
	}
}

// drawSprite submits one DrawImage call for a sprite node using its world
// transform and premultiplied tint.
func drawSprite(screen *ebiten.Image, n *Node) {
	img := n.customImage
	if img == nil {
		img = WhitePixel
	}

	var op ebiten.DrawImageOptions
	op.GeoM = geoM(n.worldTransform)

	a := float32(n.worldAlpha * n.Color.A)
	op.ColorScale.Scale(float32(n.Color.R)*a, float32(n.Color.G)*a, float32(n.Color.B)*a, a)

	screen.DrawImage(img, &op)
}

// geoM converts an affine [a, b, c, d, tx, ty] matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}
