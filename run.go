package insk

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// game adapts a Scene to the ebiten.Game interface.
type game struct {
	scene  *Scene
	width  int
	height int
}

func (g *game) Update() error {
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run creates a window and drives the scene with a default game loop.
// For full control, implement ebiten.Game yourself and call Scene.Update
// and Scene.Draw directly.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}

	return ebiten.RunGame(&game{scene: scene, width: cfg.Width, height: cfg.Height})
}
