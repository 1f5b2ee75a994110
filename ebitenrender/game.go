package ebitenrender

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/party"
)

// Game adapts a party scene to ebiten.Game. Update ticks the scene with the
// wall-clock delta and Draw presents the renderer's last batch.
type Game struct {
	Scene    *party.Scene
	Renderer *Renderer

	Width, Height int
	Background    party.Color

	// OnUpdate runs before every tick. A non-nil error stops the game.
	OnUpdate func() error
	// ShowFPS prints frame rate and particle count in the top-left corner.
	ShowFPS bool

	// Now defaults to time.Now.
	Now func() time.Time

	clock      party.Clock
	sinceStats float64
	statsLine  string
}

// NewGame wires r into scene and returns a game of the given logical size.
func NewGame(scene *party.Scene, r *Renderer, width, height int) *Game {
	scene.SetRenderer(r)
	return &Game{
		Scene:    scene,
		Renderer: r,
		Width:    width,
		Height:   height,
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.OnUpdate != nil {
		if err := g.OnUpdate(); err != nil {
			return err
		}
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	dt := g.clock.Delta(now())
	g.Scene.Tick(dt)

	if g.ShowFPS {
		g.sinceStats += dt
		if g.statsLine == "" || g.sinceStats >= 0.5 {
			g.sinceStats = 0
			g.statsLine = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nParticles: %d",
				ebiten.ActualFPS(), ebiten.ActualTPS(), g.Scene.ParticleCount())
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(g.Background))
	g.Renderer.Draw(screen)
	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, g.statsLine)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Width <= 0 || g.Height <= 0 {
		return outsideWidth, outsideHeight
	}
	return g.Width, g.Height
}

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Background    party.Color
	Blend         BlendMode
	ShowFPS       bool
	// OnUpdate runs before every tick, e.g. to spawn effects on input.
	OnUpdate func() error
}

// Run opens a window and drives scene until the window closes or OnUpdate
// fails.
func Run(scene *party.Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	g := NewGame(scene, New(Options{Blend: cfg.Blend}), cfg.Width, cfg.Height)
	g.Background = cfg.Background
	g.ShowFPS = cfg.ShowFPS
	g.OnUpdate = cfg.OnUpdate

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebitenrender: run: %w", err)
	}
	return nil
}
