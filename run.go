package quill

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window and loop settings for Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	ClearColor Color
	// DeviceScale overrides the monitor's device scale factor when > 0.
	DeviceScale float64
	// ShowFPS adds an FPSCounter field on top of the stage.
	ShowFPS bool
}

// UpdateFunc is called once per tick before the stage's edit script runs.
type UpdateFunc func() error

// Run opens a window and drives stage until the window is closed or the
// stage's update function returns an error.
func Run(stage *Stage, cfg RunConfig) error {
	if stage == nil {
		panic("quill: Run requires a stage")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("quill: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.ClearColor.A > 0 {
		stage.ClearColor = cfg.ClearColor
	}
	if cfg.DeviceScale > 0 {
		stage.DeviceScale = cfg.DeviceScale
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{stage: stage}
	if cfg.ShowFPS {
		g.fps = NewFPSCounter()
		stage.AddField(g.fps.Field)
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("quill: run: %w", err)
	}
	return nil
}

// SetUpdateFunc sets the per-tick callback used by Run.
func (s *Stage) SetUpdateFunc(fn UpdateFunc) {
	s.updateFunc = fn
}

// game adapts a Stage to ebiten.Game.
type game struct {
	stage *Stage
	fps   *FPSCounter
}

func (g *game) Update() error {
	if fn := g.stage.updateFunc; fn != nil {
		if err := fn(); err != nil {
			return err
		}
	}
	g.stage.Update()
	if g.fps != nil {
		dt := 1.0 / 60
		if tps := ebiten.TPS(); tps > 0 {
			dt = 1 / float64(tps)
		}
		g.fps.Update(dt)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
}

// Layout renders at device resolution; Stage.Draw scales logical
// coordinates by the same factor.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.stage.deviceScale()
	return int(float64(outsideWidth) * s), int(float64(outsideHeight) * s)
}
