package quill

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// FPSCounter keeps a text field showing the current FPS and TPS. The text is
// refreshed every Interval seconds, so the field is re-rasterized at that
// rate rather than every frame.
type FPSCounter struct {
	Field *TextField
	// Interval is the refresh period in seconds.
	Interval float64

	elapsed float64
	sample  func() (fps, tps float64)
}

// NewFPSCounter creates a counter whose field sits in the top-left corner.
// Add Field to a stage after the other fields to draw it on top.
func NewFPSCounter() *FPSCounter {
	tf := NewTextField("fps_counter", "")
	tf.SetSize(14)
	tf.SetStroke(2)
	tf.X, tf.Y = 4, 4
	return &FPSCounter{
		Field:    tf,
		Interval: 0.5,
		sample: func() (float64, float64) {
			return ebiten.ActualFPS(), ebiten.ActualTPS()
		},
	}
}

// Update advances the refresh timer by dt seconds.
func (c *FPSCounter) Update(dt float64) {
	c.elapsed += dt
	if c.elapsed < c.Interval && c.Field.Text() != "" {
		return
	}
	c.elapsed = 0
	fps, tps := c.sample()
	c.Field.SetText(fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps))
}
