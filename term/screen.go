package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/phanxgames/quill"
)

// Blit copies g onto screen with its top-left cell at (x, y). Cells outside
// the screen and empty cells are skipped.
func Blit(screen tcell.Screen, g *Grid, x, y int) {
	if g == nil {
		return
	}
	sw, sh := screen.Size()
	for row := 0; row < g.Rows; row++ {
		sy := y + row
		if sy < 0 || sy >= sh {
			continue
		}
		for col := 0; col < g.Cols; col++ {
			sx := x + col
			if sx < 0 || sx >= sw {
				continue
			}
			c := g.Cells[row*g.Cols+col]
			if c.Rune == 0 {
				continue
			}
			screen.SetContent(sx, sy, c.Rune, c.Comb, c.Style)
		}
	}
}

// Draw prepares every field on stage and blits the resulting grids onto
// screen. The stage's render context must be r.
func (r *Rasterizer) Draw(screen tcell.Screen, stage *quill.Stage) {
	stage.Prepare()
	for _, tf := range stage.Fields() {
		if !tf.Visible {
			continue
		}
		g, ok := tf.RenderNode().Texture().(*Grid)
		if !ok {
			continue
		}
		origin := tf.RenderNode().TextureOrigin()
		col := int(math.Round((tf.X + origin.X) / r.CellWidth))
		row := int(math.Round((tf.Y + origin.Y) / r.CellHeight))
		Blit(screen, g, col, row)
	}
}

// NewStage creates a stage that lays out in terminal cells and rasterizes
// into grids.
func NewStage(r *Rasterizer) *quill.Stage {
	return quill.NewStageWithBackends(quill.NewLineBreaker(Fonts{Rasterizer: r}), r)
}

// Fonts is a quill.FontSource with terminal metrics: every family and size
// measures in whole cells.
type Fonts struct {
	Rasterizer *Rasterizer
}

// Face implements quill.FontSource.
func (f Fonts) Face(style quill.TextStyle) (quill.Font, error) {
	if style.Size <= 0 {
		return nil, quill.ErrUnsupportedFont
	}
	return cellFont{w: f.Rasterizer.CellWidth, h: f.Rasterizer.CellHeight}, nil
}

type cellFont struct {
	w, h float64
}

func (f cellFont) MeasureString(s string) (float64, float64) {
	return float64(runewidth.StringWidth(s)) * f.w, f.h
}

func (f cellFont) LineHeight() float64 { return f.h }
