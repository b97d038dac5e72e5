// Package term is a terminal backend for quill text render nodes. Text is
// composed into a grid of tcell cells instead of a GPU texture, and laid out
// with a cell-metric font source so the same TextField drives both backends.
package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/phanxgames/quill"
)

// Cell is one terminal cell. A wide grapheme occupies its first cell with
// Width 2; the cell after it has Width 0 and is never drawn.
type Cell struct {
	Rune  rune
	Comb  []rune
	Style tcell.Style
	Width int
}

// Grid is the texture produced by Rasterizer.
type Grid struct {
	Cols, Rows int
	Cells      []Cell
}

// NewGrid allocates an empty cols x rows grid.
func NewGrid(cols, rows int) *Grid {
	return &Grid{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
}

// At returns the cell at (col, row). Out-of-range coordinates return the zero
// cell.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return Cell{}
	}
	return g.Cells[row*g.Cols+col]
}

// String returns the grid content one row per line, with empty cells as
// spaces and trailing spaces trimmed.
func (g *Grid) String() string {
	var b strings.Builder
	for row := 0; row < g.Rows; row++ {
		var line strings.Builder
		for col := 0; col < g.Cols; col++ {
			c := g.Cells[row*g.Cols+col]
			switch {
			case c.Width == 0 && c.Rune == 0 && col > 0 && g.Cells[row*g.Cols+col-1].Width == 2:
			case c.Rune == 0:
				line.WriteByte(' ')
			default:
				line.WriteRune(c.Rune)
				for _, r := range c.Comb {
					line.WriteRune(r)
				}
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		if row < g.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Deallocate implements quill.Texture.
func (g *Grid) Deallocate() {
	g.Cells = nil
	g.Cols, g.Rows = 0, 0
}

func (g *Grid) clear() {
	clear(g.Cells)
}

func (g *Grid) set(col, row int, c Cell) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return
	}
	g.Cells[row*g.Cols+col] = c
}

// Rasterizer composes resolved text commands into a Grid. Logical
// coordinates are mapped to cells by CellWidth and CellHeight.
type Rasterizer struct {
	CellWidth  float64
	CellHeight float64
}

// NewRasterizer creates a rasterizer for the given cell metrics. Values <= 0
// mean 1.
func NewRasterizer(cellWidth, cellHeight float64) *Rasterizer {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if cellHeight <= 0 {
		cellHeight = 1
	}
	return &Rasterizer{CellWidth: cellWidth, CellHeight: cellHeight}
}

type placed struct {
	col, row int
	text     string
	style    tcell.Style
	skip     bool
}

// Rasterize implements quill.TextRasterizer. prev is reused when it is a
// *Grid of the required size.
func (r *Rasterizer) Rasterize(cmds []quill.ResolvedCommand, prev quill.Texture) (quill.Raster, error) {
	out := quill.Raster{ScaleX: 1 / r.CellWidth, ScaleY: 1 / r.CellHeight}

	items := make([]placed, 0, len(cmds))
	var minCol, minRow, maxCol, maxRow int
	for _, cmd := range cmds {
		if cmd.Style.Size <= 0 {
			return quill.Raster{}, fmt.Errorf("%w: size %v", quill.ErrUnsupportedFont, cmd.Style.Size)
		}
		p := placed{
			col:   int(math.Round(cmd.X / r.CellWidth)),
			row:   int(math.Round(cmd.Y / r.CellHeight)),
			text:  norm.NFC.String(cmd.Text),
			style: cellStyle(cmd.Style),
			skip:  cmd.Style.Color.A <= 0 && cmd.Style.Stroke <= 0,
		}
		minCol, minRow = min(minCol, p.col), min(minRow, p.row)
		for i, line := range strings.Split(p.text, "\n") {
			maxCol = max(maxCol, p.col+runewidth.StringWidth(line))
			maxRow = max(maxRow, p.row+i+1)
		}
		items = append(items, p)
	}
	// Cells left of or above the node origin shift the grid; Origin records
	// where its top-left cell sits.
	out.Origin = quill.Vec2{X: float64(minCol) * r.CellWidth, Y: float64(minRow) * r.CellHeight}
	cols, rows := maxCol-minCol, maxRow-minRow
	if cols <= 0 || rows <= 0 {
		return out, nil
	}

	g, _ := prev.(*Grid)
	if g != nil && g.Cols == cols && g.Rows == rows && len(g.Cells) == cols*rows {
		g.clear()
	} else {
		g = NewGrid(cols, rows)
	}

	for _, p := range items {
		if p.skip {
			continue
		}
		p.col -= minCol
		p.row -= minRow
		drawString(g, p)
	}

	out.Texture = g
	out.Width = cols
	out.Height = rows
	return out, nil
}

// drawString writes one grapheme cluster per cell, left to right. Text is
// NFC-composed beforehand so accented letters land in Rune where possible.
func drawString(g *Grid, p placed) {
	col, row := p.col, p.row
	rest := p.text
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "\n" || cluster == "\r\n" {
			col = p.col
			row++
			continue
		}
		runes := []rune(cluster)
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		c := Cell{Rune: runes[0], Style: p.style, Width: w}
		if len(runes) > 1 {
			c.Comb = runes[1:]
		}
		g.set(col, row, c)
		for i := 1; i < w; i++ {
			g.set(col+i, row, Cell{Style: p.style})
		}
		col += w
	}
}

// cellStyle maps a resolved text style to a tcell style. A stroke has no
// cell equivalent and is shown as the background color.
func cellStyle(st quill.TextStyle) tcell.Style {
	s := tcell.StyleDefault.
		Foreground(tcellColor(st.Color)).
		Bold(st.Bold).
		Italic(st.Italic)
	if st.Stroke > 0 && st.StrokeColor.A > 0 {
		s = s.Background(tcellColor(st.StrokeColor))
	}
	return s
}

func tcellColor(c quill.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
