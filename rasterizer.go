package quill

import (
	"fmt"
	"image"
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// EbitenRasterizer draws text commands onto a single *ebiten.Image. TTF faces
// are drawn with text/v2; bitmap faces are drawn glyph by glyph from their
// atlas. A stroke is drawn as an outline pass behind the fill.
type EbitenRasterizer struct {
	fonts FontSource

	// DeviceScale is the number of device pixels per logical unit. Values
	// <= 0 mean 1.
	DeviceScale float64

	placed []placedCommand // reused across calls
}

type placedCommand struct {
	cmd  *ResolvedCommand
	font Font
}

// NewEbitenRasterizer creates a rasterizer that resolves faces from fonts.
func NewEbitenRasterizer(fonts FontSource) *EbitenRasterizer {
	return &EbitenRasterizer{fonts: fonts, DeviceScale: 1}
}

// Rasterize implements TextRasterizer. prev is reused when it is an
// *ebiten.Image of the required size.
func (r *EbitenRasterizer) Rasterize(cmds []ResolvedCommand, prev Texture) (Raster, error) {
	scale := r.DeviceScale
	if scale <= 0 {
		scale = 1
	}

	// Resolve faces and measure first so an unsupported font fails before any
	// image is touched.
	r.placed = r.placed[:0]
	var pad, minX, minY, maxX, maxY float64
	for i := range cmds {
		cmd := &cmds[i]
		st := cmd.Style
		st.Size *= scale
		f, err := r.fonts.Face(st)
		if err != nil {
			return Raster{}, err
		}
		if bf, ok := f.(*bitmapFace); ok && bf.font.atlas == nil {
			return Raster{}, fmt.Errorf("%w: bitmap family %q has no atlas", ErrUnsupportedFont, cmd.Style.Family)
		}
		w, h := f.MeasureString(cmd.Text)
		x, y := cmd.X*scale, cmd.Y*scale
		if i == 0 {
			minX, minY, maxX, maxY = x, y, x+w, y+h
		} else {
			minX, minY = math.Min(minX, x), math.Min(minY, y)
			maxX, maxY = math.Max(maxX, x+w), math.Max(maxY, y+h)
		}
		pad = math.Max(pad, math.Ceil(cmd.Style.Stroke*scale))
		r.placed = append(r.placed, placedCommand{cmd: cmd, font: f})
	}

	// Commands may sit left of or above the node origin (right-aligned lines
	// wider than the field). The texture starts at the whole-pixel minimum.
	minX, minY = math.Floor(math.Min(minX, 0)), math.Floor(math.Min(minY, 0))
	out := Raster{
		ScaleX: scale,
		ScaleY: scale,
		Origin: Vec2{X: (minX - pad) / scale, Y: (minY - pad) / scale},
	}
	w := int(math.Ceil(maxX - minX + 2*pad))
	h := int(math.Ceil(maxY - minY + 2*pad))
	if maxX <= minX || maxY <= minY || w <= 0 || h <= 0 {
		return out, nil
	}

	img, _ := prev.(*ebiten.Image)
	if img != nil && img.Bounds().Dx() == w && img.Bounds().Dy() == h {
		img.Clear()
	} else {
		img = ebiten.NewImage(w, h)
	}

	for _, p := range r.placed {
		x := p.cmd.X*scale - minX + pad
		y := p.cmd.Y*scale - minY + pad
		st := p.cmd.Style
		if st.Stroke > 0 {
			t := st.Stroke * scale
			offsets := [8][2]float64{
				{-t, 0}, {t, 0}, {0, -t}, {0, t},
				{-t, -t}, {t, -t}, {-t, t}, {t, t},
			}
			for _, off := range offsets {
				drawString(img, p.font, p.cmd.Text, x+off[0], y+off[1], st.StrokeColor)
			}
		}
		drawString(img, p.font, p.cmd.Text, x, y, st.Color)
	}

	out.Texture = img
	out.Width = w
	out.Height = h
	return out, nil
}

// drawString draws s with its top-left corner at (x, y).
func drawString(dst *ebiten.Image, f Font, s string, x, y float64, c Color) {
	switch f := f.(type) {
	case *TTFFont:
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.Scale(
			float32(c.R*c.A),
			float32(c.G*c.A),
			float32(c.B*c.A),
			float32(c.A),
		)
		op.LineSpacing = f.lh
		text.Draw(dst, s, f.face, op)
	case *bitmapFace:
		drawBitmapString(dst, f, s, x, y, c)
	}
}

// drawBitmapString draws glyphs from the bitmap font atlas.
func drawBitmapString(dst *ebiten.Image, bf *bitmapFace, s string, x, y float64, c Color) {
	f := bf.font
	var op ebiten.DrawImageOptions
	op.ColorScale.Scale(
		float32(c.R*c.A),
		float32(c.G*c.A),
		float32(c.B*c.A),
		float32(c.A),
	)

	var cursorX, lineY float64
	var prevRune rune
	var hasPrev bool
	for i := 0; i < len(s); {
		ch, size := utf8.DecodeRuneInString(s[i:])
		i += size

		if ch == '\n' {
			cursorX = 0
			lineY += f.lineHeight
			hasPrev = false
			continue
		}
		g := f.glyph(ch)
		if g == nil {
			hasPrev = false
			continue
		}
		if hasPrev {
			cursorX += float64(f.kern(prevRune, ch))
		}
		if g.width > 0 && g.height > 0 {
			rect := image.Rect(int(g.x), int(g.y), int(g.x)+int(g.width), int(g.y)+int(g.height))
			sub := f.atlas.SubImage(rect).(*ebiten.Image)
			op.GeoM.Reset()
			op.GeoM.Translate(cursorX+float64(g.xOffset), lineY+float64(g.yOffset))
			op.GeoM.Scale(bf.scale, bf.scale)
			op.GeoM.Translate(x, y)
			dst.DrawImage(sub, &op)
		}
		cursorX += float64(g.xAdvance)
		prevRune = ch
		hasPrev = true
	}
}
