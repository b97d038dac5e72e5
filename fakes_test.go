package quill

import (
	"fmt"
	"unicode/utf8"
)

// --- Test backends ---

type fakeTexture struct {
	id          int
	deallocated bool
}

func (t *fakeTexture) Deallocate() { t.deallocated = true }

// fakeRasterizer records its input and returns a new fakeTexture per call.
// Commands whose family equals failFamily fail with ErrUnsupportedFont.
type fakeRasterizer struct {
	calls      int
	last       []ResolvedCommand
	failFamily string
	err        error
	reuse      bool
	made       []*fakeTexture
}

func (r *fakeRasterizer) Rasterize(cmds []ResolvedCommand, prev Texture) (Raster, error) {
	r.calls++
	if r.err != nil {
		return Raster{}, r.err
	}
	for _, c := range cmds {
		if r.failFamily != "" && c.Style.Family == r.failFamily {
			return Raster{}, fmt.Errorf("%w: family %q", ErrUnsupportedFont, c.Style.Family)
		}
	}
	r.last = append(r.last[:0], cmds...)
	var tex Texture
	if p, ok := prev.(*fakeTexture); ok && r.reuse {
		tex = p
	} else {
		t := &fakeTexture{id: len(r.made) + 1}
		r.made = append(r.made, t)
		tex = t
	}
	return Raster{Texture: tex, Width: 10 * len(cmds), Height: 10, ScaleX: 1, ScaleY: 1}, nil
}

// monoFonts is a FontSource whose faces advance size/2 per rune and are size
// tall. The family "missing" is unsupported.
type monoFonts struct{}

func (monoFonts) Face(style TextStyle) (Font, error) {
	if style.Size <= 0 || style.Family == "missing" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFont, style.Family)
	}
	return monoFace{advance: style.Size / 2, lh: style.Size}, nil
}

type monoFace struct {
	advance, lh float64
}

func (f monoFace) MeasureString(s string) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * f.advance, f.lh
}

func (f monoFace) LineHeight() float64 { return f.lh }

// failingLayouter always fails.
type failingLayouter struct{ err error }

func (l failingLayouter) Layout([]TextRun, LayoutParams) (TextLayout, error) {
	return TextLayout{}, l.err
}

// recordingStore collects emitted events.
type recordingStore struct {
	events []TextEvent
}

func (s *recordingStore) EmitEvent(e TextEvent) { s.events = append(s.events, e) }

func (s *recordingStore) ofType(t TextEventType) []TextEvent {
	var out []TextEvent
	for _, e := range s.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
