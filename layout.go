package quill

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// TextRun is a span of content sharing one format.
type TextRun struct {
	Text   string
	Format TextFormat
}

// LineFragment is the part of one run that landed on a line.
type LineFragment struct {
	Text   string
	Format TextFormat
	X      float64 // offset from the line start
	Width  float64
}

// TextLine is one laid-out line.
type TextLine struct {
	Fragments []LineFragment
	Width     float64
	Height    float64
}

// TextLayout is the result of a layout pass.
type TextLayout struct {
	Lines  []TextLine
	Width  float64 // widest line
	Height float64 // sum of line heights plus line spacing between lines
}

// LayoutParams carries the field-level inputs of a layout pass.
type LayoutParams struct {
	Style       TextStyle
	Width       float64 // wrap width; 0 means unbounded
	WordWrap    bool
	LineSpacing float64
}

// Layouter is the line-breaking and measurement backend.
type Layouter interface {
	Layout(runs []TextRun, p LayoutParams) (TextLayout, error)
}

// LineBreaker is the default Layouter. It breaks at Unicode line break
// opportunities (UAX #14), honors hard breaks, and measures each segment with
// the font its run resolves to. A segment wider than the wrap width is placed
// on its own line and overflows.
type LineBreaker struct {
	Fonts FontSource
}

// NewLineBreaker creates a LineBreaker over fonts.
func NewLineBreaker(fonts FontSource) *LineBreaker {
	return &LineBreaker{Fonts: fonts}
}

// Layout lays out runs into lines.
func (lb *LineBreaker) Layout(runs []TextRun, p LayoutParams) (TextLayout, error) {
	if lb.Fonts == nil {
		return TextLayout{}, fmt.Errorf("quill: line breaker has no font source")
	}
	base, err := lb.Fonts.Face(p.Style)
	if err != nil {
		return TextLayout{}, err
	}
	baseLH := base.LineHeight()
	wrap := p.WordWrap && p.Width > 0

	var out TextLayout
	cur := TextLine{Height: baseLH}

	flush := func() {
		if cur.Width > out.Width {
			out.Width = cur.Width
		}
		if len(out.Lines) > 0 {
			out.Height += p.LineSpacing
		}
		out.Height += cur.Height
		out.Lines = append(out.Lines, cur)
		cur = TextLine{Height: baseLH}
	}

	for _, run := range runs {
		if run.Text == "" {
			continue
		}
		face, err := lb.Fonts.Face(resolveStyle(p.Style, run.Format))
		if err != nil {
			return TextLayout{}, err
		}
		lh := face.LineHeight()

		rest := run.Text
		state := -1
		for len(rest) > 0 {
			var seg string
			var mustBreak bool
			seg, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)

			content := trimLineBreak(seg)
			hard := mustBreak && len(content) != len(seg)

			w, _ := face.MeasureString(content)
			if wrap && len(cur.Fragments) > 0 {
				// Trailing spaces may hang past the wrap width.
				fitW, _ := face.MeasureString(strings.TrimRight(content, " "))
				if cur.Width+fitW > p.Width {
					flush()
				}
			}
			if content != "" {
				cur.add(content, run.Format, w, lh)
			}
			if hard {
				flush()
			}
		}
	}
	flush()
	return out, nil
}

// trimLineBreak removes a trailing mandatory break (CR LF, LF, CR, VT, FF,
// NEL, LS or PS) from a line segment.
func trimLineBreak(seg string) string {
	if strings.HasSuffix(seg, "\r\n") {
		return seg[:len(seg)-2]
	}
	r, size := utf8.DecodeLastRuneInString(seg)
	switch r {
	case '\n', '\r', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return seg[:len(seg)-size]
	}
	return seg
}

// add appends text to the line, merging with the previous fragment when the
// formats match.
func (l *TextLine) add(text string, f TextFormat, w, lh float64) {
	if n := len(l.Fragments); n > 0 && l.Fragments[n-1].Format == f {
		last := &l.Fragments[n-1]
		last.Text += text
		last.Width += w
	} else {
		l.Fragments = append(l.Fragments, LineFragment{Text: text, Format: f, X: l.Width, Width: w})
	}
	l.Width += w
	if lh > l.Height {
		l.Height = lh
	}
}

// plainLayout splits runs on hard breaks without measuring. Used when no
// layout backend is configured; widths are zero and every line is lineHeight
// tall.
func plainLayout(runs []TextRun, lineHeight, lineSpacing float64) TextLayout {
	var out TextLayout
	cur := TextLine{Height: lineHeight}
	flush := func() {
		if len(out.Lines) > 0 {
			out.Height += lineSpacing
		}
		out.Height += cur.Height
		out.Lines = append(out.Lines, cur)
		cur = TextLine{Height: lineHeight}
	}
	for _, run := range runs {
		parts := strings.Split(run.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				flush()
			}
			part = strings.TrimRight(part, "\r")
			if part != "" {
				cur.add(part, run.Format, 0, lineHeight)
			}
		}
	}
	flush()
	return out
}
