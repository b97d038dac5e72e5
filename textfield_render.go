package quill

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const passwordMask = "*"

// FontString returns the font description, e.g. "italic bold 30px Arial".
func (tf *TextField) FontString() string {
	tf.updateFontString()
	return tf.style.font
}

// updateFontString rebuilds the font description if a font property changed.
func (tf *TextField) updateFontString() {
	if !tf.style.fontStringChanged {
		return
	}
	tf.style.fontStringChanged = false
	tf.style.font = fontString(tf.style.fontFamily, tf.style.size, tf.style.bold, tf.style.italic)
}

func fontString(family string, size float64, bold, italic bool) string {
	var b strings.Builder
	if italic {
		b.WriteString("italic ")
	}
	if bold {
		b.WriteString("bold ")
	}
	b.WriteString(strconv.FormatFloat(size, 'f', -1, 64))
	b.WriteString("px ")
	b.WriteString(family)
	return b.String()
}

// Lines returns the lines from the last layout pass. The returned slice MUST
// NOT be mutated by the caller.
func (tf *TextField) Lines() []TextLine {
	return tf.lines
}

// ApplyLayout stores the result of a layout pass: the measured text size and
// the lines. Layout backends driven outside UpdateRenderNode call this to
// write their results back.
func (tf *TextField) ApplyLayout(l TextLayout) {
	tf.lines = l.Lines
	tf.style.textWidth = l.Width
	tf.style.textHeight = l.Height
	tf.style.textLinesChanged = false
	tf.laidOut = true
	tf.relayout = true
	tf.node.markDirty()
	tf.scrollV = clampInt(tf.scrollV, 1, tf.MaxScrollV())
}

// UpdateRenderNode is the field's pre-render hook. When a change is pending it
// rebuilds the font string, lays the content out with l (or splits on hard
// breaks when l is nil), refreshes the node defaults and repopulates the
// render node for this pass. With nothing pending it leaves the node alone so
// the cached texture is reused.
//
// A layout failure is returned and the change stays pending.
func (tf *TextField) UpdateRenderNode(l Layouter) error {
	if !tf.relayout || tf.disposed {
		return nil
	}
	tf.updateFontString()
	defaults := tf.nodeDefaults()

	if tf.style.textLinesChanged {
		runs := tf.displayRuns()
		if l != nil {
			lay, err := l.Layout(runs, LayoutParams{
				Style:       defaults,
				Width:       tf.style.width,
				WordWrap:    tf.style.wordWrap,
				LineSpacing: tf.style.lineSpacing,
			})
			if err != nil {
				return fmt.Errorf("quill: layout text field %q: %w", tf.Name, err)
			}
			tf.ApplyLayout(lay)
		} else {
			tf.ApplyLayout(plainLayout(runs, tf.style.size, tf.style.lineSpacing))
		}
	}

	tf.node.SetDefaults(defaults)
	tf.node.CleanBeforeRender()
	tf.emitDrawCommands()
	tf.relayout = false
	return nil
}

// displayRuns returns the runs to lay out, masked for password display.
func (tf *TextField) displayRuns() []TextRun {
	if !tf.displayAsPassword {
		return tf.runs
	}
	masked := make([]TextRun, len(tf.runs))
	for i, r := range tf.runs {
		masked[i] = TextRun{
			Text:   maskText(r.Text),
			Format: r.Format,
		}
	}
	return masked
}

// maskText replaces every rune except hard breaks with the password mask.
func maskText(s string) string {
	var b strings.Builder
	b.Grow(utf8.RuneCountInString(s))
	for _, r := range s {
		if r == '\n' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(passwordMask)
	}
	return b.String()
}

// emitDrawCommands issues one DrawText per line fragment, starting at the
// first visible line and stopping once the field height is filled.
func (tf *TextField) emitDrawCommands() {
	alignW := tf.style.width
	if alignW <= 0 {
		alignW = tf.style.textWidth
	}

	var y float64
	if tf.style.height > 0 {
		free := tf.style.height - tf.style.textHeight
		if free > 0 {
			switch tf.style.vAlign {
			case VAlignMiddle:
				y = free / 2
			case VAlignBottom:
				y = free
			}
		}
	}

	for i := tf.scrollV - 1; i < len(tf.lines); i++ {
		if tf.style.height > 0 && i > tf.scrollV-1 && y >= tf.style.height {
			break
		}
		line := tf.lines[i]
		var x float64
		switch tf.style.hAlign {
		case HAlignCenter:
			x = (alignW - line.Width) / 2
		case HAlignRight:
			x = alignW - line.Width
		}
		for _, frag := range line.Fragments {
			tf.node.DrawText(x+frag.X, y, frag.Text, frag.Format)
		}
		y += line.Height + tf.style.lineSpacing
	}
}
