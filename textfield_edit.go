package quill

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Text returns the plain content.
func (tf *TextField) Text() string { return tf.style.text }

// SetText replaces the content with plain text, truncated to MaxChars.
func (tf *TextField) SetText(s string) {
	s = tf.limit(s)
	if tf.style.text == s && tf.isPlain() {
		return
	}
	tf.runs = plainRuns(s)
	tf.commitText(s)
}

// TextFlow returns a copy of the content as formatted runs.
func (tf *TextField) TextFlow() []TextRun {
	out := make([]TextRun, len(tf.runs))
	copy(out, tf.runs)
	return out
}

// SetTextFlow replaces the content with formatted runs. Empty runs are
// dropped and the total is truncated to MaxChars.
func (tf *TextField) SetTextFlow(runs []TextRun) {
	flow := make([]TextRun, 0, len(runs))
	for _, r := range runs {
		if r.Text != "" {
			flow = append(flow, r)
		}
	}
	if tf.maxChars > 0 {
		flow = truncateRuns(flow, tf.maxChars)
	}
	if runsEqual(tf.runs, flow) {
		return
	}
	tf.runs = flow
	tf.commitText(flowText(flow))
}

// AppendText appends s to the content through SetText.
func (tf *TextField) AppendText(s string) {
	tf.SetText(tf.style.text + s)
}

// commitText stores new content and schedules a re-layout.
func (tf *TextField) commitText(s string) {
	tf.style.text = s
	tf.clampSelection()
	tf.invalidate(false)
	if tf.OnChange != nil {
		tf.OnChange(s)
	}
	if tf.stageHook != nil {
		tf.stageHook(tf)
	}
}

func (tf *TextField) isPlain() bool {
	switch len(tf.runs) {
	case 0:
		return true
	case 1:
		return tf.runs[0].Format.IsEmpty()
	default:
		return false
	}
}

// --- Max chars ---

// MaxChars returns the content length limit in runes; 0 means unlimited.
func (tf *TextField) MaxChars() int { return tf.maxChars }

// SetMaxChars sets the content length limit. Existing content longer than
// the new limit is truncated.
func (tf *TextField) SetMaxChars(n int) {
	if n < 0 {
		n = 0
	}
	if tf.maxChars == n {
		return
	}
	tf.maxChars = n
	if n > 0 && utf8.RuneCountInString(tf.style.text) > n {
		if tf.isPlain() {
			tf.SetText(tf.style.text)
		} else {
			tf.SetTextFlow(tf.runs)
		}
	}
}

// limit truncates s to MaxChars.
func (tf *TextField) limit(s string) string {
	if tf.maxChars <= 0 {
		return s
	}
	return truncateRunes(s, tf.maxChars)
}

// --- Selection ---

// SelectionBegin returns the start of the selection, in runes.
func (tf *TextField) SelectionBegin() int { return tf.selBegin }

// SelectionEnd returns the end of the selection, in runes.
func (tf *TextField) SelectionEnd() int { return tf.selEnd }

// SetSelection selects [begin, end). begin is clamped to [0, len] and end to
// [begin, len].
func (tf *TextField) SetSelection(begin, end int) {
	n := utf8.RuneCountInString(tf.style.text)
	begin = clampInt(begin, 0, n)
	end = clampInt(end, begin, n)
	tf.selBegin, tf.selEnd = begin, end
}

func (tf *TextField) clampSelection() {
	tf.SetSelection(tf.selBegin, tf.selEnd)
}

// SelectedText returns the selected span.
func (tf *TextField) SelectedText() string {
	r := []rune(tf.style.text)
	return string(r[tf.selBegin:tf.selEnd])
}

// ReplaceSelectedText replaces the selected span with s and places the caret
// after the inserted text. It does nothing unless the field is an input
// field.
func (tf *TextField) ReplaceSelectedText(s string) {
	if tf.fieldType != TextFieldInput {
		return
	}
	r := []rune(tf.style.text)
	var b strings.Builder
	b.Grow(len(tf.style.text) + len(s))
	b.WriteString(string(r[:tf.selBegin]))
	b.WriteString(s)
	b.WriteString(string(r[tf.selEnd:]))

	caret := tf.selBegin + utf8.RuneCountInString(s)
	tf.SetText(b.String())
	tf.SetSelection(caret, caret)
}

// --- Scrolling ---

// ScrollV returns the first visible line, starting at 1.
func (tf *TextField) ScrollV() int { return tf.scrollV }

// SetScrollV scrolls so that line v is the first visible line. v is clamped
// to [1, MaxScrollV()].
func (tf *TextField) SetScrollV(v int) {
	v = clampInt(v, 1, tf.MaxScrollV())
	if tf.scrollV == v {
		return
	}
	tf.scrollV = v
	tf.relayout = true
	tf.node.markDirty()
}

// MaxScrollV returns the largest valid ScrollV. It is 1 until a layout pass
// has produced lines, and stays 1 for fields without an explicit height.
func (tf *TextField) MaxScrollV() int {
	if !tf.laidOut || tf.style.height <= 0 || len(tf.lines) == 0 {
		return 1
	}
	// Count the lines that fit when scrolled to the end.
	visible := 0
	var h float64
	for i := len(tf.lines) - 1; i >= 0; i-- {
		h += tf.lines[i].Height
		if visible > 0 {
			h += tf.style.lineSpacing
		}
		if h > tf.style.height && visible > 0 {
			break
		}
		visible++
	}
	return max(1, len(tf.lines)-visible+1)
}

// --- helpers ---

func plainRuns(s string) []TextRun {
	if s == "" {
		return nil
	}
	return []TextRun{{Text: s}}
}

func flowText(runs []TextRun) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func runsEqual(a, b []TextRun) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// truncateRunes cuts s to at most n runes without splitting a grapheme
// cluster.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	var count, cut int
	rest := s
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		c := utf8.RuneCountInString(cluster)
		if count+c > n {
			break
		}
		count += c
		cut += len(cluster)
	}
	return s[:cut]
}

// truncateRuns cuts a run list to at most n runes in total.
func truncateRuns(runs []TextRun, n int) []TextRun {
	out := runs[:0:0]
	for _, r := range runs {
		if n <= 0 {
			break
		}
		c := utf8.RuneCountInString(r.Text)
		if c > n {
			r.Text = truncateRunes(r.Text, n)
			c = utf8.RuneCountInString(r.Text)
			n = 0
		} else {
			n -= c
		}
		if r.Text != "" {
			out = append(out, r)
		}
		if c == 0 {
			break
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
