package quill

import (
	"strings"
	"testing"
)

const testTheme = `
[styles.title]
font = "Go"
size = 48
bold = true
color = "#ffcc00"
stroke = 2
stroke_color = "#ff0000"
align = "center"
valign = "middle"
blend = "add"

[styles.body]
size = 16
line_spacing = 4
word_wrap = true
italic = true
`

func TestLoadTheme(t *testing.T) {
	th, err := LoadTheme([]byte(testTheme))
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	names := th.Names()
	if len(names) != 2 || names[0] != "body" || names[1] != "title" {
		t.Errorf("Names() = %v", names)
	}
	st, ok := th.Style("title")
	if !ok || st.Size == nil || *st.Size != 48 || st.Italic != nil {
		t.Errorf("title style = %+v", st)
	}
	if _, ok := th.Style("missing"); ok {
		t.Error("unexpected style")
	}
}

func TestTheme_Apply(t *testing.T) {
	th, err := LoadTheme([]byte(testTheme))
	if err != nil {
		t.Fatal(err)
	}
	tf := NewTextField("f", "x")
	if !th.Apply(tf, "title") {
		t.Fatal("Apply reported missing style")
	}

	if tf.FontString() != "bold 48px Go" {
		t.Errorf("FontString() = %q", tf.FontString())
	}
	if tf.TextColor().Hex() != "#ffcc00" || tf.StrokeColor().Hex() != "#ff0000" {
		t.Errorf("colors = %s / %s", tf.TextColor().Hex(), tf.StrokeColor().Hex())
	}
	if tf.Stroke() != 2 {
		t.Errorf("Stroke() = %v", tf.Stroke())
	}
	if tf.TextAlign() != HAlignCenter || tf.VerticalAlign() != VAlignMiddle {
		t.Errorf("align = %v / %v", tf.TextAlign(), tf.VerticalAlign())
	}
	if tf.BlendMode() != BlendAdd {
		t.Errorf("BlendMode() = %v", tf.BlendMode())
	}

	// Keys left out are not touched.
	th.Apply(tf, "body")
	if !tf.Bold() || !tf.Italic() || tf.Size() != 16 || tf.LineSpacing() != 4 || !tf.WordWrap() {
		t.Errorf("after body: bold=%v italic=%v size=%v spacing=%v wrap=%v",
			tf.Bold(), tf.Italic(), tf.Size(), tf.LineSpacing(), tf.WordWrap())
	}

	if th.Apply(tf, "missing") {
		t.Error("Apply of missing style should report false")
	}
}

func TestTheme_ApplySameValuesIsNoOp(t *testing.T) {
	th, err := LoadTheme([]byte(testTheme))
	if err != nil {
		t.Fatal(err)
	}
	tf := NewTextField("f", "x")
	th.Apply(tf, "title")
	settle(t, tf, nil)

	th.Apply(tf, "title")
	if tf.NeedsRelayout() || tf.RenderNode().NeedsRepaint() {
		t.Error("re-applying the same style should keep the cache")
	}
}

func TestLoadTheme_Errors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"syntax", `[styles.a`, "parse theme"},
		{"bad color", "[styles.a]\ncolor = \"blue\"", `style "a"`},
		{"bad stroke color", "[styles.a]\nstroke_color = \"#zz\"", "invalid color"},
		{"bad align", "[styles.a]\nalign = \"middle\"", "unknown align"},
		{"bad valign", "[styles.a]\nvalign = \"center\"", "unknown valign"},
		{"bad size", "[styles.a]\nsize = 0", "size must be positive"},
		{"wrong type", "[styles.a]\nsize = \"big\"", "parse theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTheme([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
