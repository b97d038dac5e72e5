package quill

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Theme is a set of named text styles loaded from TOML:
//
//	[styles.title]
//	font = "Go"
//	size = 48
//	bold = true
//	color = "#ffcc00"
//	stroke = 2
//	stroke_color = "#000000"
//	align = "center"
//	blend = "add"
//
// Any key left out is not applied.
type Theme struct {
	styles map[string]ThemeStyle
}

// ThemeStyle is one named entry in a Theme. Nil fields are not applied.
type ThemeStyle struct {
	Font          *string  `toml:"font"`
	Size          *float64 `toml:"size"`
	Bold          *bool    `toml:"bold"`
	Italic        *bool    `toml:"italic"`
	Color         *string  `toml:"color"`
	StrokeColor   *string  `toml:"stroke_color"`
	Stroke        *float64 `toml:"stroke"`
	Align         *string  `toml:"align"`
	VerticalAlign *string  `toml:"valign"`
	LineSpacing   *float64 `toml:"line_spacing"`
	WordWrap      *bool    `toml:"word_wrap"`
	Blend         *string  `toml:"blend"`

	color, strokeColor Color
	hAlign             HorizontalAlign
	vAlign             VerticalAlign
}

type themeFile struct {
	Styles map[string]ThemeStyle `toml:"styles"`
}

// LoadTheme parses TOML theme data. Colors and alignment names are validated
// up front so Apply cannot fail.
func LoadTheme(data []byte) (*Theme, error) {
	var f themeFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("quill: parse theme: %w", err)
	}
	t := &Theme{styles: make(map[string]ThemeStyle, len(f.Styles))}
	for name, st := range f.Styles {
		if err := st.resolve(); err != nil {
			return nil, fmt.Errorf("quill: theme style %q: %w", name, err)
		}
		t.styles[name] = st
	}
	return t, nil
}

func (st *ThemeStyle) resolve() error {
	var err error
	if st.Color != nil {
		if st.color, err = ParseColor(*st.Color); err != nil {
			return err
		}
	}
	if st.StrokeColor != nil {
		if st.strokeColor, err = ParseColor(*st.StrokeColor); err != nil {
			return err
		}
	}
	if st.Align != nil {
		a, ok := ParseHorizontalAlign(*st.Align)
		if !ok {
			return fmt.Errorf("unknown align %q", *st.Align)
		}
		st.hAlign = a
	}
	if st.VerticalAlign != nil {
		a, ok := ParseVerticalAlign(*st.VerticalAlign)
		if !ok {
			return fmt.Errorf("unknown valign %q", *st.VerticalAlign)
		}
		st.vAlign = a
	}
	if st.Size != nil && *st.Size <= 0 {
		return fmt.Errorf("size must be positive, got %v", *st.Size)
	}
	return nil
}

// Names returns the style names in sorted order.
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.styles))
	for name := range t.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Style returns the named style.
func (t *Theme) Style(name string) (ThemeStyle, bool) {
	st, ok := t.styles[name]
	return st, ok
}

// Apply writes the named style to tf through its setters, so values equal to
// the current ones change nothing. Reports whether the style exists.
func (t *Theme) Apply(tf *TextField, name string) bool {
	st, ok := t.styles[name]
	if !ok {
		return false
	}
	st.Apply(tf)
	return true
}

// Apply writes the style's set values to tf through its setters.
func (st ThemeStyle) Apply(tf *TextField) {
	if st.Font != nil {
		tf.SetFontFamily(*st.Font)
	}
	if st.Size != nil {
		tf.SetSize(*st.Size)
	}
	if st.Bold != nil {
		tf.SetBold(*st.Bold)
	}
	if st.Italic != nil {
		tf.SetItalic(*st.Italic)
	}
	if st.Color != nil {
		tf.SetTextColor(st.color)
	}
	if st.StrokeColor != nil {
		tf.SetStrokeColor(st.strokeColor)
	}
	if st.Stroke != nil {
		tf.SetStroke(*st.Stroke)
	}
	if st.Align != nil {
		tf.SetTextAlign(st.hAlign)
	}
	if st.VerticalAlign != nil {
		tf.SetVerticalAlign(st.vAlign)
	}
	if st.LineSpacing != nil {
		tf.SetLineSpacing(*st.LineSpacing)
	}
	if st.WordWrap != nil {
		tf.SetWordWrap(*st.WordWrap)
	}
	if st.Blend != nil {
		tf.SetBlendMode(BlendMode(EncodeBlendMode(*st.Blend)))
	}
}
