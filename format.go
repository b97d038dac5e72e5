package quill

// formatField is a bit set recording which TextFormat fields are present.
type formatField uint8

const (
	formatColor formatField = 1 << iota
	formatStrokeColor
	formatSize
	formatStroke
	formatBold
	formatItalic
	formatFamily
)

// TextFormat is the style attached to a single piece of drawn text. Every
// field is optional; an absent field inherits the render node's default for
// that field. The zero value has no fields set.
//
// TextFormat is a value type: the WithX methods return modified copies.
type TextFormat struct {
	set         formatField
	color       Color
	strokeColor Color
	size        float64
	stroke      float64
	bold        bool
	italic      bool
	family      string
}

func (f TextFormat) WithColor(c Color) TextFormat {
	f.color = c
	f.set |= formatColor
	return f
}

func (f TextFormat) WithStrokeColor(c Color) TextFormat {
	f.strokeColor = c
	f.set |= formatStrokeColor
	return f
}

func (f TextFormat) WithSize(size float64) TextFormat {
	f.size = size
	f.set |= formatSize
	return f
}

func (f TextFormat) WithStroke(width float64) TextFormat {
	f.stroke = width
	f.set |= formatStroke
	return f
}

func (f TextFormat) WithBold(bold bool) TextFormat {
	f.bold = bold
	f.set |= formatBold
	return f
}

func (f TextFormat) WithItalic(italic bool) TextFormat {
	f.italic = italic
	f.set |= formatItalic
	return f
}

func (f TextFormat) WithFamily(family string) TextFormat {
	f.family = family
	f.set |= formatFamily
	return f
}

// Color returns the text color and whether it is set.
func (f TextFormat) Color() (Color, bool) { return f.color, f.set&formatColor != 0 }

// StrokeColor returns the stroke color and whether it is set.
func (f TextFormat) StrokeColor() (Color, bool) { return f.strokeColor, f.set&formatStrokeColor != 0 }

// Size returns the font size in pixels and whether it is set.
func (f TextFormat) Size() (float64, bool) { return f.size, f.set&formatSize != 0 }

// Stroke returns the stroke width and whether it is set.
func (f TextFormat) Stroke() (float64, bool) { return f.stroke, f.set&formatStroke != 0 }

// Bold returns the bold flag and whether it is set.
func (f TextFormat) Bold() (bool, bool) { return f.bold, f.set&formatBold != 0 }

// Italic returns the italic flag and whether it is set.
func (f TextFormat) Italic() (bool, bool) { return f.italic, f.set&formatItalic != 0 }

// Family returns the font family and whether it is set.
func (f TextFormat) Family() (string, bool) { return f.family, f.set&formatFamily != 0 }

// IsEmpty reports whether no field is set.
func (f TextFormat) IsEmpty() bool { return f.set == 0 }

// TextStyle is a fully resolved style: every field has a value.
type TextStyle struct {
	Family      string
	Size        float64
	Color       Color
	StrokeColor Color
	Stroke      float64
	Bold        bool
	Italic      bool
}

// Variant returns the font variant selected by the bold and italic flags.
func (s TextStyle) Variant() FontVariant {
	switch {
	case s.Bold && s.Italic:
		return VariantBoldItalic
	case s.Bold:
		return VariantBold
	case s.Italic:
		return VariantItalic
	default:
		return VariantRegular
	}
}

// resolveStyle fills every field absent from f with the value from base.
func resolveStyle(base TextStyle, f TextFormat) TextStyle {
	if f.set&formatColor != 0 {
		base.Color = f.color
	}
	if f.set&formatStrokeColor != 0 {
		base.StrokeColor = f.strokeColor
	}
	if f.set&formatSize != 0 {
		base.Size = f.size
	}
	if f.set&formatStroke != 0 {
		base.Stroke = f.stroke
	}
	if f.set&formatBold != 0 {
		base.Bold = f.bold
	}
	if f.set&formatItalic != 0 {
		base.Italic = f.italic
	}
	if f.set&formatFamily != 0 {
		base.Family = f.family
	}
	return base
}
