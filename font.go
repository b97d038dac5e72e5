package quill

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// FontVariant selects a face within a font family.
type FontVariant uint8

const (
	VariantRegular FontVariant = iota
	VariantBold
	VariantItalic
	VariantBoldItalic
	variantCount
)

// fallbacks lists the variants tried, in order, when v itself is missing.
func (v FontVariant) fallbacks() []FontVariant {
	switch v {
	case VariantBoldItalic:
		return []FontVariant{VariantBoldItalic, VariantBold, VariantItalic, VariantRegular}
	case VariantBold:
		return []FontVariant{VariantBold, VariantRegular}
	case VariantItalic:
		return []FontVariant{VariantItalic, VariantRegular}
	default:
		return []FontVariant{VariantRegular}
	}
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering at one size.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// ParseTTF parses TrueType/OpenType data into a face source usable with
// FontBook.RegisterTTFSource.
func ParseTTF(ttfData []byte) (*text.GoTextFaceSource, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("quill: failed to parse TTF data: %w", err)
	}
	return source, nil
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := ParseTTF(ttfData)
	if err != nil {
		return nil, err
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}
