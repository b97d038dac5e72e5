package quill

import (
	"container/list"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily is the family registered by DefaultFontBook.
const DefaultFamily = "Go"

// FontSource resolves a style to a sized Font.
type FontSource interface {
	Face(style TextStyle) (Font, error)
}

type fontFamily struct {
	ttf    [variantCount]*text.GoTextFaceSource
	bitmap [variantCount]*BitmapFont
}

type ttfKey struct {
	source *text.GoTextFaceSource
	size   float64
}

type ttfEntry struct {
	key  ttfKey
	font *TTFFont
}

// DefaultMaxCachedFaces is the TTF face cache capacity of a new FontBook.
const DefaultMaxCachedFaces = 64

// FontBook maps family names to registered fonts. TTF families render at any
// size; bitmap families are scaled from their authored size. Lookups for an
// unregistered family use the fallback family when one is set.
type FontBook struct {
	families map[string]*fontFamily
	fallback string

	// MaxCachedFaces bounds the sized TTF faces kept; the least recently
	// used face is dropped past it. Values <= 0 mean DefaultMaxCachedFaces.
	MaxCachedFaces int

	ttfCache map[ttfKey]*list.Element
	ttfLRU   *list.List // front = most recent
}

// NewFontBook creates an empty font book.
func NewFontBook() *FontBook {
	return &FontBook{
		families:       make(map[string]*fontFamily),
		MaxCachedFaces: DefaultMaxCachedFaces,
		ttfCache:       make(map[ttfKey]*list.Element),
		ttfLRU:         list.New(),
	}
}

// DefaultFontBook returns a font book with the Go fonts registered under
// DefaultFamily in all four variants and set as the fallback.
func DefaultFontBook() (*FontBook, error) {
	b := NewFontBook()
	faces := [variantCount][]byte{
		VariantRegular:    goregular.TTF,
		VariantBold:       gobold.TTF,
		VariantItalic:     goitalic.TTF,
		VariantBoldItalic: gobolditalic.TTF,
	}
	for v, data := range faces {
		if err := b.RegisterTTF(DefaultFamily, FontVariant(v), data); err != nil {
			return nil, err
		}
	}
	b.SetFallback(DefaultFamily)
	return b, nil
}

func (b *FontBook) family(name string) *fontFamily {
	fam, ok := b.families[name]
	if !ok {
		fam = &fontFamily{}
		b.families[name] = fam
	}
	return fam
}

// RegisterTTF parses TTF/OTF data and registers it as the given variant of
// family.
func (b *FontBook) RegisterTTF(family string, v FontVariant, ttfData []byte) error {
	source, err := ParseTTF(ttfData)
	if err != nil {
		return fmt.Errorf("quill: register %s %q: %w", v, family, err)
	}
	b.RegisterTTFSource(family, v, source)
	return nil
}

// RegisterTTFSource registers an already parsed face source.
func (b *FontBook) RegisterTTFSource(family string, v FontVariant, source *text.GoTextFaceSource) {
	if v >= variantCount {
		v = VariantRegular
	}
	b.family(family).ttf[v] = source
}

// RegisterBitmapFont registers a bitmap font as the given variant of family.
func (b *FontBook) RegisterBitmapFont(family string, v FontVariant, f *BitmapFont) {
	if v >= variantCount {
		v = VariantRegular
	}
	b.family(family).bitmap[v] = f
}

// SetFallback sets the family used when a style names an unregistered one.
func (b *FontBook) SetFallback(family string) {
	b.fallback = family
}

// HasFamily reports whether family has at least one registered face.
func (b *FontBook) HasFamily(family string) bool {
	_, ok := b.families[family]
	return ok
}

// ttfFace returns the cached face for key, creating it and evicting the least
// recently used face when the cache is full.
func (b *FontBook) ttfFace(key ttfKey) *TTFFont {
	if el, ok := b.ttfCache[key]; ok {
		b.ttfLRU.MoveToFront(el)
		return el.Value.(*ttfEntry).font
	}
	f := newTTFFont(key.source, key.size)
	b.ttfCache[key] = b.ttfLRU.PushFront(&ttfEntry{key: key, font: f})

	limit := b.MaxCachedFaces
	if limit <= 0 {
		limit = DefaultMaxCachedFaces
	}
	for b.ttfLRU.Len() > limit {
		oldest := b.ttfLRU.Back()
		b.ttfLRU.Remove(oldest)
		delete(b.ttfCache, oldest.Value.(*ttfEntry).key)
	}
	return f
}

// CachedFaces returns the number of sized TTF faces currently cached.
func (b *FontBook) CachedFaces() int { return b.ttfLRU.Len() }

// Face returns the font for style. TTF faces are cached per source and size
// in a bounded LRU.
func (b *FontBook) Face(style TextStyle) (Font, error) {
	if style.Size <= 0 {
		return nil, fmt.Errorf("%w: size %v", ErrUnsupportedFont, style.Size)
	}
	fam, ok := b.families[style.Family]
	if !ok && b.fallback != "" {
		fam, ok = b.families[b.fallback]
	}
	if !ok {
		return nil, fmt.Errorf("%w: family %q", ErrUnsupportedFont, style.Family)
	}

	for _, v := range style.Variant().fallbacks() {
		if src := fam.ttf[v]; src != nil {
			return b.ttfFace(ttfKey{source: src, size: style.Size}), nil
		}
		if bf := fam.bitmap[v]; bf != nil {
			scale := 1.0
			if bf.size > 0 {
				scale = style.Size / bf.size
			}
			return &bitmapFace{font: bf, scale: scale}, nil
		}
	}
	return nil, fmt.Errorf("%w: family %q has no usable variant", ErrUnsupportedFont, style.Family)
}

// String returns the variant name.
func (v FontVariant) String() string {
	switch v {
	case VariantRegular:
		return "regular"
	case VariantBold:
		return "bold"
	case VariantItalic:
		return "italic"
	case VariantBoldItalic:
		return "bold italic"
	default:
		return "unknown"
	}
}
