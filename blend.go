package quill

import "github.com/hajimehoshi/ebiten/v2"

// BlendMode selects a compositing operation. The numeric value is the wire
// encoding: renderers index their dispatch tables with it directly.
type BlendMode uint8

const (
	BlendNormal     BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                         // additive / lighter
	BlendErase                       // destination-out (punch transparent holes)
	BlendMultiply                    // source * destination; only darkens
	BlendScreen                      // 1 - (1-src)*(1-dst); only brightens
	BlendLighten                     // per-channel max
	BlendDarken                      // per-channel min
	BlendDifference                  // |dst - src|
	BlendOverlay                     // multiply or screen depending on dst
	BlendHardLight                   // multiply or screen depending on src
	BlendSubtract                    // dst - src
	BlendInvert                      // inverts the destination under the source
	blendModeCount
)

// BlendModeCount is the number of encodable blend modes.
const BlendModeCount = int(blendModeCount)

// BlendSupport describes how widely a blend mode is available across
// renderers.
type BlendSupport uint8

const (
	BlendSupportUniversal  BlendSupport = iota // every renderer
	BlendSupportPartial                        // most GPU renderers
	BlendSupportRestricted                     // restricted platforms only
)

var blendModeNames = [blendModeCount]string{
	"normal",
	"add",
	"erase",
	"multiply",
	"screen",
	"lighten",
	"darken",
	"difference",
	"overlay",
	"hard-light",
	"subtract",
	"invert",
}

var blendModeByName = func() map[string]BlendMode {
	m := make(map[string]BlendMode, len(blendModeNames))
	for i, name := range blendModeNames {
		m[name] = BlendMode(i)
	}
	return m
}()

// EncodeBlendMode returns the numeric encoding of a blend mode name.
// Unknown names encode to 0 (normal).
func EncodeBlendMode(name string) int {
	return int(blendModeByName[name])
}

// DecodeBlendMode returns the name for a numeric encoding. Indices outside
// [0, BlendModeCount) decode to "normal".
func DecodeBlendMode(index int) string {
	if index < 0 || index >= BlendModeCount {
		return blendModeNames[BlendNormal]
	}
	return blendModeNames[index]
}

// String returns the symbolic name of the blend mode.
func (b BlendMode) String() string {
	return DecodeBlendMode(int(b))
}

// Support reports the availability tier of the blend mode.
func (b BlendMode) Support() BlendSupport {
	switch {
	case b <= BlendErase:
		return BlendSupportUniversal
	case b <= BlendHardLight:
		return BlendSupportPartial
	case b < blendModeCount:
		return BlendSupportRestricted
	default:
		return BlendSupportUniversal
	}
}

// ebitenBlends is the dispatch table indexed by BlendMode. Difference,
// overlay and hard-light need a shader; fixed-function blending draws them
// as source-over.
var ebitenBlends = [blendModeCount]ebiten.Blend{
	BlendNormal: ebiten.BlendSourceOver,
	BlendAdd:    ebiten.BlendLighter,
	BlendErase:  ebiten.BlendDestinationOut,
	BlendMultiply: {
		BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
		BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
	BlendScreen: {
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
	BlendLighten: {
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationMax,
		BlendOperationAlpha:         ebiten.BlendOperationMax,
	},
	BlendDarken: {
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationMin,
		BlendOperationAlpha:         ebiten.BlendOperationMax,
	},
	BlendDifference: ebiten.BlendSourceOver,
	BlendOverlay:    ebiten.BlendSourceOver,
	BlendHardLight:  ebiten.BlendSourceOver,
	BlendSubtract: {
		BlendFactorSourceRGB:        ebiten.BlendFactorOne,
		BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
		BlendOperationRGB:           ebiten.BlendOperationReverseSubtract,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
	BlendInvert: {
		BlendFactorSourceRGB:        ebiten.BlendFactorOneMinusDestinationColor,
		BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
		BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
		BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	},
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
// Unknown values blend as source-over.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	if b >= blendModeCount {
		return ebiten.BlendSourceOver
	}
	return ebitenBlends[b]
}
