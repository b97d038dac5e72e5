package quill

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFont is returned by font lookups and rasterizers when a style
// names a font they cannot produce.
var ErrUnsupportedFont = errors.New("quill: unsupported font")

// Texture is an opaque rasterization result owned by a TextRenderNode.
// *ebiten.Image satisfies it.
type Texture interface {
	Deallocate()
}

// DrawCommand is one piece of text queued for the current pass.
type DrawCommand struct {
	X, Y   float64
	Text   string
	Format TextFormat
}

// ResolvedCommand is a DrawCommand whose format has been resolved against the
// node defaults.
type ResolvedCommand struct {
	X, Y  float64
	Text  string
	Style TextStyle
}

// Raster is the output of a TextRasterizer.
type Raster struct {
	Texture Texture
	// Width and Height are the texture size in device pixels.
	Width, Height int
	// ScaleX and ScaleY are device pixels per logical unit.
	ScaleX, ScaleY float64
	// Origin is the node-local position of the texture's top-left corner.
	Origin Vec2
}

// TextRasterizer is the glyph-rasterization backend. Rasterize consumes the
// commands in paint order and composites them into a single texture. prev is
// the node's current texture (may be nil); the rasterizer may reuse it and
// return it, otherwise the node deallocates it. Failures must be reported,
// never papered over with an empty raster.
type TextRasterizer interface {
	Rasterize(cmds []ResolvedCommand, prev Texture) (Raster, error)
}

// TextRenderNode buffers the text draw commands of one display object and
// caches the rasterized result between passes.
type TextRenderNode struct {
	renderNodeBase

	defaults TextStyle
	commands []DrawCommand
	resolved []ResolvedCommand // reused across passes

	// Cache group: always set or cleared together.
	texture       Texture
	textureWidth  int
	textureHeight int
	scaleX        float64
	scaleY        float64
	origin        Vec2
}

// NewTextRenderNode creates a dirty text node with the given default style.
func NewTextRenderNode(defaults TextStyle) *TextRenderNode {
	return &TextRenderNode{
		renderNodeBase: newRenderNodeBase(RenderNodeText),
		defaults:       defaults,
	}
}

// Defaults returns the fallback style for unset format fields.
func (n *TextRenderNode) Defaults() TextStyle { return n.defaults }

// SetDefaults replaces the fallback style. A changed style marks the node
// dirty.
func (n *TextRenderNode) SetDefaults(s TextStyle) {
	if n.defaults == s {
		return
	}
	n.defaults = s
	n.markDirty()
}

// DrawText appends a command for the current pass. Empty text is accepted and
// still counted.
func (n *TextRenderNode) DrawText(x, y float64, text string, format TextFormat) {
	n.commands = append(n.commands, DrawCommand{X: x, Y: y, Text: text, Format: format})
	n.countDraw()
}

// Commands returns the commands queued since the last CleanBeforeRender.
// The returned slice MUST NOT be mutated by the caller.
func (n *TextRenderNode) Commands() []DrawCommand {
	return n.commands
}

// Texture returns the cached texture, or nil.
func (n *TextRenderNode) Texture() Texture { return n.texture }

// TextureSize returns the cached texture size in device pixels.
func (n *TextRenderNode) TextureSize() (width, height int) {
	return n.textureWidth, n.textureHeight
}

// DeviceScale returns the device pixels per logical unit of the cached
// texture.
func (n *TextRenderNode) DeviceScale() (x, y float64) { return n.scaleX, n.scaleY }

// TextureOrigin returns the node-local position of the cached texture.
func (n *TextRenderNode) TextureOrigin() Vec2 { return n.origin }

// Clean releases the cached texture and its dimensions and marks the node
// dirty. Calling it on a clean node only re-asserts the dirty flag.
func (n *TextRenderNode) Clean() {
	n.releaseTexture()
	n.markDirty()
}

// CleanBeforeRender is the per-pass pre-render hook. It empties the command
// buffer and marks the node dirty; the owner repopulates it afterwards.
func (n *TextRenderNode) CleanBeforeRender() {
	clear(n.commands)
	n.commands = n.commands[:0]
	n.markDirty()
	n.renderNodeBase.cleanBeforeRender()
}

// Render rasterizes the queued commands through ctx, which must implement
// TextRasterizer; any other context (including nil) is ignored. A clean node
// with a cached texture is not re-rasterized. On failure the node stays dirty
// and keeps its previous texture.
func (n *TextRenderNode) Render(ctx RenderContext) error {
	r, ok := ctx.(TextRasterizer)
	if !ok {
		return nil
	}
	if !n.needsRepaint && n.texture != nil {
		return nil
	}
	if len(n.commands) == 0 {
		n.releaseTexture()
		n.needsRepaint = false
		n.rendered = true
		return nil
	}

	n.resolved = n.resolved[:0]
	for _, cmd := range n.commands {
		n.resolved = append(n.resolved, ResolvedCommand{
			X:     cmd.X,
			Y:     cmd.Y,
			Text:  cmd.Text,
			Style: n.resolve(cmd.Format),
		})
	}

	out, err := r.Rasterize(n.resolved, n.texture)
	if err != nil {
		n.needsRepaint = true
		return fmt.Errorf("quill: render text node: %w", err)
	}

	if n.texture != nil && n.texture != out.Texture {
		n.texture.Deallocate()
	}
	n.texture = out.Texture
	n.textureWidth = out.Width
	n.textureHeight = out.Height
	n.scaleX, n.scaleY = out.ScaleX, out.ScaleY
	if n.scaleX <= 0 {
		n.scaleX = 1
	}
	if n.scaleY <= 0 {
		n.scaleY = 1
	}
	n.origin = out.Origin
	n.needsRepaint = false
	n.rendered = true
	return nil
}

// resolve fills the fields absent from f with the node defaults.
func (n *TextRenderNode) resolve(f TextFormat) TextStyle {
	return resolveStyle(n.defaults, f)
}

func (n *TextRenderNode) releaseTexture() {
	if n.texture != nil {
		n.texture.Deallocate()
	}
	n.texture = nil
	n.textureWidth = 0
	n.textureHeight = 0
	n.scaleX = 0
	n.scaleY = 0
	n.origin = Vec2{}
}
