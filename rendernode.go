package quill

// RenderNodeType tags the kind of a render node. It is fixed at construction.
type RenderNodeType uint8

const (
	RenderNodeText RenderNodeType = iota + 1 // buffered text draw commands
)

// RenderContext is the renderer-side state handed to RenderNode.Render for
// one pass. Each node kind asserts the capability it needs (for text nodes,
// TextRasterizer); a context without that capability makes Render a no-op.
type RenderContext any

// RenderNode is the renderer-facing buffer owned by a display object. The
// owner is the only mutator of its lifecycle: it runs CleanBeforeRender once
// per pass, repopulates the node, then hands it to the renderer.
type RenderNode interface {
	Type() RenderNodeType
	RenderCount() int
	NeedsRepaint() bool
	BlendMode() BlendMode
	CleanBeforeRender()
	Clean()
	Render(ctx RenderContext) error
}

// renderNodeBase carries the state shared by every node kind.
type renderNodeBase struct {
	nodeType     RenderNodeType
	renderCount  int
	needsRepaint bool
	blend        BlendMode

	// rendered is a per-pass flag: set after a successful Render, cleared by
	// the pre-render hook.
	rendered bool
}

func newRenderNodeBase(t RenderNodeType) renderNodeBase {
	return renderNodeBase{nodeType: t, needsRepaint: true}
}

// Type returns the node kind.
func (b *renderNodeBase) Type() RenderNodeType { return b.nodeType }

// RenderCount returns the number of draw contributions accepted over the
// node's lifetime.
func (b *renderNodeBase) RenderCount() int { return b.renderCount }

// NeedsRepaint reports whether cached output is stale.
func (b *renderNodeBase) NeedsRepaint() bool { return b.needsRepaint }

// BlendMode returns the blend tag used by the renderer's dispatch table.
func (b *renderNodeBase) BlendMode() BlendMode { return b.blend }

// Rendered reports whether the node completed a Render since the last
// pre-render hook.
func (b *renderNodeBase) Rendered() bool { return b.rendered }

func (b *renderNodeBase) setBlendMode(m BlendMode) { b.blend = m }

func (b *renderNodeBase) markDirty() { b.needsRepaint = true }

func (b *renderNodeBase) countDraw() {
	b.renderCount++
	b.needsRepaint = true
}

// cleanBeforeRender clears base-level transient pass state.
func (b *renderNodeBase) cleanBeforeRender() {
	b.rendered = false
}
