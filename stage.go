package quill

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventStore is the interface for optional ECS integration.
// When set on a Stage, text events are forwarded to it.
type EventStore interface {
	EmitEvent(event TextEvent)
}

// TextEventType identifies a kind of text event.
type TextEventType uint8

const (
	TextEventChanged      TextEventType = iota // content committed through a setter or edit
	TextEventLayoutFailed                      // the layout backend returned an error
	TextEventRenderFailed                      // the rasterizer returned an error
)

// TextEvent carries text field activity for the ECS bridge.
type TextEvent struct {
	Type    TextEventType
	FieldID uint32
	Name    string
	Text    string
	Err     error
}

// Stage is a minimal display-object host. It owns an ordered list of text
// fields and, once per frame, runs each field's pre-render hook, renders its
// node and composites the cached textures onto the screen.
type Stage struct {
	fields []*TextField

	layouter  Layouter
	renderCtx RenderContext
	store     EventStore
	debug     bool

	// ClearColor fills the screen before fields are drawn when its alpha is
	// non-zero.
	ClearColor Color

	// DeviceScale overrides the monitor's device scale factor when > 0.
	DeviceScale float64
	lastScale   float64

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	script     *EditScript
	updateFunc UpdateFunc
}

// NewStage creates a stage that lays out with a LineBreaker and rasterizes
// with an EbitenRasterizer, both over fonts.
func NewStage(fonts *FontBook) *Stage {
	return NewStageWithBackends(NewLineBreaker(fonts), NewEbitenRasterizer(fonts))
}

// NewStageWithBackends creates a stage with explicit backends. l may be nil
// (content is split on hard breaks only). ctx is handed to every node's
// Render.
func NewStageWithBackends(l Layouter, ctx RenderContext) *Stage {
	return &Stage{
		layouter:      l,
		renderCtx:     ctx,
		ScreenshotDir: "screenshots",
	}
}

// AddField appends tf to the stage. Adding a field twice is a no-op.
// Panics if tf is nil.
func (s *Stage) AddField(tf *TextField) {
	if tf == nil {
		panic("quill: cannot add nil text field")
	}
	if s.debug {
		debugCheckDisposed(tf, "AddField")
	}
	for _, f := range s.fields {
		if f == tf {
			return
		}
	}
	tf.stageHook = s.fieldChanged
	s.fields = append(s.fields, tf)
	if s.debug {
		debugCheckFieldCount(s)
	}
}

// RemoveField detaches tf from the stage. The field keeps its render node and
// cached texture.
func (s *Stage) RemoveField(tf *TextField) {
	for i, f := range s.fields {
		if f == tf {
			copy(s.fields[i:], s.fields[i+1:])
			s.fields[len(s.fields)-1] = nil
			s.fields = s.fields[:len(s.fields)-1]
			tf.stageHook = nil
			return
		}
	}
}

// Fields returns the field list in paint order. The returned slice MUST NOT
// be mutated by the caller.
func (s *Stage) Fields() []*TextField {
	return s.fields
}

// Field returns the first field with the given name, or nil.
func (s *Stage) Field(name string) *TextField {
	for _, f := range s.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// SetLayouter replaces the layout backend.
func (s *Stage) SetLayouter(l Layouter) {
	s.layouter = l
}

// SetRenderContext replaces the context handed to every node's Render.
// Cached textures belong to the previous backend and are released.
func (s *Stage) SetRenderContext(ctx RenderContext) {
	s.renderCtx = ctx
	for _, tf := range s.fields {
		tf.node.Clean()
	}
}

// RenderContext returns the context handed to every node's Render.
func (s *Stage) RenderContext() RenderContext {
	return s.renderCtx
}

// SetEventStore sets the optional ECS bridge.
func (s *Stage) SetEventStore(store EventStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, adding a
// disposed field panics and per-frame stats are logged at debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetEditScript attaches an edit script; its steps run from Update.
func (s *Stage) SetEditScript(script *EditScript) {
	s.script = script
}

// Update advances the attached edit script by one frame.
func (s *Stage) Update() {
	if s.script != nil {
		s.script.step(s)
	}
}

// Prepare runs the pre-render hook of every visible field and renders its
// node through the stage's render context. Failures are logged, forwarded to
// the event store and do not stop the pass. Draw calls Prepare; call it
// directly when compositing the nodes yourself.
func (s *Stage) Prepare() {
	var stats frameStats
	s.prepare(&stats)
}

func (s *Stage) prepare(stats *frameStats) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.pruneDisposed()

	for _, tf := range s.fields {
		if !tf.Visible {
			continue
		}
		stats.fieldCount++
		pending := tf.relayout
		if err := tf.UpdateRenderNode(s.layouter); err != nil {
			stats.failedCount++
			s.reportFailure(tf, TextEventLayoutFailed, err)
			continue
		}
		if pending {
			stats.relayoutCount++
		}

		node := tf.node
		wasDirty := node.NeedsRepaint()
		if err := node.Render(s.renderCtx); err != nil {
			stats.failedCount++
			s.reportFailure(tf, TextEventRenderFailed, err)
			continue
		}
		if wasDirty && node.Rendered() {
			stats.rasterizedCount++
		}
	}

	if s.debug {
		stats.prepareTime = time.Since(t0)
	}
}

// Draw prepares every field and composites the cached textures onto screen in
// field order, using each node's blend tag.
func (s *Stage) Draw(screen *ebiten.Image) {
	scale := s.deviceScale()
	s.applyDeviceScale(scale)

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var stats frameStats
	s.prepare(&stats)

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	var op ebiten.DrawImageOptions
	for _, tf := range s.fields {
		if !tf.Visible {
			continue
		}
		node := tf.node
		img, ok := node.Texture().(*ebiten.Image)
		if !ok || img == nil {
			continue
		}
		sx, sy := node.DeviceScale()
		origin := node.TextureOrigin()
		op.GeoM.Reset()
		op.GeoM.Scale(1/sx, 1/sy)
		op.GeoM.Translate(tf.X+origin.X, tf.Y+origin.Y)
		op.GeoM.Scale(scale, scale)
		op.Blend = node.BlendMode().EbitenBlend()
		screen.DrawImage(img, &op)
		stats.blitCount++
	}

	if s.debug {
		stats.blitTime = time.Since(t0)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// deviceScale returns the scale override or the monitor's device scale.
func (s *Stage) deviceScale() float64 {
	if s.DeviceScale > 0 {
		return s.DeviceScale
	}
	if m := ebiten.Monitor(); m != nil {
		if f := m.DeviceScaleFactor(); f > 0 {
			return f
		}
	}
	return 1
}

// applyDeviceScale pushes scale into the rasterizer. A change invalidates
// every cached texture.
func (s *Stage) applyDeviceScale(scale float64) {
	if r, ok := s.renderCtx.(*EbitenRasterizer); ok {
		r.DeviceScale = scale
	}
	if s.lastScale == scale {
		return
	}
	if s.lastScale != 0 {
		for _, tf := range s.fields {
			tf.node.Clean()
		}
	}
	s.lastScale = scale
}

func (s *Stage) pruneDisposed() {
	live := s.fields[:0]
	for _, tf := range s.fields {
		if !tf.disposed {
			live = append(live, tf)
		}
	}
	clear(s.fields[len(live):])
	s.fields = live
}

// fieldChanged forwards content changes to the event store.
func (s *Stage) fieldChanged(tf *TextField) {
	if s.store == nil {
		return
	}
	s.store.EmitEvent(TextEvent{
		Type:    TextEventChanged,
		FieldID: tf.ID,
		Name:    tf.Name,
		Text:    tf.Text(),
	})
}

func (s *Stage) reportFailure(tf *TextField, typ TextEventType, err error) {
	Logger().Warn("quill: text field not rendered",
		"field", tf.Name,
		"id", tf.ID,
		"err", err,
	)
	if s.store == nil {
		return
	}
	s.store.EmitEvent(TextEvent{
		Type:    typ,
		FieldID: tf.ID,
		Name:    tf.Name,
		Text:    tf.Text(),
		Err:     err,
	})
}
