package quill

// TextFieldType selects whether a field accepts edits.
type TextFieldType uint8

const (
	TextFieldDynamic TextFieldType = iota // display only
	TextFieldInput                        // editable
)

// InputType is the input sub-type of an editable field.
type InputType uint8

const (
	InputText     InputType = iota // general text
	InputTel                       // phone number
	InputPassword                  // password
)

// HorizontalAlign controls horizontal placement of each line.
type HorizontalAlign uint8

const (
	HAlignLeft           HorizontalAlign = iota // align to the left edge (default)
	HAlignRight                                 // align to the right edge
	HAlignCenter                                // center each line
	HAlignJustify                               // laid out as left
	HAlignContentJustify                        // laid out as left
)

// VerticalAlign controls vertical placement of the text block.
type VerticalAlign uint8

const (
	VAlignTop            VerticalAlign = iota // align to the top edge (default)
	VAlignBottom                              // align to the bottom edge
	VAlignMiddle                              // center vertically
	VAlignJustify                             // laid out as top
	VAlignContentJustify                      // laid out as top
)

var hAlignNames = [...]string{"left", "right", "center", "justify", "content-justify"}
var vAlignNames = [...]string{"top", "bottom", "middle", "justify", "content-justify"}

func (a HorizontalAlign) String() string {
	if int(a) < len(hAlignNames) {
		return hAlignNames[a]
	}
	return hAlignNames[HAlignLeft]
}

func (a VerticalAlign) String() string {
	if int(a) < len(vAlignNames) {
		return vAlignNames[a]
	}
	return vAlignNames[VAlignTop]
}

// ParseHorizontalAlign maps a name such as "center" to its value.
func ParseHorizontalAlign(s string) (HorizontalAlign, bool) {
	for i, name := range hAlignNames {
		if name == s {
			return HorizontalAlign(i), true
		}
	}
	return HAlignLeft, false
}

// ParseVerticalAlign maps a name such as "middle" to its value.
func ParseVerticalAlign(s string) (VerticalAlign, bool) {
	for i, name := range vAlignNames {
		if name == s {
			return VerticalAlign(i), true
		}
	}
	return VAlignTop, false
}

// Defaults applied by NewTextField.
const (
	DefaultFontFamily = "Arial"
	DefaultFontSize   = 30.0
)

// textStyle is the style/state bundle of a TextField.
type textStyle struct {
	fontFamily  string
	size        float64
	lineSpacing float64
	textColor   Color
	hAlign      HorizontalAlign
	vAlign      VerticalAlign
	width       float64 // 0 = auto
	height      float64 // 0 = auto
	textWidth   float64 // written by the layout backend
	textHeight  float64 // written by the layout backend
	font        string  // derived font description
	text        string
	bold        bool
	italic      bool
	wordWrap    bool

	fontStringChanged bool
	textLinesChanged  bool
}

// nodeIDCounter is a plain counter; fields are not shared across goroutines.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// TextField is a mutable, property-driven text display object. Setters are
// no-ops when the value is unchanged; changes to style-affecting properties
// schedule a re-layout that UpdateRenderNode resolves before the next render.
type TextField struct {
	// Identity
	ID   uint32
	Name string

	// Placement on the stage. Not style-affecting.
	X, Y    float64
	Visible bool

	style textStyle
	runs  []TextRun

	strokeColor       Color
	stroke            float64
	fieldType         TextFieldType
	inputType         InputType
	displayAsPassword bool
	maxChars          int
	scrollV           int
	selBegin          int
	selEnd            int

	// Last layout written by ApplyLayout.
	lines    []TextLine
	laidOut  bool
	relayout bool // needs re-layout / render node repopulation

	node *TextRenderNode

	// OnChange is called after the content changes through a setter or an
	// edit. It is not called for no-op writes.
	OnChange func(text string)
	// stageHook is set by the Stage that hosts the field.
	stageHook func(tf *TextField)

	disposed bool
}

// NewTextField creates a dynamic text field with the given content.
func NewTextField(name, content string) *TextField {
	tf := &TextField{
		ID:          nextNodeID(),
		Name:        name,
		Visible:     true,
		strokeColor: ColorBlack,
		scrollV:     1,
		style: textStyle{
			fontFamily:        DefaultFontFamily,
			size:              DefaultFontSize,
			textColor:         ColorWhite,
			text:              content,
			fontStringChanged: true,
			textLinesChanged:  true,
		},
		relayout: true,
	}
	tf.runs = plainRuns(content)
	tf.node = NewTextRenderNode(tf.nodeDefaults())
	return tf
}

// RenderNode returns the field's render node. The renderer may read it for the
// duration of a pass but must not retain it.
func (tf *TextField) RenderNode() *TextRenderNode {
	return tf.node
}

// invalidate records a style-affecting change.
func (tf *TextField) invalidate(fontChanged bool) {
	if fontChanged {
		tf.style.fontStringChanged = true
	}
	tf.style.textLinesChanged = true
	tf.relayout = true
	tf.node.markDirty()
}

// NeedsRelayout reports whether a style-affecting change is pending.
func (tf *TextField) NeedsRelayout() bool {
	return tf.relayout
}

// nodeDefaults returns the field's style as render node defaults.
func (tf *TextField) nodeDefaults() TextStyle {
	return TextStyle{
		Family:      tf.style.fontFamily,
		Size:        tf.style.size,
		Color:       tf.style.textColor,
		StrokeColor: tf.strokeColor,
		Stroke:      tf.stroke,
		Bold:        tf.style.bold,
		Italic:      tf.style.italic,
	}
}

// --- Font properties ---

func (tf *TextField) FontFamily() string { return tf.style.fontFamily }

func (tf *TextField) SetFontFamily(family string) {
	if tf.style.fontFamily == family {
		return
	}
	tf.style.fontFamily = family
	tf.invalidate(true)
}

// Size returns the font size in pixels.
func (tf *TextField) Size() float64 { return tf.style.size }

func (tf *TextField) SetSize(size float64) {
	if tf.style.size == size {
		return
	}
	tf.style.size = size
	tf.invalidate(true)
}

func (tf *TextField) Bold() bool { return tf.style.bold }

func (tf *TextField) SetBold(bold bool) {
	if tf.style.bold == bold {
		return
	}
	tf.style.bold = bold
	tf.invalidate(true)
}

func (tf *TextField) Italic() bool { return tf.style.italic }

func (tf *TextField) SetItalic(italic bool) {
	if tf.style.italic == italic {
		return
	}
	tf.style.italic = italic
	tf.invalidate(true)
}

// --- Layout properties ---

func (tf *TextField) TextAlign() HorizontalAlign { return tf.style.hAlign }

func (tf *TextField) SetTextAlign(a HorizontalAlign) {
	if tf.style.hAlign == a {
		return
	}
	tf.style.hAlign = a
	tf.invalidate(false)
}

func (tf *TextField) VerticalAlign() VerticalAlign { return tf.style.vAlign }

func (tf *TextField) SetVerticalAlign(a VerticalAlign) {
	if tf.style.vAlign == a {
		return
	}
	tf.style.vAlign = a
	tf.invalidate(false)
}

func (tf *TextField) LineSpacing() float64 { return tf.style.lineSpacing }

func (tf *TextField) SetLineSpacing(spacing float64) {
	if tf.style.lineSpacing == spacing {
		return
	}
	tf.style.lineSpacing = spacing
	tf.invalidate(false)
}

func (tf *TextField) WordWrap() bool { return tf.style.wordWrap }

func (tf *TextField) SetWordWrap(wrap bool) {
	if tf.style.wordWrap == wrap {
		return
	}
	tf.style.wordWrap = wrap
	tf.invalidate(false)
}

// Width returns the explicit field width; 0 means sized to the text.
func (tf *TextField) Width() float64 { return tf.style.width }

func (tf *TextField) SetWidth(w float64) {
	if w < 0 {
		w = 0
	}
	if tf.style.width == w {
		return
	}
	tf.style.width = w
	tf.invalidate(false)
}

// Height returns the explicit field height; 0 means sized to the text.
func (tf *TextField) Height() float64 { return tf.style.height }

func (tf *TextField) SetHeight(h float64) {
	if h < 0 {
		h = 0
	}
	if tf.style.height == h {
		return
	}
	tf.style.height = h
	tf.invalidate(false)
}

// --- Paint properties ---

func (tf *TextField) TextColor() Color { return tf.style.textColor }

func (tf *TextField) SetTextColor(c Color) {
	if tf.style.textColor == c {
		return
	}
	tf.style.textColor = c
	tf.invalidate(false)
}

func (tf *TextField) StrokeColor() Color { return tf.strokeColor }

func (tf *TextField) SetStrokeColor(c Color) {
	if tf.strokeColor == c {
		return
	}
	tf.strokeColor = c
	tf.invalidate(false)
}

// Stroke returns the stroke width in pixels; 0 disables the stroke.
func (tf *TextField) Stroke() float64 { return tf.stroke }

func (tf *TextField) SetStroke(width float64) {
	if tf.stroke == width {
		return
	}
	tf.stroke = width
	tf.invalidate(false)
}

// BlendMode returns the blend mode tagged onto the render node.
func (tf *TextField) BlendMode() BlendMode { return tf.node.BlendMode() }

// SetBlendMode tags the render node with m. The texture does not change, so
// no re-layout is scheduled.
func (tf *TextField) SetBlendMode(m BlendMode) {
	if tf.node.BlendMode() == m {
		return
	}
	tf.node.setBlendMode(m)
}

// --- Input properties ---

func (tf *TextField) Type() TextFieldType { return tf.fieldType }

func (tf *TextField) SetType(t TextFieldType) {
	if tf.fieldType == t {
		return
	}
	tf.fieldType = t
	tf.invalidate(false)
}

// InputType returns the input sub-type. Changing it never re-lays out.
func (tf *TextField) InputType() InputType { return tf.inputType }

func (tf *TextField) SetInputType(t InputType) {
	tf.inputType = t
}

func (tf *TextField) DisplayAsPassword() bool { return tf.displayAsPassword }

func (tf *TextField) SetDisplayAsPassword(mask bool) {
	if tf.displayAsPassword == mask {
		return
	}
	tf.displayAsPassword = mask
	tf.invalidate(false)
}

// --- Measurement ---

// TextWidth returns the measured width from the last layout pass.
func (tf *TextField) TextWidth() float64 { return tf.style.textWidth }

// TextHeight returns the measured height from the last layout pass.
func (tf *TextField) TextHeight() float64 { return tf.style.textHeight }

// ContentBounds returns the measured text rectangle anchored at the origin.
func (tf *TextField) ContentBounds() Rect {
	return Rect{Width: tf.style.textWidth, Height: tf.style.textHeight}
}

// --- Disposal ---

// Dispose releases the render node's cached texture and detaches the field
// from its stage. The field should not be used afterwards.
func (tf *TextField) Dispose() {
	if tf.disposed {
		return
	}
	tf.disposed = true
	tf.node.CleanBeforeRender()
	tf.node.Clean()
	tf.lines = nil
	tf.OnChange = nil
	tf.stageHook = nil
	tf.ID = 0
}

// IsDisposed returns true if this field has been disposed.
func (tf *TextField) IsDisposed() bool {
	return tf.disposed
}
