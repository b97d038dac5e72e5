package quill

import (
	"errors"
	"testing"
)

var testDefaults = TextStyle{Family: "Go", Size: 20, Color: ColorWhite, StrokeColor: ColorBlack}

func TestNewTextRenderNode(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	if n.Type() != RenderNodeText {
		t.Errorf("Type() = %d, want RenderNodeText", n.Type())
	}
	if !n.NeedsRepaint() {
		t.Error("new node should need repaint")
	}
	if n.RenderCount() != 0 {
		t.Errorf("RenderCount() = %d, want 0", n.RenderCount())
	}
	if n.Texture() != nil {
		t.Error("new node should have no texture")
	}
	if n.BlendMode() != BlendNormal {
		t.Errorf("BlendMode() = %s, want normal", n.BlendMode())
	}
	var _ RenderNode = n
}

func TestTextRenderNode_CleanBeforeRenderThenDraw(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	n.DrawText(0, 0, "a", TextFormat{})
	n.DrawText(0, 0, "b", TextFormat{})

	n.CleanBeforeRender()
	if got := len(n.Commands()); got != 0 {
		t.Fatalf("after CleanBeforeRender: %d commands, want 0", got)
	}
	if !n.NeedsRepaint() {
		t.Error("CleanBeforeRender should mark dirty")
	}

	n.DrawText(5, 6, "c", TextFormat{})
	cmds := n.Commands()
	if len(cmds) != 1 {
		t.Fatalf("after one DrawText: %d commands, want 1", len(cmds))
	}
	if cmds[0].X != 5 || cmds[0].Y != 6 || cmds[0].Text != "c" {
		t.Errorf("command = %+v", cmds[0])
	}
	if n.RenderCount() != 3 {
		t.Errorf("RenderCount() = %d, want 3 (counter is lifetime)", n.RenderCount())
	}
}

func TestTextRenderNode_DrawEmptyTextCounted(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	n.DrawText(0, 0, "", TextFormat{})
	if len(n.Commands()) != 1 || n.RenderCount() != 1 {
		t.Errorf("empty text: commands=%d count=%d, want 1/1", len(n.Commands()), n.RenderCount())
	}
}

func TestTextRenderNode_Clean(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	r := &fakeRasterizer{}
	n.DrawText(0, 0, "hi", TextFormat{})
	if err := n.Render(r); err != nil {
		t.Fatalf("Render: %v", err)
	}
	tex := n.Texture().(*fakeTexture)
	if n.NeedsRepaint() {
		t.Fatal("node should be clean after Render")
	}

	n.Clean()
	if n.Texture() != nil {
		t.Error("Clean should release the texture")
	}
	if !tex.deallocated {
		t.Error("Clean should deallocate the texture")
	}
	if w, h := n.TextureSize(); w != 0 || h != 0 {
		t.Errorf("TextureSize() = (%d, %d), want (0, 0)", w, h)
	}
	if !n.NeedsRepaint() {
		t.Error("Clean should mark dirty")
	}

	// Idempotent.
	n.Clean()
	if n.Texture() != nil || !n.NeedsRepaint() {
		t.Error("second Clean should leave node dirty without texture")
	}
}

func TestTextRenderNode_RenderInvalidContext(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	n.DrawText(0, 0, "hi", TextFormat{})
	for _, ctx := range []RenderContext{nil, "not a rasterizer", 42} {
		if err := n.Render(ctx); err != nil {
			t.Errorf("Render(%v) = %v, want nil", ctx, err)
		}
	}
	if !n.NeedsRepaint() || n.Texture() != nil {
		t.Error("invalid context should leave the node untouched")
	}
}

func TestTextRenderNode_RenderResolvesStyle(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	red := Color{1, 0, 0, 1}
	n.DrawText(0, 0, "plain", TextFormat{})
	n.DrawText(10, 0, "red", TextFormat{}.WithColor(red).WithBold(true))

	r := &fakeRasterizer{}
	if err := n.Render(r); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(r.last) != 2 {
		t.Fatalf("rasterizer got %d commands, want 2", len(r.last))
	}
	if r.last[0].Style != testDefaults {
		t.Errorf("cmd 0 style = %+v, want defaults", r.last[0].Style)
	}
	want := testDefaults
	want.Color = red
	want.Bold = true
	if r.last[1].Style != want {
		t.Errorf("cmd 1 style = %+v, want %+v", r.last[1].Style, want)
	}
	if w, h := n.TextureSize(); w != 20 || h != 10 {
		t.Errorf("TextureSize() = (%d, %d), want (20, 10)", w, h)
	}
	if !n.Rendered() {
		t.Error("Rendered() should be true after Render")
	}
}

func TestTextRenderNode_RenderReusesCleanTexture(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	r := &fakeRasterizer{}
	n.DrawText(0, 0, "hi", TextFormat{})
	_ = n.Render(r)
	_ = n.Render(r)
	if r.calls != 1 {
		t.Errorf("rasterizer calls = %d, want 1", r.calls)
	}
}

func TestTextRenderNode_RenderReplacesTexture(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	r := &fakeRasterizer{}
	n.DrawText(0, 0, "a", TextFormat{})
	_ = n.Render(r)
	first := n.Texture().(*fakeTexture)

	n.CleanBeforeRender()
	n.DrawText(0, 0, "b", TextFormat{})
	_ = n.Render(r)
	if n.Texture() == Texture(first) {
		t.Fatal("expected a new texture")
	}
	if !first.deallocated {
		t.Error("previous texture should be deallocated")
	}
}

func TestTextRenderNode_RenderReusedTextureNotDeallocated(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	r := &fakeRasterizer{reuse: true}
	n.DrawText(0, 0, "a", TextFormat{})
	_ = n.Render(r)
	first := n.Texture().(*fakeTexture)

	n.CleanBeforeRender()
	n.DrawText(0, 0, "b", TextFormat{})
	_ = n.Render(r)
	if n.Texture() != Texture(first) || first.deallocated {
		t.Error("texture returned by the rasterizer must stay alive")
	}
}

func TestTextRenderNode_RenderFailure(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	r := &fakeRasterizer{}
	n.DrawText(0, 0, "a", TextFormat{})
	_ = n.Render(r)
	stale := n.Texture().(*fakeTexture)

	n.CleanBeforeRender()
	n.DrawText(0, 0, "b", TextFormat{}.WithFamily("Nope"))
	r.failFamily = "Nope"
	err := n.Render(r)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrUnsupportedFont) {
		t.Errorf("error %v should wrap ErrUnsupportedFont", err)
	}
	if !n.NeedsRepaint() {
		t.Error("failed render should leave node dirty")
	}
	if n.Texture() != Texture(stale) || stale.deallocated {
		t.Error("failed render should keep the stale texture")
	}
	if n.Rendered() {
		t.Error("Rendered() should be false after a failed render")
	}
}

func TestTextRenderNode_RenderNoCommands(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	r := &fakeRasterizer{}
	n.DrawText(0, 0, "a", TextFormat{})
	_ = n.Render(r)
	tex := n.Texture().(*fakeTexture)

	n.CleanBeforeRender()
	if err := n.Render(r); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n.Texture() != nil || !tex.deallocated {
		t.Error("rendering no commands should release the texture")
	}
	if n.NeedsRepaint() {
		t.Error("rendering no commands should leave node clean")
	}
	if r.calls != 1 {
		t.Errorf("rasterizer calls = %d, want 1", r.calls)
	}
}

func TestTextRenderNode_SetDefaults(t *testing.T) {
	n := NewTextRenderNode(testDefaults)
	n.DrawText(0, 0, "a", TextFormat{})
	_ = n.Render(&fakeRasterizer{})

	n.SetDefaults(testDefaults)
	if n.NeedsRepaint() {
		t.Error("unchanged defaults should not mark dirty")
	}
	d := testDefaults
	d.Size = 40
	n.SetDefaults(d)
	if !n.NeedsRepaint() {
		t.Error("changed defaults should mark dirty")
	}
	if n.Defaults() != d {
		t.Errorf("Defaults() = %+v, want %+v", n.Defaults(), d)
	}
}
