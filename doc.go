// Package quill is a retained-mode text rendering layer for [Ebitengine].
//
// A [TextField] is a mutable, property-driven text object. Each field owns a
// [TextRenderNode]: a retained record of draw commands that is rasterized
// into a cached texture and reused across frames until something visible
// changes. Setters are no-ops when the value is unchanged, so the texture is
// only rebuilt when it has to be.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	fonts, err := quill.DefaultFontBook()
//	if err != nil {
//		log.Fatal(err)
//	}
//	stage := quill.NewStage(fonts)
//	title := quill.NewTextField("title", "Hello, quill")
//	title.SetFontFamily(quill.DefaultFamily)
//	stage.AddField(title)
//	quill.Run(stage, quill.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Stage.Update] and [Stage.Draw] directly.
//
// # Frame pipeline
//
// Once per frame [Stage.Draw] runs, for every visible field:
//
//  1. [TextField.UpdateRenderNode]: if a style-affecting property changed,
//     lay the content out and repopulate the node's draw commands.
//  2. [TextRenderNode.Render]: if the node needs a repaint, hand its
//     resolved commands to a [TextRasterizer] and cache the texture.
//  3. Composite the cached texture with the node's [BlendMode].
//
// A rasterization failure (for example [ErrUnsupportedFont]) is logged and
// leaves the node dirty with its previous texture; the rest of the frame
// continues.
//
// # Backends
//
// [EbitenRasterizer] draws TTF faces through text/v2 and BMFont bitmap fonts
// from their atlas. The term sub-package rasterizes into tcell cell grids
// for terminal output. Both are driven by the same fields and nodes.
//
// # Fonts
//
// A [FontBook] maps family names to TTF sources and bitmap fonts per
// variant. [DefaultFontBook] registers the Go font family.
//
// # Themes and tweens
//
// [LoadTheme] reads named styles from TOML. [TweenTextColor],
// [TweenTextSize], [TweenPosition] and [TweenStrokeWidth] animate fields
// through their setters. [RunConfig].ShowFPS adds an [FPSCounter] field.
//
// # Logging
//
// quill is silent by default. Install a logger with [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
package quill
