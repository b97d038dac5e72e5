package quill

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 properties of a TextField
// simultaneously. Create one via the convenience constructors and call
// Update(dt) each frame. Values are written back through the field's setters,
// so a tween invalidates exactly what a manual change would. If the target
// field is disposed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(v *[4]float64)
	target *TextField
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target field. If the target has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(&g.values)
}

func newTweenGroup(tf *TextField, from, to []float64, duration float32, fn ease.TweenFunc, apply func(v *[4]float64)) *TweenGroup {
	g := &TweenGroup{count: len(from), target: tf, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
		g.values[i] = from[i]
	}
	return g
}

// TweenPosition animates tf.X and tf.Y. Position is applied at composite
// time and never invalidates the cached texture.
func TweenPosition(tf *TextField, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(tf,
		[]float64{tf.X, tf.Y}, []float64{toX, toY},
		duration, fn,
		func(v *[4]float64) {
			tf.X, tf.Y = v[0], v[1]
		})
}

// TweenTextColor animates the four components of the field's text color.
func TweenTextColor(tf *TextField, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := tf.TextColor()
	return newTweenGroup(tf,
		[]float64{c.R, c.G, c.B, c.A}, []float64{to.R, to.G, to.B, to.A},
		duration, fn,
		func(v *[4]float64) {
			tf.SetTextColor(Color{R: v[0], G: v[1], B: v[2], A: v[3]})
		})
}

// TweenTextSize animates the field's font size. Each step re-lays out the
// field.
func TweenTextSize(tf *TextField, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(tf,
		[]float64{tf.Size()}, []float64{to},
		duration, fn,
		func(v *[4]float64) {
			tf.SetSize(v[0])
		})
}

// TweenStrokeWidth animates the field's stroke width.
func TweenStrokeWidth(tf *TextField, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(tf,
		[]float64{tf.Stroke()}, []float64{to},
		duration, fn,
		func(v *[4]float64) {
			tf.SetStroke(v[0])
		})
}
