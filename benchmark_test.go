package quill

import (
	"strconv"
	"testing"
)

// setupBenchStage creates a Stage with n text fields over the test backends.
func setupBenchStage(n int) (*Stage, []*TextField) {
	s, _ := newTestStage()
	fields := make([]*TextField, n)
	for i := range fields {
		tf := NewTextField("f", "field "+strconv.Itoa(i))
		tf.X = float64(i%20) * 60
		tf.Y = float64(i/20) * 30
		s.AddField(tf)
		fields[i] = tf
	}
	return s, fields
}

// --- Stage Benchmarks ---

func BenchmarkPrepare_1000Fields_Cached(b *testing.B) {
	s, _ := setupBenchStage(1000)
	s.Prepare()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Prepare()
	}
}

func BenchmarkPrepare_1000Fields_ColorChanges(b *testing.B) {
	s, fields := setupBenchStage(1000)
	s.Prepare()
	colors := [2]Color{ColorWhite, ColorBlack}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, tf := range fields {
			tf.SetTextColor(colors[i%2])
		}
		s.Prepare()
	}
}

func BenchmarkPrepare_1000Fields_NoOpWrites(b *testing.B) {
	s, fields := setupBenchStage(1000)
	s.Prepare()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, tf := range fields {
			tf.SetText(tf.Text())
			tf.SetSize(tf.Size())
		}
		s.Prepare()
	}
}

// --- Layout Benchmarks ---

func BenchmarkLineBreaker_Wrap(b *testing.B) {
	lb := NewLineBreaker(monoFonts{})
	runs := []TextRun{{Text: "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with five dozen liquor jugs."}}
	p := LayoutParams{Style: layoutStyle(16), Width: 200, WordWrap: true}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := lb.Layout(runs, p); err != nil {
			b.Fatal(err)
		}
	}
}
