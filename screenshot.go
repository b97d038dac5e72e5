package quill

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The resulting PNG is written to ScreenshotDir
// with a timestamped filename. Safe to call from Update or Draw.
func (s *Stage) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots captures the composited frame once and saves it for every
// queued label.
func (s *Stage) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	b := screen.Bounds()
	// ReadPixels yields premultiplied RGBA, which is image.RGBA's layout.
	frame := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(frame.Pix)
	s.saveScreenshots(frame, time.Now())
}

// saveScreenshots writes frame once per queued label and clears the queue.
// Labels repeated within a frame get a numeric suffix instead of overwriting
// each other. It returns the paths written.
func (s *Stage) saveScreenshots(frame image.Image, now time.Time) []string {
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		Logger().Warn("quill: screenshot dir", "dir", s.ScreenshotDir, "err", err)
		return nil
	}

	stamp := now.Format("20060102_150405")
	seen := make(map[string]int, len(labels))
	var paths []string
	for _, label := range labels {
		name := screenshotLabel(label)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		path := filepath.Join(s.ScreenshotDir, stamp+"_"+name+".png")
		if err := savePNG(path, frame); err != nil {
			Logger().Warn("quill: screenshot", "label", label, "err", err)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("quill: screenshot %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("quill: screenshot %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("quill: screenshot %s: %w", path, err)
	}
	return nil
}

// screenshotLabel turns a script label into a file name part: letters and
// digits are kept, runs of anything else collapse to one underscore.
func screenshotLabel(label string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.TrimSpace(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	if b.Len() == 0 {
		return "unlabeled"
	}
	return b.String()
}
