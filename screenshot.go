package reef

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// screenshotQueue collects labels to capture at the end of the next Draw.
type screenshotQueue struct {
	dir    string
	labels []string
}

func (q *screenshotQueue) add(label string) {
	q.labels = append(q.labels, label)
}

// flush reads back src once and saves it under every queued label. Errors
// are reported on stderr and never stop the game.
func (q *screenshotQueue) flush(src *ebiten.Image) {
	if len(q.labels) == 0 || src == nil {
		return
	}
	defer func() { q.labels = q.labels[:0] }()

	// ReadPixels yields premultiplied RGBA, which is image.RGBA's layout; the
	// PNG encoder converts to straight alpha.
	b := src.Bounds()
	frame := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	src.ReadPixels(frame.Pix)

	if err := q.write(frame, time.Now()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[reef] screenshot: %v\n", err)
	}
}

// write encodes frame once and stores a copy per queued label as
// <dir>/<stamp>_<label>.png.
func (q *screenshotQueue) write(frame image.Image, at time.Time) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := os.MkdirAll(q.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", q.dir, err)
	}
	stamp := at.Format("20060102_150405")
	var errs []error
	for _, label := range q.labels {
		path := filepath.Join(q.dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', maps every other
// rune to '_' and names an empty label "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, label)
}
