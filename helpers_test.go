package reef

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var sharedTestImage *ebiten.Image

// testImage returns a 1x1 image shared by every test surface. Tests never
// draw into it; the recording painter replaces the image painter.
func testImage() *ebiten.Image {
	if sharedTestImage == nil {
		sharedTestImage = ebiten.NewImage(1, 1)
	}
	return sharedTestImage
}

// testSurface is a Surface whose size and availability tests control.
type testSurface struct {
	w, h int
	lost bool
}

func (s *testSurface) Size() (int, int) { return s.w, s.h }

func (s *testSurface) Image() *ebiten.Image {
	if s.lost {
		return nil
	}
	return testImage()
}

// recordingPainter records composite calls instead of drawing.
type recordingPainter struct {
	surface *testSurface
	calls   []string
	agents  []AgentView
}

func (p *recordingPainter) begin() error {
	if p.surface.Image() == nil {
		return fmt.Errorf("begin frame: %w", ErrContextLost)
	}
	p.calls = append(p.calls, "begin")
	p.agents = p.agents[:0]
	return nil
}

func (p *recordingPainter) background(g Gradient, enabled bool) {
	if enabled {
		p.calls = append(p.calls, "background")
	} else {
		p.calls = append(p.calls, "clear")
	}
}

func (p *recordingPainter) wave(o *WaveOscillator) { p.calls = append(p.calls, "wave") }
func (p *recordingPainter) bubble(b Bubble) { p.calls = append(p.calls, "bubble") }

func (p *recordingPainter) creature(v AgentView) {
	p.calls = append(p.calls, "creature")
	p.agents = append(p.agents, v)
}

func (p *recordingPainter) end() { p.calls = append(p.calls, "end") }

func (p *recordingPainter) count(call string) int {
	n := 0
	for _, c := range p.calls {
		if c == call {
			n++
		}
	}
	return n
}

// fakeClock is a manually advanced monotonic clock.
type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

// recordingSink collects scene events.
type recordingSink struct {
	events []SceneEvent
}

func (s *recordingSink) EmitEvent(e SceneEvent) { s.events = append(s.events, e) }

func (s *recordingSink) count(t SceneEventType) int {
	n := 0
	for _, e := range s.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// queueScheduler keeps every request until fired, unlike TickScheduler
// which holds a single slot.
type queueScheduler struct {
	queue []*queuedFrame
}

type queuedFrame struct {
	fn        func()
	cancelled bool
}

func (f *queuedFrame) Cancel() { f.cancelled = true }

func (q *queueScheduler) RequestFrame(fn func()) FrameHandle {
	f := &queuedFrame{fn: fn}
	q.queue = append(q.queue, f)
	return f
}

func (q *queueScheduler) pending() int {
	n := 0
	for _, f := range q.queue {
		if !f.cancelled {
			n++
		}
	}
	return n
}

// fireAll runs every callback queued before the call.
func (q *queueScheduler) fireAll() {
	batch := q.queue
	q.queue = nil
	for _, f := range batch {
		if !f.cancelled {
			f.fn()
		}
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

type testScene struct {
	*Scene
	surface *testSurface
	painter *recordingPainter
	clock   *fakeClock
	sink    *recordingSink
}

// newTestScene builds a w×h scene with a deterministic random source, a fake
// clock, a recording painter and a recording event sink.
func newTestScene(t *testing.T, w, h int, patch ConfigPatch) *testScene {
	t.Helper()
	surf := &testSurface{w: w, h: h}
	s, err := NewScene(surf, patch)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	ts := &testScene{
		Scene:   s,
		surface: surf,
		painter: &recordingPainter{surface: surf},
		clock:   &fakeClock{},
		sink:    &recordingSink{},
	}
	s.painter = ts.painter
	s.SetClock(ts.clock.Now)
	s.SetRand(testRand())
	s.ResetScene()
	s.SetEventSink(ts.sink)
	return ts
}

// frames advances n frames, failing the test on error.
func (ts *testScene) frames(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := ts.AdvanceFrame(); err != nil {
			t.Fatalf("AdvanceFrame: %v", err)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
