package reef

import (
	"fmt"
	"os"
	"time"
)

// debugLogEvery is how many frames are accumulated per stats line.
const debugLogEvery = 60

// frameStats holds per-phase frame timings. Only populated when Scene.debug
// is true.
type frameStats struct {
	background time.Duration
	waves      time.Duration
	bubbles    time.Duration
	agents     time.Duration
	frames     uint64
}

// lap adds the time since *t0 to *dst and restarts the stopwatch.
func (st *frameStats) lap(dst *time.Duration, t0 *time.Time, enabled bool) {
	if !enabled {
		return
	}
	now := time.Now()
	*dst += now.Sub(*t0)
	*t0 = now
}

func (st *frameStats) reset() {
	frames := st.frames
	*st = frameStats{frames: frames}
}

// debugLog prints averaged phase timings to stderr every debugLogEvery frames.
func (s *Scene) debugLog() {
	if !s.debug || s.stats.frames%debugLogEvery != 0 {
		return
	}
	n := time.Duration(debugLogEvery)
	st := &s.stats
	total := st.background + st.waves + st.bubbles + st.agents
	_, _ = fmt.Fprintf(os.Stderr,
		"[reef] background: %v | waves: %v | bubbles: %v | agents: %v | total: %v\n",
		st.background/n, st.waves/n, st.bubbles/n, st.agents/n, total/n)
	bubbles := 0
	if s.bubbles != nil {
		bubbles = s.bubbles.Len()
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[reef] frame %d | agents: %d | layers: %d | bubbles: %d | pointer inside: %v\n",
		st.frames, len(s.agents), s.waves.Len(), bubbles, s.pointerInside)
	st.reset()
}

// logf writes a debug line to stderr when debug mode is on.
func (s *Scene) logf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[reef] "+format+"\n", args...)
}
