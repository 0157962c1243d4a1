package reef

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// arriveEpsilon is the distance under which an agent stops advancing.
	arriveEpsilon = 5.0
	// retargetMinDelay is added to every autonomous retarget deadline.
	retargetMinDelay = time.Second
	tailStep         = 0.1
	tailLimit        = 0.5
	spawnFadeSeconds = 0.5
)

// Mode is the steering state of an agent.
type Mode uint8

const (
	ModeAutonomous Mode = iota // wanders between random targets
	ModePursuing               // follows the pointer
)

func (m Mode) String() string {
	switch m {
	case ModeAutonomous:
		return "autonomous"
	case ModePursuing:
		return "pursuing"
	default:
		return "unknown"
	}
}

// agentParams is the immutable snapshot an agent is steered with. Width and
// Height are the surface extents.
type agentParams struct {
	Size             float64
	Speed            float64
	RetargetInterval time.Duration
	Width, Height    float64
}

// Agent is one steered creature. Agents are owned by a Scene and only mutated
// from its frame and pointer methods.
type Agent struct {
	x, y             float64
	size             float64
	speed            float64
	heading          float64
	tail             float64
	tailDir          float64
	targetX, targetY float64
	mode             Mode
	nextRetarget     time.Duration

	fade  *gween.Tween
	alpha float64
}

// AgentView is a read-only snapshot of an agent.
type AgentView struct {
	X, Y             float64
	Size             float64
	Speed            float64
	Heading          float64
	Tail             float64
	TargetX, TargetY float64
	Mode             Mode
	NextRetarget     time.Duration
	Alpha            float64
}

// newAgent creates an agent at a random position inside the surface with a
// random autonomous target and a near-term retarget deadline.
func newAgent(p agentParams, now time.Duration, rng *rand.Rand) *Agent {
	a := &Agent{
		size:    p.Size,
		speed:   p.Speed,
		tailDir: 1,
		mode:    ModeAutonomous,
		fade:    gween.New(0, 1, spawnFadeSeconds, ease.OutQuad),
	}
	a.x = insetRandom(rng, p.Width, p.Size)
	a.y = insetRandom(rng, p.Height, p.Size)
	a.targetX = insetRandom(rng, p.Width, 2*p.Size)
	a.targetY = insetRandom(rng, p.Height, 2*p.Size)
	a.nextRetarget = now + randomDuration(rng, p.RetargetInterval)
	return a
}

// View returns a snapshot of the agent's state.
func (a *Agent) View() AgentView {
	return AgentView{
		X:            a.x,
		Y:            a.y,
		Size:         a.size,
		Speed:        a.speed,
		Heading:      a.heading,
		Tail:         a.tail,
		TargetX:      a.targetX,
		TargetY:      a.targetY,
		Mode:         a.mode,
		NextRetarget: a.nextRetarget,
		Alpha:        a.alpha,
	}
}

// pursue switches the agent to pursuit of (x, y).
func (a *Agent) pursue(x, y float64) {
	a.mode = ModePursuing
	a.targetX = x
	a.targetY = y
}

// retarget switches the agent to autonomous mode with a fresh random target
// inset 2×size from every edge and a new deadline.
func (a *Agent) retarget(p agentParams, now time.Duration, rng *rand.Rand) {
	a.mode = ModeAutonomous
	a.targetX = insetRandom(rng, p.Width, 2*a.size)
	a.targetY = insetRandom(rng, p.Height, 2*a.size)
	a.nextRetarget = now + randomDuration(rng, p.RetargetInterval) + retargetMinDelay
}

// steer runs one tick of the state machine followed by locomotion. pointer is
// nil when the pointer is outside the surface or pursuit is disabled; it is
// checked before the deadline so a returning pointer always wins. Reports
// whether a new autonomous target was drawn.
func (a *Agent) steer(pointer *Vec2, p agentParams, now time.Duration, rng *rand.Rand) bool {
	retargeted := false
	switch {
	case pointer != nil:
		a.pursue(pointer.X, pointer.Y)
	case a.mode == ModePursuing, now >= a.nextRetarget:
		a.retarget(p, now, rng)
		retargeted = true
	}
	a.move(p.Width, p.Height)
	a.wag()
	return retargeted
}

// move advances the agent along the heading to its target and clamps the
// result into [size, extent-size] on both axes. The step never overshoots
// the target.
func (a *Agent) move(width, height float64) {
	dx := a.targetX - a.x
	dy := a.targetY - a.y
	a.heading = math.Atan2(dy, dx)
	dist := math.Hypot(dx, dy)
	if dist > arriveEpsilon {
		step := min(a.speed, dist)
		a.x += math.Cos(a.heading) * step
		a.y += math.Sin(a.heading) * step
	}
	a.x = clampAxis(a.x, a.size, width)
	a.y = clampAxis(a.y, a.size, height)
}

// wag swings the tail back and forth, independent of locomotion.
func (a *Agent) wag() {
	a.tail += tailStep * a.tailDir
	if math.Abs(a.tail) > tailLimit {
		a.tailDir = -a.tailDir
	}
}

// updateFade advances the spawn fade-in by dt seconds.
func (a *Agent) updateFade(dt float32) {
	if a.fade == nil {
		return
	}
	v, done := a.fade.Update(dt)
	a.alpha = float64(v)
	if done {
		a.alpha = 1
		a.fade = nil
	}
}

// insetRandom returns a uniform value in [inset, extent-inset], or the middle
// of the axis when the extent is too small for the inset.
func insetRandom(rng *rand.Rand, extent, inset float64) float64 {
	if extent-inset < inset {
		return extent / 2
	}
	return Range{inset, extent - inset}.Random(rng)
}

// randomDuration returns a uniform duration in [0, d).
func randomDuration(rng *rand.Rand, d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rng.Int64N(int64(d)))
}
