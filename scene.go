package reef

import (
	"errors"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrDestroyed is returned by AdvanceFrame after Destroy.
var ErrDestroyed = errors.New("reef: scene destroyed")

// speedJitter is the multiplier range RandomizeSpeed draws from.
var speedJitter = Range{0.5, 1.5}

// Clock returns monotonic time elapsed since an arbitrary fixed origin.
type Clock func() time.Duration

// Scene is the top-level controller. It owns the agents, the wave field, the
// bubble pool and the configuration, routes pointer input to the agents and
// drives the update→composite loop through a Scheduler.
//
// A Scene is not safe for concurrent use. Pointer methods, mutators and frames
// must all run on the game loop goroutine, which makes every per-agent update
// atomic with respect to input.
type Scene struct {
	surface Surface
	painter painter
	art     CreatureArt
	sink    EventSink
	debug   bool

	// Frame loop
	sched     Scheduler
	handle    FrameHandle
	running   bool
	destroyed bool
	err       error

	cfg     Config
	agents  []*Agent
	waves   WaveField
	bubbles *BubblePool
	bgFade  *gradientFade

	pointer       Vec2
	pointerInside bool

	width, height float64
	clock         Clock
	rng           *rand.Rand
	stats         frameStats
}

// NewScene validates the surface and builds a scene from the defaults
// overlaid with patch. No Scene is returned on error.
func NewScene(surface Surface, patch ConfigPatch) (*Scene, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptySurface
	}
	if surface.Image() == nil {
		return nil, ErrNoContext
	}

	cfg := DefaultConfig()
	cfg.apply(patch)
	cfg.normalize()

	start := time.Now()
	art := NewFishArt()
	s := &Scene{
		surface: surface,
		art:     art,
		painter: newImagePainter(surface, art),
		sched:   NewTickScheduler(),
		cfg:     cfg,
		width:   float64(w),
		height:  float64(h),
		clock:   func() time.Duration { return time.Since(start) },
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	s.rebuildWaves()
	s.rebuildAgents()
	if cfg.ParticlesEnabled {
		s.rebuildBubbles()
	}
	return s, nil
}

// --- collaborators ---

// SetScheduler replaces the refresh scheduler. A running loop is restarted on
// the new scheduler.
func (s *Scene) SetScheduler(sched Scheduler) {
	wasRunning := s.running
	s.Stop()
	s.sched = sched
	if wasRunning {
		s.Start()
	}
}

// Scheduler returns the scene's refresh scheduler.
func (s *Scene) Scheduler() Scheduler {
	return s.sched
}

// SetClock replaces the monotonic clock used for retarget deadlines.
func (s *Scene) SetClock(c Clock) {
	s.clock = c
}

// SetRand replaces the random source used for spawns and targets.
func (s *Scene) SetRand(rng *rand.Rand) {
	s.rng = rng
}

// SetCreatureArt replaces the decorative creature renderer.
func (s *Scene) SetCreatureArt(art CreatureArt) {
	s.art = art
	if ip, ok := s.painter.(*imagePainter); ok {
		ip.art = art
	}
}

// SetDebugMode enables or disables debug mode. When enabled, per-phase frame
// timings and rebuilds are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// --- lifecycle ---

// Start begins the frame loop. Any pending continuation is cancelled first so
// two loops never run side by side. Start clears a previous frame error.
func (s *Scene) Start() {
	if s.destroyed {
		return
	}
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
	s.err = nil
	s.running = true
	s.handle = s.sched.RequestFrame(s.frame)
}

// Stop ends the frame loop. No frame runs after Stop returns.
func (s *Scene) Stop() {
	s.running = false
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
}

// Running reports whether the frame loop is active.
func (s *Scene) Running() bool {
	return s.running
}

// Err returns the error that stopped the frame loop, if any.
func (s *Scene) Err() error {
	return s.err
}

// Destroy stops the loop and releases the collections and the surface.
// Every later call on the scene is a no-op.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	s.Stop()
	s.destroyed = true
	s.agents = nil
	s.bubbles = nil
	s.bgFade = nil
	s.waves.Rebuild(waveParams{})
	s.surface = nil
	s.painter = nil
}

// frame is the scheduled continuation: one AdvanceFrame, then reschedule.
// A Start from inside the frame (an event sink, say) has already queued the
// next continuation, so frame only requests one when nothing is pending.
func (s *Scene) frame() {
	s.handle = nil
	if !s.running {
		return
	}
	if err := s.AdvanceFrame(); err != nil {
		s.err = err
		s.running = false
		if s.handle != nil {
			s.handle.Cancel()
			s.handle = nil
		}
		s.logf("frame loop stopped: %v", err)
		return
	}
	if s.running && s.handle == nil {
		s.handle = s.sched.RequestFrame(s.frame)
	}
}

// AdvanceFrame updates and composites one frame, back to front: background,
// waves, bubbles, agents. It fails with ErrContextLost when the surface can
// no longer be drawn to.
func (s *Scene) AdvanceFrame() error {
	if s.destroyed {
		return ErrDestroyed
	}
	s.syncExtent()
	if err := s.painter.begin(); err != nil {
		return err
	}

	now := s.clock()
	dt := float32(1.0 / float64(ebiten.TPS()))
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.painter.background(s.currentBackground(dt), s.cfg.BackgroundEnabled)
	s.stats.lap(&s.stats.background, &t0, s.debug)

	s.waves.Advance()
	for i := range s.waves.layers {
		s.painter.wave(&s.waves.layers[i])
	}
	s.stats.lap(&s.stats.waves, &t0, s.debug)

	if s.cfg.ParticlesEnabled && s.bubbles != nil {
		s.bubbles.update()
		for i := range s.bubbles.bubbles {
			s.painter.bubble(s.bubbles.bubbles[i])
		}
	}
	s.stats.lap(&s.stats.bubbles, &t0, s.debug)

	p := s.agentParams()
	target := s.pursuitTarget()
	for i, a := range s.agents {
		prev := a.mode
		if a.steer(target, p, now, s.rng) {
			s.emit(SceneEvent{Type: EventRetarget, Agent: i, Mode: a.mode, X: a.targetX, Y: a.targetY, Count: len(s.agents)})
		}
		if a.mode != prev {
			s.emit(SceneEvent{Type: EventModeChange, Agent: i, Mode: a.mode, X: a.targetX, Y: a.targetY, Count: len(s.agents)})
		}
		a.updateFade(dt)
		s.painter.creature(a.View())
	}
	s.stats.lap(&s.stats.agents, &t0, s.debug)

	s.painter.end()
	s.stats.frames++
	if s.debug {
		s.debugLog()
	}
	return nil
}

// syncExtent follows the surface size. A height change moves the water line,
// so the waves are rebuilt.
func (s *Scene) syncExtent() {
	w, h := s.surface.Size()
	fw, fh := float64(w), float64(h)
	if fw == s.width && fh == s.height {
		return
	}
	heightChanged := fh != s.height
	s.width, s.height = fw, fh
	if heightChanged {
		s.rebuildWaves()
	}
	if s.bubbles != nil {
		s.bubbles.resize(fw, fh)
	}
}

// --- pointer input ---

// SetPointerPosition reports the pointer at (x, y) in surface space. With
// pursuit enabled every agent starts pursuing it immediately. A position
// outside the surface counts as the pointer leaving.
func (s *Scene) SetPointerPosition(x, y float64) {
	if s.destroyed {
		return
	}
	if !(Rect{Width: s.width, Height: s.height}).Contains(x, y) {
		s.SetPointerAbsent()
		return
	}
	s.pointer = Vec2{X: x, Y: y}
	s.pointerInside = true
	if s.cfg.PursuitEnabled {
		s.pursueAll()
	}
}

// SetPointerAbsent reports that the pointer left the surface. Every agent
// switches to autonomous mode with a freshly drawn target.
func (s *Scene) SetPointerAbsent() {
	if s.destroyed || !s.pointerInside {
		return
	}
	s.pointerInside = false
	s.releaseAll()
}

// PointerInside reports whether the pointer is currently over the surface.
func (s *Scene) PointerInside() bool {
	return s.pointerInside
}

func (s *Scene) pursuitTarget() *Vec2 {
	if s.pointerInside && s.cfg.PursuitEnabled {
		return &s.pointer
	}
	return nil
}

func (s *Scene) pursueAll() {
	for i, a := range s.agents {
		prev := a.mode
		a.pursue(s.pointer.X, s.pointer.Y)
		if prev != ModePursuing {
			s.emit(SceneEvent{Type: EventModeChange, Agent: i, Mode: a.mode, X: a.targetX, Y: a.targetY, Count: len(s.agents)})
		}
	}
}

func (s *Scene) releaseAll() {
	now := s.clock()
	p := s.agentParams()
	for i, a := range s.agents {
		prev := a.mode
		a.retarget(p, now, s.rng)
		if prev != ModeAutonomous {
			s.emit(SceneEvent{Type: EventModeChange, Agent: i, Mode: a.mode, X: a.targetX, Y: a.targetY, Count: len(s.agents)})
		}
	}
}

// --- agents ---

// AddAgent appends a freshly initialized agent. It joins the pursuit when the
// pointer is inside and pursuit is enabled.
func (s *Scene) AddAgent() {
	if s.destroyed {
		return
	}
	a := newAgent(s.agentParams(), s.clock(), s.rng)
	if t := s.pursuitTarget(); t != nil {
		a.pursue(t.X, t.Y)
	}
	s.agents = append(s.agents, a)
	s.cfg.CreatureCount = len(s.agents)
	s.emit(SceneEvent{Type: EventAgentAdded, Agent: len(s.agents) - 1, Mode: a.mode, Count: len(s.agents)})
}

// RemoveAgent removes the most recently added agent. It does nothing when
// there are no agents.
func (s *Scene) RemoveAgent() {
	n := len(s.agents)
	if s.destroyed || n == 0 {
		return
	}
	s.agents[n-1] = nil
	s.agents = s.agents[:n-1]
	s.cfg.CreatureCount = len(s.agents)
	s.emit(SceneEvent{Type: EventAgentRemoved, Agent: n - 1, Count: len(s.agents)})
}

// AgentCount returns the number of agents.
func (s *Scene) AgentCount() int {
	return len(s.agents)
}

// Agents returns a snapshot of every agent, oldest first.
func (s *Scene) Agents() []AgentView {
	out := make([]AgentView, len(s.agents))
	for i, a := range s.agents {
		out[i] = a.View()
	}
	return out
}

// RandomizeSpeed gives every agent a speed drawn from 0.5×–1.5× the
// configured creature speed.
func (s *Scene) RandomizeSpeed() {
	for _, a := range s.agents {
		a.speed = s.cfg.CreatureSpeed * speedJitter.Random(s.rng)
	}
}

func (s *Scene) agentParams() agentParams {
	return agentParams{
		Size:             s.cfg.CreatureSize,
		Speed:            s.cfg.CreatureSpeed,
		RetargetInterval: s.cfg.RetargetInterval,
		Width:            s.width,
		Height:           s.height,
	}
}

func (s *Scene) rebuildAgents() {
	p := s.agentParams()
	now := s.clock()
	target := s.pursuitTarget()
	for i := range s.agents {
		s.agents[i] = nil
	}
	s.agents = s.agents[:0]
	for range s.cfg.CreatureCount {
		a := newAgent(p, now, s.rng)
		if target != nil {
			a.pursue(target.X, target.Y)
		}
		s.agents = append(s.agents, a)
	}
	s.logf("agents rebuilt: %d", len(s.agents))
}

// --- waves ---

// Waves returns a copy of the current oscillator set.
func (s *Scene) Waves() []WaveOscillator {
	return s.waves.Layers()
}

func (s *Scene) rebuildWaves() {
	s.waves.Rebuild(waveParams{
		Count:    s.cfg.WaveCount,
		Colors:   slices.Clone(s.cfg.WaveColors),
		Baseline: s.height * s.cfg.WaterLevel,
	})
	s.emit(SceneEvent{Type: EventWavesRebuilt, Agent: -1, Count: s.waves.Len()})
	s.logf("waves rebuilt: %d layers", s.waves.Len())
}

// WaveColors returns a copy of the wave palette.
func (s *Scene) WaveColors() []Color {
	return slices.Clone(s.cfg.WaveColors)
}

// SetWaveColors replaces the wave palette. An empty list is ignored; a list
// equal to the current palette does not rebuild the waves.
func (s *Scene) SetWaveColors(colors []Color) {
	if len(colors) == 0 {
		return
	}
	s.Reconfigure(ConfigPatch{WaveColors: colors})
}

// AddWaveColor appends c to the wave palette.
func (s *Scene) AddWaveColor(c Color) {
	s.SetWaveColors(append(s.WaveColors(), c))
}

// RemoveWaveColor removes palette entry i. Out-of-range indices are ignored,
// and the last remaining color is never removed.
func (s *Scene) RemoveWaveColor(i int) {
	colors := s.WaveColors()
	if i < 0 || i >= len(colors) || len(colors) == 1 {
		return
	}
	s.SetWaveColors(slices.Delete(colors, i, i+1))
}

// UpdateWaveColor replaces palette entry i. Out-of-range indices are ignored.
func (s *Scene) UpdateWaveColor(i int, c Color) {
	colors := s.WaveColors()
	if i < 0 || i >= len(colors) {
		return
	}
	colors[i] = c
	s.SetWaveColors(colors)
}

// RandomWaveColors replaces the palette with n translucent blue-green hues.
func (s *Scene) RandomWaveColors(n int) {
	if n <= 0 {
		return
	}
	colors := make([]Color, n)
	for i := range colors {
		c := colorful.Hsv(Range{170, 230}.Random(s.rng), Range{0.5, 0.9}.Random(s.rng), Range{0.6, 0.95}.Random(s.rng))
		colors[i] = Color{R: c.R, G: c.G, B: c.B, A: 0.5}
	}
	s.SetWaveColors(colors)
}

// --- bubbles ---

// Bubbles returns a copy of the bubble pool, or nil when none was created.
func (s *Scene) Bubbles() []Bubble {
	if s.bubbles == nil {
		return nil
	}
	return s.bubbles.Bubbles()
}

func (s *Scene) rebuildBubbles() {
	s.bubbles = newBubblePool(bubbleParams{
		Count:  s.cfg.ParticleCount,
		Width:  s.width,
		Height: s.height,
	}, s.rng)
	s.emit(SceneEvent{Type: EventBubblesRebuilt, Agent: -1, Count: s.bubbles.Len()})
	s.logf("bubbles rebuilt: %d", s.bubbles.Len())
}

// ToggleParticles flips the bubble field on or off. Turning it off keeps the
// pool so it resumes without reallocation.
func (s *Scene) ToggleParticles() {
	on := !s.cfg.ParticlesEnabled
	s.Reconfigure(ConfigPatch{ParticlesEnabled: &on})
}

// --- background ---

// SetBackgroundGradient replaces the background gradient. When stops is nil
// or does not match colors in length, the colors are spaced evenly.
func (s *Scene) SetBackgroundGradient(colors []Color, stops []float64) {
	s.Reconfigure(ConfigPatch{Background: &Gradient{Colors: colors, Stops: stops}})
}

// ToggleBackground flips the background gradient on or off.
func (s *Scene) ToggleBackground() {
	on := !s.cfg.BackgroundEnabled
	s.Reconfigure(ConfigPatch{BackgroundEnabled: &on})
}

// currentBackground returns the gradient to draw this frame, advancing any
// crossfade by dt seconds.
func (s *Scene) currentBackground(dt float32) Gradient {
	if s.bgFade == nil {
		return s.cfg.Background
	}
	g, done := s.bgFade.update(dt)
	if done {
		s.bgFade = nil
	}
	return g
}

func (s *Scene) startBackgroundFade(from Gradient) {
	if s.bgFade != nil {
		from = s.bgFade.current()
	}
	if s.cfg.BackgroundFade <= 0 {
		s.bgFade = nil
		return
	}
	s.bgFade = newGradientFade(from, s.cfg.Background, s.cfg.BackgroundFade)
}

// --- pursuit ---

// SetPursuit enables or disables pointer pursuit.
func (s *Scene) SetPursuit(enabled bool) {
	s.Reconfigure(ConfigPatch{PursuitEnabled: &enabled})
}

// TogglePursuit flips pointer pursuit.
func (s *Scene) TogglePursuit() {
	s.SetPursuit(!s.cfg.PursuitEnabled)
}

// --- configuration ---

// Config returns a copy of the current configuration.
func (s *Scene) Config() Config {
	return s.cfg.clone()
}

// Reconfigure applies the non-nil fields of p and rebuilds only what they
// affect:
//
//   - WaveCount, WaterLevel or a different WaveColors list rebuild the waves.
//   - CreatureCount rebuilds the agents; CreatureSize and CreatureSpeed are
//     applied to the live agents instead.
//   - ParticleCount rebuilds an existing (or enabled) bubble pool; enabling
//     particles with no pool creates one.
//   - Disabling pursuit releases every agent to autonomous mode; enabling it
//     while the pointer is inside starts the pursuit.
//   - Background starts a crossfade to the new gradient.
func (s *Scene) Reconfigure(p ConfigPatch) {
	if s.destroyed {
		return
	}
	oldBackground := s.cfg.Background
	ch := s.cfg.apply(p)

	if ch.waveCount || ch.waterLevel || ch.waveColors {
		s.rebuildWaves()
	}

	if ch.creatureCount {
		s.rebuildAgents()
	} else if ch.creatureSize || ch.creatureSpeed {
		for _, a := range s.agents {
			a.size = s.cfg.CreatureSize
			a.speed = s.cfg.CreatureSpeed
		}
	}

	switch {
	case ch.particleCount && (s.bubbles != nil || s.cfg.ParticlesEnabled):
		s.rebuildBubbles()
	case s.cfg.ParticlesEnabled && (s.bubbles == nil || (s.bubbles.Len() == 0 && s.cfg.ParticleCount > 0)):
		s.rebuildBubbles()
	}

	if ch.pursuitEnabled {
		if s.cfg.PursuitEnabled {
			if s.pointerInside {
				s.pursueAll()
			}
		} else {
			s.releaseAll()
		}
	}

	if ch.background {
		s.startBackgroundFade(oldBackground)
	}

	if ch.any() {
		s.emit(SceneEvent{Type: EventReconfigured, Agent: -1, Count: len(s.agents)})
	}
}

// ResetScene discards and recreates the agents and the bubble pool.
func (s *Scene) ResetScene() {
	if s.destroyed {
		return
	}
	s.rebuildAgents()
	if s.bubbles != nil || s.cfg.ParticlesEnabled {
		s.rebuildBubbles()
	}
}
