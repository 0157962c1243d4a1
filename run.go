package reef

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run and NewGame.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS draws an FPS/TPS and population overlay.
	ShowFPS bool
	// Debug enables the scene's per-phase timing log.
	Debug bool
	// ScreenshotDir is where screenshots requested by a TestRunner are
	// written. Defaults to "screenshots".
	ScreenshotDir string
}

// Game adapts a Scene to ebiten.Game. Each Update polls pointer input, steps
// the optional TestRunner, runs the user hook and fires the scene's
// scheduler; Draw blits the offscreen surface to the screen.
type Game struct {
	scene   *Scene
	surface *ImageSurface
	sched   *TickScheduler
	input   *PointerInput
	runner  *TestRunner
	hud     *hud
	shots   screenshotQueue

	// OnUpdate, when set, runs after input and before the frame each tick.
	// A non-nil error terminates the game.
	OnUpdate func(*Scene) error
}

// NewGame builds the offscreen surface, the scene and its input adapter and
// starts the frame loop.
func NewGame(cfg RunConfig, sceneCfg Config) (*Game, error) {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}

	surface := NewImageSurface(cfg.Width, cfg.Height)
	scene, err := NewScene(surface, sceneCfg.Patch())
	if err != nil {
		surface.Dispose()
		return nil, err
	}
	scene.SetDebugMode(cfg.Debug)

	sched := NewTickScheduler()
	scene.SetScheduler(sched)

	g := &Game{
		scene:   scene,
		surface: surface,
		sched:   sched,
		input:   NewPointerInput(scene),
		shots:   screenshotQueue{dir: cfg.ScreenshotDir},
	}
	if cfg.ShowFPS {
		g.hud = newHUD()
	}
	scene.Start()
	return g, nil
}

// Scene returns the game's scene.
func (g *Game) Scene() *Scene {
	return g.scene
}

// Input returns the pointer adapter, e.g. to inject synthetic events.
func (g *Game) Input() *PointerInput {
	return g.input
}

// SetTestRunner attaches a TestRunner stepped once per Update.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.runner = runner
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.runner != nil {
		g.runner.step(g.scene, g.input, &g.shots)
		if err := g.runner.Err(); err != nil {
			return err
		}
	}
	g.input.Update()
	if g.OnUpdate != nil {
		if err := g.OnUpdate(g.scene); err != nil {
			return err
		}
	}
	g.sched.Fire()
	if err := g.scene.Err(); err != nil {
		return err
	}
	if g.hud != nil {
		g.hud.update(g.scene)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if img := g.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
		g.shots.flush(img)
	}
	if g.hud != nil {
		g.hud.draw(screen)
	}
}

// Layout implements ebiten.Game. The surface follows the window size so the
// scene always fills its container. A minimized window (zero size) keeps the
// previous surface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.surface.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close destroys the scene and releases the surface.
func (g *Game) Close() {
	g.scene.Destroy()
	g.surface.Dispose()
}

// Run opens a window and runs the scene until the window is closed or a
// frame fails.
func Run(cfg RunConfig, sceneCfg Config) error {
	g, err := NewGame(cfg, sceneCfg)
	if err != nil {
		return err
	}
	return RunGame(g, cfg)
}

// RunGame opens a window for an existing Game.
func RunGame(g *Game, cfg RunConfig) error {
	defer g.Close()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(g.surface.w, g.surface.h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(g)
}
