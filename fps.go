package reef

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefreshTicks is how often the overlay text is regenerated (~0.5s at 60 TPS).
const hudRefreshTicks = 30

// hud is a small overlay showing FPS/TPS and the scene's population. The
// image is redrawn every hudRefreshTicks and composited on top of the frame.
type hud struct {
	img   *ebiten.Image
	ticks int
}

func newHUD() *hud {
	// 180x64 fits four lines of debug text.
	return &hud{img: ebiten.NewImage(180, 64)}
}

func (h *hud) update(s *Scene) {
	h.ticks++
	if h.ticks < hudRefreshTicks {
		return
	}
	h.ticks = 0

	mode := ModeAutonomous
	if s.pointerInside && s.cfg.PursuitEnabled {
		mode = ModePursuing
	}
	bubbles := 0
	if s.bubbles != nil && s.cfg.ParticlesEnabled {
		bubbles = s.bubbles.Len()
	}

	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nfish: %d  bubbles: %d\nmode: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), len(s.agents), bubbles, mode))
}

func (h *hud) draw(screen *ebiten.Image) {
	screen.DrawImage(h.img, nil)
}
