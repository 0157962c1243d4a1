package reef

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerInput polls Ebitengine mouse and touch state once per tick and
// reports it to a Scene in surface coordinates. Only transitions into and out
// of the surface are reported as presence changes; positions are forwarded
// every tick while the pointer is inside.
//
// The first active touch wins over the mouse. Once a touch has been seen the
// mouse is ignored, since touch platforms report a stale cursor position.
//
// Ebitengine keeps returning the last in-window cursor position after the
// mouse leaves a focused window, so a cursor on the outermost pixel of the
// surface counts as having left. Unfocusing the window does too.
type PointerInput struct {
	scene *Scene

	// Screen→surface mapping: surface = (screen - Offset) / Scale.
	OffsetX, OffsetY float64
	Scale            float64

	inside       bool
	touchSeen    bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
	synthetic   bool
}

// NewPointerInput creates an input adapter feeding scene.
func NewPointerInput(scene *Scene) *PointerInput {
	return &PointerInput{scene: scene, Scale: 1}
}

// Inside reports whether the last processed pointer sample was on the surface.
func (p *PointerInput) Inside() bool {
	return p.inside
}

// Update processes one tick of input. Injected events take priority; while
// injection is active real input is ignored.
func (p *PointerInput) Update() {
	if p.processInjected() || p.synthetic {
		return
	}

	touchIDs := ebiten.AppendTouchIDs(p.prevTouchIDs[:0])
	p.prevTouchIDs = touchIDs
	if len(touchIDs) > 0 {
		p.touchSeen = true
		tx, ty := ebiten.TouchPosition(touchIDs[0])
		p.feedScreen(float64(tx), float64(ty), true)
		return
	}
	if p.touchSeen {
		p.feedScreen(0, 0, false)
		return
	}

	mx, my := ebiten.CursorPosition()
	p.feedCursor(float64(mx), float64(my), ebiten.IsFocused())
}

// cursorEdge is the border width, in surface pixels, where a mouse cursor is
// treated as outside.
const cursorEdge = 1.0

// feedCursor forwards a mouse position, reporting absence on the border.
func (p *PointerInput) feedCursor(sx, sy float64, focused bool) {
	x, y := p.toSurface(sx, sy)
	w, h := p.scene.width, p.scene.height
	onEdge := x < cursorEdge || y < cursorEdge || x >= w-cursorEdge || y >= h-cursorEdge
	p.feed(x, y, focused && !onEdge)
}

// feedScreen converts a screen position into surface space and forwards it.
func (p *PointerInput) feedScreen(sx, sy float64, present bool) {
	x, y := p.toSurface(sx, sy)
	p.feed(x, y, present)
}

func (p *PointerInput) toSurface(sx, sy float64) (float64, float64) {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	return (sx - p.OffsetX) / scale, (sy - p.OffsetY) / scale
}

// feed reports a surface-space sample. Positions outside the surface are
// treated as absence.
func (p *PointerInput) feed(x, y float64, present bool) {
	w, h := p.scene.width, p.scene.height
	if present && (Rect{Width: w, Height: h}).Contains(x, y) {
		p.inside = true
		p.scene.SetPointerPosition(x, y)
		return
	}
	if p.inside {
		p.inside = false
		p.scene.SetPointerAbsent()
	}
}
