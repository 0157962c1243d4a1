package reef

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// painter composites one frame. Calls arrive back to front: begin,
// background, waves, bubbles, creatures, end.
type painter interface {
	begin() error
	background(g Gradient, enabled bool)
	wave(o *WaveOscillator)
	bubble(b Bubble)
	creature(v AgentView)
	end()
}

// imagePainter draws onto a Surface's ebiten image with DrawTriangles and
// the vector package.
type imagePainter struct {
	surface Surface
	art     CreatureArt

	dst    *ebiten.Image
	w, h   float64
	points []Vec2
	verts  []ebiten.Vertex
	inds   []uint16
	op     ebiten.DrawTrianglesOptions
}

func newImagePainter(surface Surface, art CreatureArt) *imagePainter {
	return &imagePainter{
		surface: surface,
		art:     art,
		op:      ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha},
	}
}

func (p *imagePainter) begin() error {
	img := p.surface.Image()
	if img == nil {
		return fmt.Errorf("begin frame: %w", ErrContextLost)
	}
	p.dst = img
	w, h := p.surface.Size()
	p.w, p.h = float64(w), float64(h)
	return nil
}

func (p *imagePainter) background(g Gradient, enabled bool) {
	p.dst.Clear()
	if !enabled {
		return
	}
	p.verts, p.inds = appendGradientBands(p.verts[:0], p.inds[:0], g, p.w, p.h)
	p.flush()
}

func (p *imagePainter) wave(o *WaveOscillator) {
	p.points = o.Sample(p.w, p.points[:0])
	p.verts, p.inds = appendWaveStrip(p.verts[:0], p.inds[:0], p.points, p.h, o.Color)
	p.flush()
}

func (p *imagePainter) bubble(b Bubble) {
	fill := Color{R: 1, G: 1, B: 1, A: b.Opacity * 0.35}
	rim := Color{R: 1, G: 1, B: 1, A: b.Opacity}
	x, y, r := float32(b.X), float32(b.Y), float32(b.Size)
	vector.DrawFilledCircle(p.dst, x, y, r, fill.toRGBA(), true)
	vector.StrokeCircle(p.dst, x, y, r, 1, rim.toRGBA(), true)
}

func (p *imagePainter) creature(v AgentView) {
	if p.art != nil {
		p.art.DrawCreature(p.dst, v)
	}
}

func (p *imagePainter) end() {
	p.dst = nil
}

func (p *imagePainter) flush() {
	if len(p.inds) == 0 {
		return
	}
	p.dst.DrawTriangles(p.verts, p.inds, ensureWhitePixel(), &p.op)
}
