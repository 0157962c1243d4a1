package reef

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CreatureArt draws the body of one agent. Implementations are purely
// decorative: they receive the agent's pose and must not keep it.
type CreatureArt interface {
	DrawCreature(dst *ebiten.Image, v AgentView)
}

// FishArt is the built-in creature: an elliptical body, a tail wedge that
// swings with the agent's tail angle, a dorsal fin and an eye.
type FishArt struct {
	Body Color
	Fin  Color
	Eye  Color

	points []Vec2
	verts  []ebiten.Vertex
	inds   []uint16
}

// NewFishArt returns a FishArt with the default orange palette.
func NewFishArt() *FishArt {
	return &FishArt{
		Body: MustParseColor("#ff8c42"),
		Fin:  MustParseColor("#ff6b35"),
		Eye:  MustParseColor("#1b1b1b"),
	}
}

// DrawCreature draws the fish centred on (v.X, v.Y), facing v.Heading.
func (f *FishArt) DrawCreature(dst *ebiten.Image, v AgentView) {
	alpha := v.Alpha
	body := f.Body
	body.A *= alpha
	fin := f.Fin
	fin.A *= alpha

	f.verts = f.verts[:0]
	f.inds = f.inds[:0]
	s := v.Size

	// Tail: hinged at the rear of the body, rotated by the tail angle.
	rearX, rearY := -s*0.45, 0.0
	tip := func(ly float64) Vec2 {
		p := rotateAround(rearX, rearY, -s*0.4, ly, v.Tail)
		return rotateAround(v.X, v.Y, p.X, p.Y, v.Heading)
	}
	f.points = append(f.points[:0],
		rotateAround(v.X, v.Y, rearX, rearY, v.Heading),
		tip(-s*0.3),
		tip(s*0.3),
	)
	f.verts, f.inds = appendPolygonFan(f.verts, f.inds, f.points, fin)

	// Dorsal fin.
	f.points = append(f.points[:0],
		rotateAround(v.X, v.Y, -s*0.15, -s*0.2, v.Heading),
		rotateAround(v.X, v.Y, s*0.1, -s*0.2, v.Heading),
		rotateAround(v.X, v.Y, -s*0.25, -s*0.4, v.Heading),
	)
	f.verts, f.inds = appendPolygonFan(f.verts, f.inds, f.points, fin)

	f.points = ellipsePoints(f.points[:0], v.X, v.Y, s*0.5, s*0.25, v.Heading, 24)
	f.verts, f.inds = appendPolygonFan(f.verts, f.inds, f.points, body)

	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha}
	dst.DrawTriangles(f.verts, f.inds, ensureWhitePixel(), op)

	eyeC := f.Eye
	eyeC.A *= alpha
	eye := rotateAround(v.X, v.Y, s*0.25, -s*0.06, v.Heading)
	vector.DrawFilledCircle(dst, float32(eye.X), float32(eye.Y), float32(s*0.05), eyeC.toRGBA(), true)
}
