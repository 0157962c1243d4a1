package reef

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used as the source for every untextured triangle.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// solidVertex returns an untextured vertex with a premultiplied color.
func solidVertex(x, y float64, c Color) ebiten.Vertex {
	a := float32(clamp01(c.A))
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(clamp01(c.R)) * a,
		ColorG: float32(clamp01(c.G)) * a,
		ColorB: float32(clamp01(c.B)) * a,
		ColorA: a,
	}
}

// appendQuad appends two triangles covering tl, tr, br, bl.
func appendQuad(verts []ebiten.Vertex, inds []uint16, tl, tr, br, bl ebiten.Vertex) ([]ebiten.Vertex, []uint16) {
	base := uint16(len(verts))
	verts = append(verts, tl, tr, br, bl)
	inds = append(inds, base, base+3, base+1, base+1, base+3, base+2)
	return verts, inds
}

// appendGradientBands appends one full-width quad per pair of adjacent stops,
// with the stop colors on the top and bottom edges so the GPU interpolates a
// linear vertical gradient. Space above the first stop and below the last is
// filled with the end colors.
func appendGradientBands(verts []ebiten.Vertex, inds []uint16, g Gradient, w, h float64) ([]ebiten.Vertex, []uint16) {
	if len(g.Colors) == 0 {
		return verts, inds
	}
	band := func(y0, y1 float64, c0, c1 Color) {
		if y1 <= y0 {
			return
		}
		verts, inds = appendQuad(verts, inds,
			solidVertex(0, y0, c0), solidVertex(w, y0, c0),
			solidVertex(w, y1, c1), solidVertex(0, y1, c1))
	}
	first, last := g.Colors[0], g.Colors[len(g.Colors)-1]
	band(0, g.Stops[0]*h, first, first)
	for i := 1; i < len(g.Colors); i++ {
		band(g.Stops[i-1]*h, g.Stops[i]*h, g.Colors[i-1], g.Colors[i])
	}
	band(g.Stops[len(g.Stops)-1]*h, h, last, last)
	return verts, inds
}

// appendWaveStrip fills the area between a sampled wave polyline and the
// bottom edge with a strip of quads, one per sample interval.
func appendWaveStrip(verts []ebiten.Vertex, inds []uint16, points []Vec2, bottom float64, c Color) ([]ebiten.Vertex, []uint16) {
	for i := 1; i < len(points); i++ {
		p0, p1 := points[i-1], points[i]
		verts, inds = appendQuad(verts, inds,
			solidVertex(p0.X, p0.Y, c), solidVertex(p1.X, p1.Y, c),
			solidVertex(p1.X, bottom, c), solidVertex(p0.X, bottom, c))
	}
	return verts, inds
}

// appendPolygonFan appends a fan-triangulated polygon (convex shapes only).
// N points produce 3*(N-2) indices.
func appendPolygonFan(verts []ebiten.Vertex, inds []uint16, points []Vec2, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}
	base := uint16(len(verts))
	for _, p := range points {
		verts = append(verts, solidVertex(p.X, p.Y, c))
	}
	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds = append(inds, base, base+uint16(i+1), base+uint16(i+2))
	}
	return verts, inds
}

// ellipsePoints appends n points of an ellipse centred on (cx, cy) with radii
// (rx, ry), rotated by rot radians.
func ellipsePoints(buf []Vec2, cx, cy, rx, ry, rot float64, n int) []Vec2 {
	sin, cos := math.Sincos(rot)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		ex := math.Cos(t) * rx
		ey := math.Sin(t) * ry
		buf = append(buf, Vec2{X: cx + ex*cos - ey*sin, Y: cy + ex*sin + ey*cos})
	}
	return buf
}

// rotateAround rotates local point (lx, ly) by rot and translates it to (cx, cy).
func rotateAround(cx, cy, lx, ly, rot float64) Vec2 {
	sin, cos := math.Sincos(rot)
	return Vec2{X: cx + lx*cos - ly*sin, Y: cy + lx*sin + ly*cos}
}
