package reef

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrNilSurface is returned by NewScene when no surface is given.
	ErrNilSurface = errors.New("reef: nil surface")
	// ErrNoContext is returned when a surface has no drawable image.
	ErrNoContext = errors.New("reef: drawing context unavailable")
	// ErrEmptySurface is returned by NewScene for a zero-sized surface.
	ErrEmptySurface = errors.New("reef: surface has no area")
	// ErrContextLost is returned by AdvanceFrame when the surface image
	// disappears mid-session.
	ErrContextLost = errors.New("reef: drawing context lost")
)

// Surface is the drawing target a Scene composites onto. Size may change
// between frames; the scene follows it. Image returns nil when the surface
// can no longer be drawn to.
type Surface interface {
	Size() (width, height int)
	Image() *ebiten.Image
}

// ImageSurface is an offscreen Surface backed by an ebiten.Image.
type ImageSurface struct {
	img *ebiten.Image
	w   int
	h   int
}

// NewImageSurface allocates a w×h offscreen surface.
func NewImageSurface(w, h int) *ImageSurface {
	s := &ImageSurface{}
	s.Resize(w, h)
	return s
}

// Size returns the surface dimensions in pixels.
func (s *ImageSurface) Size() (int, int) {
	return s.w, s.h
}

// Image returns the backing image, or nil after Dispose.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

// Resize reallocates the backing image when the dimensions change.
func (s *ImageSurface) Resize(w, h int) {
	if w == s.w && h == s.h && s.img != nil {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = w, h
	if w > 0 && h > 0 {
		s.img = ebiten.NewImage(w, h)
	}
}

// Dispose releases the backing image. The surface reports no image afterwards.
func (s *ImageSurface) Dispose() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}
