package reef

import (
	"errors"
	"testing"
)

func TestImagePainterBeginContextLost(t *testing.T) {
	surf := &testSurface{w: 10, h: 10, lost: true}
	p := newImagePainter(surf, NewFishArt())
	if err := p.begin(); !errors.Is(err, ErrContextLost) {
		t.Errorf("begin err = %v, want ErrContextLost", err)
	}
}

func TestImagePainterBeginTracksSize(t *testing.T) {
	surf := &testSurface{w: 320, h: 240}
	p := newImagePainter(surf, nil)
	if err := p.begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if p.w != 320 || p.h != 240 || p.dst == nil {
		t.Errorf("painter state w=%v h=%v dst=%v", p.w, p.h, p.dst)
	}
	p.end()
	if p.dst != nil {
		t.Error("end kept the destination image")
	}
}

func TestSetCreatureArtReachesPainter(t *testing.T) {
	surf := &testSurface{w: 320, h: 240}
	s, err := NewScene(surf, ConfigPatch{})
	if err != nil {
		t.Fatal(err)
	}
	art := &FishArt{}
	s.SetCreatureArt(art)
	if ip := s.painter.(*imagePainter); ip.art != art {
		t.Error("painter still uses the old art")
	}
}

func TestImageSurface(t *testing.T) {
	s := NewImageSurface(4, 3)
	if w, h := s.Size(); w != 4 || h != 3 {
		t.Errorf("Size = %dx%d, want 4x3", w, h)
	}
	if s.Image() == nil {
		t.Fatal("Image = nil")
	}

	s.Resize(8, 6)
	if b := s.Image().Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("image = %dx%d after resize, want 8x6", b.Dx(), b.Dy())
	}

	s.Resize(0, 6)
	if s.Image() != nil {
		t.Error("zero-width surface kept an image")
	}

	s.Resize(2, 2)
	s.Dispose()
	if s.Image() != nil {
		t.Error("Image after Dispose")
	}
}
