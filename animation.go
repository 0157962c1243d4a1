package reef

import (
	"slices"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// gradientFade crossfades the background from one gradient to another. The
// blend is evaluated at the union of both stop sets so neither gradient's
// shape is lost mid-fade.
type gradientFade struct {
	from, to Gradient
	stops    []float64
	tween    *gween.Tween
	t        float64
}

func newGradientFade(from, to Gradient, d time.Duration) *gradientFade {
	stops := append(slices.Clone(from.Stops), to.Stops...)
	slices.Sort(stops)
	return &gradientFade{
		from:  from.clone(),
		to:    to.clone(),
		stops: slices.Compact(stops),
		tween: gween.New(0, 1, float32(d.Seconds()), ease.InOutQuad),
	}
}

// update advances the fade by dt seconds and returns the blended gradient.
// done is true once the target gradient has been reached.
func (f *gradientFade) update(dt float32) (g Gradient, done bool) {
	v, finished := f.tween.Update(dt)
	f.t = float64(v)
	if finished {
		return f.to.clone(), true
	}
	return f.current(), false
}

// current returns the blend at the last computed position.
func (f *gradientFade) current() Gradient {
	g := Gradient{
		Colors: make([]Color, len(f.stops)),
		Stops:  slices.Clone(f.stops),
	}
	for i, s := range f.stops {
		g.Colors[i] = f.from.At(s).Lerp(f.to.At(s), f.t)
	}
	return g
}
