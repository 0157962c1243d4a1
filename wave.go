package reef

import "math"

// Per-layer progression of the wave field. Every successive layer sits
// lower, swings wider, and is spatially denser than the one before it.
const (
	waveLayerStep     = 20.0
	waveBaseAmplitude = 15.0
	waveAmplitudeStep = 5.0
	waveBaseFrequency = 0.01
	waveFrequencyStep = 0.002
	waveBaseSpeed     = 0.02
	waveSpeedStep     = 0.005
	waveSampleStep    = 10.0
	twoPi             = 2 * math.Pi
)

// WaveOscillator is one layer of the procedural wave field.
type WaveOscillator struct {
	BaseY     float64
	Amplitude float64
	Frequency float64
	Speed     float64
	Color     Color
	// Phase accumulates Speed every tick and is never wrapped in storage.
	Phase float64
}

// HeightAt returns the surface height of the oscillator at x. The phase is
// reduced modulo 2π here so the stored value can grow without bound.
func (o *WaveOscillator) HeightAt(x float64) float64 {
	return o.BaseY + math.Sin(x*o.Frequency+math.Mod(o.Phase, twoPi))*o.Amplitude
}

// waveParams is the immutable snapshot a wave rebuild is computed from.
type waveParams struct {
	Count    int
	Colors   []Color
	Baseline float64
}

// WaveField owns the set of oscillators making up the water surface.
type WaveField struct {
	layers []WaveOscillator
}

// Rebuild replaces every oscillator. Colors are taken round-robin from the
// palette, which may be shorter or longer than the layer count.
func (w *WaveField) Rebuild(p waveParams) {
	w.layers = w.layers[:0]
	for i := 0; i < p.Count; i++ {
		fi := float64(i)
		c := ColorWhite
		if len(p.Colors) > 0 {
			c = p.Colors[i%len(p.Colors)]
		}
		w.layers = append(w.layers, WaveOscillator{
			BaseY:     p.Baseline + fi*waveLayerStep,
			Amplitude: waveBaseAmplitude + fi*waveAmplitudeStep,
			Frequency: waveBaseFrequency + fi*waveFrequencyStep,
			Speed:     waveBaseSpeed + fi*waveSpeedStep,
			Color:     c,
		})
	}
}

// Advance moves every oscillator forward by one tick.
func (w *WaveField) Advance() {
	for i := range w.layers {
		w.layers[i].Phase += w.layers[i].Speed
	}
}

// Len returns the number of oscillators.
func (w *WaveField) Len() int {
	return len(w.layers)
}

// Layer returns a pointer to oscillator i. The pointer is invalidated by Rebuild.
func (w *WaveField) Layer(i int) *WaveOscillator {
	return &w.layers[i]
}

// Layers returns a copy of the oscillator set.
func (w *WaveField) Layers() []WaveOscillator {
	out := make([]WaveOscillator, len(w.layers))
	copy(out, w.layers)
	return out
}

// Sample appends the surface points of oscillator o from x=0 to x=width at a
// fixed horizontal step. The right edge is always included.
func (o *WaveOscillator) Sample(width float64, buf []Vec2) []Vec2 {
	for x := 0.0; x < width; x += waveSampleStep {
		buf = append(buf, Vec2{X: x, Y: o.HeightAt(x)})
	}
	return append(buf, Vec2{X: width, Y: o.HeightAt(width)})
}
