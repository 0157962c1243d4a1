package reef

import (
	"math"
	"math/rand/v2"
)

// Spawn ranges for recycled bubbles.
var (
	bubbleSize    = Range{2, 8}
	bubbleSpeed   = Range{0.5, 2}
	bubbleOpacity = Range{0.2, 0.7}
	// bubbleDepth is how far below the bottom edge a recycled bubble starts.
	bubbleDepth = Range{0, 100}
)

const (
	bubbleWobbleFreq = 0.02
	bubbleWobbleAmp  = 0.5
)

// Bubble is a single rising particle.
type Bubble struct {
	X, Y    float64
	Size    float64
	Speed   float64
	Opacity float64
}

// bubbleParams is the immutable snapshot a pool is built from.
type bubbleParams struct {
	Count         int
	Width, Height float64
}

// BubblePool is a fixed-size, continuously recycled set of bubbles. The pool
// never grows or shrinks between rebuilds.
type BubblePool struct {
	bubbles       []Bubble
	width, height float64
	rng           *rand.Rand
}

// newBubblePool creates a pool of p.Count bubbles spread over the whole
// surface so the first frames are not empty.
func newBubblePool(p bubbleParams, rng *rand.Rand) *BubblePool {
	bp := &BubblePool{
		bubbles: make([]Bubble, p.Count),
		width:   p.Width,
		height:  p.Height,
		rng:     rng,
	}
	for i := range bp.bubbles {
		bp.respawn(&bp.bubbles[i])
		bp.bubbles[i].Y = Range{0, p.Height}.Random(rng)
	}
	return bp
}

// Len returns the pool size.
func (bp *BubblePool) Len() int {
	return len(bp.bubbles)
}

// Bubbles returns a copy of the pool.
func (bp *BubblePool) Bubbles() []Bubble {
	out := make([]Bubble, len(bp.bubbles))
	copy(out, bp.bubbles)
	return out
}

// resize updates the extents used for future respawns. Live bubbles are left
// where they are.
func (bp *BubblePool) resize(width, height float64) {
	bp.width = width
	bp.height = height
}

// update advances every bubble by one tick and recycles the ones that have
// risen past the top edge in the same tick.
func (bp *BubblePool) update() {
	for i := range bp.bubbles {
		b := &bp.bubbles[i]
		b.Y -= b.Speed
		b.X += math.Sin(b.Y*bubbleWobbleFreq) * bubbleWobbleAmp
		if b.Y < -b.Size {
			bp.respawn(b)
		}
	}
}

// respawn reinitializes b below the visible area with fresh random traits.
func (bp *BubblePool) respawn(b *Bubble) {
	b.X = Range{0, bp.width}.Random(bp.rng)
	b.Y = bp.height + bubbleDepth.Random(bp.rng)
	b.Size = bubbleSize.Random(bp.rng)
	b.Speed = bubbleSpeed.Random(bp.rng)
	b.Opacity = bubbleOpacity.Random(bp.rng)
}
