package reef

// syntheticPointerEvent represents a single injected pointer sample in
// surface coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	present bool
}

// InjectMove queues a pointer sample at (x, y) in surface coordinates. The
// event is consumed on the next Update. Real input is ignored from now on
// until ResumeRealInput.
func (p *PointerInput) InjectMove(x, y float64) {
	p.synthetic = true
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{x: x, y: y, present: true})
}

// InjectLeave queues the pointer leaving the surface.
func (p *PointerInput) InjectLeave() {
	p.synthetic = true
	p.injectQueue = append(p.injectQueue, syntheticPointerEvent{})
}

// InjectPath queues a linear sweep from (fromX, fromY) to (toX, toY) over
// frames samples, one per frame. Minimum frames is 2 (start and end).
func (p *PointerInput) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		p.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInjections returns the number of queued synthetic events.
func (p *PointerInput) PendingInjections() int {
	return len(p.injectQueue)
}

// ResumeRealInput drops any queued synthetic events and hands control back
// to the mouse and touch devices.
func (p *PointerInput) ResumeRealInput() {
	p.injectQueue = p.injectQueue[:0]
	p.synthetic = false
}

// processInjected pops one event from the inject queue and feeds it to the
// scene. Returns true if an event was consumed.
func (p *PointerInput) processInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	p.feed(evt.x, evt.y, evt.present)
	return true
}
