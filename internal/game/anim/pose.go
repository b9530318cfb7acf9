package anim

import "sync"

// Pose tracks the sequence currently playing on a skeleton instance.
type Pose struct {
	mu      sync.Mutex
	current *Sequence
	started uint64
}

// Start requests seq at tick now. A different non-looping clip that has not
// reached its end keeps the pose busy and the request is refused.
func (p *Pose) Start(seq *Sequence, now uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == seq {
		return true
	}
	if p.current != nil && !p.current.Loop {
		end := p.started + uint64(p.current.Duration.Milliseconds())
		if now < end {
			return false
		}
	}
	p.current = seq
	p.started = now
	return true
}

// Current returns the playing sequence, nil when idle.
func (p *Pose) Current() *Sequence {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Reset stops whatever is playing.
func (p *Pose) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
	p.started = 0
}
