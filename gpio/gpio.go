// Package gpio provides the pin implementations behind the firmware HAL:
// in-memory pins for tests and the simulator, and a Raspberry Pi backend
// on the rpio memory-mapped driver.
package gpio

import "sync"

// MemoryInput is a settable input pin. Set may be called from another
// goroutine than Read, which the simulator does when toggling jumpers from
// stdin.
type MemoryInput struct {
	mu       sync.Mutex
	asserted bool
}

func (p *MemoryInput) Set(asserted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.asserted = asserted
}

func (p *MemoryInput) Read() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.asserted
}

// MemoryOutput records the last written state and how many writes it has
// seen, so tests can assert that no-op cycles leave the relays untouched.
type MemoryOutput struct {
	mu     sync.Mutex
	high   bool
	writes int
}

func (p *MemoryOutput) Write(high bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.high = high
	p.writes++
}

func (p *MemoryOutput) High() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}

func (p *MemoryOutput) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}
