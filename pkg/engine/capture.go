package engine

import "sync"

// Capture is the ordered sink print and debug statements write into while a
// script runs. One capture belongs to exactly one execution; it is never
// shared across concurrent runs.
type Capture struct {
	mu    sync.Mutex
	lines []string
	tee   func(line string)
}

// NewCapture creates an empty capture. A non-nil tee is invoked synchronously
// for every emitted line, in emission order, so callers can stream output
// while the script is still running.
func NewCapture(tee func(line string)) *Capture {
	return &Capture{tee: tee}
}

// Emit appends one line, preserving emission order.
func (c *Capture) Emit(line string) {
	c.mu.Lock()
	c.lines = append(c.lines, line)
	tee := c.tee
	c.mu.Unlock()

	if tee != nil {
		tee(line)
	}
}

// Drain returns all captured lines in emission order and empties the capture.
func (c *Capture) Drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := c.lines
	c.lines = nil
	return lines
}
