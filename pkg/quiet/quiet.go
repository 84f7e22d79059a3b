// Package quiet keeps a plugin's own console chatter out of the tool's
// output. Plugins print from native code straight to the process's standard
// streams, so the redirection happens below the Go runtime, on the
// descriptors themselves.
package quiet

import (
	"os"
	"sync"
)

// Guard holds the real standard streams while they point at the null device.
// A Guard is an io.Writer onto the real standard error, before and after
// Restore, which makes it a suitable log destination for the whole run.
type Guard struct {
	mu       sync.Mutex
	restored bool
	stdout   *os.File
	stderr   *os.File
	saved    [2]uintptr
	err      error
}

// Stderr returns a handle on the real standard error.
func (g *Guard) Stderr() *os.File {
	if g == nil {
		return os.Stderr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stderr
}

// Write writes p to the real standard error. A nil Guard writes to
// os.Stderr.
func (g *Guard) Write(p []byte) (int, error) {
	return g.Stderr().Write(p)
}

// Restore puts the real streams back. It is safe to call more than once and
// on a nil Guard.
func (g *Guard) Restore() error {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.restored {
		g.restored = true
		g.err = restore(g)
	}
	return g.err
}
