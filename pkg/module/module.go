// Package module maps a VST3 binary into the process and resolves the
// factory entry point it exports.
//
// A Module must stay open until every interface obtained from its factory has
// been released; closing it unmaps the code those interfaces dispatch into.
package module

import (
	"sync"
	"unsafe"

	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Module is one loaded plugin binary.
type Module struct {
	path string
	lib  library

	mu      sync.Mutex
	entered bool
	closed  bool
}

// Load maps the binary at path and runs its optional platform entry hook.
func Load(path string) (*Module, error) {
	lib, err := openLibrary(path)
	if err != nil {
		return nil, vst3.NewLoadFailureError(path, err)
	}

	m := &Module{path: path, lib: lib}
	entered, err := lib.enter()
	if err != nil {
		lib.close()
		return nil, vst3.NewLoadFailureError(path, err)
	}
	m.entered = entered
	return m, nil
}

// Path returns the path the module was loaded from.
func (m *Module) Path() string {
	return m.path
}

// ResolveFactory looks up the GetPluginFactory export without calling it.
func (m *Module) ResolveFactory() (unsafe.Pointer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, vst3.NewSymbolMissingError(m.path, vst3.FactorySymbol)
	}
	fn := m.lib.symbol(vst3.FactorySymbol)
	if fn == nil {
		return nil, vst3.NewSymbolMissingError(m.path, vst3.FactorySymbol)
	}
	return fn, nil
}

// Factory calls the entry point and returns the root factory pointer. The
// caller owns the one reference the module hands out.
func (m *Module) Factory() (unsafe.Pointer, error) {
	fn, err := m.ResolveFactory()
	if err != nil {
		return nil, err
	}
	f := callFactory(fn)
	if f == nil {
		return nil, vst3.NewFactoryNullError(m.path)
	}
	return f, nil
}

// Close runs the exit hook if the entry hook ran, then unmaps the binary.
// Calling Close more than once is a no-op.
func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	if m.entered {
		m.lib.exit()
	}
	return m.lib.close()
}
