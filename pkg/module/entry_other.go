//go:build unix && !linux

package module

// macOS bundleEntry needs a CFBundleRef, which is not available to a plain
// dlopen host; other unixes define no hooks.
const (
	entrySymbol = ""
	exitSymbol  = ""
)
