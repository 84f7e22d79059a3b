// Package testplugin compiles a small VST3 module written in C so tests can
// drive the real cgo bindings end to end. The module exposes an
// IPluginFactory2 with one audio component and one separate edit controller.
package testplugin

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Values the fixture module reports.
var (
	ComponentCID  = vst3.UID(0x0F1E2D3C, 0x4B5A6978, 0x8796A5B4, 0xC3D2E1F0)
	ControllerCID = vst3.UID(0x11223344, 0x55667788, 0x99AABBCC, 0xDDEEFF00)
)

const (
	Vendor         = "Fixture Audio"
	URL            = "https://fixture.example"
	Email          = "dev@fixture.example"
	FactoryFlags   = vst3.FactoryUnicode
	ClassName      = "Fixture Gain"
	ControllerName = "Fixture Gain Controller"
	SubCategories  = "Fx|Dynamics"
	Version        = "1.2.3"
	SDKVersion     = "VST 3.7.9"

	// ParameterCount includes one MIDI CC parameter the report filter drops.
	ParameterCount = 3
	GainID         = 100
	BypassID       = 102
	GainDefault    = 0.5
	GainValue      = 0.75
)

// Build compiles the fixture into a shared library under a per-test
// temporary directory and returns its path. The test is skipped when no C
// compiler is available. CC overrides the compiler.
func Build(t testing.TB) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fixture module is built with a unix toolchain")
	}

	cc := strings.Fields(os.Getenv("CC"))
	if len(cc) == 0 {
		cc = []string{"cc"}
	}
	if _, err := exec.LookPath(cc[0]); err != nil {
		t.Skipf("no C compiler: %v", err)
	}

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate fixture sources")
	}
	dir := filepath.Dir(file)

	out := filepath.Join(t.TempDir(), "fixture.so")
	args := append(cc[1:],
		"-shared", "-fPIC", "-O0",
		"-I", filepath.Join(dir, "..", "..", "include"),
		"-o", out,
		filepath.Join(dir, "testdata", "plugin.c"),
	)
	cmd := exec.Command(cc[0], args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("compiling fixture module: %v\n%s", err, output)
	}
	return out
}

// Bundle builds the fixture and lays it out as a Linux .vst3 bundle named
// Fixture.vst3 under a temporary directory. It returns the bundle path.
func Bundle(t testing.TB, archDir string) string {
	t.Helper()
	lib := Build(t)

	bundle := filepath.Join(t.TempDir(), "Fixture.vst3")
	dir := filepath.Join(bundle, "Contents", archDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(lib, filepath.Join(dir, "Fixture.so")); err != nil {
		t.Fatal(err)
	}
	return bundle
}
