package bundle

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/vst3info/internal/testplugin"
	"github.com/justyntemme/vst3info/pkg/module"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestResolveRegularFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plugin.so")
	touch(t, file)

	got, err := resolve(file, "linux", "amd64")
	require.NoError(t, err)
	assert.Equal(t, file, got)
}

func TestResolveBundle(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		goarch string
		files  []string
		want   string
	}{
		{
			name: "linux x86_64", goos: "linux", goarch: "amd64",
			files: []string{"Contents/x86_64-linux/Gain.so"},
			want:  "Contents/x86_64-linux/Gain.so",
		},
		{
			name: "linux aarch64", goos: "linux", goarch: "arm64",
			files: []string{"Contents/x86_64-linux/Gain.so", "Contents/aarch64-linux/Gain.so"},
			want:  "Contents/aarch64-linux/Gain.so",
		},
		{
			name: "windows x86_64", goos: "windows", goarch: "amd64",
			files: []string{"Contents/x86_64-win/Gain.vst3", "Contents/Resources/moduleinfo.json"},
			want:  "Contents/x86_64-win/Gain.vst3",
		},
		{
			name: "windows x86", goos: "windows", goarch: "386",
			files: []string{"Contents/x86-win/Gain.vst3"},
			want:  "Contents/x86-win/Gain.vst3",
		},
		{
			name: "macos skips metadata", goos: "darwin", goarch: "arm64",
			files: []string{"Contents/MacOS/.DS_Store", "Contents/MacOS/Info.plist", "Contents/MacOS/notes.txt", "Contents/MacOS/Gain"},
			want:  "Contents/MacOS/Gain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := filepath.Join(t.TempDir(), "Gain.vst3")
			for _, f := range tt.files {
				touch(t, filepath.Join(bundle, f))
			}

			got, err := resolve(bundle, tt.goos, tt.goarch)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(bundle, tt.want), got)
		})
	}
}

func TestResolveInvalid(t *testing.T) {
	dir := t.TempDir()

	notBundle := filepath.Join(dir, "folder")
	require.NoError(t, os.Mkdir(notBundle, 0o755))

	empty := filepath.Join(dir, "Empty.vst3")
	require.NoError(t, os.MkdirAll(filepath.Join(empty, "Contents", "x86_64-linux"), 0o755))

	tests := []struct {
		name string
		path string
		goos string
	}{
		{"directory without extension", notBundle, "linux"},
		{"missing bundle", filepath.Join(dir, "Missing.vst3"), "linux"},
		{"no binary", empty, "linux"},
		{"missing arch folder", empty, "windows"},
		{"unsupported os", empty, "plan9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolve(tt.path, tt.goos, "amd64")
			require.Error(t, err)
			assert.Equal(t, vst3.ErrCodeBundleInvalid, vst3.CodeOf(err))
		})
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "A.vst3", "Contents", "x86_64-linux", "A.so"))
	touch(t, filepath.Join(root, "vendor", "B.vst3", "Contents", "x86_64-linux", "B.so"))
	touch(t, filepath.Join(root, "loose", "C.vst3"))
	touch(t, filepath.Join(root, "readme.txt"))

	found, err := Find(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "A.vst3"),
		filepath.Join(root, "loose", "C.vst3"),
		filepath.Join(root, "vendor", "B.vst3"),
	}, found)
}

func TestResolveFixtureBundleLoads(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("bundle layout is built for linux")
	}
	b := testplugin.Bundle(t, archDir(runtime.GOARCH, "linux"))

	bin, err := Resolve(b)
	require.NoError(t, err)
	assert.Equal(t, "Fixture.so", filepath.Base(bin))

	m, err := module.Load(bin)
	require.NoError(t, err)
	defer m.Close()
	_, err = m.Factory()
	assert.NoError(t, err)
}
