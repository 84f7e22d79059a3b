// Package bundle turns a user-supplied plugin path into the path of the
// loadable binary inside a .vst3 bundle.
package bundle

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Extension is the suffix of a VST3 bundle directory.
const Extension = ".vst3"

// Resolve returns path unchanged when it names a regular file. Otherwise path
// must be a .vst3 bundle directory, and the binary for the running platform
// is located inside it.
func Resolve(path string) (string, error) {
	return resolve(path, runtime.GOOS, runtime.GOARCH)
}

func resolve(path, goos, goarch string) (string, error) {
	info, err := os.Stat(path)
	if err == nil && info.Mode().IsRegular() {
		return path, nil
	}
	if !strings.HasSuffix(strings.TrimRight(path, `/\`), Extension) {
		return "", vst3.NewBundleInvalidError(path, "Path is neither a file nor a .vst3 bundle")
	}
	if err != nil {
		return "", vst3.NewBundleInvalidError(path, "Bundle does not exist")
	}

	contents := filepath.Join(path, "Contents")
	switch goos {
	case "darwin":
		return findMacBinary(path, filepath.Join(contents, "MacOS"))
	case "windows":
		return findBySuffix(path, filepath.Join(contents, archDir(goarch, "win")), Extension)
	case "linux":
		return findBySuffix(path, filepath.Join(contents, archDir(goarch, "linux")), ".so")
	default:
		return "", vst3.NewBundleInvalidError(path, "Bundles are not supported on "+goos)
	}
}

// archDir names the per-architecture folder of the bundle layout.
func archDir(goarch, platform string) string {
	switch goarch {
	case "amd64":
		return "x86_64-" + platform
	case "386":
		return "x86-" + platform
	case "arm64":
		if platform == "win" {
			return "arm64-win"
		}
		return "aarch64-" + platform
	default:
		return goarch + "-" + platform
	}
}

func findBySuffix(bundle, dir, suffix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", vst3.NewBundleInvalidError(bundle, "Missing "+filepath.Base(dir)+" folder")
	}
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), suffix) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", vst3.NewBundleInvalidError(bundle, "No "+suffix+" binary in "+filepath.Base(dir))
}

func findMacBinary(bundle, dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", vst3.NewBundleInvalidError(bundle, "Missing MacOS folder")
	}
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasSuffix(name, ".plist") || strings.HasSuffix(name, ".txt") {
			continue
		}
		return filepath.Join(dir, name), nil
	}
	return "", vst3.NewBundleInvalidError(bundle, "No binary in MacOS folder")
}

// Find walks root and returns every .vst3 bundle directory below it, plus
// any loose .vst3 files, in lexical order. Bundles are not descended into.
func Find(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasSuffix(d.Name(), Extension) {
			found = append(found, path)
			if d.IsDir() {
				return filepath.SkipDir
			}
		}
		return nil
	})
	return found, err
}
