package inspect

import (
	"strings"

	"github.com/justyntemme/vst3info/pkg/com"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

// ReadFactoryInfo returns the factory's vendor block.
func ReadFactoryInfo(f vst3.IPluginFactory) (vst3.FactoryInfo, error) {
	info, res := f.FactoryInfo()
	if !res.OK() {
		return vst3.FactoryInfo{}, vst3.NewFactoryInfoUnavailableError(res)
	}
	return info, nil
}

// EnumerateClasses lists the factory's classes in index order. Extended
// descriptions are used when the factory provides them. Indices whose query
// fails are left out; the second result counts them.
func EnumerateClasses(factory *com.Ptr[vst3.IPluginFactory]) ([]vst3.ClassInfo, int) {
	f := factory.Get()

	var f2 vst3.IPluginFactory2
	if p, ok := com.Cast[vst3.IPluginFactory2](factory, vst3.IIDIPluginFactory2); ok {
		defer p.Release()
		f2 = p.Get()
	}

	count := f.CountClasses()
	if count < 0 {
		count = 0
	}

	classes := []vst3.ClassInfo{}
	skipped := 0
	for i := int32(0); i < count; i++ {
		if f2 != nil {
			if ci, res := f2.ClassInfo2(i); res.OK() {
				classes = append(classes, ci)
				continue
			}
		}
		ci, res := f.ClassInfo(i)
		if !res.OK() {
			skipped++
			continue
		}
		classes = append(classes, ci)
	}
	return classes, skipped
}

// FindAudioClass returns the first class in the audio module category.
func FindAudioClass(classes []vst3.ClassInfo) (vst3.ClassInfo, error) {
	for _, c := range classes {
		if strings.Contains(c.Category, vst3.CategoryAudioEffect) {
			return c, nil
		}
	}
	return vst3.ClassInfo{}, vst3.NewNoAudioClassError(len(classes))
}
