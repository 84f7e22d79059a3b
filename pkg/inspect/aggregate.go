package inspect

import (
	"math"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/justyntemme/vst3info/pkg/report"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

// DefaultVersion is reported when the audio class carries no version.
const DefaultVersion = "1.0.0"

// NormalizeVersion returns v in canonical semver form when it parses, v
// itself when it does not, and DefaultVersion when it is empty.
func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultVersion
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	return sv.String()
}

// osName follows the naming other catalog tools use for the host platform.
func osName(goos string) string {
	if goos == "darwin" {
		return "macos"
	}
	return goos
}

// finite replaces NaN and infinities, which JSON cannot carry, with 0.
func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toBuses(in []vst3.BusInfo) []report.Bus {
	out := make([]report.Bus, 0, len(in))
	for _, b := range in {
		out = append(out, report.Bus{
			Name:         b.Name,
			ChannelCount: b.ChannelCount,
			BusType:      b.BusType.String(),
			Flags:        b.Flags,
		})
	}
	return out
}

func toClasses(in []vst3.ClassInfo) []report.Class {
	out := make([]report.Class, 0, len(in))
	for _, c := range in {
		out = append(out, report.Class{
			CID:           c.CID.String(),
			Name:          c.Name,
			Category:      c.Category,
			Cardinality:   c.Cardinality,
			ClassFlags:    c.ClassFlags,
			SubCategories: c.SubCategories,
			Vendor:        c.Vendor,
			Version:       c.Version,
			SDKVersion:    c.SDKVersion,
		})
	}
	return out
}

func toParameters(in []Parameter) []report.Parameter {
	out := make([]report.Parameter, 0, len(in))
	for _, p := range in {
		out = append(out, report.Parameter{
			ID:           p.Info.ID,
			Index:        p.Index,
			Title:        p.Info.Title,
			ShortTitle:   p.Info.ShortTitle,
			Units:        p.Info.Units,
			StepCount:    p.Info.StepCount,
			DefaultValue: finite(p.Info.DefaultValue),
			UnitID:       p.Info.UnitID,
			Flags:        p.Info.Flags,
			Value:        finite(p.Value),
			Display:      p.Display,
		})
	}
	return report.Filter(out)
}

// Aggregate assembles the report for one run. The class vendor, when the
// factory has an extended description, wins over the factory vendor only if
// the latter is empty.
func Aggregate(info vst3.FactoryInfo, classes []vst3.ClassInfo, audio vst3.ClassInfo, insp *Inspection) *report.Report {
	vendor := info.Vendor
	if vendor == "" {
		vendor = audio.Vendor
	}

	r := &report.Report{
		Name:               audio.Name,
		Vendor:             vendor,
		Version:            NormalizeVersion(audio.Version),
		URL:                info.URL,
		Email:              info.Email,
		FactoryFlags:       info.Flags,
		OS:                 osName(runtime.GOOS),
		Classes:            toClasses(classes),
		CountInputs:        insp.InputCount,
		CountOutputs:       insp.OutputCount,
		AudioInputs:        toBuses(insp.AudioInputs),
		AudioOutputs:       toBuses(insp.AudioOutputs),
		EventInputs:        toBuses(insp.EventInputs),
		EventOutputs:       toBuses(insp.EventOutputs),
		SupportsProcessing: insp.SupportsProcessing,
		ControllerKind:     insp.Controller.String(),
		CountParameters:    insp.ParameterCount,
		Parameters:         toParameters(insp.Parameters),
	}
	if len(insp.Degradations) > 0 {
		r.Degradations = append([]string(nil), insp.Degradations...)
	}
	return r
}
