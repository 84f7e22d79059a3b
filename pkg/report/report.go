// Package report defines the record an inspection produces and how it is
// written out: the parameter filter, JSON and YAML encoding, and the JSON
// Schema other tools validate it against.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Controller kinds
const (
	ControllerSingle   = "single"
	ControllerSeparate = "separate"
)

// Report is the result of inspecting one plugin binary.
type Report struct {
	Name               string      `json:"name" yaml:"name" jsonschema:"description=Name of the audio processing class"`
	Vendor             string      `json:"vendor" yaml:"vendor"`
	Version            string      `json:"version" yaml:"version"`
	URL                string      `json:"url" yaml:"url"`
	Email              string      `json:"email" yaml:"email"`
	FactoryFlags       int32       `json:"factoryFlags" yaml:"factoryFlags"`
	OS                 string      `json:"os" yaml:"os"`
	Classes            []Class     `json:"classes" yaml:"classes"`
	CountInputs        int32       `json:"countInputs" yaml:"countInputs" jsonschema:"minimum=0"`
	CountOutputs       int32       `json:"countOutputs" yaml:"countOutputs" jsonschema:"minimum=0"`
	AudioInputs        []Bus       `json:"audioInputs" yaml:"audioInputs"`
	AudioOutputs       []Bus       `json:"audioOutputs" yaml:"audioOutputs"`
	EventInputs        []Bus       `json:"eventInputs" yaml:"eventInputs"`
	EventOutputs       []Bus       `json:"eventOutputs" yaml:"eventOutputs"`
	SupportsProcessing bool        `json:"supportsProcessing" yaml:"supportsProcessing"`
	ControllerKind     string      `json:"controllerKind" yaml:"controllerKind" jsonschema:"enum=single,enum=separate"`
	CountParameters    int32       `json:"countParameters" yaml:"countParameters" jsonschema:"minimum=0"`
	Parameters         []Parameter `json:"parameters" yaml:"parameters"`
	Degradations       []string    `json:"degradations,omitempty" yaml:"degradations,omitempty"`
}

// Class is one factory class as enumerated.
type Class struct {
	CID           string `json:"cid" yaml:"cid" jsonschema:"pattern=^[0-9A-F]{32}$"`
	Name          string `json:"name" yaml:"name"`
	Category      string `json:"category" yaml:"category"`
	Cardinality   int32  `json:"cardinality" yaml:"cardinality"`
	ClassFlags    uint32 `json:"classFlags,omitempty" yaml:"classFlags,omitempty"`
	SubCategories string `json:"subCategories,omitempty" yaml:"subCategories,omitempty"`
	Vendor        string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Version       string `json:"version,omitempty" yaml:"version,omitempty"`
	SDKVersion    string `json:"sdkVersion,omitempty" yaml:"sdkVersion,omitempty"`
}

// Bus is one audio or event bus.
type Bus struct {
	Name         string `json:"name" yaml:"name"`
	ChannelCount int32  `json:"channelCount" yaml:"channelCount"`
	BusType      string `json:"busType" yaml:"busType" jsonschema:"enum=main,enum=aux,enum=unknown"`
	Flags        uint32 `json:"flags" yaml:"flags"`
}

// Parameter is one parameter that survived Filter. Index is the position
// the controller reported it at, so indices of unreadable or filtered
// parameters leave gaps.
type Parameter struct {
	ID           uint32  `json:"id" yaml:"id"`
	Index        int32   `json:"index" yaml:"index" jsonschema:"minimum=0"`
	Title        string  `json:"title" yaml:"title" jsonschema:"minLength=1"`
	ShortTitle   string  `json:"shortTitle" yaml:"shortTitle"`
	Units        string  `json:"units" yaml:"units"`
	StepCount    int32   `json:"stepCount" yaml:"stepCount"`
	DefaultValue float64 `json:"defaultValue" yaml:"defaultValue"`
	UnitID       int32   `json:"unitId" yaml:"unitId"`
	Flags        int32   `json:"flags" yaml:"flags"`
	Value        float64 `json:"value" yaml:"value"`
	Display      string  `json:"display,omitempty" yaml:"display,omitempty"`
}

// excludedTitleParts are matched against lower-cased titles.
var excludedTitleParts = []string{"midi", "cc "}

// Keep reports whether a parameter with the given title belongs in a report.
func Keep(title string) bool {
	if title == "" {
		return false
	}
	lower := strings.ToLower(title)
	for _, part := range excludedTitleParts {
		if strings.Contains(lower, part) {
			return false
		}
	}
	return true
}

// Filter returns the parameters Keep accepts, in order. The result is never
// nil.
func Filter(params []Parameter) []Parameter {
	kept := make([]Parameter, 0, len(params))
	for _, p := range params {
		if Keep(p.Title) {
			kept = append(kept, p)
		}
	}
	return kept
}

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes r to w in the given format.
func Encode(w io.Writer, r *Report, format string, pretty bool) error {
	return EncodeValue(w, r, format, pretty)
}

// EncodeValue writes any value carrying json and yaml tags, such as a list
// of reports, the same way Encode writes one report.
func EncodeValue(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
