// Package vst3 models the host-facing side of the VST3 ABI in plain Go:
// identifiers, result codes, the structs plugins fill in, and the interface
// set the inspector drives. Package native binds these to real plugins.
package vst3

// Interface IDs
var (
	IIDFUnknown         = UID(0x00000000, 0x00000000, 0xC0000000, 0x00000046)
	IIDIPluginBase      = UID(0x22888DDB, 0x156E45AE, 0x8358B348, 0x08190625)
	IIDIPluginFactory   = UID(0x7A4D811C, 0x52114A1F, 0xAED9D2EE, 0x0B43BF9F)
	IIDIPluginFactory2  = UID(0x0007B650, 0xF24B4C0B, 0xA464EDB9, 0xF00B2ABB)
	IIDIComponent       = UID(0xE831FF31, 0xF2D54301, 0x928EBBEE, 0x25697802)
	IIDIAudioProcessor  = UID(0x42043F99, 0xB7DA453C, 0xA569E79D, 0x9AAEC33D)
	IIDIEditController  = UID(0xDCD7BBE3, 0x7742448D, 0xA874AACC, 0x979C759E)
	IIDIConnectionPoint = UID(0x70A4156F, 0x6E6E4026, 0x989148BF, 0xAA60D8D1)
	IIDIHostApplication = UID(0x58E595CC, 0xDB2D4969, 0x8B6AAF8C, 0x36A664E5)
)

// Class categories
const (
	CategoryAudioEffect         = "Audio Module Class"
	CategoryComponentController = "Component Controller Class"
	CategoryPlugCompatibility   = "Plugin Compatibility Class"
)

// FactorySymbol is the C-linkage entry point every VST3 module exports.
const FactorySymbol = "GetPluginFactory"

// MediaType selects audio or event buses.
type MediaType int32

const (
	MediaTypeAudio MediaType = 0
	MediaTypeEvent MediaType = 1
)

func (m MediaType) String() string {
	switch m {
	case MediaTypeAudio:
		return "audio"
	case MediaTypeEvent:
		return "event"
	default:
		return "unknown"
	}
}

// BusDirection selects input or output buses.
type BusDirection int32

const (
	BusDirectionInput  BusDirection = 0
	BusDirectionOutput BusDirection = 1
)

func (d BusDirection) String() string {
	switch d {
	case BusDirectionInput:
		return "input"
	case BusDirectionOutput:
		return "output"
	default:
		return "unknown"
	}
}

// BusType distinguishes main from auxiliary (sidechain) buses.
type BusType int32

const (
	BusTypeMain BusType = 0
	BusTypeAux  BusType = 1
)

func (t BusType) String() string {
	switch t {
	case BusTypeMain:
		return "main"
	case BusTypeAux:
		return "aux"
	default:
		return "unknown"
	}
}

// Bus flags
const (
	BusDefaultActive    uint32 = 1 << 0
	BusIsControlVoltage uint32 = 1 << 1
)

// ParamID is the stable numeric id of a parameter.
type ParamID = uint32

// Constants for parameter flags
const (
	ParameterCanAutomate     int32 = 1 << 0
	ParameterIsReadOnly      int32 = 1 << 1
	ParameterIsWrapAround    int32 = 1 << 2
	ParameterIsList          int32 = 1 << 3
	ParameterIsHidden        int32 = 1 << 4
	ParameterIsProgramChange int32 = 1 << 15
	ParameterIsBypass        int32 = 1 << 16
)

// Class cardinality
const (
	ManyInstances int32 = 0x7FFFFFFF
)

// Factory flags
const (
	FactoryNoFlags                 int32 = 0
	FactoryClassesDiscardable      int32 = 1 << 0
	FactoryLicenseCheck            int32 = 1 << 1
	FactoryComponentNonDiscardable int32 = 1 << 3
	FactoryUnicode                 int32 = 1 << 4
)

// Buffer sizes of the fixed-length string fields in the C structs.
const (
	String128Len     = 128
	VendorLen        = 64
	URLLen           = 256
	EmailLen         = 128
	CategoryLen      = 32
	NameLen          = 64
	SubCategoriesLen = 128
	VersionLen       = 64
)
