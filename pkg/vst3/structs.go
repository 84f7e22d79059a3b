package vst3

// FactoryInfo is the vendor block returned by IPluginFactory::getFactoryInfo.
type FactoryInfo struct {
	Vendor string
	URL    string
	Email  string
	Flags  int32
}

// ClassInfo describes one instantiable class of a factory. The fields after
// Name are only filled when the factory implements IPluginFactory2.
type ClassInfo struct {
	CID           TUID
	Cardinality   int32
	Category      string
	Name          string
	ClassFlags    uint32
	SubCategories string
	Vendor        string
	Version       string
	SDKVersion    string
}

// BusInfo describes an audio or event bus
type BusInfo struct {
	MediaType    MediaType
	Direction    BusDirection
	ChannelCount int32
	Name         string
	BusType      BusType
	Flags        uint32
}

// ParameterInfo describes a parameter
type ParameterInfo struct {
	ID           ParamID
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64
	UnitID       int32
	Flags        int32
}
