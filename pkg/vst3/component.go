package vst3

// FUnknown is the base of every foreign interface. QueryInterface returns an
// object that already carries one reference for the caller; AddRef and
// Release return the new count.
type FUnknown interface {
	QueryInterface(iid TUID) (FUnknown, Result)
	AddRef() uint32
	Release() uint32
}

// IPluginFactory is the root object exported by a module.
type IPluginFactory interface {
	FUnknown

	FactoryInfo() (FactoryInfo, Result)
	CountClasses() int32
	ClassInfo(index int32) (ClassInfo, Result)
	CreateInstance(cid, iid TUID) (FUnknown, Result)
}

// IPluginFactory2 adds the extended class description.
type IPluginFactory2 interface {
	IPluginFactory

	ClassInfo2(index int32) (ClassInfo, Result)
}

// IPluginBase is shared by components and controllers.
type IPluginBase interface {
	FUnknown

	Initialize(context FUnknown) Result
	Terminate() Result
}

// IComponent represents the main plugin component interface
type IComponent interface {
	IPluginBase

	ControllerClassID() (TUID, Result)
	BusCount(mediaType MediaType, direction BusDirection) int32
	BusInfo(mediaType MediaType, direction BusDirection, index int32) (BusInfo, Result)
	SetActive(state bool) Result
}

// IAudioProcessor is only probed for, never called.
type IAudioProcessor interface {
	FUnknown
}

// IEditController represents the parameter control interface
type IEditController interface {
	IPluginBase

	ParameterCount() int32
	ParameterInfo(index int32) (ParameterInfo, Result)
	ParamStringByValue(id ParamID, valueNormalized float64) (string, Result)
	ParamNormalized(id ParamID) float64
}

// IConnectionPoint lets a component and a separate controller talk directly.
type IConnectionPoint interface {
	FUnknown

	Connect(other IConnectionPoint) Result
	Disconnect(other IConnectionPoint) Result
}
