package inspect

import (
	"fmt"

	"github.com/justyntemme/vst3info/pkg/vst3"
)

// calls records foreign calls across all fakes of one test, in order.
type calls struct {
	list []string
}

func (c *calls) add(format string, args ...any) {
	c.list = append(c.list, fmt.Sprintf(format, args...))
}

func (c *calls) count(call string) int {
	n := 0
	for _, s := range c.list {
		if s == call {
			n++
		}
	}
	return n
}

func (c *calls) index(call string) int {
	for i, s := range c.list {
		if s == call {
			return i
		}
	}
	return -1
}

type busEntry struct {
	info vst3.BusInfo
	fail bool
}

type paramEntry struct {
	info    vst3.ParameterInfo
	value   float64
	display string
	fail    bool
}

// fakePlugin stands in for a component, a controller, or one object that is
// both. QueryInterface only answers the ids in supports.
type fakePlugin struct {
	name     string
	log      *calls
	refs     int
	supports map[vst3.TUID]bool

	initResult       vst3.Result
	terminateResult  vst3.Result
	activateResult   vst3.Result
	connectResult    vst3.Result
	disconnectResult vst3.Result

	controllerCID       vst3.TUID
	controllerCIDResult vst3.Result

	buses      map[busQuery][]busEntry
	busCounts  map[busQuery]int32
	params     []paramEntry
	paramCount *int32

	initContext vst3.FUnknown
	hostName    string
}

func newFakePlugin(name string, log *calls, iids ...vst3.TUID) *fakePlugin {
	p := &fakePlugin{
		name:     name,
		log:      log,
		supports: map[vst3.TUID]bool{vst3.IIDFUnknown: true},
		buses:    map[busQuery][]busEntry{},
	}
	for _, iid := range iids {
		p.supports[iid] = true
	}
	return p
}

func (p *fakePlugin) QueryInterface(iid vst3.TUID) (vst3.FUnknown, vst3.Result) {
	if !p.supports[iid] {
		return nil, vst3.ResultNoInterface
	}
	p.refs++
	return p, vst3.ResultOK
}

func (p *fakePlugin) AddRef() uint32 {
	p.refs++
	return uint32(p.refs)
}

func (p *fakePlugin) Release() uint32 {
	p.refs--
	if p.refs < 0 {
		panic(p.name + " released below zero")
	}
	return uint32(p.refs)
}

func (p *fakePlugin) Initialize(context vst3.FUnknown) vst3.Result {
	p.log.add("%s.initialize", p.name)
	p.initContext = context
	if context != nil {
		if app, res := context.QueryInterface(vst3.IIDIHostApplication); res.OK() {
			if named, ok := app.(interface{ HostName() (string, vst3.Result) }); ok {
				p.hostName, _ = named.HostName()
			}
			app.Release()
		}
	}
	return p.initResult
}

func (p *fakePlugin) Terminate() vst3.Result {
	p.log.add("%s.terminate", p.name)
	return p.terminateResult
}

func (p *fakePlugin) ControllerClassID() (vst3.TUID, vst3.Result) {
	p.log.add("%s.getControllerClassId", p.name)
	return p.controllerCID, p.controllerCIDResult
}

func (p *fakePlugin) BusCount(media vst3.MediaType, dir vst3.BusDirection) int32 {
	q := busQuery{media, dir}
	if n, ok := p.busCounts[q]; ok {
		return n
	}
	return int32(len(p.buses[q]))
}

func (p *fakePlugin) BusInfo(media vst3.MediaType, dir vst3.BusDirection, index int32) (vst3.BusInfo, vst3.Result) {
	list := p.buses[busQuery{media, dir}]
	if index < 0 || int(index) >= len(list) || list[index].fail {
		return vst3.BusInfo{}, vst3.ResultInvalidArgument
	}
	return list[index].info, vst3.ResultOK
}

func (p *fakePlugin) SetActive(state bool) vst3.Result {
	p.log.add("%s.setActive(%t)", p.name, state)
	if state {
		return p.activateResult
	}
	return vst3.ResultOK
}

func (p *fakePlugin) ParameterCount() int32 {
	if p.paramCount != nil {
		return *p.paramCount
	}
	return int32(len(p.params))
}

func (p *fakePlugin) ParameterInfo(index int32) (vst3.ParameterInfo, vst3.Result) {
	if index < 0 || int(index) >= len(p.params) || p.params[index].fail {
		return vst3.ParameterInfo{}, vst3.ResultFalse
	}
	return p.params[index].info, vst3.ResultOK
}

func (p *fakePlugin) param(id vst3.ParamID) *paramEntry {
	for i := range p.params {
		if p.params[i].info.ID == id {
			return &p.params[i]
		}
	}
	return nil
}

func (p *fakePlugin) ParamStringByValue(id vst3.ParamID, _ float64) (string, vst3.Result) {
	e := p.param(id)
	if e == nil || e.display == "" {
		return "", vst3.ResultFalse
	}
	return e.display, vst3.ResultOK
}

func (p *fakePlugin) ParamNormalized(id vst3.ParamID) float64 {
	if e := p.param(id); e != nil {
		return e.value
	}
	return 0
}

func (p *fakePlugin) Connect(other vst3.IConnectionPoint) vst3.Result {
	p.log.add("%s.connect(%s)", p.name, other.(*fakePlugin).name)
	return p.connectResult
}

func (p *fakePlugin) Disconnect(other vst3.IConnectionPoint) vst3.Result {
	p.log.add("%s.disconnect(%s)", p.name, other.(*fakePlugin).name)
	return p.disconnectResult
}

// fakeFactory creates the fake plugins registered in instances.
type fakeFactory struct {
	log  *calls
	refs int

	info       vst3.FactoryInfo
	infoResult vst3.Result

	classes   []vst3.ClassInfo
	classFail map[int32]bool

	factory2   bool
	class2Fail map[int32]bool

	instances map[vst3.TUID]*fakePlugin
}

func newFakeFactory(log *calls) *fakeFactory {
	return &fakeFactory{
		log:        log,
		refs:       1,
		info:       vst3.FactoryInfo{Vendor: "Fake Audio", URL: "https://fake.example", Email: "dev@fake.example"},
		classFail:  map[int32]bool{},
		class2Fail: map[int32]bool{},
		instances:  map[vst3.TUID]*fakePlugin{},
	}
}

func (f *fakeFactory) QueryInterface(iid vst3.TUID) (vst3.FUnknown, vst3.Result) {
	switch {
	case iid == vst3.IIDFUnknown, iid == vst3.IIDIPluginFactory, iid == vst3.IIDIPluginFactory2 && f.factory2:
		f.refs++
		return f, vst3.ResultOK
	default:
		return nil, vst3.ResultNoInterface
	}
}

func (f *fakeFactory) AddRef() uint32 {
	f.refs++
	return uint32(f.refs)
}

func (f *fakeFactory) Release() uint32 {
	f.refs--
	if f.refs < 0 {
		panic("factory released below zero")
	}
	return uint32(f.refs)
}

func (f *fakeFactory) FactoryInfo() (vst3.FactoryInfo, vst3.Result) {
	if !f.infoResult.OK() {
		return vst3.FactoryInfo{}, f.infoResult
	}
	return f.info, vst3.ResultOK
}

func (f *fakeFactory) CountClasses() int32 {
	return int32(len(f.classes))
}

func (f *fakeFactory) ClassInfo(index int32) (vst3.ClassInfo, vst3.Result) {
	if index < 0 || int(index) >= len(f.classes) || f.classFail[index] {
		return vst3.ClassInfo{}, vst3.ResultFalse
	}
	c := f.classes[index]
	return vst3.ClassInfo{CID: c.CID, Cardinality: c.Cardinality, Category: c.Category, Name: c.Name}, vst3.ResultOK
}

func (f *fakeFactory) ClassInfo2(index int32) (vst3.ClassInfo, vst3.Result) {
	if index < 0 || int(index) >= len(f.classes) || f.class2Fail[index] {
		return vst3.ClassInfo{}, vst3.ResultFalse
	}
	return f.classes[index], vst3.ResultOK
}

func (f *fakeFactory) CreateInstance(cid, iid vst3.TUID) (vst3.FUnknown, vst3.Result) {
	p, ok := f.instances[cid]
	if !ok {
		return nil, vst3.ResultFalse
	}
	f.log.add("factory.createInstance(%s)", p.name)
	return p.QueryInterface(iid)
}

var (
	audioCID      = vst3.UID(0x11111111, 0x22222222, 0x33333333, 0x44444444)
	controllerCID = vst3.UID(0x55555555, 0x66666666, 0x77777777, 0x88888888)
)

// separateFixture is a plugin with a component and a separate controller,
// both exposing connection points, two stereo buses and three parameters.
type separateFixture struct {
	log        *calls
	factory    *fakeFactory
	component  *fakePlugin
	controller *fakePlugin
}

func newSeparateFixture() *separateFixture {
	log := &calls{}
	component := newFakePlugin("component", log,
		vst3.IIDIComponent, vst3.IIDIPluginBase, vst3.IIDIConnectionPoint, vst3.IIDIAudioProcessor)
	component.controllerCID = controllerCID
	component.buses[busQuery{vst3.MediaTypeAudio, vst3.BusDirectionInput}] = []busEntry{
		{info: vst3.BusInfo{MediaType: vst3.MediaTypeAudio, Direction: vst3.BusDirectionInput, ChannelCount: 2, Name: "Stereo In", Flags: vst3.BusDefaultActive}},
	}
	component.buses[busQuery{vst3.MediaTypeAudio, vst3.BusDirectionOutput}] = []busEntry{
		{info: vst3.BusInfo{MediaType: vst3.MediaTypeAudio, Direction: vst3.BusDirectionOutput, ChannelCount: 2, Name: "Stereo Out", Flags: vst3.BusDefaultActive}},
	}

	controller := newFakePlugin("controller", log,
		vst3.IIDIEditController, vst3.IIDIPluginBase, vst3.IIDIConnectionPoint)
	controller.params = []paramEntry{
		{info: vst3.ParameterInfo{ID: 100, Title: "Gain", Units: "dB", DefaultValue: 0.5, Flags: vst3.ParameterCanAutomate}, value: 0.75, display: "+3.0"},
		{info: vst3.ParameterInfo{ID: 101, Title: "MIDI CC 7"}, value: 0.1},
		{info: vst3.ParameterInfo{ID: 102, Title: "Bypass", StepCount: 1, Flags: vst3.ParameterIsBypass}},
	}

	factory := newFakeFactory(log)
	factory.classes = []vst3.ClassInfo{
		{CID: controllerCID, Category: vst3.CategoryComponentController, Name: "Gain Controller"},
		{CID: audioCID, Category: vst3.CategoryAudioEffect, Name: "Gain", Cardinality: vst3.ManyInstances, Version: "1.2.3", SubCategories: "Fx"},
	}
	factory.instances[audioCID] = component
	factory.instances[controllerCID] = controller

	return &separateFixture{log: log, factory: factory, component: component, controller: controller}
}

// singleFixture is a plugin whose component is also its controller.
func newSingleFixture() (*fakeFactory, *fakePlugin, *calls) {
	log := &calls{}
	obj := newFakePlugin("plugin", log,
		vst3.IIDIComponent, vst3.IIDIPluginBase, vst3.IIDIEditController, vst3.IIDIConnectionPoint)
	obj.params = []paramEntry{
		{info: vst3.ParameterInfo{ID: 1, Title: "Mix"}, value: 1},
	}

	factory := newFakeFactory(log)
	factory.classes = []vst3.ClassInfo{
		{CID: audioCID, Category: vst3.CategoryAudioEffect, Name: "Mixer"},
	}
	factory.instances[audioCID] = obj
	return factory, obj, log
}
