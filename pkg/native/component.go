package native

// #cgo CFLAGS: -I${SRCDIR}/../../include
// #include "vst3/vst3_c_api.h"
//
// static inline Steinberg_tresult component_initialize(void* c, void* context) {
//     return ((struct Steinberg_Vst_IComponent*)c)->lpVtbl->initialize(c, (struct Steinberg_FUnknown*)context);
// }
//
// static inline Steinberg_tresult component_terminate(void* c) {
//     return ((struct Steinberg_Vst_IComponent*)c)->lpVtbl->terminate(c);
// }
//
// static inline Steinberg_tresult component_get_controller_class_id(void* c, char* cid) {
//     return ((struct Steinberg_Vst_IComponent*)c)->lpVtbl->getControllerClassId(c, cid);
// }
//
// static inline Steinberg_int32 component_get_bus_count(void* c, Steinberg_int32 type, Steinberg_int32 dir) {
//     return ((struct Steinberg_Vst_IComponent*)c)->lpVtbl->getBusCount(c, type, dir);
// }
//
// static inline Steinberg_tresult component_get_bus_info(void* c, Steinberg_int32 type, Steinberg_int32 dir, Steinberg_int32 index, struct Steinberg_Vst_BusInfo* bus) {
//     return ((struct Steinberg_Vst_IComponent*)c)->lpVtbl->getBusInfo(c, type, dir, index, bus);
// }
//
// static inline Steinberg_tresult component_set_active(void* c, Steinberg_TBool state) {
//     return ((struct Steinberg_Vst_IComponent*)c)->lpVtbl->setActive(c, state);
// }
import "C"
import "github.com/justyntemme/vst3info/pkg/vst3"

// Component is a view of IComponent.
type Component struct {
	object
}

// Initialize passes the identity of context, or NULL when context is nil or
// has no foreign identity.
func (c *Component) Initialize(context vst3.FUnknown) vst3.Result {
	return vst3.Result(C.component_initialize(c.ptr, rawPointer(context)))
}

func (c *Component) Terminate() vst3.Result {
	return vst3.Result(C.component_terminate(c.ptr))
}

func (c *Component) ControllerClassID() (vst3.TUID, vst3.Result) {
	var cid vst3.TUID
	res := vst3.Result(C.component_get_controller_class_id(c.ptr, tuidArg(&cid)))
	return cid, res
}

func (c *Component) BusCount(mediaType vst3.MediaType, direction vst3.BusDirection) int32 {
	return int32(C.component_get_bus_count(c.ptr, C.Steinberg_int32(mediaType), C.Steinberg_int32(direction)))
}

func (c *Component) BusInfo(mediaType vst3.MediaType, direction vst3.BusDirection, index int32) (vst3.BusInfo, vst3.Result) {
	var bus C.struct_Steinberg_Vst_BusInfo
	res := vst3.Result(C.component_get_bus_info(c.ptr,
		C.Steinberg_int32(mediaType), C.Steinberg_int32(direction), C.Steinberg_int32(index), &bus))
	if !res.OK() {
		return vst3.BusInfo{}, res
	}
	return vst3.BusInfo{
		MediaType:    vst3.MediaType(bus.mediaType),
		Direction:    vst3.BusDirection(bus.direction),
		ChannelCount: int32(bus.channelCount),
		Name:         string16(&bus.name[0]),
		BusType:      vst3.BusType(bus.busType),
		Flags:        uint32(bus.flags),
	}, res
}

func (c *Component) SetActive(state bool) vst3.Result {
	return vst3.Result(C.component_set_active(c.ptr, tbool(state)))
}

// AudioProcessor is a view of IAudioProcessor. Processing is never driven,
// so only the FUnknown part is bound.
type AudioProcessor struct {
	object
}
