package native

// #cgo CFLAGS: -I${SRCDIR}/../../include
// #include "vst3/vst3_c_api.h"
//
// static inline Steinberg_tresult controller_initialize(void* c, void* context) {
//     return ((struct Steinberg_Vst_IEditController*)c)->lpVtbl->initialize(c, (struct Steinberg_FUnknown*)context);
// }
//
// static inline Steinberg_tresult controller_terminate(void* c) {
//     return ((struct Steinberg_Vst_IEditController*)c)->lpVtbl->terminate(c);
// }
//
// static inline Steinberg_int32 controller_get_parameter_count(void* c) {
//     return ((struct Steinberg_Vst_IEditController*)c)->lpVtbl->getParameterCount(c);
// }
//
// static inline Steinberg_tresult controller_get_parameter_info(void* c, Steinberg_int32 index, struct Steinberg_Vst_ParameterInfo* info) {
//     return ((struct Steinberg_Vst_IEditController*)c)->lpVtbl->getParameterInfo(c, index, info);
// }
//
// static inline Steinberg_tresult controller_get_param_string_by_value(void* c, Steinberg_Vst_ParamID id, Steinberg_Vst_ParamValue value, Steinberg_char16* out) {
//     return ((struct Steinberg_Vst_IEditController*)c)->lpVtbl->getParamStringByValue(c, id, value, out);
// }
//
// static inline Steinberg_Vst_ParamValue controller_get_param_normalized(void* c, Steinberg_Vst_ParamID id) {
//     return ((struct Steinberg_Vst_IEditController*)c)->lpVtbl->getParamNormalized(c, id);
// }
//
// static inline Steinberg_tresult connection_connect(void* c, void* other) {
//     return ((struct Steinberg_Vst_IConnectionPoint*)c)->lpVtbl->connect(c, (struct Steinberg_Vst_IConnectionPoint*)other);
// }
//
// static inline Steinberg_tresult connection_disconnect(void* c, void* other) {
//     return ((struct Steinberg_Vst_IConnectionPoint*)c)->lpVtbl->disconnect(c, (struct Steinberg_Vst_IConnectionPoint*)other);
// }
import "C"
import (
	"unsafe"

	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Controller is a view of IEditController.
type Controller struct {
	object
}

func (c *Controller) Initialize(context vst3.FUnknown) vst3.Result {
	return vst3.Result(C.controller_initialize(c.ptr, rawPointer(context)))
}

func (c *Controller) Terminate() vst3.Result {
	return vst3.Result(C.controller_terminate(c.ptr))
}

func (c *Controller) ParameterCount() int32 {
	return int32(C.controller_get_parameter_count(c.ptr))
}

func (c *Controller) ParameterInfo(index int32) (vst3.ParameterInfo, vst3.Result) {
	var info C.struct_Steinberg_Vst_ParameterInfo
	res := vst3.Result(C.controller_get_parameter_info(c.ptr, C.Steinberg_int32(index), &info))
	if !res.OK() {
		return vst3.ParameterInfo{}, res
	}
	return vst3.ParameterInfo{
		ID:           vst3.ParamID(info.id),
		Title:        string16(&info.title[0]),
		ShortTitle:   string16(&info.shortTitle[0]),
		Units:        string16(&info.units[0]),
		StepCount:    int32(info.stepCount),
		DefaultValue: float64(info.defaultNormalizedValue),
		UnitID:       int32(info.unitId),
		Flags:        int32(info.flags),
	}, res
}

func (c *Controller) ParamStringByValue(id vst3.ParamID, valueNormalized float64) (string, vst3.Result) {
	var buf [vst3.String128Len]uint16
	res := vst3.Result(C.controller_get_param_string_by_value(c.ptr,
		C.Steinberg_Vst_ParamID(id), C.Steinberg_Vst_ParamValue(valueNormalized),
		(*C.Steinberg_char16)(unsafe.Pointer(&buf[0]))))
	if !res.OK() {
		return "", res
	}
	return vst3.String16(buf[:]), res
}

func (c *Controller) ParamNormalized(id vst3.ParamID) float64 {
	return float64(C.controller_get_param_normalized(c.ptr, C.Steinberg_Vst_ParamID(id)))
}

// ConnectionPoint is a view of IConnectionPoint.
type ConnectionPoint struct {
	object
}

// Connect hands the peer's raw identity to the plugin. A peer without one is
// rejected with kInvalidArgument without calling out.
func (c *ConnectionPoint) Connect(other vst3.IConnectionPoint) vst3.Result {
	ptr := rawPointer(other)
	if ptr == nil {
		return vst3.ResultInvalidArgument
	}
	return vst3.Result(C.connection_connect(c.ptr, ptr))
}

func (c *ConnectionPoint) Disconnect(other vst3.IConnectionPoint) vst3.Result {
	ptr := rawPointer(other)
	if ptr == nil {
		return vst3.ResultInvalidArgument
	}
	return vst3.Result(C.connection_disconnect(c.ptr, ptr))
}
