// Package native binds the interfaces of package vst3 to raw pointers handed
// out by a loaded plugin module. The types here are views: they never add or
// drop references on their own; ownership is tracked with com.Ptr.
package native

// #cgo CFLAGS: -I${SRCDIR}/../../include
// #include "vst3/vst3_c_api.h"
//
// static inline Steinberg_tresult unknown_query_interface(void* obj, const char* iid, void** out) {
//     return ((struct Steinberg_FUnknown*)obj)->lpVtbl->queryInterface(obj, iid, out);
// }
//
// static inline Steinberg_uint32 unknown_add_ref(void* obj) {
//     return ((struct Steinberg_FUnknown*)obj)->lpVtbl->addRef(obj);
// }
//
// static inline Steinberg_uint32 unknown_release(void* obj) {
//     return ((struct Steinberg_FUnknown*)obj)->lpVtbl->release(obj);
// }
import "C"
import (
	"unsafe"

	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Pointer is implemented by every object that has a foreign identity, native
// views and the host application alike.
type Pointer interface {
	Pointer() unsafe.Pointer
}

// Wrap returns the view matching iid for a raw interface pointer obtained
// with that iid. Unknown ids get a bare FUnknown view.
func Wrap(iid vst3.TUID, ptr unsafe.Pointer) vst3.FUnknown {
	if ptr == nil {
		return nil
	}
	o := object{ptr: ptr}
	switch iid {
	case vst3.IIDIPluginFactory:
		return &Factory{o}
	case vst3.IIDIPluginFactory2:
		return &Factory2{Factory{o}}
	case vst3.IIDIComponent:
		return &Component{o}
	case vst3.IIDIEditController:
		return &Controller{o}
	case vst3.IIDIConnectionPoint:
		return &ConnectionPoint{o}
	case vst3.IIDIAudioProcessor:
		return &AudioProcessor{o}
	default:
		return &o
	}
}

// object is the FUnknown part every view shares.
type object struct {
	ptr unsafe.Pointer
}

func (o *object) Pointer() unsafe.Pointer {
	return o.ptr
}

func (o *object) QueryInterface(iid vst3.TUID) (vst3.FUnknown, vst3.Result) {
	var out unsafe.Pointer
	res := vst3.Result(C.unknown_query_interface(o.ptr, (*C.char)(unsafe.Pointer(&iid[0])), &out))
	if !res.OK() {
		return nil, res
	}
	if out == nil {
		return nil, vst3.ResultNoInterface
	}
	return Wrap(iid, out), res
}

func (o *object) AddRef() uint32 {
	return uint32(C.unknown_add_ref(o.ptr))
}

func (o *object) Release() uint32 {
	return uint32(C.unknown_release(o.ptr))
}

// rawPointer extracts the foreign identity of u, or nil when u has none.
func rawPointer(u vst3.FUnknown) unsafe.Pointer {
	if p, ok := u.(Pointer); ok {
		return p.Pointer()
	}
	return nil
}

func tuidArg(t *vst3.TUID) *C.char {
	return (*C.char)(unsafe.Pointer(&t[0]))
}

func string8(p unsafe.Pointer, n int) string {
	return vst3.String8(unsafe.Slice((*byte)(p), n))
}

func string16(p *C.Steinberg_char16) string {
	return vst3.String16(unsafe.Slice((*uint16)(unsafe.Pointer(p)), vst3.String128Len))
}

func tbool(v bool) C.Steinberg_TBool {
	if v {
		return 1
	}
	return 0
}

var (
	_ vst3.IPluginFactory   = (*Factory)(nil)
	_ vst3.IPluginFactory2  = (*Factory2)(nil)
	_ vst3.IComponent       = (*Component)(nil)
	_ vst3.IEditController  = (*Controller)(nil)
	_ vst3.IConnectionPoint = (*ConnectionPoint)(nil)
	_ vst3.IAudioProcessor  = (*AudioProcessor)(nil)
)
