// Package host implements the one object a plugin may call back into while
// it is being inspected: an IHostApplication with a fixed name that refuses
// every createInstance request.
//
// The dispatch table is a single immutable C table shared by every instance;
// each instance is a heap block holding the table pointer and an atomic
// reference count. The block is freed by the release that brings the count
// to zero, from whichever thread the plugin makes that call on.
package host

// #cgo CFLAGS: -I${SRCDIR}/../../include
// #include <stdlib.h>
// #include "application.h"
//
// static inline Steinberg_tresult app_query_interface(struct Steinberg_Vst_IHostApplication* app, const char* iid, void** obj) {
//     return app->lpVtbl->queryInterface(app, iid, obj);
// }
//
// static inline Steinberg_uint32 app_add_ref(struct Steinberg_Vst_IHostApplication* app) {
//     return app->lpVtbl->addRef(app);
// }
//
// static inline Steinberg_uint32 app_release(struct Steinberg_Vst_IHostApplication* app) {
//     return app->lpVtbl->release(app);
// }
//
// static inline Steinberg_tresult app_get_name(struct Steinberg_Vst_IHostApplication* app, Steinberg_char16* name) {
//     return app->lpVtbl->getName(app, name);
// }
//
// static inline Steinberg_tresult app_create_instance(struct Steinberg_Vst_IHostApplication* app, char* cid, char* iid, void** obj) {
//     return app->lpVtbl->createInstance(app, cid, iid, obj);
// }
import "C"
import (
	"unsafe"

	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Name is written into the buffer passed to getName.
const Name = "vst3info"

// Application is a view of one host application object. It calls through the
// object's own dispatch table, exactly as a plugin would.
type Application struct {
	ptr *C.struct_Steinberg_Vst_IHostApplication
}

// New allocates a host application holding one reference, owned by the
// caller.
func New() (*Application, error) {
	ptr := C.host_application_new()
	if ptr == nil {
		return nil, vst3.NewHostUnavailableError()
	}
	return &Application{ptr: ptr}, nil
}

// Pointer returns the identity pointer handed to IPluginBase::initialize.
func (a *Application) Pointer() unsafe.Pointer {
	if a == nil {
		return nil
	}
	return unsafe.Pointer(a.ptr)
}

// QueryInterface answers FUnknown and IHostApplication with the same object.
func (a *Application) QueryInterface(iid vst3.TUID) (vst3.FUnknown, vst3.Result) {
	var out unsafe.Pointer
	res := vst3.Result(C.app_query_interface(a.ptr, (*C.char)(unsafe.Pointer(&iid[0])), &out))
	if !res.OK() || out == nil {
		return nil, res
	}
	return &Application{ptr: (*C.struct_Steinberg_Vst_IHostApplication)(out)}, res
}

func (a *Application) AddRef() uint32 {
	return uint32(C.app_add_ref(a.ptr))
}

func (a *Application) Release() uint32 {
	return uint32(C.app_release(a.ptr))
}

// HostName calls getName into a String128 buffer.
func (a *Application) HostName() (string, vst3.Result) {
	var buf [vst3.String128Len]uint16
	res := vst3.Result(C.app_get_name(a.ptr, (*C.Steinberg_char16)(unsafe.Pointer(&buf[0]))))
	return vst3.String16(buf[:]), res
}

// CreateInstance always fails with kNoInterface and a nil object.
func (a *Application) CreateInstance(cid, iid vst3.TUID) (unsafe.Pointer, vst3.Result) {
	var out unsafe.Pointer
	res := C.app_create_instance(a.ptr,
		(*C.char)(unsafe.Pointer(&cid[0])),
		(*C.char)(unsafe.Pointer(&iid[0])),
		&out)
	return out, vst3.Result(res)
}

// RefCount reads the current count. Only call it while holding a reference.
func (a *Application) RefCount() uint32 {
	return uint32(C.host_application_ref_count(a.ptr))
}

// copyName runs the C routine getName uses on an arbitrary name and returns
// the whole String128 buffer.
func copyName(name string) ([vst3.String128Len]uint16, int) {
	var buf [vst3.String128Len]uint16
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	n := C.host_copy_name((*C.Steinberg_char16)(unsafe.Pointer(&buf[0])), cname)
	return buf, int(n)
}

// Live returns the number of host applications not yet freed.
func Live() int64 {
	return int64(C.host_application_live())
}
