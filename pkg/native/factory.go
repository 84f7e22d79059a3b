package native

// #cgo CFLAGS: -I${SRCDIR}/../../include
// #include "vst3/vst3_c_api.h"
//
// static inline Steinberg_tresult factory_get_factory_info(void* f, struct Steinberg_PFactoryInfo* info) {
//     return ((struct Steinberg_IPluginFactory*)f)->lpVtbl->getFactoryInfo(f, info);
// }
//
// static inline Steinberg_int32 factory_count_classes(void* f) {
//     return ((struct Steinberg_IPluginFactory*)f)->lpVtbl->countClasses(f);
// }
//
// static inline Steinberg_tresult factory_get_class_info(void* f, Steinberg_int32 index, struct Steinberg_PClassInfo* info) {
//     return ((struct Steinberg_IPluginFactory*)f)->lpVtbl->getClassInfo(f, index, info);
// }
//
// static inline Steinberg_tresult factory_create_instance(void* f, const char* cid, const char* iid, void** obj) {
//     return ((struct Steinberg_IPluginFactory*)f)->lpVtbl->createInstance(f, cid, iid, obj);
// }
//
// static inline Steinberg_tresult factory_get_class_info2(void* f, Steinberg_int32 index, struct Steinberg_PClassInfo2* info) {
//     return ((struct Steinberg_IPluginFactory*)f)->lpVtbl->getClassInfo2(f, index, info);
// }
import "C"
import (
	"unsafe"

	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Factory is a view of IPluginFactory.
type Factory struct {
	object
}

// NewFactory wraps the pointer returned by the module entry point.
func NewFactory(ptr unsafe.Pointer) *Factory {
	if ptr == nil {
		return nil
	}
	return &Factory{object{ptr: ptr}}
}

func (f *Factory) FactoryInfo() (vst3.FactoryInfo, vst3.Result) {
	var info C.struct_Steinberg_PFactoryInfo
	res := vst3.Result(C.factory_get_factory_info(f.ptr, &info))
	if !res.OK() {
		return vst3.FactoryInfo{}, res
	}
	return vst3.FactoryInfo{
		Vendor: string8(unsafe.Pointer(&info.vendor[0]), vst3.VendorLen),
		URL:    string8(unsafe.Pointer(&info.url[0]), vst3.URLLen),
		Email:  string8(unsafe.Pointer(&info.email[0]), vst3.EmailLen),
		Flags:  int32(info.flags),
	}, res
}

func (f *Factory) CountClasses() int32 {
	return int32(C.factory_count_classes(f.ptr))
}

func (f *Factory) ClassInfo(index int32) (vst3.ClassInfo, vst3.Result) {
	var info C.struct_Steinberg_PClassInfo
	res := vst3.Result(C.factory_get_class_info(f.ptr, C.Steinberg_int32(index), &info))
	if !res.OK() {
		return vst3.ClassInfo{}, res
	}
	ci := vst3.ClassInfo{
		Cardinality: int32(info.cardinality),
		Category:    string8(unsafe.Pointer(&info.category[0]), vst3.CategoryLen),
		Name:        string8(unsafe.Pointer(&info.name[0]), vst3.NameLen),
	}
	copy(ci.CID[:], unsafe.Slice((*byte)(unsafe.Pointer(&info.cid[0])), len(ci.CID)))
	return ci, res
}

// CreateInstance asks the factory for class cid exposing interface iid. The
// returned view carries the reference createInstance added.
func (f *Factory) CreateInstance(cid, iid vst3.TUID) (vst3.FUnknown, vst3.Result) {
	var out unsafe.Pointer
	res := vst3.Result(C.factory_create_instance(f.ptr, tuidArg(&cid), tuidArg(&iid), &out))
	if !res.OK() {
		return nil, res
	}
	if out == nil {
		return nil, vst3.ResultNoInterface
	}
	return Wrap(iid, out), res
}

// Factory2 is a view of IPluginFactory2. Only obtain it through
// queryInterface; the extra slot does not exist on plain factories.
type Factory2 struct {
	Factory
}

func (f *Factory2) ClassInfo2(index int32) (vst3.ClassInfo, vst3.Result) {
	var info C.struct_Steinberg_PClassInfo2
	res := vst3.Result(C.factory_get_class_info2(f.ptr, C.Steinberg_int32(index), &info))
	if !res.OK() {
		return vst3.ClassInfo{}, res
	}
	ci := vst3.ClassInfo{
		Cardinality:   int32(info.cardinality),
		Category:      string8(unsafe.Pointer(&info.category[0]), vst3.CategoryLen),
		Name:          string8(unsafe.Pointer(&info.name[0]), vst3.NameLen),
		ClassFlags:    uint32(info.classFlags),
		SubCategories: string8(unsafe.Pointer(&info.subCategories[0]), vst3.SubCategoriesLen),
		Vendor:        string8(unsafe.Pointer(&info.vendor[0]), vst3.VendorLen),
		Version:       string8(unsafe.Pointer(&info.version[0]), vst3.VersionLen),
		SDKVersion:    string8(unsafe.Pointer(&info.sdkVersion[0]), vst3.VersionLen),
	}
	copy(ci.CID[:], unsafe.Slice((*byte)(unsafe.Pointer(&info.cid[0])), len(ci.CID)))
	return ci, res
}
