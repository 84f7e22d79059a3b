//go:build unix

package module

// #cgo linux LDFLAGS: -ldl
// #include <dlfcn.h>
// #include <stdlib.h>
//
// typedef void* (*factory_fn)(void);
// typedef _Bool (*entry_fn)(void*);
// typedef _Bool (*exit_fn)(void);
//
// static inline void* module_call_factory(void* fn) {
//     return ((factory_fn)fn)();
// }
//
// static inline int module_call_entry(void* fn, void* handle) {
//     return ((entry_fn)fn)(handle) ? 1 : 0;
// }
//
// static inline int module_call_exit(void* fn) {
//     return ((exit_fn)fn)() ? 1 : 0;
// }
//
// static inline const char* module_last_error(void) {
//     const char* err = dlerror();
//     return err ? err : "unknown dlopen error";
// }
import "C"
import (
	"errors"
	"unsafe"
)

type library struct {
	handle unsafe.Pointer
}

func openLibrary(path string) (library, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	handle := C.dlopen(cpath, C.RTLD_NOW|C.RTLD_LOCAL)
	if handle == nil {
		return library{}, errors.New(C.GoString(C.module_last_error()))
	}
	return library{handle: handle}, nil
}

func (l library) symbol(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.dlsym(l.handle, cname)
}

// enter calls the entry export if the platform defines one and the binary
// provides it. It reports whether the matching exit hook is owed.
func (l library) enter() (bool, error) {
	if entrySymbol == "" {
		return false, nil
	}
	fn := l.symbol(entrySymbol)
	if fn == nil {
		return false, nil
	}
	if C.module_call_entry(fn, l.handle) == 0 {
		return false, errors.New(entrySymbol + " returned false")
	}
	return true, nil
}

func (l library) exit() {
	if exitSymbol == "" {
		return
	}
	if fn := l.symbol(exitSymbol); fn != nil {
		C.module_call_exit(fn)
	}
}

func (l library) close() error {
	if C.dlclose(l.handle) != 0 {
		return errors.New(C.GoString(C.module_last_error()))
	}
	return nil
}

func callFactory(fn unsafe.Pointer) unsafe.Pointer {
	return C.module_call_factory(fn)
}
