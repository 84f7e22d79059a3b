package module

import (
	"errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

type library struct {
	dll *windows.DLL
}

func openLibrary(path string) (library, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return library{}, err
	}
	return library{dll: dll}, nil
}

func (l library) proc(name string) *windows.Proc {
	p, err := l.dll.FindProc(name)
	if err != nil {
		return nil
	}
	return p
}

func (l library) symbol(name string) unsafe.Pointer {
	p := l.proc(name)
	if p == nil {
		return nil
	}
	return unsafe.Pointer(p.Addr())
}

func (l library) enter() (bool, error) {
	p := l.proc("InitDll")
	if p == nil {
		return false, nil
	}
	r, _, _ := p.Call()
	if r&0xFF == 0 {
		return false, errors.New("InitDll returned false")
	}
	return true, nil
}

func (l library) exit() {
	if p := l.proc("ExitDll"); p != nil {
		p.Call()
	}
}

func (l library) close() error {
	return l.dll.Release()
}

func callFactory(fn unsafe.Pointer) unsafe.Pointer {
	r, _, _ := syscall.SyscallN(uintptr(fn))
	return unsafe.Pointer(r)
}
