// Package com provides owning handles over reference-counted foreign
// interfaces and typed capability casting through queryInterface.
package com

import (
	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Ptr owns exactly one reference to a foreign interface. Copying a Ptr value
// around does not add references; use Clone for that. Release gives the
// reference back and is safe to call more than once.
type Ptr[T vst3.FUnknown] struct {
	obj      T
	released bool
}

// Adopt takes ownership of a reference the caller already holds, such as one
// returned by createInstance, queryInterface or the module entry point.
func Adopt[T vst3.FUnknown](obj T) *Ptr[T] {
	return &Ptr[T]{obj: obj}
}

// Retain adds a reference to obj and owns it.
func Retain[T vst3.FUnknown](obj T) *Ptr[T] {
	obj.AddRef()
	return Adopt(obj)
}

// Get returns the underlying interface. The value is only valid while p holds
// its reference.
func (p *Ptr[T]) Get() T {
	return p.obj
}

// Clone returns a second owning handle to the same object.
func (p *Ptr[T]) Clone() *Ptr[T] {
	return Retain(p.obj)
}

// Release drops the owned reference and returns the remaining count reported
// by the object. Releasing twice is a no-op that returns 0.
func (p *Ptr[T]) Release() uint32 {
	if p == nil || p.released {
		return 0
	}
	p.released = true
	return p.obj.Release()
}

// Released reports whether Release has been called.
func (p *Ptr[T]) Released() bool {
	return p == nil || p.released
}

// Cast probes p for another capability. A missing capability is a normal
// outcome and yields (nil, false); a successful probe returns a new owning
// handle that must be released independently of p.
func Cast[U vst3.FUnknown, T vst3.FUnknown](p *Ptr[T], iid vst3.TUID) (*Ptr[U], bool) {
	if p.Released() {
		return nil, false
	}
	obj, res := p.obj.QueryInterface(iid)
	if !res.OK() || obj == nil {
		return nil, false
	}
	typed, ok := obj.(U)
	if !ok {
		obj.Release()
		return nil, false
	}
	return Adopt(typed), true
}

// Supports probes p for a capability and immediately drops the reference.
func Supports[T vst3.FUnknown](p *Ptr[T], iid vst3.TUID) bool {
	q, ok := Cast[vst3.FUnknown](p, iid)
	if ok {
		q.Release()
	}
	return ok
}
