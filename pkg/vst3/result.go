package vst3

import "fmt"

// Result mirrors tresult, the status code every foreign call returns.
type Result int32

// OK reports whether the call succeeded. kResultTrue shares the value of
// kResultOk.
func (r Result) OK() bool {
	return r == ResultOK
}

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "kResultOk"
	case ResultFalse:
		return "kResultFalse"
	case ResultNoInterface:
		return "kNoInterface"
	case ResultInvalidArgument:
		return "kInvalidArgument"
	case ResultNotImplemented:
		return "kNotImplemented"
	case ResultInternalError:
		return "kInternalError"
	case ResultNotInitialized:
		return "kNotInitialized"
	case ResultOutOfMemory:
		return "kOutOfMemory"
	default:
		return fmt.Sprintf("tresult(%#x)", uint32(r))
	}
}

// Error lets a failed Result travel as an error value.
func (r Result) Error() string {
	return r.String()
}
