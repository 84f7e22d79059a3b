//go:build !windows

package vst3

// Result codes
const (
	ResultOK              Result = 0
	ResultTrue            Result = ResultOK
	ResultFalse           Result = 1
	ResultNoInterface     Result = -1
	ResultInvalidArgument Result = 2
	ResultNotImplemented  Result = 3
	ResultInternalError   Result = 4
	ResultNotInitialized  Result = 5
	ResultOutOfMemory     Result = 6
)
