package vst3

// Result codes on Windows are the COM HRESULT values.
const (
	ResultOK              Result = 0
	ResultTrue            Result = ResultOK
	ResultFalse           Result = 1
	ResultNoInterface     Result = -0x7FFFBFFE // 0x80004002
	ResultInvalidArgument Result = -0x7FF8FFA9 // 0x80070057
	ResultNotImplemented  Result = -0x7FFFBFFF // 0x80004001
	ResultInternalError   Result = -0x7FFFBFFB // 0x80004005
	ResultNotInitialized  Result = -0x7FFF0001 // 0x8000FFFF
	ResultOutOfMemory     Result = -0x7FF8FFF2 // 0x8007000E
)
