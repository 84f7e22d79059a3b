package module

// Linux modules may export a pair of hooks bracketing their lifetime.
const (
	entrySymbol = "ModuleEntry"
	exitSymbol  = "ModuleExit"
)
