package vst3

import (
	"errors"
	"time"

	goerrors "github.com/agilira/go-errors"
)

// Error codes for a host inspection run
const (
	// Module loading (1000-1099)
	ErrCodeLoadFailure   = "LOAD_1001"
	ErrCodeSymbolMissing = "LOAD_1002"
	ErrCodeFactoryNull   = "LOAD_1003"
	ErrCodeBundleInvalid = "LOAD_1004"

	// Factory and classes (1100-1199)
	ErrCodeFactoryInfoUnavailable = "FACTORY_1101"
	ErrCodeNoAudioClass           = "FACTORY_1102"

	// Lifecycle (1200-1299)
	ErrCodeComponentCreateFailed = "LIFECYCLE_1201"
	ErrCodeComponentInitFailed   = "LIFECYCLE_1202"
	ErrCodeNoController          = "LIFECYCLE_1203"
	ErrCodeConnectionFailed      = "LIFECYCLE_1204"
	ErrCodeHostUnavailable       = "LIFECYCLE_1205"

	// Configuration (1300-1399)
	ErrCodeConfigInvalid = "CONFIG_1301"

	// Directory scans (1400-1499)
	ErrCodeScanTimeout     = "SCAN_1401"
	ErrCodeScanChildFailed = "SCAN_1402"
	ErrCodeScanBadReport   = "SCAN_1403"
)

func NewLoadFailureError(path string, cause error) *goerrors.Error {
	return goerrors.Wrap(cause, ErrCodeLoadFailure, "Failed to load module").
		WithUserMessage("The file is not a loadable plugin module").
		WithContext("path", path).
		WithSeverity("error")
}

func NewSymbolMissingError(path, symbol string) *goerrors.Error {
	return goerrors.New(ErrCodeSymbolMissing, "Entry point not exported").
		WithUserMessage("The module does not export "+symbol).
		WithContext("path", path).
		WithContext("symbol", symbol).
		WithSeverity("error")
}

func NewFactoryNullError(path string) *goerrors.Error {
	return goerrors.New(ErrCodeFactoryNull, "GetPluginFactory returned NULL").
		WithUserMessage("The module did not provide a plugin factory").
		WithContext("path", path).
		WithSeverity("error")
}

func NewBundleInvalidError(path, reason string) *goerrors.Error {
	return goerrors.New(ErrCodeBundleInvalid, "Invalid plugin bundle").
		WithUserMessage(reason).
		WithContext("path", path).
		WithSeverity("error")
}

func NewFactoryInfoUnavailableError(result Result) *goerrors.Error {
	return goerrors.Wrap(result, ErrCodeFactoryInfoUnavailable, "Failed to get factory info").
		WithUserMessage("The plugin factory did not describe its vendor").
		WithContext("result", result.String()).
		WithSeverity("error")
}

func NewNoAudioClassError(classCount int) *goerrors.Error {
	return goerrors.New(ErrCodeNoAudioClass, "No Audio Module class found").
		WithUserMessage("The plugin exposes no audio processing class").
		WithContext("class_count", classCount).
		WithSeverity("error")
}

func NewComponentCreateFailedError(cid TUID, result Result) *goerrors.Error {
	return goerrors.Wrap(result, ErrCodeComponentCreateFailed, "Failed to create component").
		WithUserMessage("The factory could not instantiate the audio class").
		WithContext("class_id", cid.String()).
		WithContext("result", result.String()).
		WithSeverity("error")
}

func NewComponentInitFailedError(cid TUID, result Result) *goerrors.Error {
	return goerrors.Wrap(result, ErrCodeComponentInitFailed, "Failed to initialize component").
		WithUserMessage("The component rejected initialization").
		WithContext("class_id", cid.String()).
		WithContext("result", result.String()).
		WithSeverity("error")
}

func NewNoControllerError(reason string, result Result) *goerrors.Error {
	return goerrors.Wrap(result, ErrCodeNoController, "No controller available").
		WithUserMessage("The plugin provides no edit controller").
		WithContext("reason", reason).
		WithContext("result", result.String()).
		WithSeverity("error")
}

// NewConnectionFailedError is never fatal; it is logged and recorded as a
// degradation of the run.
func NewConnectionFailedError(componentToController, controllerToComponent Result) *goerrors.Error {
	return goerrors.New(ErrCodeConnectionFailed, "Connection failed").
		WithUserMessage("Component and controller could not be connected").
		WithContext("component_to_controller", componentToController.String()).
		WithContext("controller_to_component", controllerToComponent.String()).
		WithSeverity("warning")
}

func NewHostUnavailableError() *goerrors.Error {
	return goerrors.New(ErrCodeHostUnavailable, "Failed to allocate host application").
		WithUserMessage("The host callback object could not be created").
		WithSeverity("error")
}

func NewConfigInvalidError(key string, cause error) *goerrors.Error {
	return goerrors.Wrap(cause, ErrCodeConfigInvalid, "Invalid configuration").
		WithUserMessage("Configuration value for "+key+" is invalid").
		WithContext("key", key).
		WithSeverity("error")
}

func NewScanTimeoutError(path string, timeout time.Duration) *goerrors.Error {
	return goerrors.New(ErrCodeScanTimeout, "Inspection timed out").
		WithUserMessage("The plugin did not finish within "+timeout.String()).
		WithContext("path", path).
		WithContext("timeout", timeout.String()).
		WithSeverity("error")
}

func NewScanChildFailedError(path string, cause error) *goerrors.Error {
	return goerrors.Wrap(cause, ErrCodeScanChildFailed, "Inspection process failed").
		WithUserMessage("The inspection process exited without a report").
		WithContext("path", path).
		WithSeverity("error")
}

func NewScanBadReportError(path string, cause error) *goerrors.Error {
	return goerrors.Wrap(cause, ErrCodeScanBadReport, "Inspection process wrote an invalid report").
		WithContext("path", path).
		WithSeverity("error")
}

// CodeOf returns the error code carried by err, or "" for foreign errors.
func CodeOf(err error) string {
	var coded *goerrors.Error
	if errors.As(err, &coded) {
		return string(coded.Code)
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
