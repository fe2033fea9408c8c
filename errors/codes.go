package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Startup errors. Each maps to a launch stage; all of them are fatal and
// terminate the process before serving begins.
const (
	// ErrCodeConfigInvalid indicates a malformed or out-of-range configuration value.
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ErrCodeApplicationLoad indicates the application object could not be resolved.
	ErrCodeApplicationLoad ErrorCode = "APPLICATION_LOAD_FAILED"
	// ErrCodeBindFailed indicates the listen address could not be bound.
	ErrCodeBindFailed ErrorCode = "BIND_FAILED"
)

// Serving-phase errors surfaced by the HTTP system endpoints.
const (
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the client is rate limited.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Stage identifies which launch stage produced an error. A failed start must
// report exactly one stage so the diagnostic names where startup stopped.
type Stage string

const (
	StageConfig Stage = "config"
	StageLoad   Stage = "load"
	StageBind   Stage = "bind"
	StageServe  Stage = "serve"
)

var stageByCode = map[ErrorCode]Stage{
	ErrCodeConfigInvalid:   StageConfig,
	ErrCodeApplicationLoad: StageLoad,
	ErrCodeBindFailed:      StageBind,
}

// StageOf returns the launch stage for a code. Codes without a startup
// mapping belong to the serving phase.
func StageOf(code ErrorCode) Stage {
	if s, ok := stageByCode[code]; ok {
		return s
	}
	return StageServe
}

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Startup errors are never retryable here: retry policy belongs to the
// external orchestrator, not the launcher.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
