package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStartupConstructors(t *testing.T) {
	t.Run("ConfigInvalid", func(t *testing.T) {
		err := ConfigInvalid("port", `"abc" is not a valid integer`)
		if err.Code != ErrCodeConfigInvalid {
			t.Errorf("expected code %s, got %s", ErrCodeConfigInvalid, err.Code)
		}
		if err.Stage() != StageConfig {
			t.Errorf("expected stage %s, got %s", StageConfig, err.Stage())
		}
		if err.Retryable {
			t.Error("config errors must not be retryable")
		}
		if !IsConfig(err) {
			t.Error("IsConfig should match")
		}
	})

	t.Run("ApplicationLoad", func(t *testing.T) {
		cause := fmt.Errorf("no provider registered")
		err := ApplicationLoad("app.main:app", cause)
		if err.Code != ErrCodeApplicationLoad {
			t.Errorf("expected code %s, got %s", ErrCodeApplicationLoad, err.Code)
		}
		if err.Stage() != StageLoad {
			t.Errorf("expected stage %s, got %s", StageLoad, err.Stage())
		}
		if !errors.Is(err, cause) {
			t.Error("cause should be reachable through Unwrap")
		}
		if !IsApplicationLoad(err) {
			t.Error("IsApplicationLoad should match")
		}
	})

	t.Run("BindFailed", func(t *testing.T) {
		cause := fmt.Errorf("address already in use")
		err := BindFailed("0.0.0.0:8080", cause)
		if err.Code != ErrCodeBindFailed {
			t.Errorf("expected code %s, got %s", ErrCodeBindFailed, err.Code)
		}
		if err.Stage() != StageBind {
			t.Errorf("expected stage %s, got %s", StageBind, err.Stage())
		}
		if !IsBind(err) {
			t.Error("IsBind should match")
		}
		if IsBind(ConfigInvalid("port", "bad")) {
			t.Error("IsBind should not match a config error")
		}
	})
}

func TestFailedStage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Stage
	}{
		{"config error", ConfigInvalid("port", "bad"), StageConfig},
		{"load error", ApplicationLoad("app.main:app", fmt.Errorf("missing")), StageLoad},
		{"bind error", BindFailed(":8080", fmt.Errorf("in use")), StageBind},
		{"wrapped bind error", fmt.Errorf("start: %w", BindFailed(":8080", fmt.Errorf("in use"))), StageBind},
		{"plain error", fmt.Errorf("boom"), StageServe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FailedStage(tt.err); got != tt.want {
				t.Errorf("FailedStage() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStageOf(t *testing.T) {
	if got := StageOf(ErrCodeInternal); got != StageServe {
		t.Errorf("serving codes map to %s, got %s", StageServe, got)
	}
	if got := StageOf(ErrCodeConfigInvalid); got != StageConfig {
		t.Errorf("expected %s, got %s", StageConfig, got)
	}
}

func TestRetryable(t *testing.T) {
	if IsRetryableCode(ErrCodeBindFailed) {
		t.Error("bind failures are fatal, never retryable")
	}
	if !IsRetryableCode(ErrCodeRateLimited) {
		t.Error("rate limits are retryable")
	}
	if !RateLimited().Retryable {
		t.Error("RateLimited constructor should produce a retryable error")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("user")
	wrapped := fmt.Errorf("handler: %w", appErr)
	if got := AsAppError(wrapped); got != appErr {
		t.Error("AsAppError should find the wrapped AppError")
	}
	if got := AsAppError(fmt.Errorf("plain")); got != nil {
		t.Errorf("expected nil for plain error, got %v", got)
	}
}

func TestWithDetail(t *testing.T) {
	err := ConfigInvalid("port", "out of range").WithDetail("value", 65536)
	if err.Details["value"] != 65536 {
		t.Errorf("detail not carried: %v", err.Details)
	}
}

func TestToResponse(t *testing.T) {
	err := Internal(fmt.Errorf("db gone"))
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, resp.Error.Code)
	}
	if resp.Error.Message == "" {
		t.Error("response message must not be empty")
	}
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus)
	}
}

func TestErrorString(t *testing.T) {
	cause := fmt.Errorf("eaddrinuse")
	err := BindFailed(":80", cause)
	msg := err.Error()
	if msg == "" {
		t.Fatal("empty error string")
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap chain broken")
	}
}
