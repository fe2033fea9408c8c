package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/spiralnet/launchpad/errors"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("app.main:app", Static("main", okHandler())); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := r.Register("app.main:app", Static("again", okHandler())); err == nil {
		t.Error("duplicate ref should be rejected")
	}
	if err := r.Register("", Static("noref", okHandler())); err == nil {
		t.Error("empty ref should be rejected")
	}
	if err := r.Register("app.other:app", nil); err == nil {
		t.Error("nil provider should be rejected")
	}

	refs := r.Refs()
	if len(refs) != 1 || refs[0] != "app.main:app" {
		t.Errorf("refs = %v, want [app.main:app]", refs)
	}
}

func TestRegistryLoad(t *testing.T) {
	t.Run("known ref", func(t *testing.T) {
		r := NewRegistry()
		if err := r.Register("app.main:app", Static("main", okHandler())); err != nil {
			t.Fatal(err)
		}
		handle, err := r.Load(context.Background(), "app.main:app")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if handle.Ref() != "app.main:app" {
			t.Errorf("ref = %s", handle.Ref())
		}
		if handle.Handler() == nil {
			t.Fatal("handle carries no handler")
		}

		rec := httptest.NewRecorder()
		handle.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("unknown ref", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Load(context.Background(), "app.missing:app")
		if !apperrors.IsApplicationLoad(err) {
			t.Errorf("expected APPLICATION_LOAD_FAILED, got %v", err)
		}
		if apperrors.FailedStage(err) != apperrors.StageLoad {
			t.Errorf("expected load stage, got %s", apperrors.FailedStage(err))
		}
	})

	t.Run("constructor failure", func(t *testing.T) {
		r := NewRegistry()
		p := Func("broken", func(ctx context.Context) (http.Handler, error) {
			return nil, fmt.Errorf("import cycle")
		})
		if err := r.Register("app.broken:app", p); err != nil {
			t.Fatal(err)
		}
		_, err := r.Load(context.Background(), "app.broken:app")
		if !apperrors.IsApplicationLoad(err) {
			t.Errorf("expected APPLICATION_LOAD_FAILED, got %v", err)
		}
	})

	t.Run("nil handler from constructor", func(t *testing.T) {
		r := NewRegistry()
		p := Func("empty", func(ctx context.Context) (http.Handler, error) {
			return nil, nil
		})
		if err := r.Register("app.empty:app", p); err != nil {
			t.Fatal(err)
		}
		if _, err := r.Load(context.Background(), "app.empty:app"); !apperrors.IsApplicationLoad(err) {
			t.Errorf("expected APPLICATION_LOAD_FAILED for nil handler, got %v", err)
		}
	})
}

func TestFuncProviderName(t *testing.T) {
	p := Func("named", func(ctx context.Context) (http.Handler, error) {
		return okHandler(), nil
	})
	if p.Name() != "named" {
		t.Errorf("name = %s", p.Name())
	}
}

func TestNewHandle(t *testing.T) {
	h := NewHandle("app.main:app", "main", okHandler())
	if h.Ref() != "app.main:app" || h.Name() != "main" || h.Handler() == nil {
		t.Errorf("unexpected handle: ref=%s name=%s", h.Ref(), h.Name())
	}
}
