package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_ToHTTPError(t *testing.T) {
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", errors.New("db down"), http.StatusInternalServerError)

	body := appErr.ToHTTPError()
	if body.Success {
		t.Fatalf("expected success=false")
	}
	if body.Error.Code != "INTERNAL_ERROR" || body.Message != "An internal error occurred" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if !errors.Is(appErr, appErr.Err) {
		t.Fatalf("expected wrapped error to be reachable")
	}
	if appErr.Error() != "An internal error occurred: db down" {
		t.Fatalf("unexpected error string: %s", appErr.Error())
	}
}

func TestAppError_DefaultsStatusText(t *testing.T) {
	appErr := &AppError{Code: "X"}
	body := appErr.ToHTTPError()
	if body.Message != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("expected default message, got %q", body.Message)
	}
}

func TestNewSuccess(t *testing.T) {
	res := NewSuccess("ok", map[string]string{"a": "b"})
	if !res.Success || res.Message != "ok" {
		t.Fatalf("unexpected success envelope: %+v", res)
	}
}
