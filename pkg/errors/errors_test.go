package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	cases := []struct {
		code       Code
		wantStatus int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeInsufficientStock, http.StatusConflict},
		{CodeConflict, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{Code("BOGUS"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.wantStatus {
			t.Fatalf("MetadataFor(%q).HTTPStatus = %d, want %d", tc.code, got, tc.wantStatus)
		}
	}
	if !MetadataFor(CodeInsufficientStock).DetailsAllowed {
		t.Fatal("insufficient stock must expose details")
	}
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	base := New(CodeNotFound, "variant not found")
	wrapped := fmt.Errorf("loading item: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("As failed to find coded error in chain")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("code = %q, want NOT_FOUND", typed.Code())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "pinging database")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped error must unwrap to its cause")
	}
	if err.Error() != "DEPENDENCY_ERROR: pinging database" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeInsufficientStock, "insufficient inventory").WithDetails(map[string]any{
		"available": 3,
		"requested": 5,
	})
	details, ok := err.Details().(map[string]any)
	if !ok || details["available"] != 3 {
		t.Fatalf("details = %v", err.Details())
	}
}
