package application

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"cardapio/internal/domain"
)

func TestValidateKind(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.Kind
		mutable bool
		wantErr bool
	}{
		{"recipe list", domain.KindRecipe, false, false},
		{"recipe mutation", domain.KindRecipe, true, false},
		{"favorites list", domain.KindFavorite, false, false},
		{"favorites mutation", domain.KindFavorite, true, true},
		{"unknown", domain.KindUnknown, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKind(tt.kind, tt.mutable)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKind() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePerPage(t *testing.T) {
	for _, n := range []int{0, 1, MaxPerPage} {
		if err := ValidatePerPage(n); err != nil {
			t.Errorf("ValidatePerPage(%d) unexpected error: %v", n, err)
		}
	}
	for _, n := range []int{-1, MaxPerPage + 1} {
		if err := ValidatePerPage(n); err == nil {
			t.Errorf("ValidatePerPage(%d) expected error", n)
		}
	}
}

func TestBackendError_Is(t *testing.T) {
	tests := []struct {
		status int
		target error
		want   bool
	}{
		{http.StatusNotFound, ErrNotFound, true},
		{http.StatusUnauthorized, ErrUnauthorized, true},
		{http.StatusForbidden, ErrUnauthorized, true},
		{http.StatusBadGateway, ErrUnavailable, true},
		{http.StatusBadRequest, ErrUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &BackendError{Method: "GET", Path: "/api/recipes", Status: tt.status})
			if got := errors.Is(err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%d, %v) = %v, want %v", tt.status, tt.target, got, tt.want)
			}
		})
	}
}

func TestMutationError_Unwrap(t *testing.T) {
	err := &MutationError{Action: "favorite", ID: 7, Err: ErrUnavailable}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("expected MutationError to unwrap to its cause")
	}
}
