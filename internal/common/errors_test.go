package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", fmt.Errorf("%w: name is required", ErrValidation), KindValidation},
		{"credential", ErrInvalidCredential, KindInvalidCredential},
		{"expired", fmt.Errorf("validate: %w", ErrTokenExpired), KindExpired},
		{"signature", ErrInvalidSignature, KindInvalidSignature},
		{"conflict", fmt.Errorf("db error: %w", ErrConflict), KindConflict},
		{"not found", ErrNotFound, KindNotFound},
		{"storage", ErrStorage, KindStorage},
		{"unknown", errors.New("boom"), KindStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}
