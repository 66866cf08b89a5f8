// Package services contains server-side business logic: accounts and
// sessions, presence tracking, and the save store.
package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
)

// storageError passes conflict and not-found through untouched and marks
// anything else as a storage failure for the boundary.
func storageError(op string, err error) error {
	if errors.Is(err, common.ErrConflict) || errors.Is(err, common.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, common.ErrStorage, err)
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, fmt.Sprintf(format, args...))
}
