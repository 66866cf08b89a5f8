// Package saves stores one save record per account.
package saves

import (
	"context"

	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

// Repository is the save store. Get returns common.ErrNotFound when the
// account has no record; Create returns common.ErrConflict when it already
// has one; Replace returns common.ErrNotFound when there is nothing to
// overwrite.
type Repository interface {
	Get(ctx context.Context, accountID string) (*models.SaveRecord, error)
	Create(ctx context.Context, record *models.SaveRecord) error
	Replace(ctx context.Context, record *models.SaveRecord) error
	List(ctx context.Context) ([]*models.SaveRecord, error)
}
