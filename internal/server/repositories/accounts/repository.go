// Package accounts stores player credentials.
package accounts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

// Repository is the credential store. Implementations return
// common.ErrNotFound for missing rows and common.ErrConflict when the
// username or email is already taken.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByUserName(ctx context.Context, userName string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
