// Package presence keeps the last-seen timestamp of each account.
package presence

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

type Repository interface {
	// Upsert sets last_seen for the account, creating the entry if needed.
	Upsert(ctx context.Context, accountID string, at time.Time) error
	// Delete removes the entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, accountID string) error
	// ListSince returns entries with last_seen at or after cutoff, most
	// recent first, joined with account and character data.
	ListSince(ctx context.Context, cutoff time.Time) ([]models.OnlinePlayer, error)
	// DeleteBefore removes entries with last_seen strictly before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// setCharacter fills the character fields of p from the outer-joined
// save_records columns, leaving them nil when the account has no character.
func setCharacter(p *models.OnlinePlayer, name sql.NullString, level sql.NullInt64) {
	if name.Valid {
		p.CharacterName = &name.String
	}
	if level.Valid {
		p.Level = &level.Int64
	}
}
