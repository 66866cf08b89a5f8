package presence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

// SQLiteRepository stores last_seen as Unix milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, accountID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO presence (account_id, last_seen) VALUES (?, ?)
		ON CONFLICT (account_id) DO UPDATE SET last_seen = excluded.last_seen
	`, accountID, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert presence for %s: %w", accountID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, accountID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM presence WHERE account_id = ?`, accountID); err != nil {
		return fmt.Errorf("failed to delete presence for %s: %w", accountID, err)
	}
	return nil
}

func (r *SQLiteRepository) ListSince(ctx context.Context, cutoff time.Time) ([]models.OnlinePlayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.account_id, a.username, p.last_seen, s.character_name, s.level
		FROM presence p
		JOIN accounts a ON a.id = p.account_id
		LEFT JOIN save_records s ON s.account_id = p.account_id
		WHERE p.last_seen >= ?
		ORDER BY p.last_seen DESC
	`, cutoff.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to list presence: %w", err)
	}
	defer rows.Close()

	result := []models.OnlinePlayer{}
	for rows.Next() {
		var (
			p        models.OnlinePlayer
			lastSeen int64
			name     sql.NullString
			level    sql.NullInt64
		)
		if err := rows.Scan(&p.AccountID, &p.UserName, &lastSeen, &name, &level); err != nil {
			return nil, fmt.Errorf("failed to scan presence: %w", err)
		}
		p.LastSeen = time.UnixMilli(lastSeen).UTC()
		setCharacter(&p, name, level)
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM presence WHERE last_seen < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep presence: %w", err)
	}
	return res.RowsAffected()
}
