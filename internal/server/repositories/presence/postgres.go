package presence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, accountID string, at time.Time) error {
	query :=
		`INSERT INTO presence (account_id, last_seen)
		 VALUES ($1, $2)
		 ON CONFLICT (account_id) DO UPDATE SET last_seen = EXCLUDED.last_seen
		 `

	if _, err := r.db.ExecContext(ctx, query, accountID, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, accountID string) error {
	query := `DELETE FROM presence WHERE account_id = $1`

	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListSince(ctx context.Context, cutoff time.Time) ([]models.OnlinePlayer, error) {
	query :=
		`SELECT p.account_id, a.username, p.last_seen, s.character_name, s.level
		 FROM presence p
		 JOIN accounts a ON a.id = p.account_id
		 LEFT JOIN save_records s ON s.account_id = p.account_id
		 WHERE p.last_seen >= $1
		 ORDER BY p.last_seen DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.OnlinePlayer{}
	for rows.Next() {
		var (
			p     models.OnlinePlayer
			name  sql.NullString
			level sql.NullInt64
		)
		if err := rows.Scan(&p.AccountID, &p.UserName, &p.LastSeen, &name, &level); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		setCharacter(&p, name, level)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM presence WHERE last_seen < $1`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
