package saves

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, accountID string) (*models.SaveRecord, error) {
	query := `SELECT ` + columns + ` FROM save_records
		 WHERE account_id = $1
		 `

	var updatedAt time.Time
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, accountID), &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	rec.UpdatedAt = updatedAt

	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.SaveRecord) error {
	query := `INSERT INTO save_records (` + columns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		 `

	args := []any{rec.AccountID, rec.CharacterName, rec.CharacterClass, rec.Level, rec.Experience,
		rec.Health, rec.MaxHealth, rec.Sanity, rec.MaxSanity, rec.Gold, rec.BankGold, rec.Turns,
		rec.DeliveryRank, rec.DeliveryStreak, rec.DeliveriesCompleted}
	args = append(args, blobArgs(rec)...)
	args = append(args, rec.UpdatedAt)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: save record for account %s", common.ErrConflict, rec.AccountID)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Replace(ctx context.Context, rec *models.SaveRecord) error {
	query :=
		`UPDATE save_records SET
			character_name = $2, character_class = $3, level = $4, experience = $5,
			health = $6, max_health = $7, sanity = $8, max_sanity = $9,
			gold = $10, bank_gold = $11, turns = $12,
			delivery_rank = $13, delivery_streak = $14, deliveries_completed = $15,
			inventory = $16, weapon = $17, armor = $18, current_package = $19,
			updated_at = $20
		 WHERE account_id = $1
		 `

	args := []any{rec.AccountID, rec.CharacterName, rec.CharacterClass, rec.Level, rec.Experience,
		rec.Health, rec.MaxHealth, rec.Sanity, rec.MaxSanity, rec.Gold, rec.BankGold, rec.Turns,
		rec.DeliveryRank, rec.DeliveryStreak, rec.DeliveriesCompleted}
	args = append(args, blobArgs(rec)...)
	args = append(args, rec.UpdatedAt)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.SaveRecord, error) {
	query := `SELECT ` + columns + ` FROM save_records
		 ORDER BY account_id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SaveRecord
	for rows.Next() {
		var updatedAt time.Time
		rec, err := scanRecord(rows, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		rec.UpdatedAt = updatedAt
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
