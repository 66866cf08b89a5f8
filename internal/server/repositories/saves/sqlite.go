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

// SQLiteRepository stores updated_at as Unix milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, accountID string) (*models.SaveRecord, error) {
	var updatedAt int64
	rec, err := scanRecord(r.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM save_records WHERE account_id = ?`, accountID), &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get save record for %s: %w", accountID, err)
	}
	rec.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return rec, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, rec *models.SaveRecord) error {
	args := []any{rec.AccountID, rec.CharacterName, rec.CharacterClass, rec.Level, rec.Experience,
		rec.Health, rec.MaxHealth, rec.Sanity, rec.MaxSanity, rec.Gold, rec.BankGold, rec.Turns,
		rec.DeliveryRank, rec.DeliveryStreak, rec.DeliveriesCompleted}
	args = append(args, blobArgs(rec)...)
	args = append(args, rec.UpdatedAt.UnixMilli())

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO save_records (`+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return fmt.Errorf("%w: save record for account %s", common.ErrConflict, rec.AccountID)
		}
		return fmt.Errorf("failed to create save record for %s: %w", rec.AccountID, err)
	}
	return nil
}

func (r *SQLiteRepository) Replace(ctx context.Context, rec *models.SaveRecord) error {
	args := []any{rec.CharacterName, rec.CharacterClass, rec.Level, rec.Experience,
		rec.Health, rec.MaxHealth, rec.Sanity, rec.MaxSanity, rec.Gold, rec.BankGold, rec.Turns,
		rec.DeliveryRank, rec.DeliveryStreak, rec.DeliveriesCompleted}
	args = append(args, blobArgs(rec)...)
	args = append(args, rec.UpdatedAt.UnixMilli(), rec.AccountID)

	res, err := r.db.ExecContext(ctx, `
		UPDATE save_records SET
			character_name = ?, character_class = ?, level = ?, experience = ?,
			health = ?, max_health = ?, sanity = ?, max_sanity = ?,
			gold = ?, bank_gold = ?, turns = ?,
			delivery_rank = ?, delivery_streak = ?, deliveries_completed = ?,
			inventory = ?, weapon = ?, armor = ?, current_package = ?,
			updated_at = ?
		WHERE account_id = ?
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to replace save record for %s: %w", rec.AccountID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to replace save record for %s: %w", rec.AccountID, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.SaveRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM save_records ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list save records: %w", err)
	}
	defer rows.Close()

	var result []*models.SaveRecord
	for rows.Next() {
		var updatedAt int64
		rec, err := scanRecord(rows, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan save record: %w", err)
		}
		rec.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		result = append(result, rec)
	}
	return result, rows.Err()
}
