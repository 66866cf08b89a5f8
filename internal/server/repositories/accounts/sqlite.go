package accounts

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

// SQLiteRepository keeps timestamps as Unix milliseconds so range
// comparisons stay numeric.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, account.ID, account.UserName, account.Email, account.PasswordHash, account.CreatedAt.UnixMilli())
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username or email already taken", common.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create account %s: %w", account.UserName, err)
	}
	return account, nil
}

func (r *SQLiteRepository) GetByUserName(ctx context.Context, userName string) (*models.Account, error) {
	return r.getOne(ctx, `
		SELECT id, username, email, password_hash, created_at, last_login
		FROM accounts WHERE username = ?
	`, userName)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getOne(ctx, `
		SELECT id, username, email, password_hash, created_at, last_login
		FROM accounts WHERE id = ?
	`, id)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	var (
		a         models.Account
		email     sql.NullString
		createdAt int64
		lastLogin sql.NullInt64
	)

	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&a.ID, &a.UserName, &email, &a.PasswordHash, &createdAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	a.CreatedAt = time.UnixMilli(createdAt).UTC()
	if email.Valid {
		a.Email = &email.String
	}
	if lastLogin.Valid {
		t := time.UnixMilli(lastLogin.Int64).UTC()
		a.LastLogin = &t
	}
	return &a, nil
}

func (r *SQLiteRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET last_login = ? WHERE id = ?`, at.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("failed to update last login for %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update last login for %s: %w", id, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
