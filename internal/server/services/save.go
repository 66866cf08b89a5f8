package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/repomanager"
)

// saveAttempts bounds how often Save retries after losing a create race.
const saveAttempts = 2

// SaveService reads and writes the single save record of an account.
// Numeric fields are stored as given; only name, class and blob syntax are
// checked.
type SaveService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewSaveService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *SaveService {
	return &SaveService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "saves"),
		now:         time.Now,
	}
}

// Get returns the account's record, or nil without error when it has none.
func (s *SaveService) Get(ctx context.Context, accountID string) (*models.SaveRecord, error) {
	rec, err := s.repomanager.Saves(s.db).Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, storageError("get save", err)
	}
	return rec, nil
}

// Create stores a new record with starting values.
func (s *SaveService) Create(ctx context.Context, accountID, name, class string) (*models.SaveRecord, error) {
	if err := validateCharacter(name, class); err != nil {
		return nil, err
	}

	rec := models.NewSaveRecord(accountID, name, class)
	rec.UpdatedAt = s.now().UTC()

	if err := s.repomanager.Saves(s.db).Create(ctx, rec); err != nil {
		return nil, storageError("create save", err)
	}

	s.log.Info(ctx, "character created", "account_id", accountID, "class", class)
	return rec, nil
}

// Replace overwrites every field of the existing record.
func (s *SaveService) Replace(ctx context.Context, accountID string, rec *models.SaveRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	rec.AccountID = accountID
	rec.UpdatedAt = s.now().UTC()

	if err := s.repomanager.Saves(s.db).Replace(ctx, rec); err != nil {
		return storageError("replace save", err)
	}
	return nil
}

// Save writes rec as the account's record, creating it when absent. Both
// steps run in one transaction so a failure leaves the previous record as
// it was.
func (s *SaveService) Save(ctx context.Context, accountID string, rec *models.SaveRecord) (*models.SaveRecord, error) {
	if err := validateRecord(rec); err != nil {
		return nil, err
	}

	rec.AccountID = accountID

	var err error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		rec.UpdatedAt = s.now().UTC()
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repomanager.Saves(tx)

			_, err := repo.Get(ctx, accountID)
			switch {
			case errors.Is(err, common.ErrNotFound):
				return repo.Create(ctx, rec)
			case err != nil:
				return err
			}
			return repo.Replace(ctx, rec)
		})
		if !errors.Is(err, common.ErrConflict) {
			break
		}
		s.log.Debug(ctx, "save create raced, retrying", "account_id", accountID)
	}
	if err != nil {
		return nil, storageError("save", err)
	}

	return rec, nil
}

// List returns every stored record ordered by account. It backs the
// periodic archive export.
func (s *SaveService) List(ctx context.Context) ([]*models.SaveRecord, error) {
	recs, err := s.repomanager.Saves(s.db).List(ctx)
	if err != nil {
		return nil, storageError("list saves", err)
	}
	return recs, nil
}

func validateCharacter(name, class string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(class) == "" {
		return validationError("character name and class are required")
	}
	return nil
}

// validateRecord checks name and class, fills missing blobs with their
// defaults and rejects blobs that are not JSON.
func validateRecord(rec *models.SaveRecord) error {
	if rec == nil {
		return validationError("save data is required")
	}
	if err := validateCharacter(rec.CharacterName, rec.CharacterClass); err != nil {
		return err
	}

	blobs := []struct {
		name string
		v    *json.RawMessage
		def  json.RawMessage
	}{
		{"inventory", &rec.Inventory, models.EmptyInventory},
		{"weapon", &rec.Weapon, models.NullBlob},
		{"armor", &rec.Armor, models.NullBlob},
		{"current_package", &rec.CurrentPackage, models.NullBlob},
	}
	for _, b := range blobs {
		if len(*b.v) == 0 {
			*b.v = append(json.RawMessage(nil), b.def...)
			continue
		}
		if !json.Valid(*b.v) {
			return validationError("%s is not valid JSON", b.name)
		}
	}
	return nil
}
