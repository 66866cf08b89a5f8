package saves

import (
	"encoding/json"

	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

// columns lists save_records fields in scan order.
const columns = `account_id, character_name, character_class, level, experience,
		health, max_health, sanity, max_sanity, gold, bank_gold, turns,
		delivery_rank, delivery_streak, deliveries_completed,
		inventory, weapon, armor, current_package, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row; updatedAt receives the dialect-specific
// timestamp representation and is converted by the caller.
func scanRecord(row rowScanner, updatedAt any) (*models.SaveRecord, error) {
	var (
		r                                        models.SaveRecord
		inventory, weapon, armor, currentPackage string
	)

	err := row.Scan(&r.AccountID, &r.CharacterName, &r.CharacterClass, &r.Level, &r.Experience,
		&r.Health, &r.MaxHealth, &r.Sanity, &r.MaxSanity, &r.Gold, &r.BankGold, &r.Turns,
		&r.DeliveryRank, &r.DeliveryStreak, &r.DeliveriesCompleted,
		&inventory, &weapon, &armor, &currentPackage, updatedAt)
	if err != nil {
		return nil, err
	}

	r.Inventory = json.RawMessage(inventory)
	r.Weapon = json.RawMessage(weapon)
	r.Armor = json.RawMessage(armor)
	r.CurrentPackage = json.RawMessage(currentPackage)

	return &r, nil
}

// blobArgs returns the four blobs as strings for binding to TEXT columns.
func blobArgs(r *models.SaveRecord) []any {
	return []any{string(r.Inventory), string(r.Weapon), string(r.Armor), string(r.CurrentPackage)}
}
