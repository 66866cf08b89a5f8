package models

import (
	"encoding/json"
	"time"
)

// Defaults applied to a freshly created character.
const (
	DefaultLevel     = 1
	DefaultMaxHealth = 100
	DefaultMaxSanity = 100
	DefaultGold      = 50
	DefaultTurns     = 20
)

// Blob defaults. Inventory starts empty; nothing is equipped or carried.
var (
	EmptyInventory = json.RawMessage(`[]`)
	NullBlob       = json.RawMessage(`null`)
)

// SaveRecord is the single persisted progression row of an account.
// The four blob fields are opaque JSON kept byte for byte.
type SaveRecord struct {
	AccountID           string
	CharacterName       string
	CharacterClass      string
	Level               int64
	Experience          int64
	Health              int64
	MaxHealth           int64
	Sanity              int64
	MaxSanity           int64
	Gold                int64
	BankGold            int64
	Turns               int64
	DeliveryRank        int64
	DeliveryStreak      int64
	DeliveriesCompleted int64
	Inventory           json.RawMessage
	Weapon              json.RawMessage
	Armor               json.RawMessage
	CurrentPackage      json.RawMessage
	UpdatedAt           time.Time
}

// NewSaveRecord returns a record for a new character with every field at
// its starting value.
func NewSaveRecord(accountID, name, class string) *SaveRecord {
	return &SaveRecord{
		AccountID:      accountID,
		CharacterName:  name,
		CharacterClass: class,
		Level:          DefaultLevel,
		Health:         DefaultMaxHealth,
		MaxHealth:      DefaultMaxHealth,
		Sanity:         DefaultMaxSanity,
		MaxSanity:      DefaultMaxSanity,
		Gold:           DefaultGold,
		Turns:          DefaultTurns,
		Inventory:      cloneRaw(EmptyInventory),
		Weapon:         cloneRaw(NullBlob),
		Armor:          cloneRaw(NullBlob),
		CurrentPackage: cloneRaw(NullBlob),
	}
}

func cloneRaw(b json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), b...)
}
