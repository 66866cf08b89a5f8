package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSaveRecord_Defaults(t *testing.T) {
	r := NewSaveRecord("acc", "Scout", "Courier")

	assert.Equal(t, "acc", r.AccountID)
	assert.Equal(t, "Scout", r.CharacterName)
	assert.Equal(t, "Courier", r.CharacterClass)
	assert.EqualValues(t, 1, r.Level)
	assert.EqualValues(t, 0, r.Experience)
	assert.EqualValues(t, 100, r.Health)
	assert.EqualValues(t, 100, r.MaxHealth)
	assert.EqualValues(t, 100, r.Sanity)
	assert.EqualValues(t, 100, r.MaxSanity)
	assert.EqualValues(t, 50, r.Gold)
	assert.EqualValues(t, 0, r.BankGold)
	assert.EqualValues(t, 20, r.Turns)
	assert.EqualValues(t, 0, r.DeliveryRank)
	assert.EqualValues(t, 0, r.DeliveryStreak)
	assert.EqualValues(t, 0, r.DeliveriesCompleted)
	assert.Equal(t, "[]", string(r.Inventory))
	assert.Equal(t, "null", string(r.Weapon))
	assert.Equal(t, "null", string(r.Armor))
	assert.Equal(t, "null", string(r.CurrentPackage))
}

func TestNewSaveRecord_BlobsAreNotShared(t *testing.T) {
	a := NewSaveRecord("a", "n", "c")
	a.Inventory[0] = '{'

	b := NewSaveRecord("b", "n", "c")
	assert.Equal(t, "[]", string(b.Inventory))
	assert.Equal(t, "[]", string(EmptyInventory))
}
