package httpapi

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type characterRequest struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

type playerView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     *string    `json:"email,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// saveData is the wire form of a save record. Blobs pass through untouched.
type saveData struct {
	Name                string          `json:"name"`
	Class               string          `json:"class"`
	Level               int64           `json:"level"`
	Experience          int64           `json:"experience"`
	Health              int64           `json:"health"`
	MaxHealth           int64           `json:"max_health"`
	Sanity              int64           `json:"sanity"`
	MaxSanity           int64           `json:"max_sanity"`
	Gold                int64           `json:"gold"`
	BankGold            int64           `json:"bank_gold"`
	Turns               int64           `json:"turns"`
	DeliveryRank        int64           `json:"delivery_rank"`
	DeliveryStreak      int64           `json:"delivery_streak"`
	DeliveriesCompleted int64           `json:"deliveries_completed"`
	Inventory           json.RawMessage `json:"inventory"`
	Weapon              json.RawMessage `json:"weapon"`
	Armor               json.RawMessage `json:"armor"`
	CurrentPackage      json.RawMessage `json:"current_package"`
	UpdatedAt           *time.Time      `json:"updated_at,omitempty"`
}

func newSaveData(r *models.SaveRecord) *saveData {
	d := &saveData{
		Name:                r.CharacterName,
		Class:               r.CharacterClass,
		Level:               r.Level,
		Experience:          r.Experience,
		Health:              r.Health,
		MaxHealth:           r.MaxHealth,
		Sanity:              r.Sanity,
		MaxSanity:           r.MaxSanity,
		Gold:                r.Gold,
		BankGold:            r.BankGold,
		Turns:               r.Turns,
		DeliveryRank:        r.DeliveryRank,
		DeliveryStreak:      r.DeliveryStreak,
		DeliveriesCompleted: r.DeliveriesCompleted,
		Inventory:           r.Inventory,
		Weapon:              r.Weapon,
		Armor:               r.Armor,
		CurrentPackage:      r.CurrentPackage,
	}
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		d.UpdatedAt = &t
	}
	return d
}

func (d *saveData) record() *models.SaveRecord {
	return &models.SaveRecord{
		CharacterName:       d.Name,
		CharacterClass:      d.Class,
		Level:               d.Level,
		Experience:          d.Experience,
		Health:              d.Health,
		MaxHealth:           d.MaxHealth,
		Sanity:              d.Sanity,
		MaxSanity:           d.MaxSanity,
		Gold:                d.Gold,
		BankGold:            d.BankGold,
		Turns:               d.Turns,
		DeliveryRank:        d.DeliveryRank,
		DeliveryStreak:      d.DeliveryStreak,
		DeliveriesCompleted: d.DeliveriesCompleted,
		Inventory:           d.Inventory,
		Weapon:              d.Weapon,
		Armor:               d.Armor,
		CurrentPackage:      d.CurrentPackage,
	}
}

type onlinePlayerView struct {
	Username      string    `json:"username"`
	CharacterName *string   `json:"character_name"`
	Level         int64     `json:"level"`
	LastSeen      time.Time `json:"last_seen"`
}

func newOnlinePlayerView(p models.OnlinePlayer) onlinePlayerView {
	v := onlinePlayerView{
		Username:      p.UserName,
		CharacterName: p.CharacterName,
		Level:         models.DefaultLevel,
		LastSeen:      p.LastSeen,
	}
	if p.Level != nil {
		v.Level = *p.Level
	}
	return v
}
