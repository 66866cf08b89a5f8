package client

import (
	"context"
	"encoding/json"
	"time"
)

// Client is the API surface the CLI depends on.
type Client interface {
	Register(ctx context.Context, username, email string, password []byte) (*Player, error)
	Login(ctx context.Context, username string, password []byte) (*Player, error)
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (*Player, error)
	GetData(ctx context.Context) (*SaveData, error)
	SaveData(ctx context.Context, data json.RawMessage) error
	CreateCharacter(ctx context.Context, name, class string) (*SaveData, error)
	Online(ctx context.Context) ([]OnlinePlayer, error)
	Heartbeat(ctx context.Context) error
	Health(ctx context.Context) error
	Token() string
	SetToken(token string)
}

type Player struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     *string    `json:"email,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// SaveData is a character save as served by /api/player/data.
type SaveData struct {
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

type OnlinePlayer struct {
	Username      string    `json:"username"`
	CharacterName *string   `json:"character_name"`
	Level         int64     `json:"level"`
	LastSeen      time.Time `json:"last_seen"`
}
