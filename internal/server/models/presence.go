package models

import "time"

// PresenceEntry records when an account was last seen.
type PresenceEntry struct {
	AccountID string
	LastSeen  time.Time
}

// OnlinePlayer is a live presence entry joined with account and character
// data. Character fields are nil for accounts that have not created one.
type OnlinePlayer struct {
	AccountID     string
	UserName      string
	LastSeen      time.Time
	CharacterName *string
	Level         *int64
}
