package models

import "time"

// Account is a registered player. ID is the account identity used as the
// join key everywhere; UserName is the unique display handle.
type Account struct {
	ID           string
	UserName     string
	Email        *string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
}
