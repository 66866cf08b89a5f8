package services

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/cryptox"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Registration limits.
const (
	MinUserNameLength = 3
	MaxUserNameLength = 20
	MinPasswordLength = 6
	// bcrypt refuses to hash longer input.
	MaxPasswordBytes = 72
)

// AccountService handles registration, login, logout and token checks.
// Presence refreshes that ride along with these calls are best effort: a
// failure is logged and the call still succeeds.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	hasher      *cryptox.Hasher
	presence    *PresenceService
	log         logging.Logger
	now         func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer,
	hasher *cryptox.Hasher, presence *PresenceService, log logging.Logger) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		issuer:      issuer,
		hasher:      hasher,
		presence:    presence,
		log:         log.With("module", "accounts"),
		now:         time.Now,
	}
}

// Register validates the input, stores a new account and returns it together
// with a fresh session token. The account is marked online.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.Account, string, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, "", err
	}

	digest, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, "", err
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: digest,
		CreatedAt:    s.now().UTC(),
	}
	if email != "" {
		account.Email = &email
	}

	account, err = s.repomanager.Accounts(s.db).Create(ctx, account)
	if err != nil {
		return nil, "", storageError("create account", err)
	}

	token, err := s.issuer.Issue(account.ID, account.UserName)
	if err != nil {
		return nil, "", err
	}

	s.touch(ctx, account.ID)
	s.log.Info(ctx, "account registered", "account_id", account.ID, "username", account.UserName)

	return account, token, nil
}

// Login checks credentials, records the login time and issues a token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
//
// The stored last login is updated to now, but the returned account carries
// the value from before this login so clients can show "last seen" for the
// previous session. It is nil on an account's first login.
//
// Passwords longer than MaxPasswordBytes are rejected as invalid
// credentials, since bcrypt would ignore the excess.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.Account, string, error) {
	if username == "" || password == "" {
		return nil, "", validationError("username and password are required")
	}
	if len(password) > MaxPasswordBytes {
		s.hasher.Burn([]byte(password))
		return nil, "", common.ErrInvalidCredential
	}

	account, err := s.repomanager.Accounts(s.db).GetByUserName(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Burn([]byte(password))
			return nil, "", common.ErrInvalidCredential
		}
		return nil, "", storageError("get account", err)
	}

	if !s.hasher.Verify([]byte(password), account.PasswordHash) {
		return nil, "", common.ErrInvalidCredential
	}

	if err := s.repomanager.Accounts(s.db).UpdateLastLogin(ctx, account.ID, s.now().UTC()); err != nil {
		return nil, "", storageError("update last login", err)
	}

	token, err := s.issuer.Issue(account.ID, account.UserName)
	if err != nil {
		return nil, "", err
	}

	s.touch(ctx, account.ID)
	s.log.Info(ctx, "account logged in", "account_id", account.ID)

	return account, token, nil
}

// Logout marks the token's account offline. Invalid tokens are ignored and
// the token itself stays valid until it expires.
func (s *AccountService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	claims, err := s.issuer.Validate(token)
	if err != nil {
		return
	}
	if err := s.presence.MarkOffline(ctx, claims.AccountID); err != nil {
		s.log.Warn(ctx, "mark offline failed", "account_id", claims.AccountID, "error", err)
	}
}

// Verify validates the token and refreshes the account's presence.
func (s *AccountService) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.issuer.Validate(token)
	if err != nil {
		return nil, err
	}
	s.touch(ctx, claims.AccountID)
	return claims, nil
}

// Touch refreshes presence for an authenticated request.
func (s *AccountService) Touch(ctx context.Context, accountID string) {
	s.touch(ctx, accountID)
}

func (s *AccountService) touch(ctx context.Context, accountID string) {
	if err := s.presence.MarkOnline(ctx, accountID); err != nil {
		s.log.Warn(ctx, "presence refresh failed", "account_id", accountID, "error", err)
	}
}

func validateRegistration(username, email, password string) error {
	if username == "" || password == "" {
		return validationError("username and password are required")
	}
	if n := utf8.RuneCountInString(username); n < MinUserNameLength || n > MaxUserNameLength {
		return validationError("username must be %d-%d characters", MinUserNameLength, MaxUserNameLength)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return validationError("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return validationError("password must be at most %d bytes", MaxPasswordBytes)
	}
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || !strings.EqualFold(addr.Address, email) {
			return validationError("email address is not valid")
		}
	}
	return nil
}
