package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/common"
	"github.com/dmitrijs2005/gamekeeper/internal/logging"
	"github.com/dmitrijs2005/gamekeeper/internal/server/models"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/repomanager"
)

// PresenceService tracks which accounts were active within the presence
// window. Liveness is decided at read time against the window; sweeping only
// reclaims rows that can no longer be listed.
type PresenceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	window      time.Duration
	log         logging.Logger
	now         func() time.Time
}

// NewPresenceService builds a PresenceService. A non-positive window falls
// back to common.PresenceWindow.
func NewPresenceService(db *sql.DB, m repomanager.RepositoryManager, window time.Duration, log logging.Logger) *PresenceService {
	if window <= 0 {
		window = common.PresenceWindow
	}
	return &PresenceService{
		db:          db,
		repomanager: m,
		window:      window,
		log:         log.With("module", "presence"),
		now:         time.Now,
	}
}

// MarkOnline records the account as seen now.
func (s *PresenceService) MarkOnline(ctx context.Context, accountID string) error {
	if err := s.repomanager.Presence(s.db).Upsert(ctx, accountID, s.now().UTC()); err != nil {
		return storageError("mark online", err)
	}
	return nil
}

// MarkOffline removes the account's entry. It is a no-op when absent.
func (s *PresenceService) MarkOffline(ctx context.Context, accountID string) error {
	if err := s.repomanager.Presence(s.db).Delete(ctx, accountID); err != nil {
		return storageError("mark offline", err)
	}
	return nil
}

// ListOnline sweeps stale entries and returns the live ones, most recently
// seen first. A failed sweep is logged and does not affect the result.
func (s *PresenceService) ListOnline(ctx context.Context) ([]models.OnlinePlayer, error) {
	cutoff := s.cutoff()
	repo := s.repomanager.Presence(s.db)

	if _, err := repo.DeleteBefore(ctx, cutoff); err != nil {
		s.log.Warn(ctx, "opportunistic sweep failed", "error", err)
	}

	players, err := repo.ListSince(ctx, cutoff)
	if err != nil {
		return nil, storageError("list online", err)
	}
	return players, nil
}

// Sweep deletes entries older than the window and returns how many went.
func (s *PresenceService) Sweep(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Presence(s.db).DeleteBefore(ctx, s.cutoff())
	if err != nil {
		return 0, storageError("sweep presence", err)
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is cancelled. Failures are
// logged and the next tick runs as usual.
func (s *PresenceService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.window
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info(ctx, "presence sweeper started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			s.log.Info(context.WithoutCancel(ctx), "presence sweeper stopped")
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				s.log.Error(ctx, "presence sweep failed", "error", err)
				continue
			}
			if n > 0 {
				s.log.Debug(ctx, "presence swept", "removed", n)
			}
		}
	}
}

func (s *PresenceService) cutoff() time.Time {
	return s.now().UTC().Add(-s.window)
}
