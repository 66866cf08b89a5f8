package repomanager

import (
	"github.com/dmitrijs2005/gamekeeper/internal/dbx"
	"github.com/dmitrijs2005/gamekeeper/internal/server/repositories/presence"
	"github.com/redis/go-redis/v9"
)

// RedisPresenceManager keeps presence in Redis and delegates everything
// else to the SQL manager it wraps.
type RedisPresenceManager struct {
	RepositoryManager
	rdb redis.Cmdable
	key string
}

func WithRedisPresence(base RepositoryManager, rdb redis.Cmdable, key string) *RedisPresenceManager {
	return &RedisPresenceManager{RepositoryManager: base, rdb: rdb, key: key}
}

func (m *RedisPresenceManager) Presence(db dbx.DBTX) presence.Repository {
	return presence.NewRedisRepository(m.rdb, m.key, m.Accounts(db), m.Saves(db))
}
