package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/platformbuilds/newsvalidator-core/pkg/logger"
)

// noopValkeyCache provides an in-memory, process-local fallback that satisfies
// ResultCache when the external cache is unavailable. It is best-effort and
// intended for development and degraded operation (spec.md §7's Degraded
// kind): data is not shared across replicas and is lost on restart.
type noopValkeyCache struct {
	m      map[string][]byte
	locks  map[string]time.Time
	mu     sync.RWMutex
	logger logger.Logger
}

func NewNoopValkeyCache(log logger.Logger) ResultCache {
	log.Warn("result cache unavailable; using in-memory fallback (noop)")
	return &noopValkeyCache{
		m:      make(map[string][]byte),
		locks:  make(map[string]time.Time),
		logger: log,
	}
}

func (n *noopValkeyCache) Get(ctx context.Context, key string) ([]byte, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	b, ok := n.m[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return b, nil
}

func (n *noopValkeyCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		jb, err := json.Marshal(v)
		if err != nil {
			return err
		}
		b = jb
	}
	n.mu.Lock()
	n.m[key] = b
	n.mu.Unlock()
	return nil
}

func (n *noopValkeyCache) Delete(ctx context.Context, key string) error {
	n.mu.Lock()
	delete(n.m, key)
	n.mu.Unlock()
	return nil
}

// AcquireLock emulates SET NX PX against the in-memory map: expired locks
// are reclaimed lazily on the next acquire attempt.
func (n *noopValkeyCache) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if expiry, held := n.locks[key]; held && time.Now().Before(expiry) {
		return false, nil
	}
	n.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (n *noopValkeyCache) ReleaseLock(ctx context.Context, key string) error {
	n.mu.Lock()
	delete(n.locks, key)
	n.mu.Unlock()
	return nil
}

// HealthCheck returns an error to indicate no external cache connectivity.
func (n *noopValkeyCache) HealthCheck(ctx context.Context) error {
	return fmt.Errorf("result cache running in noop mode (external cache not connected)")
}
