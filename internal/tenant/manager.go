package tenant

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/config"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/logger"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/prometheus"
)

// OpenFunc opens and initializes a database connection for one tenant. It must
// only return once the connection is usable (dialed, authenticated, schema in
// place when migration is enabled).
type OpenFunc func(ctx context.Context, entry *config.TenantEntry) (*gorm.DB, error)

// conn is one live tenant connection held by the cache
type conn struct {
	db          *gorm.DB
	initialized bool
}

// Manager owns the process-wide cache of tenant database connections. A
// connection is opened lazily on the first request for its tenant and reused
// for the life of the process. Concurrent first requests for the same tenant
// collapse into a single initialization via singleflight.
type Manager struct {
	registry *Registry
	open     OpenFunc
	sfg      singleflight.Group

	mu    sync.RWMutex
	conns map[string]*conn
}

// NewManager creates a manager backed by the given registry and database
// configuration, opening real GORM connections.
func NewManager(registry *Registry, dbCfg *config.DBConfig) *Manager {
	return &Manager{
		registry: registry,
		open:     gormOpener(dbCfg),
		conns:    make(map[string]*conn),
	}
}

// NewManagerWithOpener creates a manager with a custom open function. Used by
// tests to substitute the database handshake.
func NewManagerWithOpener(registry *Registry, open OpenFunc) *Manager {
	return &Manager{
		registry: registry,
		open:     open,
		conns:    make(map[string]*conn),
	}
}

// Get returns the live connection for tenantID, opening one on first use.
// Cached initialized connections are returned without any new handshake. A
// failed handshake leaves the cache without an entry so a later call can retry.
func (m *Manager) Get(ctx context.Context, tenantID string) (*gorm.DB, error) {
	entry, err := m.registry.Resolve(tenantID)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	if c, ok := m.conns[tenantID]; ok && c.initialized {
		m.mu.RUnlock()
		return c.db, nil
	}
	m.mu.RUnlock()

	v, err, _ := m.sfg.Do(tenantID, func() (interface{}, error) {
		// Double-check after the singleflight barrier: a concurrent caller may
		// have completed the handshake while this one was waiting.
		m.mu.RLock()
		if c, ok := m.conns[tenantID]; ok && c.initialized {
			m.mu.RUnlock()
			return c.db, nil
		}
		m.mu.RUnlock()

		db, err := m.open(ctx, entry)
		if err != nil {
			prometheus.TenantConnectErrorCounter.WithLabelValues(tenantID).Inc()
			logger.FromContext(ctx).Error("failed to open tenant connection",
				zap.String("tenant_id", tenantID),
				zap.Error(err))
			return nil, apperr.Wrap(apperr.ConnectionFailure,
				"could not connect to database for tenant "+tenantID, err)
		}

		m.mu.Lock()
		m.conns[tenantID] = &conn{db: db, initialized: true}
		size := len(m.conns)
		m.mu.Unlock()

		prometheus.TenantConnectCounter.WithLabelValues(tenantID).Inc()
		prometheus.ActiveTenantConnections.Set(float64(size))
		logger.FromContext(ctx).Info("tenant connection established",
			zap.String("tenant_id", tenantID))
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gorm.DB), nil
}

// Shutdown closes every cached connection and clears the cache. Safe to call
// more than once; a second call finds an empty cache.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	conns := m.conns
	m.conns = make(map[string]*conn)
	m.mu.Unlock()

	for tenantID, c := range conns {
		if !c.initialized {
			continue
		}
		sqlDB, err := c.db.DB()
		if err != nil {
			continue
		}
		if err := sqlDB.Close(); err != nil {
			logger.GetLogger().Warn("error closing tenant connection",
				zap.String("tenant_id", tenantID),
				zap.Error(err))
		}
	}
	prometheus.ActiveTenantConnections.Set(0)
}
