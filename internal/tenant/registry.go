package tenant

import (
	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/config"
)

// Registry is the static, read-only table of configured tenants. It is built
// once at startup from configuration and never mutated afterwards.
type Registry struct {
	order   []string
	entries map[string]config.TenantEntry
}

// NewRegistry builds a registry from the configured tenant table
func NewRegistry(tenants []config.TenantEntry) *Registry {
	r := &Registry{
		entries: make(map[string]config.TenantEntry, len(tenants)),
	}
	for _, t := range tenants {
		if _, ok := r.entries[t.TenantID]; ok {
			continue
		}
		r.order = append(r.order, t.TenantID)
		r.entries[t.TenantID] = t
	}
	return r
}

// Resolve looks up a tenant's credentials by id
func (r *Registry) Resolve(tenantID string) (*config.TenantEntry, error) {
	entry, ok := r.entries[tenantID]
	if !ok {
		return nil, apperr.New(apperr.UnknownTenant, "tenant "+tenantID+" is not configured")
	}
	return &entry, nil
}

// All returns every configured tenant id in declaration order. The fixed order
// makes cross-tenant searches deterministic.
func (r *Registry) All() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
