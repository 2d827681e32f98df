package tenant

import (
	"testing"

	"github.com/Pedrosandoval2/mini-sivesoft-backend/internal/apperr"
	"github.com/Pedrosandoval2/mini-sivesoft-backend/pkg/config"
)

func testTenants() []config.TenantEntry {
	return []config.TenantEntry{
		{TenantID: "empresa1", DBName: "db1", User: "u", Password: "p"},
		{TenantID: "empresa2", DBName: "db2", User: "u", Password: "p"},
		{TenantID: "empresa3", DBName: "db3", User: "u", Password: "p"},
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry(testTenants())

	entry, err := r.Resolve("empresa2")
	if err != nil {
		t.Fatalf("Resolve(empresa2) returned error: %v", err)
	}
	if entry.DBName != "db2" {
		t.Errorf("Resolve(empresa2) DBName = %q, want db2", entry.DBName)
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	r := NewRegistry(testTenants())

	_, err := r.Resolve("empresa9")
	if err == nil {
		t.Fatal("Resolve(empresa9) returned nil error")
	}
	if apperr.KindOf(err) != apperr.UnknownTenant {
		t.Errorf("Resolve(empresa9) kind = %v, want UnknownTenant", apperr.KindOf(err))
	}
}

func TestRegistryAllPreservesOrder(t *testing.T) {
	r := NewRegistry(testTenants())

	all := r.All()
	want := []string{"empresa1", "empresa2", "empresa3"}
	if len(all) != len(want) {
		t.Fatalf("All() returned %d tenants, want %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i] != id {
			t.Errorf("All()[%d] = %q, want %q", i, all[i], id)
		}
	}
}

func TestRegistrySkipsDuplicates(t *testing.T) {
	tenants := append(testTenants(), config.TenantEntry{TenantID: "empresa1", DBName: "other"})
	r := NewRegistry(tenants)

	if len(r.All()) != 3 {
		t.Errorf("All() returned %d tenants, want 3", len(r.All()))
	}
	entry, err := r.Resolve("empresa1")
	if err != nil {
		t.Fatal(err)
	}
	if entry.DBName != "db1" {
		t.Errorf("duplicate overrode first entry: DBName = %q, want db1", entry.DBName)
	}
}
