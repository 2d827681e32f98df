package model

import "testing"

func TestTenantIDListScan(t *testing.T) {
	cases := []struct {
		name string
		raw  interface{}
		want []string
	}{
		{"plain", "empresa1,empresa2", []string{"empresa1", "empresa2"}},
		{"whitespace and empties", "empresa1, empresa2,,empresa3", []string{"empresa1", "empresa2", "empresa3"}},
		{"bytes", []byte("empresa1"), []string{"empresa1"}},
		{"empty string", "", nil},
		{"nil", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var list TenantIDList
			if err := list.Scan(tc.raw); err != nil {
				t.Fatalf("Scan(%v): %v", tc.raw, err)
			}
			if len(list) != len(tc.want) {
				t.Fatalf("Scan(%v) = %v, want %v", tc.raw, list, tc.want)
			}
			for i := range tc.want {
				if list[i] != tc.want[i] {
					t.Errorf("list[%d] = %q, want %q", i, list[i], tc.want[i])
				}
			}
		})
	}
}

func TestTenantIDListScanRejectsUnsupportedType(t *testing.T) {
	var list TenantIDList
	if err := list.Scan(42); err == nil {
		t.Error("Scan(int) returned nil error")
	}
}

func TestTenantIDListValue(t *testing.T) {
	v, err := TenantIDList{"empresa1", "empresa2"}.Value()
	if err != nil {
		t.Fatal(err)
	}
	if v != "empresa1,empresa2" {
		t.Errorf("Value() = %v, want empresa1,empresa2", v)
	}
}

func TestTenantIDListContains(t *testing.T) {
	list := TenantIDList{"empresa1", "empresa2"}
	if !list.Contains("empresa2") {
		t.Error("Contains(empresa2) = false")
	}
	if list.Contains("empresa9") {
		t.Error("Contains(empresa9) = true")
	}
	if (TenantIDList)(nil).Contains("empresa1") {
		t.Error("nil list Contains = true")
	}
}
