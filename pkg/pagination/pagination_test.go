package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		name                    string
		limit, def, max, expect int
	}{
		{name: "zero uses default", limit: 0, def: 2000, max: 5000, expect: 2000},
		{name: "negative uses default", limit: -5, def: 2000, max: 5000, expect: 2000},
		{name: "in range kept", limit: 300, def: 2000, max: 5000, expect: 300},
		{name: "above max clamped", limit: 9000, def: 2000, max: 5000, expect: 5000},
		{name: "zero bounds use package defaults", limit: 0, def: 0, max: 0, expect: DefaultLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLimit(tt.limit, tt.def, tt.max); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestNormalizeOffsetAndNext(t *testing.T) {
	if got := NormalizeOffset(-10); got != 0 {
		t.Fatalf("negative offset should clamp to 0, got %d", got)
	}

	page := Normalize(Page{Limit: 500, Offset: 1000}, 500, 5000)
	if page.NextOffset() != 1500 {
		t.Fatalf("expected next offset 1500, got %d", page.NextOffset())
	}
}
