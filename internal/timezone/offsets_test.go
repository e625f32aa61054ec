package timezone

import "testing"

func TestResolveOffsetKnownLabels(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Europe/London", 1},
		{"Europe/Paris", 2},
		{"Europe/Berlin", 2},
		{"Africa/Cairo", 3},
		{"Europe/Moscow", 4},
		{"Asia/Dubai", 5},
		{"Asia/Karachi", 6},
		{"Asia/Bangkok", 7},
		{"Asia/Shanghai", 8},
		{"Asia/Tokyo", 9},
		{"Australia/Sydney", 10},
		{"Pacific/Auckland", 12},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ResolveOffset(tt.label); got != tt.want {
				t.Errorf("ResolveOffset(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestResolveOffsetUnknownLabels(t *testing.T) {
	// Anything outside the table resolves to 0, silently.
	tests := []string{
		"",
		"America/New_York",
		"europe/london", // case-sensitive, no normalization
		"Europe/London ",
		"Etc/GMT+5",
		"garbage",
		"Europe/Londön",
	}

	for _, label := range tests {
		if got := ResolveOffset(label); got != 0 {
			t.Errorf("ResolveOffset(%q) = %d, want 0", label, got)
		}
	}
}

func TestKnownLabelsCoversTable(t *testing.T) {
	labels := KnownLabels()
	if len(labels) != 12 {
		t.Fatalf("KnownLabels() returned %d labels, want 12", len(labels))
	}
	for _, label := range labels {
		if ResolveOffset(label) == 0 {
			t.Errorf("label %q is in KnownLabels but resolves to 0", label)
		}
	}
}

func TestRegionAndCityFromLabel(t *testing.T) {
	tests := []struct {
		label  string
		region string
		city   string
	}{
		{"Asia/Tokyo", "Asia", "Tokyo"},
		{"Pacific/Auckland", "Pacific", "Auckland"},
		{"America/New_York", "America", "New York"},
		{"UTC", "UTC", "UTC"},
	}

	for _, tt := range tests {
		if got := RegionFromLabel(tt.label); got != tt.region {
			t.Errorf("RegionFromLabel(%q) = %q, want %q", tt.label, got, tt.region)
		}
		if got := CityFromLabel(tt.label); got != tt.city {
			t.Errorf("CityFromLabel(%q) = %q, want %q", tt.label, got, tt.city)
		}
	}
}
