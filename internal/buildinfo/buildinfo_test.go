package buildinfo

import "testing"

func TestShortAndLong(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	tests := []struct {
		version, commit, date string
		short, long           string
	}{
		{"dev", "unknown", "unknown", "dev", "dev"},
		{"dev", "3f2a9c1", "unknown", "3f2a9c1", "dev (3f2a9c1)"},
		{"v1.2.0", "3f2a9c1", "2026-10-01", "v1.2.0", "v1.2.0 (3f2a9c1, 2026-10-01)"},
		{"v1.2.0", "unknown", "2026-10-01", "v1.2.0", "v1.2.0 (2026-10-01)"},
	}
	for _, tt := range tests {
		Version, Commit, Date = tt.version, tt.commit, tt.date
		if got := Short(); got != tt.short {
			t.Errorf("Short() = %q, want %q", got, tt.short)
		}
		if got := Long(); got != tt.long {
			t.Errorf("Long() = %q, want %q", got, tt.long)
		}
	}
}
