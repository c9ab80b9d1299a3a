package services

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want string
	}{
		{"minutes and seconds", "PT3M33S", "3m 33s"},
		{"hours minutes seconds", "PT1H2M3S", "1h 2m 3s"},
		{"seconds only", "PT45S", "45s"},
		{"minutes only", "PT10M", "10m "},
		{"hours only", "PT2H", "2h "},
		{"empty input", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDuration(tc.iso); got != tc.want {
				t.Errorf("FormatDuration(%q) = %q, want %q", tc.iso, got, tc.want)
			}
		})
	}
}
