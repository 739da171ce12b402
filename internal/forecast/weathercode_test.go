package forecast

import "testing"

func TestLookupCode_KnownCodes(t *testing.T) {
	tests := []struct {
		code      int
		wantLabel string
	}{
		{0, "Clear sky"},
		{2, "Partly cloudy"},
		{45, "Fog"},
		{55, "Dense drizzle"},
		{65, "Heavy rain"},
		{75, "Heavy snowfall"},
		{82, "Violent rain showers"},
		{95, "Thunderstorm"},
		{99, "Thunderstorm with heavy hail"},
	}
	for _, tt := range tests {
		info, ok := LookupCode(tt.code)
		if !ok {
			t.Errorf("LookupCode(%d) ok = false, want true", tt.code)
			continue
		}
		if info.Label != tt.wantLabel {
			t.Errorf("LookupCode(%d).Label = %q, want %q", tt.code, info.Label, tt.wantLabel)
		}
		if info.IconURL == "" {
			t.Errorf("LookupCode(%d).IconURL is empty", tt.code)
		}
	}
}

func TestLookupCode_UnknownCode(t *testing.T) {
	for _, code := range []int{-1, 4, 50, 999} {
		info, ok := LookupCode(code)
		if ok {
			t.Errorf("LookupCode(%d) ok = true, want false", code)
		}
		if info.Label != "" || info.IconURL != "" {
			t.Errorf("LookupCode(%d) = %+v, want zero value", code, info)
		}
	}
}
