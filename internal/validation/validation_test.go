package validation

import (
	"errors"
	"testing"
)

func TestValidateCity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minLen  int
		maxLen  int
		want    string
		wantErr error
	}{
		{
			name:    "empty",
			input:   "",
			wantErr: ErrCityEmpty,
		},
		{
			name:    "whitespace only",
			input:   "   \t ",
			wantErr: ErrCityEmpty,
		},
		{
			name:  "simple city",
			input: "London",
			want:  "London",
		},
		{
			name:  "trims surrounding whitespace",
			input: "  New York  ",
			want:  "New York",
		},
		{
			name:  "unicode letters",
			input: "Zürich",
			want:  "Zürich",
		},
		{
			name:  "punctuation in names",
			input: "Val-d'Or, Quebec",
			want:  "Val-d'Or, Quebec",
		},
		{
			name:    "too short",
			input:   "A",
			minLen:  2,
			wantErr: ErrCityTooShort,
		},
		{
			name:    "too long",
			input:   "Llanfairpwllgwyngyll",
			maxLen:  10,
			wantErr: ErrCityTooLong,
		},
		{
			name:    "disallowed characters",
			input:   "London<script>",
			wantErr: ErrCityInvalidChars,
		},
		{
			name:    "path traversal",
			input:   "../etc/passwd",
			wantErr: ErrCityInvalidChars,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCity(tt.input, tt.minLen, tt.maxLen)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateCity(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateCity(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateCity(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	for _, err := range []error{ErrCityEmpty, ErrCityTooShort, ErrCityTooLong, ErrCityInvalidChars} {
		if !IsValidationError(err) {
			t.Errorf("IsValidationError(%v) = false, want true", err)
		}
	}
	if IsValidationError(errors.New("other")) {
		t.Error("IsValidationError(other) = true, want false")
	}
	if IsValidationError(nil) {
		t.Error("IsValidationError(nil) = true, want false")
	}
}
