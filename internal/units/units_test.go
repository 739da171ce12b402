package units

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{"", Celsius, false},
		{"celsius", Celsius, false},
		{"Celsius", Celsius, false},
		{"c", Celsius, false},
		{"fahrenheit", Fahrenheit, false},
		{"  FAHRENHEIT  ", Fahrenheit, false},
		{"f", Fahrenheit, false},
		{"kelvin", "", true},
		{"degrees", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected error, got nil", tt.in)
			}
			if !errors.Is(err, ErrUnknownUnit) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknownUnit", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		celsius float64
		unit    Unit
		want    float64
	}{
		{20, Celsius, 20},
		{20, Fahrenheit, 68},
		{0, Fahrenheit, 32},
		{-40, Fahrenheit, -40},
		{100, Fahrenheit, 212},
	}
	for _, tt := range tests {
		if got := Convert(tt.celsius, tt.unit); got != tt.want {
			t.Errorf("Convert(%v, %s) = %v, want %v", tt.celsius, tt.unit, got, tt.want)
		}
	}
}

func TestFormatTemp(t *testing.T) {
	v := func(f float64) *float64 { return &f }

	tests := []struct {
		name    string
		celsius *float64
		unit    Unit
		want    string
	}{
		{"celsius passthrough", v(20), Celsius, "20.0"},
		{"fahrenheit conversion", v(20), Fahrenheit, "68.0"},
		{"one decimal rounding", v(21.67), Celsius, "21.7"},
		{"negative", v(-3.25), Celsius, "-3.2"},
		{"nil celsius", nil, Celsius, Placeholder},
		{"nil fahrenheit", nil, Fahrenheit, Placeholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTemp(tt.celsius, tt.unit); got != tt.want {
				t.Errorf("FormatTemp() = %q, want %q", got, tt.want)
			}
		})
	}
}
