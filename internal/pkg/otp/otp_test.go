package otp

import (
	"strconv"
	"testing"
)

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name    string
		digits  int
		wantErr bool
	}{
		{name: "TooShort", digits: 3, wantErr: true},
		{name: "TooLong", digits: 11, wantErr: true},
		{name: "Min", digits: 4},
		{name: "Default", digits: DefaultDigits},
		{name: "Max", digits: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.digits)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGenerator(%d) error = %v, wantErr %v", tt.digits, err, tt.wantErr)
			}
		})
	}
}

func TestGenerator_Generate(t *testing.T) {
	g, err := NewGenerator(6)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}

	for range 100 {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("Generate() = %q, want 6 digits", code)
		}
		if _, err := strconv.Atoi(code); err != nil {
			t.Fatalf("Generate() = %q, want numeric", code)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "Equal", a: "123456", b: "123456", want: true},
		{name: "Different", a: "123456", b: "654321", want: false},
		{name: "LengthMismatch", a: "123456", b: "12345", want: false},
		{name: "Empty", a: "", b: "", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.a, tt.b); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
