package domain

import "testing"

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name      string
		numerator float64
		base      float64
		want      float64
		wantNil   bool
	}{
		{"commission simple", 50, 200, 25, false},
		{"arrondi 2 décimales", 33, 700, 4.71, false},
		{"base zéro = indéfini", 50, 0, 0, true},
		{"numérateur zéro", 0, 200, 0, false},
		{"plus de 100%", 300, 200, 150, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentOf(tt.numerator, tt.base)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("PercentOf(%v, %v) = %v, want nil", tt.numerator, tt.base, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("PercentOf(%v, %v) = nil, want %v", tt.numerator, tt.base, tt.want)
			}
			if *got != tt.want {
				t.Errorf("PercentOf(%v, %v) = %v, want %v", tt.numerator, tt.base, *got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{15.004, 15.0},
		{1.999, 2.0},
		{-3.456, -3.46},
		{27, 27},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOrZero(t *testing.T) {
	if got := OrZero(nil); got != 0 {
		t.Errorf("OrZero(nil) = %v, want 0", got)
	}
	v := 12.5
	if got := OrZero(&v); got != 12.5 {
		t.Errorf("OrZero(&12.5) = %v, want 12.5", got)
	}
}
