package core

import "testing"

func TestMoneyFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{11.62, 1162},
		{15.2453333333333, 1525},
		{7.30888888888889, 731},
		{0, 0},
		{190.92, 19092},
		{-1.005, -100}, // float64(-1.005) sits just under the half cent
		{-1.006, -101},
	}
	for _, tt := range tests {
		if got := MoneyFromFloat(tt.in).Cents; got != tt.want {
			t.Errorf("MoneyFromFloat(%v) = %d cents, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRoundUnits(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{11.62, 12},
		{15.2453333333333, 15},
		{11.5, 12}, // half rounds up
		{11.49, 11},
		{11.4951, 11}, // below the half; rounding via cents would give 12
		{0, 0},
		{-11.5, -12},
	}
	for _, tt := range tests {
		if got := RoundUnits(tt.in); got != tt.want {
			t.Errorf("RoundUnits(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMoneyFloat(t *testing.T) {
	if got := (Money{Cents: 1162}).Float(); got != 11.62 {
		t.Errorf("Float() = %v, want 11.62", got)
	}
}

func TestFormatPesos(t *testing.T) {
	if got := FormatPesos(191); got != "$191" {
		t.Errorf("FormatPesos(191) = %q", got)
	}
}
