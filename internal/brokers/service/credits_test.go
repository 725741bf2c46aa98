package service

import "testing"

func TestBonusCredits(t *testing.T) {
	tests := []struct {
		amount int64
		want   int64
	}{
		{10, 0},
		{99, 0},
		{100, 10},
		{249, 10},
		{250, 30},
		{499, 30},
		{500, 75},
		{999, 75},
		{1000, 200},
		{5000, 200},
	}
	for _, tt := range tests {
		if got := bonusCredits(tt.amount); got != tt.want {
			t.Errorf("bonusCredits(%d) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}
