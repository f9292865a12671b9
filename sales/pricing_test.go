package sales

import (
	"errors"
	"testing"
)

func TestPriceOrder(t *testing.T) {
	intp := func(n int) *int { return &n }

	tests := []struct {
		name        string
		unitPrice   float64
		quantity    float64
		useBottle   bool
		bottlesUsed *int
		bottlePrice float64
		wantTotal   float64
		wantBottles int
	}{
		{"no bottle", 40, 2, false, nil, 15, 80, 0},
		{"no bottle ignores explicit count", 40, 2, false, intp(5), 15, 80, 0},
		{"whole quantity", 40, 2, true, nil, 15, 110, 2},
		{"fractional rounds up", 40, 2.5, true, nil, 15, 145, 3},
		{"explicit count wins", 40, 2.5, true, intp(1), 15, 115, 1},
		{"explicit zero", 40, 2, true, intp(0), 15, 80, 0},
		{"free bottle", 40, 1, true, nil, 0, 40, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, bottles, err := priceOrder(tt.unitPrice, tt.quantity, tt.useBottle, tt.bottlesUsed, tt.bottlePrice)
			if err != nil {
				t.Fatalf("priceOrder: %v", err)
			}
			if total != tt.wantTotal || bottles != tt.wantBottles {
				t.Errorf("got total=%v bottles=%d, want total=%v bottles=%d",
					total, bottles, tt.wantTotal, tt.wantBottles)
			}
		})
	}
}

func TestPriceOrderNegativeBottles(t *testing.T) {
	n := -1
	_, _, err := priceOrder(40, 2, true, &n, 15)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("err = %v, want ErrInvalidQuantity", err)
	}
}
