package sales

import "math"

// priceOrder computes an order total and the effective bottle count.
//
// The base amount is unitPrice × quantity. When a bottle is used, the count
// is the explicit one when supplied (negative rejected), otherwise the
// quantity rounded up to a whole bottle, and bottlePrice × count is added.
func priceOrder(unitPrice, quantity float64, useBottle bool, bottlesUsed *int, bottlePrice float64) (total float64, bottles int, err error) {
	total = unitPrice * quantity
	if !useBottle {
		return total, 0, nil
	}
	if bottlesUsed != nil {
		if *bottlesUsed < 0 {
			return 0, 0, ErrInvalidQuantity
		}
		bottles = *bottlesUsed
	} else {
		bottles = int(math.Ceil(quantity))
	}
	total += bottlePrice * float64(bottles)
	return total, bottles, nil
}
