package sales

// PlaceOrderRequest carries one order through the coordinator.
type PlaceOrderRequest struct {
	ProductID     int64
	Quantity      float64
	PaymentMethod string
	// OrderDate is optional: "YYYY-MM-DD" or an ISO datetime. Empty means now.
	OrderDate string
	// CreatedBy attributes the sale to a user.
	CreatedBy *int64
	// UseBottle charges and (when a container SKU exists) decrements a bottle
	// per unit sold, rounded up, unless BottlesUsed overrides the count.
	UseBottle   bool
	BottlesUsed *int
	BottlePrice float64
}

// SaleMessage is the outbound event enqueued after a committed sale.
type SaleMessage struct {
	SaleUUID      string  `json:"sale_uuid"`
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      float64 `json:"quantity"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"payment_method"`
	BottlesUsed   int     `json:"bottles_used"`
	Timestamp     string  `json:"timestamp"`
}
