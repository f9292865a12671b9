package www

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"aquapos/sales"
	"aquapos/store"
)

func (h *Handlers) apiListOrders(w http.ResponseWriter, r *http.Request) {
	u, _ := h.sessions.getUser(r)
	date := r.URL.Query().Get("date")

	// Admins see all orders; regular users only their own.
	var userID *int64
	if u.Role != store.RoleAdmin {
		userID = &u.ID
	}
	orders, err := h.db.ListSales(date, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, orders)
}

func (h *Handlers) apiCreateOrder(w http.ResponseWriter, r *http.Request) {
	u, _ := h.sessions.getUser(r)
	var req struct {
		ProductID     int64   `json:"product_id"`
		Quantity      float64 `json:"quantity"`
		PaymentMethod string  `json:"payment_method"`
		OrderDate     string  `json:"order_date"`
		UseBottle     bool    `json:"use_bottle"`
		BottlesUsed   *int    `json:"bottles_used"`
		BottlePrice   float64 `json:"bottle_price"`
	}
	req.Quantity = 1
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	sale, err := h.salesMgr.PlaceOrder(sales.PlaceOrderRequest{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		PaymentMethod: req.PaymentMethod,
		OrderDate:     req.OrderDate,
		CreatedBy:     &u.ID,
		UseBottle:     req.UseBottle,
		BottlesUsed:   req.BottlesUsed,
		BottlePrice:   req.BottlePrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrProductNotFound):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, sales.ErrInvalidQuantity),
			errors.Is(err, sales.ErrInvalidOrderDate),
			errors.Is(err, sales.ErrInsufficientStock),
			errors.Is(err, sales.ErrInsufficientBottleStock):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create order")
		}
		return
	}
	writeJSON(w, sale)
}

func (h *Handlers) apiDailySummary(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	summary, err := h.db.GetDailySummary(date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, summary)
}
