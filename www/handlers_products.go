package www

import (
	"encoding/json"
	"log"
	"net/http"
)

func (h *Handlers) apiListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.db.ListProducts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, products)
}

func (h *Handlers) apiCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string   `json:"name"`
		UnitPrice *float64 `json:"unit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.UnitPrice == nil {
		writeError(w, http.StatusBadRequest, "name and unit_price required")
		return
	}

	p, err := h.db.CreateProduct(req.Name, *req.UnitPrice)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Price history is a best-effort side log; never fail the create on it.
	u, _ := h.sessions.getUser(r)
	if err := h.db.AppendPriceChange(p.ID, nil, p.UnitPrice, &u.ID, "initial"); err != nil {
		log.Printf("price history for product %d: %v", p.ID, err)
	}
	writeJSONStatus(w, http.StatusCreated, p)
}

func (h *Handlers) apiUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	var req struct {
		Name      string   `json:"name"`
		UnitPrice *float64 `json:"unit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UnitPrice == nil {
		writeError(w, http.StatusBadRequest, "name and unit_price required")
		return
	}

	existing, err := h.db.GetProduct(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	// Price-only updates keep the current name.
	if req.Name == "" {
		req.Name = existing.Name
	}

	p, err := h.db.UpdateProduct(id, req.Name, *req.UnitPrice)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	u, _ := h.sessions.getUser(r)
	oldPrice := existing.UnitPrice
	if err := h.db.AppendPriceChange(id, &oldPrice, *req.UnitPrice, &u.ID, "update"); err != nil {
		log.Printf("price history for product %d: %v", id, err)
	}
	writeJSON(w, p)
}

func (h *Handlers) apiDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	ok, err := h.db.DeleteProduct(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

func (h *Handlers) apiProductPriceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	history, err := h.db.ListPriceHistory(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, history)
}
