package www

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// --- Inventory ---

func (h *Handlers) apiListStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.db.ListInventory()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, items)
}

func (h *Handlers) apiCreateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64   `json:"product_id"`
		Quantity  float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	rec, err := h.db.SetInventory(req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSONStatus(w, http.StatusCreated, rec)
}

func (h *Handlers) apiUpdateStock(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	var req struct {
		Quantity *float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "invalid quantity")
		return
	}
	rec, err := h.db.SetInventory(productID, *req.Quantity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, rec)
}

func (h *Handlers) apiDeleteStock(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	ok, err := h.db.DeleteInventory(productID)
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

// --- Sources (tanks) ---

func (h *Handlers) apiListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.db.ListSources()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, sources)
}

func (h *Handlers) apiCreateSource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string  `json:"name"`
		Unit     string  `json:"unit"`
		Quantity float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if req.Unit == "" {
		req.Unit = "L"
	}
	s, err := h.db.CreateSource(req.Name, req.Unit, req.Quantity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSONStatus(w, http.StatusCreated, s)
}

func (h *Handlers) apiUpdateSource(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "sourceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid source ID")
		return
	}
	var req struct {
		Name     *string  `json:"name"`
		Unit     *string  `json:"unit"`
		Quantity *float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	s, err := h.db.UpdateSource(id, req.Name, req.Unit, req.Quantity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, s)
}

func (h *Handlers) apiDeleteSource(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "sourceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid source ID")
		return
	}
	ok, err := h.db.DeleteSource(id)
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

// --- Product -> source mappings ---

func (h *Handlers) apiListProductSources(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.db.ListProductSources()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, mappings)
}

func (h *Handlers) apiSetProductSource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int64   `json:"product_id"`
		SourceID  int64   `json:"source_id"`
		Factor    float64 `json:"factor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 || req.SourceID == 0 {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Factor == 0 {
		req.Factor = 1
	}
	rec, err := h.db.SetProductSource(req.ProductID, req.SourceID, req.Factor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSONStatus(w, http.StatusCreated, rec)
}

func (h *Handlers) apiDeleteProductSource(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	ok, err := h.db.DeleteProductSource(productID)
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

// --- Movements (audit) ---

func (h *Handlers) apiListMovements(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}
	kind := r.URL.Query().Get("kind")
	var refID *int64
	if s := r.URL.Query().Get("ref_id"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			refID = &v
		}
	}
	movements, err := h.db.ListMovements(limit, kind, refID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, movements)
}
