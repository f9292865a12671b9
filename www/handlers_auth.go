package www

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func (h *Handlers) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		// Role is optional: the client may insist on logging in as a
		// specific role and is rejected if the account has another one.
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	user, err := h.db.GetUserByUsername(req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil || !checkPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if req.Role != "" && user.Role != req.Role {
		writeError(w, http.StatusForbidden,
			fmt.Sprintf("Invalid role: user is %s, not %s", user.Role, req.Role))
		return
	}

	h.sessions.setUser(w, r, user)
	writeJSON(w, map[string]interface{}{
		"ok":   true,
		"user": sessionUser{ID: user.ID, Username: user.Username, Role: user.Role},
	})
}

func (h *Handlers) apiWhoami(w http.ResponseWriter, r *http.Request) {
	u, ok := h.sessions.getUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	writeJSON(w, map[string]interface{}{"user": u})
}

func (h *Handlers) apiLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.clear(w, r)
	writeJSON(w, map[string]bool{"ok": true})
}
