package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkaganm/balance-store/internal/api/httpx"
	"github.com/mkaganm/balance-store/internal/auth"
)

type AuthHandler struct {
	TM              *auth.TokenManager
	OperatorKeyHash string
}

func NewAuthHandler(tm *auth.TokenManager, operatorKeyHash string) *AuthHandler {
	return &AuthHandler{TM: tm, OperatorKeyHash: operatorKeyHash}
}

type tokenReq struct {
	OperatorKey string `json:"operator_key"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// Token exchanges the configured operator key for a bearer token that
// unlocks the mutating endpoint.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OperatorKey == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "operator_key required", nil)
		return
	}
	if h.OperatorKeyHash == "" {
		httpx.WriteError(w, http.StatusServiceUnavailable, "auth_disabled", "operator key not configured", nil)
		return
	}
	if err := auth.VerifyOperatorKey(req.OperatorKey, h.OperatorKeyHash); err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid operator key", nil)
		return
	}
	token, exp, err := h.TM.Generate("operator")
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "token generation failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{
		AccessToken: token,
		ExpiresIn:   int64(time.Until(exp).Seconds()),
	})
}
