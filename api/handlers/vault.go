package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/api/types"
	vaulttypes "github.com/openalpha/piggy-vault/x/vault/types"
)

// VaultHandler handles vault API requests.
type VaultHandler struct {
	service types.VaultService
}

// NewVaultHandler creates a new VaultHandler.
func NewVaultHandler(svc types.VaultService) *VaultHandler {
	return &VaultHandler{service: svc}
}

// stakeRequest is the body for POST /v1/vault/stake.
type stakeRequest struct {
	Account  string `json:"account"`
	Amount   string `json:"amount"`
	Duration int64  `json:"duration"`
}

// unstakeRequest is the body for POST /v1/vault/unstake and /claim.
type indexRequest struct {
	Account string `json:"account"`
	Index   int    `json:"index"`
}

// depositRequest is the body for POST /v1/vault/deposit.
type depositRequest struct {
	Account  string `json:"account"`
	Amount   string `json:"amount"`
	Duration int64  `json:"duration"`
	SafeMode bool   `json:"safe_mode"`
}

// fundRequest is the body for POST /v1/vault/fund-rewards.
type fundRequest struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
}

// GetPools handles GET /v1/vault/pools
func (h *VaultHandler) GetPools(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}
	pools, err := h.service.GetPools()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pools": pools,
		"total": len(pools),
	})
}

// Stake handles POST /v1/vault/stake
func (h *VaultHandler) Stake(w http.ResponseWriter, r *http.Request) {
	var req stakeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	result, err := h.service.Stake(req.Account, amount, req.Duration)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Unstake handles POST /v1/vault/unstake
func (h *VaultHandler) Unstake(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.service.Unstake(req.Account, req.Index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Deposit handles POST /v1/vault/deposit
func (h *VaultHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	result, err := h.service.Deposit(req.Account, amount, req.Duration, req.SafeMode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Claim handles POST /v1/vault/claim
func (h *VaultHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := h.service.Claim(req.Account, req.Index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// FundRewards handles POST /v1/vault/fund-rewards
func (h *VaultHandler) FundRewards(w http.ResponseWriter, r *http.Request) {
	var req fundRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	if err := h.service.FundRewards(req.Caller, amount); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"funded": amount.String(),
	})
}

// HandleUserRoutes dispatches GET /v1/vault/user/{account}/... sub-routes.
func (h *VaultHandler) HandleUserRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/v1/vault/user/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" {
		writeError(w, http.StatusNotFound, "not_found", "unknown user route")
		return
	}
	account := parts[0]

	switch {
	case len(parts) == 2 && parts[1] == "stakes":
		stakes, err := h.service.GetUserStakes(account)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"stakes": stakes, "total": len(stakes)})

	case len(parts) == 2 && parts[1] == "piggies":
		piggies, err := h.service.GetUserPiggies(account)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"piggies": piggies, "total": len(piggies)})

	case len(parts) == 4 && parts[1] == "piggies" && parts[3] == "value":
		index, err := strconv.Atoi(parts[2])
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid piggy index")
			return
		}
		value, err := h.service.GetPiggyValue(account, index)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, value)

	case len(parts) == 4 && parts[1] == "stakes" && parts[3] == "interest":
		index, err := strconv.Atoi(parts[2])
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid stake index")
			return
		}
		estimate, err := h.service.EstimateStakeInterest(account, index)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, estimate)

	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown user route")
	}
}

// decodeBody decodes a POST JSON body, writing the error response itself on
// failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// parseAmount parses a decimal-string amount.
func parseAmount(w http.ResponseWriter, s string) (math.Int, bool) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid amount: "+s)
		return math.ZeroInt(), false
	}
	return amount, true
}

// writeServiceError maps ledger error kinds onto HTTP statuses, preserving
// the wrapped detail (amounts involved) in the message.
func writeServiceError(w http.ResponseWriter, err error) {
	code := "internal_error"
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, vaulttypes.ErrNotFound):
		code, status = "not_found", http.StatusNotFound
	case errors.Is(err, vaulttypes.ErrInvalidDuration),
		errors.Is(err, vaulttypes.ErrInvalidAmount):
		code, status = "bad_request", http.StatusBadRequest
	case errors.Is(err, vaulttypes.ErrUnauthorized):
		code, status = "unauthorized", http.StatusForbidden
	case errors.Is(err, vaulttypes.ErrAlreadyClaimed),
		errors.Is(err, vaulttypes.ErrLockNotEnded),
		errors.Is(err, vaulttypes.ErrPoolFull),
		errors.Is(err, vaulttypes.ErrUnderfundedPool),
		errors.Is(err, vaulttypes.ErrWalletCapExceeded),
		errors.Is(err, vaulttypes.ErrInsufficientBalance):
		code, status = "conflict", http.StatusConflict
	case errors.Is(err, vaulttypes.ErrSwapFailed),
		errors.Is(err, vaulttypes.ErrBadAllocation):
		code, status = "swap_failed", http.StatusBadGateway
	}
	writeError(w, status, code, err.Error())
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}
