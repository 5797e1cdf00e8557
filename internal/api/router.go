package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mkaganm/balance-store/internal/api/handlers"
	"github.com/mkaganm/balance-store/internal/api/httpx"
	"github.com/mkaganm/balance-store/internal/api/validate"
	"github.com/mkaganm/balance-store/internal/config"
	"github.com/mkaganm/balance-store/internal/contract"
	"github.com/mkaganm/balance-store/internal/metrics"
	"github.com/mkaganm/balance-store/internal/middleware"
	"github.com/mkaganm/balance-store/internal/models"
	repo "github.com/mkaganm/balance-store/internal/repository"
	"github.com/mkaganm/balance-store/internal/services"
)

type balanceResp struct {
	ID            string    `json:"id"`
	Value         string    `json:"value"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

func toBalanceResp(b models.Balance) balanceResp {
	return balanceResp{
		ID:            b.InstanceID,
		Value:         b.ValueString(),
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

type operationResp struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	Amount    string    `json:"amount,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func writeSvcError(w http.ResponseWriter, err error) {
	var inv *contract.InvalidArgumentError
	switch {
	case errors.As(err, &inv):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_argument", inv.Error(), nil)
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "instance not found", nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "storage_error", "operation failed", nil)
	}
}

func NewRouter(cfg config.Config, bs *services.BalanceService, am *middleware.AuthMiddleware, ah *handlers.AuthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/token", ah.Token)

		// ---------- instances ----------
		// initialize: creates an instance with value 0
		r.Post("/instances", func(w http.ResponseWriter, r *http.Request) {
			b, err := bs.Initialize(r.Context())
			if err != nil {
				writeSvcError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusCreated, toBalanceResp(b))
		})

		// increase: mutating, operator token required.
		// amount_2 is accepted and ignored, kept for interface parity.
		r.With(am.Auth).Post("/instances/{id}/increase", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")

			var req struct {
				Amount  string `json:"amount"`
				Amount2 string `json:"amount_2"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
				return
			}

			var verrs validate.Errs
			if e := validate.Required("amount", req.Amount); e != nil {
				verrs = append(verrs, *e)
			}
			amount, e := validate.BigInt("amount", req.Amount)
			if e != nil {
				verrs = append(verrs, *e)
			}
			reserved, e := validate.BigInt("amount_2", req.Amount2)
			if e != nil {
				verrs = append(verrs, *e)
			}
			if len(verrs) > 0 {
				httpx.WriteError(w, http.StatusBadRequest, "invalid_argument", verrs.Error(), verrs)
				return
			}

			b, err := bs.Increase(r.Context(), id, amount, reserved)
			if err != nil {
				writeSvcError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, toBalanceResp(b))
		})

		// read: current balance
		r.Get("/instances/{id}/balance", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			b, err := bs.Read(r.Context(), id)
			if err != nil {
				writeSvcError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, toBalanceResp(b))
		})

		// operations: audit trail, oldest first
		r.Get("/instances/{id}/operations", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")

			limit := 50
			offset := 0
			if v := r.URL.Query().Get("limit"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					limit = n
				}
			}
			if v := r.URL.Query().Get("offset"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n >= 0 {
					offset = n
				}
			}

			logs, err := bs.Operations(r.Context(), id, limit, offset)
			if err != nil {
				writeSvcError(w, err)
				return
			}
			out := make([]operationResp, 0, len(logs))
			for _, l := range logs {
				out = append(out, operationResp{
					ID:        l.ID,
					Operation: string(l.Operation),
					Amount:    l.AmountString(),
					CreatedAt: l.CreatedAt,
				})
			}
			httpx.WriteJSON(w, http.StatusOK, out)
		})
	})

	return r
}
