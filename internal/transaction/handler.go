// AngelaMos | 2026
// handler.go

package transaction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/ledger-backend/internal/core"
	"github.com/angelamos/ledger-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/transactions", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{transactionID}", h.Get)
		r.Put("/{transactionID}", h.Update)
		r.Delete("/{transactionID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListParams{
		StartDate:       q.Get("start_date"),
		EndDate:         q.Get("end_date"),
		TransactionType: q.Get("transaction_type"),
	}

	if err := h.validator.Var(
		params.TransactionType,
		"omitempty,oneof=DEPOSIT WITHDRAW",
	); err != nil {
		core.BadRequest(w, "transaction_type must be one of: DEPOSIT WITHDRAW")
		return
	}

	txs, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()), params)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToTransactionResponseList(txs))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tx, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToTransactionResponse(tx))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.service.Get(
		r.Context(),
		chi.URLParam(r, "transactionID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToTransactionResponse(tx))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	tx, err := h.service.Update(
		r.Context(),
		chi.URLParam(r, "transactionID"),
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToTransactionResponse(tx))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	tx, err := h.service.Delete(
		r.Context(),
		chi.URLParam(r, "transactionID"),
		middleware.GetUserID(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToTransactionResponse(tx))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		core.BadRequest(w, ErrInvalidDate.Error())
	case errors.Is(err, ErrAccountNotFound):
		core.NotFound(w, "account")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "transaction")
	default:
		core.InternalServerError(w, err)
	}
}
