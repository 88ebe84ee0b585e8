package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/cuentas/internal/adapter/http/dto"
	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	ListAccountsByClient(ctx context.Context, clientID string) ([]*domain.Account, error)
	AccountIDsByClient(ctx context.Context, clientID string) ([]int64, error)
	UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create account", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by number.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		writeError(w, http.StatusBadRequest, "invalid account number", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts. A clienteId query parameter narrows the listing to
// one client's accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	if clientID := r.URL.Query().Get("clienteId"); clientID != "" {
		accounts, err := h.accountUC.ListAccountsByClient(r.Context(), clientID)
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to list accounts", err.Error())

			return
		}

		writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
			Cuentas: dto.AccountsFromDomain(accounts),
			Total:   int64(len(accounts)),
		})

		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Cuentas: dto.AccountsFromDomain(accounts),
		Total:   int64(len(accounts)),
	})
}

// ListByClient lists all accounts owned by the client in the URL.
func (h *AccountHandler) ListByClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clienteId")

	accounts, err := h.accountUC.ListAccountsByClient(r.Context(), clientID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list accounts", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Cuentas: dto.AccountsFromDomain(accounts),
		Total:   int64(len(accounts)),
	})
}

// ClientAccountIDs returns just the account numbers owned by a client. The
// clients microservice uses this to resolve ownership without pulling full
// account payloads.
func (h *AccountHandler) ClientAccountIDs(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clienteId")

	ids, err := h.accountUC.AccountIDsByClient(r.Context(), clientID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list account ids", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, ids)
}

// Update updates an account's descriptive fields.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		writeError(w, http.StatusBadRequest, "invalid account number", "")
		return
	}

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
