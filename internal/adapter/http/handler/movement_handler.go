package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/cuentas/internal/adapter/http/dto"
	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/usecase"
)

// MovementService defines the behavior needed by MovementHandler.
type MovementService interface {
	CreateMovement(ctx context.Context, input usecase.CreateMovementInput) (*domain.Movement, error)
	GetMovement(ctx context.Context, id int64) (*domain.Movement, error)
	ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.Movement, error)
	ListMovementsByAccount(ctx context.Context, accountID int64) ([]*domain.Movement, error)
	UpdateMovement(ctx context.Context, input usecase.UpdateMovementInput) (*domain.Movement, error)
}

// MovementHandler handles movement-related HTTP requests.
type MovementHandler struct {
	movementUC MovementService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC MovementService) *MovementHandler {
	return &MovementHandler{movementUC: movementUC}
}

// Create posts a new movement to an account.
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.CreateMovement(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create movement", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// Get retrieves a movement by number.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		writeError(w, http.StatusBadRequest, "invalid movement number", "")
		return
	}

	movement, err := h.movementUC.GetMovement(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get movement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// List lists movements with pagination, newest first.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	movements, err := h.movementUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movimientos: dto.MovementsFromDomain(movements),
		Total:       int64(len(movements)),
	})
}

// ListByAccount lists an account's full history in ledger order.
func (h *MovementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := parseIDParam(r, "id")
	if accountID == 0 {
		writeError(w, http.StatusBadRequest, "invalid account number", "")
		return
	}

	movements, err := h.movementUC.ListMovementsByAccount(r.Context(), accountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list movements", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movimientos: dto.MovementsFromDomain(movements),
		Total:       int64(len(movements)),
	})
}

// Update edits a movement. Changing valor recomputes the movement's saldo
// and adjusts the account balance; changing numeroCuenta reassigns the
// movement to another account.
func (h *MovementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		writeError(w, http.StatusBadRequest, "invalid movement number", "")
		return
	}

	var req dto.UpdateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	movement, err := h.movementUC.UpdateMovement(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update movement", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}
