package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/cuentas/internal/adapter/http/dto"
	"github.com/iho/cuentas/internal/domain"
	"github.com/iho/cuentas/internal/usecase"
)

const dateLayout = "2006-01-02"

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GenerateReport(ctx context.Context, input usecase.GenerateReportInput) (*domain.Report, error)
}

// ReportHandler handles statement report requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Generate builds the statement report for a client over a date range.
// Query parameters: clienteId, fechaInicio, fechaFin (YYYY-MM-DD).
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := time.Parse(dateLayout, query.Get("fechaInicio"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fechaInicio", "expected YYYY-MM-DD")
		return
	}

	to, err := time.Parse(dateLayout, query.Get("fechaFin"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fechaFin", "expected YYYY-MM-DD")
		return
	}

	report, err := h.reportUC.GenerateReport(r.Context(), usecase.GenerateReportInput{
		ClientID: query.Get("clienteId"),
		From:     from,
		To:       to,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate report", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}
