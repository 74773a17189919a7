package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/export"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	exportService "github.com/cmlabs-hris/payroll-engine-go/internal/service/export"
	"github.com/go-chi/chi/v5"
)

type ExportHandler interface {
	Validate(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	ListByPeriod(w http.ResponseWriter, r *http.Request)
	Void(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	UnlockTimesheet(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	exportService *exportService.Service
}

func NewExportHandler(service *exportService.Service) ExportHandler {
	return &exportHandlerImpl{exportService: service}
}

// Validate runs a dry-run validation so payroll staff can review
// findings before generating.
func (h *exportHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	payPeriodID := chi.URLParam(r, "id")

	result, err := h.exportService.ValidateExport(r.Context(), payPeriodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *exportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req export.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PayPeriodID = chi.URLParam(r, "id")

	result, err := h.exportService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll export generated", result)
}

func (h *exportHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	payPeriodID := chi.URLParam(r, "id")

	result, err := h.exportService.ListByPeriod(r.Context(), payPeriodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *exportHandlerImpl) Void(w http.ResponseWriter, r *http.Request) {
	var req export.VoidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ExportID = chi.URLParam(r, "id")

	result, err := h.exportService.Void(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *exportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	exportID := chi.URLParam(r, "id")

	result, err := h.exportService.DownloadURL(r.Context(), exportID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *exportHandlerImpl) UnlockTimesheet(w http.ResponseWriter, r *http.Request) {
	var req export.UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.TimesheetID = chi.URLParam(r, "id")

	if err := h.exportService.UnlockTimesheet(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}
