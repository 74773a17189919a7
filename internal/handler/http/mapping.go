package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/mapping"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	mappingService "github.com/cmlabs-hris/payroll-engine-go/internal/service/mapping"
	"github.com/go-chi/chi/v5"
)

type MappingHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type mappingHandlerImpl struct {
	mappingService *mappingService.Service
}

func NewMappingHandler(service *mappingService.Service) MappingHandler {
	return &mappingHandlerImpl{mappingService: service}
}

func (h *mappingHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req mapping.CreateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.mappingService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll mapping created", result)
}

func (h *mappingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.mappingService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *mappingHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req mapping.UpdateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.mappingService.Update(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}

func (h *mappingHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.mappingService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}
