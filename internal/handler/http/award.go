package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/award"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	awardService "github.com/cmlabs-hris/payroll-engine-go/internal/service/award"
)

type AwardHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetCurrent(w http.ResponseWriter, r *http.Request)
}

type awardHandlerImpl struct {
	awardService *awardService.Service
}

func NewAwardHandler(service *awardService.Service) AwardHandler {
	return &awardHandlerImpl{awardService: service}
}

func (h *awardHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req award.CreateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.awardService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Award rate created", result)
}

func (h *awardHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.awardService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *awardHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	result, err := h.awardService.GetCurrent(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
