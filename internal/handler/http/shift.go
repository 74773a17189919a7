package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/shift"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	shiftService "github.com/cmlabs-hris/payroll-engine-go/internal/service/shift"
)

type ShiftHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService *shiftService.Service
}

func NewShiftHandler(service *shiftService.Service) ShiftHandler {
	return &shiftHandlerImpl{shiftService: service}
}

func (h *shiftHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req shift.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.shiftService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
