package get_staff_shifts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getStaffShifts "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_staff_shifts"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

const (
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStoreID = "некорректный ID филиала"
	msgInvalidInput   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetStaffShiftsUseCase
	logger  Logger
}

func NewHandler(useCase GetStaffShiftsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules
// Query params: date (required, YYYY-MM-DD), storeId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /schedules - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	var storeID *int64
	if raw := query.Get("storeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /schedules - Invalid store ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStoreID)
			return
		}
		storeID = ptr.Ptr(id)
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, storeID)
	if err != nil {
		h.logger.Warn("GET /schedules - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getStaffShifts.ErrInvalidInput):
			h.logger.Warn("GET /schedules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getStaffShifts.ErrSourceUnavailable):
			h.logger.Error("GET /schedules - Source unavailable: date=%s, error=%v", dateStr, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /schedules - Failed to get shifts: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedules - Shifts retrieved: date=%s, count=%d", dateStr, len(result.Shifts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
