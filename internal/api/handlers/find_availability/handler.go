package find_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	findAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/find_availability"
)

const (
	msgInvalidStoreID   = "некорректный ID филиала"
	msgInvalidBody      = "некорректное тело запроса"
	msgMissingDate      = "дата обязательна"
	msgMissingStartTime = "время начала обязательно"
	msgInvalidDateTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput     = "некорректные параметры запроса"
	msgTimeInPast       = "запрошенное время уже прошло"
	msgStoreNotFound    = "филиал не найден"
)

type Handler struct {
	useCase FindAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/stores/{storeId}/availability
// Header X-Customer-ID (optional) включает фильтр черного списка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем storeId из URL
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /stores/{id}/availability - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	var body FindAvailabilityRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /stores/{id}/availability - Invalid body: store_id=%d, error=%v", storeID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if body.Date == "" {
		h.logger.Warn("POST /stores/{id}/availability - Missing date: store_id=%d", storeID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	if body.StartTime == "" {
		h.logger.Warn("POST /stores/{id}/availability - Missing start time: store_id=%d", storeID)
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	customerID := middleware.CustomerIDFromContext(r.Context())

	useCaseReq, err := ToUseCaseRequest(customerID, storeID, &body)
	if err != nil {
		h.logger.Warn("POST /stores/{id}/availability - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, findAvailability.ErrTimeInPast):
			h.logger.Warn("POST /stores/{id}/availability - Time in past: store_id=%d, date=%s, start=%s",
				storeID, body.Date, body.StartTime)
			handlers.RespondUnprocessable(w, msgTimeInPast)

		case errors.Is(err, findAvailability.ErrInvalidInput):
			h.logger.Warn("POST /stores/{id}/availability - Invalid input: store_id=%d, error=%v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, findAvailability.ErrStoreNotFound):
			h.logger.Warn("POST /stores/{id}/availability - Store not found: store_id=%d", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, findAvailability.ErrSourceUnavailable):
			h.logger.Error("POST /stores/{id}/availability - Source unavailable: store_id=%d, error=%v", storeID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /stores/{id}/availability - Failed to check availability: store_id=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /stores/{id}/availability - Checked: store_id=%d, date=%s, requested=%s, feasible=%t, available=%d",
		storeID, body.Date, body.StartTime, response.Feasible, len(response.AvailableStaff))
	handlers.RespondJSON(w, http.StatusOK, response)
}
