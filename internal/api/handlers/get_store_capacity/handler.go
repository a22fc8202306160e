package get_store_capacity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getStoreCapacity "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_store_capacity"
)

const (
	msgInvalidStoreID = "некорректный ID филиала"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput   = "некорректные параметры запроса"
	msgStoreNotFound  = "филиал не найден"
)

type Handler struct {
	useCase GetStoreCapacityUseCase
	logger  Logger
}

func NewHandler(useCase GetStoreCapacityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stores/{storeId}/capacity
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/capacity - Invalid store ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStoreID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /stores/{id}/capacity - Missing date: store_id=%d", storeID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(storeID, dateStr)
	if err != nil {
		h.logger.Warn("GET /stores/{id}/capacity - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getStoreCapacity.ErrInvalidInput):
			h.logger.Warn("GET /stores/{id}/capacity - Invalid input: store_id=%d, error=%v", storeID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getStoreCapacity.ErrStoreNotFound):
			h.logger.Warn("GET /stores/{id}/capacity - Store not found: store_id=%d", storeID)
			handlers.RespondNotFound(w, msgStoreNotFound)

		case errors.Is(err, getStoreCapacity.ErrSourceUnavailable):
			h.logger.Error("GET /stores/{id}/capacity - Source unavailable: store_id=%d, error=%v", storeID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /stores/{id}/capacity - Failed to get capacity: store_id=%d, error=%v", storeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stores/{id}/capacity - Capacity retrieved: store_id=%d, date=%s", storeID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
