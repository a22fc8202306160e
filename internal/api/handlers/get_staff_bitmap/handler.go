package get_staff_bitmap

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getStaffBitmap "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_staff_bitmap"
)

const (
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput  = "некорректные параметры запроса"
	msgStaffNotFound = "мастер не найден"
)

type Handler struct {
	useCase GetStaffBitmapUseCase
	logger  Logger
}

func NewHandler(useCase GetStaffBitmapUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffName}/bitmap
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffName := mux.Vars(r)["staffName"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{name}/bitmap - Missing date: staff=%s", staffName)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(staffName, dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/{name}/bitmap - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getStaffBitmap.ErrInvalidInput):
			h.logger.Warn("GET /staff/{name}/bitmap - Invalid input: staff=%s, error=%v", staffName, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getStaffBitmap.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{name}/bitmap - Staff not found: staff=%s", staffName)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getStaffBitmap.ErrSourceUnavailable):
			h.logger.Error("GET /staff/{name}/bitmap - Source unavailable: staff=%s, error=%v", staffName, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /staff/{name}/bitmap - Failed to get bitmap: staff=%s, error=%v", staffName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{name}/bitmap - Bitmap retrieved: staff=%s, date=%s, free_ranges=%d",
		staffName, dateStr, len(result.FreeRanges))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
