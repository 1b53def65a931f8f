package adaptor

import (
	"net/http"

	"car-rental/internal/usecase"
	"car-rental/pkg/apperror"
	"car-rental/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Car     *CarHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Reservation, log),
		Car:     NewCarHandler(service.Fleet, service.Availability, log),
	}
}

// writeServiceError maps the service error kinds onto HTTP statuses. The
// kinds are the API contract: callers rely on them to tell "fix your
// request" from "try again" from "pick another car or date".
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := apperror.KindOf(err)

	switch kind {
	case apperror.KindValidation:
		log.Warn(operation+" rejected - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)
	case apperror.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())
	case apperror.KindConflict:
		log.Warn(operation+" rejected - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())
	case apperror.KindConcurrency:
		log.Warn(operation+" lost a concurrent write", zap.Error(err))
		utils.ResponseConflict(w, err.Error())
	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
