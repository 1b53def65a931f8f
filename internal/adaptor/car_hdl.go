package adaptor

import (
	"encoding/json"
	"net/http"

	"car-rental/internal/dto/request"
	"car-rental/internal/dto/response"
	"car-rental/internal/usecase"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CarHandler struct {
	fleet        usecase.FleetService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewCarHandler(fleet usecase.FleetService, availability usecase.AvailabilityService, log *zap.Logger) *CarHandler {
	return &CarHandler{
		fleet:        fleet,
		availability: availability,
		log:          log.With(zap.String("handler", "car")),
	}
}

// ListCars handles GET /api/cars (public)
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	cars, err := h.fleet.ListCars(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list cars")
		return
	}

	utils.ResponseSuccess(w, "success", cars)
}

// GetCar handles GET /api/cars/{id} (public)
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	car, err := h.fleet.GetCar(r.Context(), carID)
	if err != nil {
		writeServiceError(w, h.log, err, "get car")
		return
	}

	utils.ResponseSuccess(w, "success", car)
}

// SearchAvailable handles GET /api/cars/search?pickup=&dropoff= (public)
func (h *CarHandler) SearchAvailable(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	cars, err := h.fleet.SearchAvailable(r.Context(), query.Get("pickup"), query.Get("dropoff"))
	if err != nil {
		writeServiceError(w, h.log, err, "search available cars")
		return
	}

	utils.ResponseSuccess(w, "success", cars)
}

// QueryAvailability handles GET /api/cars/{id}/availability?pickup=&dropoff= (public)
func (h *CarHandler) QueryAvailability(w http.ResponseWriter, r *http.Request) {
	carIDStr := chi.URLParam(r, "id")
	carID, err := uuid.Parse(carIDStr)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid car ID", nil)
		return
	}

	query := r.URL.Query()
	interval, err := usecase.ParseInterval(query.Get("pickup"), query.Get("dropoff"))
	if err != nil {
		writeServiceError(w, h.log, err, "query availability")
		return
	}

	available, err := h.availability.IsAvailable(r.Context(), carID, interval, nil)
	if err != nil {
		writeServiceError(w, h.log, err, "query availability")
		return
	}

	utils.ResponseSuccess(w, "success", response.AvailabilityResponse{
		CarID:     carIDStr,
		Pickup:    query.Get("pickup"),
		Dropoff:   query.Get("dropoff"),
		Available: available,
	})
}

// OccupiedDays handles GET /api/cars/{id}/occupied-days (public)
func (h *CarHandler) OccupiedDays(w http.ResponseWriter, r *http.Request) {
	carIDStr := chi.URLParam(r, "id")
	carID, err := uuid.Parse(carIDStr)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid car ID", nil)
		return
	}

	days, err := h.availability.OccupiedDays(r.Context(), carID)
	if err != nil {
		writeServiceError(w, h.log, err, "query occupied days")
		return
	}

	utils.ResponseSuccess(w, "success", response.OccupiedDaysResponse{
		CarID: carIDStr,
		Days:  days,
	})
}

// ==================== ADMIN METHODS ====================

// UpdateCarStatus handles PUT /api/admin/cars/{id}/status (support agent only)
func (h *CarHandler) UpdateCarStatus(w http.ResponseWriter, r *http.Request) {
	carID := chi.URLParam(r, "id")
	if carID == "" {
		utils.ResponseBadRequest(w, "Car ID is required", nil)
		return
	}

	var req request.UpdateCarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	car, err := h.fleet.UpdateCarStatus(r.Context(), carID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update car status")
		return
	}

	utils.ResponseSuccess(w, "success", car)
}
