package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCar(
	r chi.Router,
	carHandler *adaptor.CarHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/cars - List the fleet (public, anyone can browse)
	r.Get("/api/cars", carHandler.ListCars)

	// GET /api/cars/search - Cars free for a pickup/dropoff interval
	r.Get("/api/cars/search", carHandler.SearchAvailable)

	// GET /api/cars/{id} - Car details (public)
	r.Get("/api/cars/{id}", carHandler.GetCar)

	// GET /api/cars/{id}/availability - Is this car free for an interval?
	r.Get("/api/cars/{id}/availability", carHandler.QueryAvailability)

	// GET /api/cars/{id}/occupied-days - Calendar days with a booking
	r.Get("/api/cars/{id}/occupied-days", carHandler.OccupiedDays)

	// ==================== ADMIN ROUTES ====================
	// Group admin routes with middleware chain
	r.Route("/api/admin/cars", func(r chi.Router) {
		r.Use(middleware.Auth(config.Auth.JWTSecret, log)) // Must be authenticated
		r.Use(middleware.SupportAgent(log))                // Must be a support agent

		// PUT /api/admin/cars/{id}/status - Manual availability override
		r.Put("/{id}/status", carHandler.UpdateCarStatus)
	})
}
