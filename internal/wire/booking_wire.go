package wire

import (
	"car-rental/internal/adaptor"
	"car-rental/pkg/middleware"
	"car-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	// Group routes that require authentication
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.Auth.JWTSecret, log))

		// POST /api/bookings - Reserve a car (clients book for themselves,
		// support agents may book on a client's behalf)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - Booking details (own bookings only)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		// GET /api/user/bookings - Booking history (caller's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// PUT /api/bookings/{id}/cancel - Cancel an upcoming booking
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// PUT /api/bookings/{id} - Reschedule an upcoming booking
		r.Put("/api/bookings/{id}", bookingHandler.RescheduleBooking)
	})

	// ==================== ADMIN ROUTES ====================
	// Support-agent booking management routes
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND the support agent role
		r.Use(middleware.Auth(config.Auth.JWTSecret, log))
		r.Use(middleware.SupportAgent(log))

		// GET /api/admin/bookings - View every booking
		r.Get("/", bookingHandler.ListAllBookings)

		// PUT /api/admin/bookings/{id}/finish - Close out a provided booking
		r.Put("/{id}/finish", bookingHandler.FinishBooking)
	})
}
