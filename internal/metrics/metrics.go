package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "car_rental",
			Name:      "reservations_created_total",
			Help:      "Count of reservations created, by who made them.",
		},
		[]string{"made_by"},
	)

	reservationsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "car_rental",
			Name:      "reservations_cancelled_total",
			Help:      "Count of reservations cancelled before pickup.",
		},
	)

	reservationsRescheduled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "car_rental",
			Name:      "reservations_rescheduled_total",
			Help:      "Count of reservations with edited dates or locations.",
		},
	)

	reservationConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "car_rental",
			Name:      "reservation_conflicts_total",
			Help:      "Count of reservation attempts rejected, by reason.",
		},
		[]string{"reason"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			reservationsCreated,
			reservationsCancelled,
			reservationsRescheduled,
			reservationConflicts,
		)
	})
}

func IncReservationCreated(madeBy string) {
	reservationsCreated.WithLabelValues(madeBy).Inc()
}

func IncReservationCancelled() {
	reservationsCancelled.Inc()
}

func IncReservationRescheduled() {
	reservationsRescheduled.Inc()
}

func IncReservationConflict(reason string) {
	reservationConflicts.WithLabelValues(reason).Inc()
}
