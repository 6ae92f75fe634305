package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppointmentsBookedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garage_appointments_booked_total",
		Help: "Total number of appointments booked",
	})

	SettlementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garage_settlements_total",
		Help: "Total number of completed settlements",
	})

	SettlementsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garage_settlements_failed_total",
		Help: "Total number of failed settlements",
	}, []string{"reason"})

	SettlementAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "garage_settlement_amount",
		Help:    "Invoice totals of completed settlements",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000},
	})

	PayrollQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garage_payroll_queries_total",
		Help: "Total number of payroll summary computations",
	})

	ShiftOverlapRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "garage_shift_overlap_rejected_total",
		Help: "Total number of shift writes rejected for overlap",
	})
)
