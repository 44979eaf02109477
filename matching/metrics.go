package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ordersSubmitted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "execsim",
		Subsystem: "matching",
		Name:      "orders_submitted_total",
		Help:      "Orders submitted to the matching engine",
	},
	[]string{"market", "type"},
)

var ordersCanceled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "execsim",
		Subsystem: "matching",
		Name:      "orders_canceled_total",
		Help:      "Orders removed from the book by cancellation",
	},
	[]string{"market"},
)

var fillsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "execsim",
		Subsystem: "matching",
		Name:      "fills_total",
		Help:      "Fill events, each producing two execution reports",
	},
	[]string{"market"},
)

var filledQuantity = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "execsim",
		Subsystem: "matching",
		Name:      "filled_quantity_total",
		Help:      "Quantity executed across all fills",
	},
	[]string{"market"},
)

var stopsTriggered = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "execsim",
		Subsystem: "matching",
		Name:      "stops_triggered_total",
		Help:      "Stop orders activated by the market price",
	},
	[]string{"market"},
)
