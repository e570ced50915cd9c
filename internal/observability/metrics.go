package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts orders placed at checkout.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menuboard_orders_created_total",
		Help: "Total number of orders created at checkout",
	})

	// MenuMutations counts menu writes by operation.
	MenuMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "menuboard_menu_mutations_total",
		Help: "Total number of menu item writes by operation",
	}, []string{"operation"})

	// CacheRequests counts public menu cache lookups by result (hit, miss, error).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "menuboard_cache_requests_total",
		Help: "Public menu cache lookups by result",
	}, []string{"result"})

	// EventPublishFailures counts order events that could not be published.
	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menuboard_event_publish_failures_total",
		Help: "Total number of order events that failed to publish",
	})
)
