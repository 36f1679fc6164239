package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "winetrail_checkouts_total",
			Help: "Completed checkouts by path (direct or hosted)",
		},
		[]string{"path"},
	)

	CheckoutFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "winetrail_checkout_failures_total",
			Help: "Rejected or failed checkouts by reason",
		},
		[]string{"reason"},
	)

	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "winetrail_notifications_total",
			Help: "Notification deliveries by recipient class and outcome",
		},
		[]string{"recipient", "outcome"},
	)

	NotificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "winetrail_notification_fanout_seconds",
			Help:    "Time taken by one booking notification fan-out",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func Register() {
	prometheus.MustRegister(Checkouts, CheckoutFailures, Notifications, NotificationDuration)
}
