// Package metrics exposes Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	booked          prometheus.Counter
	redeemed        prometheus.Counter
}

// NewCollector registers the collectors on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "salon_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		booked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "salon_appointments_booked_total",
			Help: "Appointments created.",
		}),
		redeemed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "salon_points_redeemed_total",
			Help: "Rewards redeemed with loyalty points.",
		}),
	}

	reg.MustRegister(c.requests, c.requestDuration, c.booked, c.redeemed)
	return c
}

func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Booked counts created appointments.
func (c *Collector) Booked() prometheus.Counter { return c.booked }

// Redeemed counts reward redemptions.
func (c *Collector) Redeemed() prometheus.Counter { return c.redeemed }

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
