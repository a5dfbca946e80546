// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package connector

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	promRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datashelf_connector_requests_total",
			Help: "Total number of requests processed by the connector",
		},
		[]string{"endpoint", "status"},
	)
	promRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datashelf_connector_request_duration_milliseconds",
			Help:    "Request duration in milliseconds",
			Buckets: []float64{1, 5, 10, 50, 100, 200, 500, 1000, 2000, 5000},
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(promRequestsTotal)
	prometheus.MustRegister(promRequestDuration)
}

func observeRequest(endpoint string, status int, duration time.Duration) {
	promRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	promRequestDuration.WithLabelValues(endpoint).Observe(float64(duration.Milliseconds()))
}
