// Copyright 2017 Pilosa Corp.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived
// from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND
// CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES,
// INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
// CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING,
// BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY,
// WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH
// DAMAGE.

package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pilosa/launchdash"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ launchdash.Statter = &Metrics{}

// Metrics holds the Prometheus collectors for a Server. It is also a
// launchdash.Statter, so loader stats show up next to the request metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	counts            *prometheus.CounterVec
	gauges            *prometheus.GaugeVec
	timings           *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them in a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdash_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "launchdash_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		counts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchdash_stat_total",
			Help: "Counters reported through the Statter interface.",
		}, []string{"name"}),
		gauges: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "launchdash_stat_gauge",
			Help: "Gauges reported through the Statter interface.",
		}, []string{"name"}),
		timings: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "launchdash_stat_seconds",
			Help:    "Timings and histograms reported through the Statter interface.",
			Buckets: prometheus.DefBuckets,
		}, []string{"name"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.httpRequestsTotal,
		m.httpDuration,
		m.counts,
		m.gauges,
		m.timings,
	)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records the count and duration of requests to route.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Count implements launchdash.Statter.
func (m *Metrics) Count(name string, value int64, rate float64, tags ...string) {
	m.counts.WithLabelValues(name).Add(float64(value))
}

// Gauge implements launchdash.Statter.
func (m *Metrics) Gauge(name string, value float64, rate float64, tags ...string) {
	m.gauges.WithLabelValues(name).Set(value)
}

// Histogram implements launchdash.Statter.
func (m *Metrics) Histogram(name string, value float64, rate float64, tags ...string) {
	m.timings.WithLabelValues(name).Observe(value)
}

// Set does nothing.
func (m *Metrics) Set(name string, value string, rate float64, tags ...string) {}

// Timing implements launchdash.Statter.
func (m *Metrics) Timing(name string, value time.Duration, rate float64, tags ...string) {
	m.timings.WithLabelValues(name).Observe(value.Seconds())
}
