package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector HTTP API とバックグラウンド処理の Prometheus メトリクス
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests      *prometheus.CounterVec
	HTTPDurations     *prometheus.HistogramVec
	GridLookups       *prometheus.CounterVec
	TrackerFailures   *prometheus.CounterVec
	TrackedSatellites prometheus.Gauge
	NotificationsSent *prometheus.CounterVec
}

// NewCollector メトリクスを登録する。reg が nil ならグローバルレジストリを使う。
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landwatch_http_requests_total",
		Help: "Total number of handled HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"}))
	if err != nil {
		return nil, err
	}
	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "landwatch_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"route", "method"}))
	if err != nil {
		return nil, err
	}
	lookups, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landwatch_grid_lookups_total",
		Help: "WRS-2 grid lookups by outcome (found, miss).",
	}, []string{"outcome"}))
	if err != nil {
		return nil, err
	}
	failures, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landwatch_tracker_failures_total",
		Help: "Satellite position refresh failures by catalog number.",
	}, []string{"catalog_number"}))
	if err != nil {
		return nil, err
	}
	tracked, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "landwatch_tracked_satellites",
		Help: "Number of satellites with a current position.",
	}))
	if err != nil {
		return nil, err
	}
	sent, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "landwatch_notifications_total",
		Help: "Pass notifications by result (sent, failed, skipped).",
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:          gatherer,
		HTTPRequests:      requests,
		HTTPDurations:     durations,
		GridLookups:       lookups,
		TrackerFailures:   failures,
		TrackedSatellites: tracked,
		NotificationsSent: sent,
	}, nil
}

// Middleware リクエスト数とレイテンシを記録する gin ミドルウェア
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		if c == nil {
			return
		}

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDurations.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Handler /metrics 用ハンドラー
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveGridLookup グリッド検索の結果を記録
func (c *Collector) ObserveGridLookup(found bool) {
	if c == nil {
		return
	}
	outcome := "miss"
	if found {
		outcome = "found"
	}
	c.GridLookups.WithLabelValues(outcome).Inc()
}

// ObserveTrackerRefresh 追跡ループ1回分の結果を記録
func (c *Collector) ObserveTrackerRefresh(positions int, failed []int) {
	if c == nil {
		return
	}
	c.TrackedSatellites.Set(float64(positions))
	for _, catalog := range failed {
		c.TrackerFailures.WithLabelValues(strconv.Itoa(catalog)).Inc()
	}
}

// ObserveNotification 通知ジョブの結果を記録
func (c *Collector) ObserveNotification(result string) {
	if c == nil {
		return
	}
	c.NotificationsSent.WithLabelValues(result).Inc()
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		var zero T
		return zero, err
	}
	return collector, nil
}
