package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type Config struct {
	Enabled bool
	Addr    string
	// LatencySLO marks requests at or under this duration as "good".
	LatencySLO     time.Duration
	ScrapeInterval time.Duration
}

// family is one exposition block (HELP, TYPE and samples).
type family interface {
	WritePrometheus(w io.Writer) error
}

type Metrics struct {
	families []family

	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqGood  *CounterVec

	aggregateOps       *CounterVec
	aggregateLatency   *HistogramVec
	aggregateConflicts *CounterVec
	aggregateRetries   *CounterVec
	deletionsBlocked   *CounterVec
	inventoryCleared   *CounterVec
	ordersPlaced       *CounterVec

	dbPool *GaugeVec

	latencySLOSeconds float64
	scrapeInterval    time.Duration
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Current() *Metrics {
	return instance
}

// Init builds the process-wide registry once. It returns nil when metrics are disabled,
// and every method on a nil *Metrics is a no-op.
func Init(cfg Config, log *logger.Logger) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics(cfg)
		if log != nil {
			log.Info("metrics initialized", "addr", cfg.Addr)
		}
	})
	return instance
}

func newMetrics(cfg Config) *Metrics {
	m := &Metrics{
		latencySLOSeconds: durationOr(cfg.LatencySLO, 500*time.Millisecond).Seconds(),
		scrapeInterval:    durationOr(cfg.ScrapeInterval, 10*time.Second),
	}
	m.apiRequests = register(m, NewCounterVec("sf_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}))
	m.apiLatency = register(m, NewHistogramVec(
		"sf_api_request_duration_seconds",
		"API request latency in seconds by method/route.",
		[]string{"method", "route"},
		[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	))
	m.apiInflight = register(m, NewGauge("sf_api_inflight_requests", "In-flight API requests."))
	m.apiReqGood = register(m, NewCounterVec("sf_api_requests_good_latency_total", "API requests under the latency SLO by route.", []string{"route"}))
	m.registerCatalog()
	m.dbPool = register(m, NewGaugeVec("sf_db_pool", "database/sql pool statistics.", []string{"stat"}))
	return m
}

func register[F family](m *Metrics, f F) F {
	m.families = append(m.families, f)
	return f
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// Serve exposes /metrics on a dedicated listener until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, log *logger.Logger, addr string) error {
	addr = strings.TrimSpace(addr)
	if m == nil || addr == "" {
		return nil
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})
	defer stop()

	if log != nil {
		log.Info("metrics server listening", "addr", addr)
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

// WritePrometheus writes every family in registration order.
func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, f := range m.families {
		if err := f.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	method = orDefault(method, "UNKNOWN")
	route = orDefault(route, "unmatched")
	m.apiRequests.Inc(method, route, orDefault(status, "0"))
	m.apiLatency.Observe(dur.Seconds(), method, route)
	if dur.Seconds() <= m.latencySLOSeconds {
		m.apiReqGood.Inc(route)
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (m *Metrics) ApiInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) ApiInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

// CollectDB samples connection pool stats every scrape interval until ctx is
// cancelled. The first sample is taken immediately.
func (m *Metrics) CollectDB(ctx context.Context, log *logger.Logger, db *gorm.DB) error {
	if m == nil || db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return nil
	}
	ticker := time.NewTicker(m.scrapeInterval)
	defer ticker.Stop()
	for {
		stats := sqlDB.Stats()
		m.dbPool.Set(float64(stats.OpenConnections), "open_connections")
		m.dbPool.Set(float64(stats.InUse), "in_use")
		m.dbPool.Set(float64(stats.Idle), "idle")
		m.dbPool.Set(float64(stats.WaitCount), "wait_count")
		m.dbPool.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
		m.dbPool.Set(float64(stats.MaxOpenConnections), "max_open_connections")

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
