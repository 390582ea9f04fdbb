// Package metrics exports feed engine counters to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zfogg/swipefeed/pkg/feed"
	"github.com/zfogg/swipefeed/pkg/logger"
)

// Recorder implements feed.Metrics on its own registry
type Recorder struct {
	registry *prometheus.Registry

	pagesFetched *prometheus.CounterVec
	itemsLoaded  prometheus.Counter
	lastPage     prometheus.Gauge
	navigations  *prometheus.CounterVec
	interactions *prometheus.CounterVec
}

var _ feed.Metrics = (*Recorder)(nil)

// NewRecorder creates a recorder with a fresh registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		pagesFetched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swipefeed_pages_fetched_total",
				Help: "Total number of feed page fetches by result",
			},
			[]string{"result"},
		),
		itemsLoaded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "swipefeed_items_loaded_total",
				Help: "Total number of new items appended to the feed",
			},
		),
		lastPage: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "swipefeed_last_page",
				Help: "Highest page number fetched successfully",
			},
		),
		navigations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swipefeed_navigations_total",
				Help: "Total number of navigation intents by outcome",
			},
			[]string{"intent", "moved"},
		),
		interactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swipefeed_interactions_total",
				Help: "Total number of interaction posts by kind and result",
			},
			[]string{"kind", "result"},
		),
	}
}

// PageFetched implements feed.Metrics
func (r *Recorder) PageFetched(page, added int, err error) {
	r.pagesFetched.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return
	}
	r.itemsLoaded.Add(float64(added))
	r.lastPage.Set(float64(page))
}

// Navigated implements feed.Metrics
func (r *Recorder) Navigated(intent feed.Intent, moved bool) {
	r.navigations.WithLabelValues(intent.String(), strconv.FormatBool(moved)).Inc()
}

// InteractionPosted implements feed.Metrics
func (r *Recorder) InteractionPosted(kind feed.InteractionKind, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.interactions.WithLabelValues(string(kind), result).Inc()
}

// Handler serves the recorder's registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return string(feed.TagFor(err))
}
