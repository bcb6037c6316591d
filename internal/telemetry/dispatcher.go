package telemetry

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DispatchTimeout bounds a single delivery attempt, measured from the
// connection attempt; on expiry the in-flight request is torn down.
const DispatchTimeout = 5 * time.Second

var reportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "failure_reports_total",
	Help: "Failure report dispatch attempts by outcome.",
}, []string{"outcome"})

// Dispatcher delivers failure reports to the external collector
// endpoint. Delivery is best-effort: one POST per report, no retries,
// no queue, and failures surface only in logs and metrics.
type Dispatcher struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewDispatcher builds a Dispatcher for the given collector URL. An
// empty URL disables reporting: every dispatch becomes a logged no-op.
func NewDispatcher(url string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		url:    url,
		client: &http.Client{Timeout: DispatchTimeout},
		logger: logger,
	}
}

// Enabled reports whether a collector URL is configured.
func (d *Dispatcher) Enabled() bool { return d.url != "" }

// DispatchDetached delivers the report on its own goroutine. There is
// deliberately no result channel: the outcome is observable only via
// logging, so a slow or unreachable collector can never block the
// caller.
func (d *Dispatcher) DispatchDetached(r Report) {
	if !d.Enabled() {
		d.logger.Warn("collector URL not configured, skipping failure report")
		reportsTotal.WithLabelValues("skipped").Inc()
		return
	}
	go d.dispatch(r)
}

func (d *Dispatcher) dispatch(r Report) {
	body, err := json.Marshal(r)
	if err != nil {
		d.logger.Error("failure report marshal failed", "error", err)
		reportsTotal.WithLabelValues("failed").Inc()
		return
	}

	resp, err := d.client.Post(d.url, "application/json", bytes.NewReader(body))
	if err != nil {
		d.logger.Error("failure report dispatch failed", "url", d.url, "error", err)
		reportsTotal.WithLabelValues("failed").Inc()
		return
	}
	defer resp.Body.Close()

	// The collector response is consumed for logging only; it never
	// affects the caller.
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	d.logger.Warn("failure report dispatched",
		"status", resp.StatusCode,
		"response", string(respBody),
	)
	reportsTotal.WithLabelValues("dispatched").Inc()
}
