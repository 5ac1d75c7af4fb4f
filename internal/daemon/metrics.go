package daemon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/1broseidon/spatialnav/internal/spatial"
)

const (
	resultMoved   = "moved"
	resultDeadEnd = "dead_end"
	resultError   = "error"
)

var (
	navigationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "spatialnav",
		Name:      "navigations_total",
		Help:      "Navigation requests by direction and result.",
	}, []string{"direction", "result"})
	resetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "spatialnav",
		Name:      "resets_total",
		Help:      "Focus resets that cleared an active focus.",
	})
	staleTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "spatialnav",
		Name:      "stale_focus_total",
		Help:      "Focused windows that disappeared and were dropped by the reconciler.",
	})
	focusedGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "spatialnav",
		Name:      "focused",
		Help:      "1 while an element holds focus.",
	})
)

func recordNavigation(dir spatial.Direction, result string) {
	navigationsTotal.WithLabelValues(dir.String(), result).Inc()
}

func setFocused(focused bool) {
	if focused {
		focusedGauge.Set(1)
	} else {
		focusedGauge.Set(0)
	}
}

// MetricsServer exposes the default Prometheus registry on /metrics.
type MetricsServer struct {
	srv *http.Server
	ln  net.Listener
}

// StartMetrics listens on addr and serves metrics in the background.
func StartMetrics(addr string) (*MetricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	m := &MetricsServer{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() {
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()
	return m, nil
}

// Addr returns the bound address.
func (m *MetricsServer) Addr() string { return m.ln.Addr().String() }

// Shutdown stops the server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
