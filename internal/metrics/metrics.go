// Package metrics exposes Prometheus counters/gauges as an observable
// projection of the registry's client count and the dispatcher's
// command/status tables (spec.md §6.3).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"fillwire.dev/fillwire/wire"
)

var (
	FramesByCommand = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fillwire",
		Name:      "frames_total",
		Help:      "Request frames processed, by command.",
	}, []string{"command"})

	ResponsesByStatus = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fillwire",
		Name:      "responses_total",
		Help:      "Response frames sent, by status.",
	}, []string{"status"})

	ConnectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fillwire",
		Name:      "connected_clients",
		Help:      "Currently connected client sockets.",
	})
)

func init() {
	prometheus.MustRegister(FramesByCommand, ResponsesByStatus, ConnectedClients)
}

// ObserveRequest increments the per-command frame counter.
func ObserveRequest(cmd wire.Command) {
	FramesByCommand.WithLabelValues(cmd.String()).Inc()
}

// ObserveResponse increments the per-status response counter.
func ObserveResponse(status wire.Status) {
	ResponsesByStatus.WithLabelValues(status.String()).Inc()
}
