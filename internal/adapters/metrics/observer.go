package metrics

import (
	"time"

	"github.com/bnema/staking-cli/internal/domain"
	"github.com/bnema/staking-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "stk"

// Observer exports session and transaction outcomes as prometheus series.
// A nil *Observer is a valid no-op.
type Observer struct {
	submitted   *prometheus.CounterVec
	settled     *prometheus.CounterVec
	settleTime  *prometheus.HistogramVec
	resyncs     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	connected   prometheus.Gauge
}

var _ ports.TxObserver = (*Observer)(nil)

// New builds the collectors and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Observer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &Observer{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_submitted_total",
			Help:      "Transactions accepted by the wallet, by kind.",
		}, []string{"kind"}),
		settled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_settled_total",
			Help:      "Finished stake/unstake actions by kind and outcome.",
		}, []string{"kind", "outcome"}),
		settleTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tx_settle_seconds",
			Help:      "Time from submission request to settled outcome.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
		}, []string{"kind"}),
		resyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resync_total",
			Help:      "Applied position resyncs by outcome.",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_transitions_total",
			Help:      "Session status transitions by target status.",
		}, []string{"status"}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_connected",
			Help:      "1 while a wallet account is connected.",
		}),
	}

	reg.MustRegister(o.submitted, o.settled, o.settleTime, o.resyncs, o.transitions, o.connected)
	return o
}

func (o *Observer) Submitted(kind domain.TxKind) {
	if o == nil {
		return
	}
	o.submitted.WithLabelValues(kindLabel(kind)).Inc()
}

func (o *Observer) Settled(kind domain.TxKind, outcome domain.ErrorKind, elapsed time.Duration) {
	if o == nil {
		return
	}
	label := kindLabel(kind)
	o.settled.WithLabelValues(label, outcomeLabel(outcome)).Inc()
	o.settleTime.WithLabelValues(label).Observe(elapsed.Seconds())
}

func (o *Observer) Resynced(outcome domain.ErrorKind) {
	if o == nil {
		return
	}
	o.resyncs.WithLabelValues(outcomeLabel(outcome)).Inc()
}

func (o *Observer) SessionChanged(status domain.ConnectionStatus) {
	if o == nil {
		return
	}
	if status == "" {
		status = domain.StatusDisconnected
	}
	o.transitions.WithLabelValues(string(status)).Inc()
	if status == domain.StatusConnected {
		o.connected.Set(1)
		return
	}
	o.connected.Set(0)
}

func kindLabel(kind domain.TxKind) string {
	if !kind.Valid() {
		return "unknown"
	}
	return string(kind)
}

func outcomeLabel(outcome domain.ErrorKind) string {
	if outcome == domain.ErrorKindNone {
		return "ok"
	}
	if !outcome.Valid() {
		return string(domain.ErrorKindUnknown)
	}
	return string(outcome)
}
