// Package metrics defines the custom Prometheus metrics of the Health
// Whisperer service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Call Register once per registry, before the HTTP server starts.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "health_whisperer"

// ── Account metrics ───────────────────────────────────────────────────────────

// SignupsTotal counts accounts created.
var SignupsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "throttled"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Check-in metrics ──────────────────────────────────────────────────────────

// CheckinsTotal counts recorded check-ins.
// Label:
//   - source: where the suggestion came from, "ai" or "fallback"
var CheckinsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_total",
		Help:      "Total number of wellness check-ins, by suggestion source.",
	},
	[]string{"source"},
)

// Register adds every custom collector to reg. Collectors already present in
// reg are left alone.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{SignupsTotal, LoginsTotal, CheckinsTotal} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
