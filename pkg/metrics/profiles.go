package metrics

import (
	"github.com/angelmondragon/profilespot-backend/pkg/enums"
	"github.com/prometheus/client_golang/prometheus"
)

// ProfileMetrics counts versioned profile writes by outcome.
type ProfileMetrics struct {
	updates *prometheus.CounterVec
}

func NewProfileMetrics(reg prometheus.Registerer) *ProfileMetrics {
	if reg == nil {
		return &ProfileMetrics{}
	}
	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "profile_updates_total",
		Help: "Profile update attempts by outcome (ok, stale, failed).",
	}, []string{"outcome"})
	reg.MustRegister(updates)
	return &ProfileMetrics{updates: updates}
}

func (m *ProfileMetrics) ObserveProfileUpdate(status enums.UpdateStatus) {
	if m == nil || m.updates == nil {
		return
	}
	m.updates.WithLabelValues(status.String()).Inc()
}
