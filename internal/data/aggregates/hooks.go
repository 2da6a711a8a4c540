package aggregates

import (
	"strings"
	"time"

	"github.com/ellenorzo/ellenorzo-backend/internal/observability"
)

// Hooks captures aggregate-level observability events.
type Hooks interface {
	ObserveOperation(name, status string, dur time.Duration)
	IncConflict(name string)
	IncRetry(name string)
	// RegistryAssigned fires once per committed registry numbering.
	RegistryAssigned(group string)
	// AnnualHoursUnmatched fires when a saved subject's grade level has no hours rule.
	AnnualHoursUnmatched(gradeLevel int)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}
func (noopHooks) RegistryAssigned(string)                        {}
func (noopHooks) AnnualHoursUnmatched(int)                       {}

type observabilityHooks struct {
	metrics *observability.Metrics
}

// NewObservabilityHooks creates aggregate hooks backed by observability metrics.
func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return &observabilityHooks{metrics: metrics}
}

func (h *observabilityHooks) ObserveOperation(name, status string, dur time.Duration) {
	h.metrics.ObserveAggregateOperation(strings.TrimSpace(name), strings.TrimSpace(status), dur)
}

func (h *observabilityHooks) IncConflict(name string) {
	h.metrics.IncAggregateConflict(strings.TrimSpace(name))
}

func (h *observabilityHooks) IncRetry(name string) {
	h.metrics.IncAggregateRetry(strings.TrimSpace(name))
}

func (h *observabilityHooks) RegistryAssigned(group string) {
	h.metrics.IncRegistryAssignment(group)
}

func (h *observabilityHooks) AnnualHoursUnmatched(gradeLevel int) {
	h.metrics.IncAnnualHoursUnmatched(gradeLevel)
}
