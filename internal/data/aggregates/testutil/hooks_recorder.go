package testutil

import (
	"sync"
	"time"

	"github.com/ellenorzo/ellenorzo-backend/internal/data/aggregates"
)

// HooksRecorder captures aggregate hook signals in tests.
type HooksRecorder struct {
	mu sync.Mutex

	Operations     []OperationEvent
	Conflicts      []string
	Retries        []string
	Registry       []string
	UnmatchedHours []int
}

type OperationEvent struct {
	Name     string
	Status   string
	Duration time.Duration
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveOperation(name, status string, dur time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Operations = append(h.Operations, OperationEvent{Name: name, Status: status, Duration: dur})
}

func (h *HooksRecorder) IncConflict(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Conflicts = append(h.Conflicts, name)
}

func (h *HooksRecorder) IncRetry(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Retries = append(h.Retries, name)
}

func (h *HooksRecorder) RegistryAssigned(group string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Registry = append(h.Registry, group)
}

func (h *HooksRecorder) AnnualHoursUnmatched(gradeLevel int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.UnmatchedHours = append(h.UnmatchedHours, gradeLevel)
}

// LastStatus returns the status of the most recent operation named name, or "".
func (h *HooksRecorder) LastStatus(name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.Operations) - 1; i >= 0; i-- {
		if h.Operations[i].Name == name {
			return h.Operations[i].Status
		}
	}
	return ""
}
