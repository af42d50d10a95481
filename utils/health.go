package utils

import (
	"context"
	"sync"
	"time"
)

// HealthCheck pings one external dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Checks    map[string]bool `json:"checks"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every dependency answered the last check.
func (s HealthStatus) Healthy() bool {
	for _, ok := range s.Checks {
		if !ok {
			return false
		}
	}
	return true
}

// HealthMonitor keeps the latest health snapshot of the configured dependencies.
type HealthMonitor struct {
	checks  []HealthCheck
	timeout time.Duration

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(timeout time.Duration, checks ...HealthCheck) *HealthMonitor {
	return &HealthMonitor{
		checks:  checks,
		timeout: timeout,
		current: HealthStatus{Checks: map[string]bool{}},
	}
}

// GetHealthStatus returns latest stored health snapshot.
func (m *HealthMonitor) GetHealthStatus() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CheckNow pings every dependency once and stores the result.
func (m *HealthMonitor) CheckNow(ctx context.Context) HealthStatus {
	status := HealthStatus{Checks: make(map[string]bool, len(m.checks))}
	for _, check := range m.checks {
		pingCtx, cancel := context.WithTimeout(ctx, m.timeout)
		status.Checks[check.Name] = check.Ping(pingCtx) == nil
		cancel()
	}
	status.CheckedAt = time.Now()

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is cancelled.
func (m *HealthMonitor) StartHealthMonitor(ctx context.Context, interval time.Duration) {
	m.CheckNow(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.CheckNow(ctx)
			}
		}
	}()
}
