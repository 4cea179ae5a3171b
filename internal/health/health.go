// Package health evaluates named subsystem checks backing the portal's
// probes and its health-detail endpoint.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Status represents the health status of a subsystem.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

// checkTimeout bounds a single check evaluation.
const checkTimeout = 5 * time.Second

// Report is the outcome of one evaluation of all registered checks. Overall
// is the worst individual status: any down check makes the whole report down,
// otherwise any degraded check makes it degraded.
type Report struct {
	Overall Status
	Checks  map[string]Status
}

// Checker runs named health checks.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
	logger zerolog.Logger
}

// CheckFunc is a function that checks a subsystem's health.
type CheckFunc func(ctx context.Context) Status

// NewChecker creates a checker with no registered checks. An empty checker
// reports ok.
func NewChecker(logger zerolog.Logger) *Checker {
	return &Checker{
		checks: make(map[string]CheckFunc),
		logger: logger.With().Str("component", "health").Logger(),
	}
}

// Register adds a named health check.
func (c *Checker) Register(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = fn
}

// Run evaluates all checks concurrently and folds them into a report.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, fn := range c.checks {
		checks[name] = fn
	}
	c.mu.RUnlock()

	report := Report{
		Overall: StatusOK,
		Checks:  make(map[string]Status, len(checks)),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for name, fn := range checks {
		wg.Add(1)
		go func(n string, f CheckFunc) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()
			s := f(checkCtx)

			mu.Lock()
			report.Checks[n] = s
			if rank(s) > rank(report.Overall) {
				report.Overall = s
			}
			mu.Unlock()
		}(name, fn)
	}
	wg.Wait()

	if report.Overall != StatusOK {
		c.logger.Warn().
			Str("overall", string(report.Overall)).
			Msg("health check not ok")
	}
	return report
}

// IsReady reports whether the service can take traffic. Degraded still
// counts as ready; only a down check fails readiness.
func (c *Checker) IsReady(ctx context.Context) bool {
	return c.Run(ctx).Overall != StatusDown
}

func rank(s Status) int {
	switch s {
	case StatusDown:
		return 2
	case StatusDegraded:
		return 1
	default:
		return 0
	}
}
