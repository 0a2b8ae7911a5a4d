// Package jobmgr runs named background jobs, at most one per name at a
// time, with cancellation and in-memory tracking of what is running.
//
// Typical usage:
//
//	jm := jobmgr.NewManager(logger)
//	if err := jm.StartAsync(ctx, "unban", sweep); errors.Is(err, jobmgr.ErrRunning) {
//	    // the previous run has not finished yet
//	}
//	defer jm.Wait()
package jobmgr

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrRunning is returned by StartAsync while a job of the same name runs.
var ErrRunning = errors.New("job already running")

// Job represents a running unit of work.
// Jobs are added and removed by Manager automatically.
type Job struct {
	Name   string
	Cancel context.CancelFunc
}

// Manager orchestrates starting, stopping and tracking jobs.
// It is safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	jobs   map[string]*Job
	wg     sync.WaitGroup
	logger *zap.Logger
}

// NewManager creates a new Manager. A nil logger discards job events.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		jobs:   make(map[string]*Job),
		logger: logger,
	}
}

// StartAsync runs runner in its own goroutine under a context derived from
// parent and returns immediately. The job is forgotten once runner returns.
func (m *Manager) StartAsync(parent context.Context, name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRunning, name)
	}
	ctx, cancel := context.WithCancel(parent)
	job := &Job{Name: name, Cancel: cancel}
	m.jobs[name] = job
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer cancel()

		m.logger.Debug("Job started", zap.String("job", name))
		if err := runner(ctx); err != nil {
			m.logger.Error("Job failed", zap.String("job", name), zap.Error(err))
		} else {
			m.logger.Debug("Job finished", zap.String("job", name))
		}

		m.mu.Lock()
		if m.jobs[name] == job {
			delete(m.jobs, name)
		}
		m.mu.Unlock()
	}()

	return nil
}

// Stop cancels a running job by name.
// If the job is not running, an error is returned.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[name]
	if !ok {
		return fmt.Errorf("job %q not running", name)
	}

	job.Cancel()
	delete(m.jobs, name)
	return nil
}

// Wait blocks until every started job returned.
func (m *Manager) Wait() { m.wg.Wait() }

// List returns the names of the running jobs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Status returns a human-readable summary of active jobs.
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}
