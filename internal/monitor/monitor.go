package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhitlock/aviary/internal/constants"
	"github.com/mwhitlock/aviary/internal/logger"
	"github.com/mwhitlock/aviary/internal/models"
	"github.com/mwhitlock/aviary/internal/utils"
)

// TaskSource returns the current derived task list. The monitor calls it on
// every tick so entity changes between ticks are always picked up.
type TaskSource func() ([]models.Task, error)

// Notifier delivers a best-effort desktop notification. Delivery failure is
// not an error condition for the monitor; it logs and moves on.
type Notifier interface {
	Notify(title, body string) error
}

// Status is the result of one overdue evaluation.
type Status struct {
	CheckedAt    time.Time
	TotalTasks   int
	OverdueCount int
	Overdue      []models.Task
}

// Monitor re-evaluates overdue care tasks on a fixed polling interval.
// The overdue set is recomputed from scratch on every tick; no state from a
// previous tick is carried into the count.
//
// Notification gating is a once-per-occurrence policy: each task id gets at
// most one notification, and because occurrence ids embed the calendar date
// the gate naturally resets at midnight.
type Monitor struct {
	source   TaskSource
	notifier Notifier
	interval time.Duration
	notified map[string]bool
}

// New creates a Monitor over the given task source. A non-positive interval
// falls back to the default. notifier may be nil, which disables
// notifications entirely (the permissionless no-op path).
func New(source TaskSource, interval time.Duration, notifier Notifier) *Monitor {
	if interval <= 0 {
		interval = constants.DefaultPollInterval
	}
	return &Monitor{
		source:   source,
		notifier: notifier,
		interval: interval,
		notified: make(map[string]bool),
	}
}

// Interval reports the polling interval the monitor was built with.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Start runs the polling loop: one immediate check, then one per interval,
// until ctx is cancelled. The ticker is always stopped on return.
func (m *Monitor) Start(ctx context.Context, onStatus func(Status)) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	report := func() {
		status, err := m.Check(time.Now())
		if err != nil {
			logger.Warn("Overdue check failed", "error", err)
			return
		}
		if onStatus != nil {
			onStatus(status)
		}
	}

	report()
	for {
		select {
		case <-ticker.C:
			report()
		case <-ctx.Done():
			logger.Debug("Overdue monitor stopped")
			return
		}
	}
}

// Check performs a single overdue evaluation at the given wall-clock instant.
func (m *Monitor) Check(now time.Time) (Status, error) {
	tasks, err := m.source()
	if err != nil {
		return Status{}, fmt.Errorf("loading tasks: %w", err)
	}

	status := Status{CheckedAt: now, TotalTasks: len(tasks)}
	for _, task := range tasks {
		if task.IsCompleted {
			continue
		}
		if !IsOverdue(task, now) {
			continue
		}
		status.OverdueCount++
		status.Overdue = append(status.Overdue, task)
		m.maybeNotify(task)
	}

	return status, nil
}

// IsOverdue reports whether a non-completed task's due time-of-day has passed
// at now. A task becomes overdue at the exact minute it is due.
func IsOverdue(task models.Task, now time.Time) bool {
	dueMinutes, err := utils.ParseTimeToMinutes(task.DueTime)
	if err != nil {
		// A task with an unparseable due time can never become overdue.
		return false
	}
	return now.Hour()*60+now.Minute() >= dueMinutes
}

func (m *Monitor) maybeNotify(task models.Task) {
	if m.notifier == nil || m.notified[task.ID] {
		return
	}
	m.notified[task.ID] = true

	body := fmt.Sprintf("Don't forget: %s for your bird!", task.Title)
	if err := m.notifier.Notify(constants.NotificationTitle, body); err != nil {
		logger.Debug("Notification not delivered", "task", task.ID, "error", err)
	}
}
