// Package query derives display views from a task snapshot. All
// functions are pure: no state, no side effects, safe for concurrent
// readers.
package query

import (
	"taskease/internal/models/task"
	"time"
)

// All disables a filter dimension.
const All = "All"

func ByCategory(tasks []*task.Task, category string) []*task.Task {
	if category == All {
		return tasks
	}
	res := []*task.Task{}
	for _, t := range tasks {
		if t.Category == category {
			res = append(res, t)
		}
	}
	return res
}

func ByStatus(tasks []*task.Task, status string) []*task.Task {
	if status == All {
		return tasks
	}
	res := []*task.Task{}
	for _, t := range tasks {
		if string(t.Status) == status {
			res = append(res, t)
		}
	}
	return res
}

// Upcoming returns pending tasks with a deadline today or later,
// preserving the snapshot's ascending-deadline order, truncated to
// limit.
func Upcoming(tasks []*task.Task, today time.Time, limit int) []*task.Task {
	day := truncateToDay(today)
	res := []*task.Task{}
	for _, t := range tasks {
		if len(res) >= limit {
			break
		}
		if t.Status != task.StatusPending || t.Deadline == nil {
			continue
		}
		if truncateToDay(*t.Deadline).Before(day) {
			continue
		}
		res = append(res, t)
	}
	return res
}

// DueState annotates a task for display.
type DueState string

const DueNone DueState = "none"
const DueToday DueState = "due_today"
const DueOverdue DueState = "overdue"

// Due classifies a pending dated task against today; completed or
// undated tasks are always DueNone.
func Due(t *task.Task, today time.Time) DueState {
	if t.Status != task.StatusPending || t.Deadline == nil {
		return DueNone
	}

	day := truncateToDay(today)
	deadline := truncateToDay(*t.Deadline)

	switch {
	case deadline.Before(day):
		return DueOverdue
	case deadline.Equal(day):
		return DueToday
	default:
		return DueNone
	}
}

// Progress is completed/total; 0 for an empty snapshot.
func Progress(tasks []*task.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks))
}

// ProgressByCategory groups by the categories present in the snapshot;
// absent categories do not appear.
func ProgressByCategory(tasks []*task.Task) map[string]float64 {
	totals := map[string]int{}
	completed := map[string]int{}

	for _, t := range tasks {
		totals[t.Category]++
		if t.Status == task.StatusCompleted {
			completed[t.Category]++
		}
	}

	res := make(map[string]float64, len(totals))
	for cat, total := range totals {
		res[cat] = float64(completed[cat]) / float64(total)
	}
	return res
}

// Summary holds the counters shown on the analytics view.
type Summary struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Pending   int     `json:"pending"`
	Progress  float64 `json:"progress"`
}

func Summarize(tasks []*task.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == task.StatusCompleted {
			s.Completed++
		}
	}
	s.Pending = s.Total - s.Completed
	s.Progress = Progress(tasks)
	return s
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
