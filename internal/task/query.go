package task

import (
	"sort"
	"time"

	"github.com/dukerupert/familyquest/internal/model"
)

// AssignedTo returns the tasks assigned to memberID, in collection order.
func AssignedTo(tasks []model.Task, memberID string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.AssignedToID == memberID {
			out = append(out, t)
		}
	}
	return out
}

// WithStatus filters tasks by status.
func WithStatus(tasks []model.Task, status model.TaskStatus) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// PendingSingle returns PENDING tasks that are not part of a daily plan.
func PendingSingle(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Status == model.StatusPending && !t.IsDaily() {
			out = append(out, t)
		}
	}
	return out
}

// History returns COMPLETED tasks, most recently closed first. A task is
// dated by VerifiedAt, falling back to CompletedAt.
func History(tasks []model.Task) []model.Task {
	out := WithStatus(tasks, model.StatusCompleted)
	sort.SliceStable(out, func(i, j int) bool {
		return closedAt(out[i]).After(closedAt(out[j]))
	})
	return out
}

func closedAt(t model.Task) time.Time {
	if t.VerifiedAt != nil {
		return *t.VerifiedAt
	}
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return time.Time{}
}
