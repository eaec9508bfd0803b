package model

import "time"

type TaskStatus string

const (
	StatusPending             TaskStatus = "PENDING"
	StatusWaitingVerification TaskStatus = "WAITING_VERIFICATION"
	StatusCompleted           TaskStatus = "COMPLETED"
	StatusFailed              TaskStatus = "FAILED"
)

// Terminal reports whether no further transition is allowed from s.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// TimeSlot tags a daily-plan task. The zero value means the task is a
// single (non-plan) task.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "MORNING"
	SlotNoon      TimeSlot = "NOON"
	SlotAfternoon TimeSlot = "AFTERNOON"
	SlotEvening   TimeSlot = "EVENING"
)

// TimeSlots lists the slots in the order a day runs through them.
var TimeSlots = []TimeSlot{SlotMorning, SlotNoon, SlotAfternoon, SlotEvening}

func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotNoon, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Task is one assignment from a parent to a child.
//
// Empty string fields with omitempty are absent: an empty ChildProofImage
// means the child submitted no media, an empty ProofImage means nothing is
// archived. CompletedAt and VerifiedAt are nil until the matching
// transition happens and are never cleared afterwards.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AssignedToID string     `json:"assignedToId"`
	CreatedBy    string     `json:"createdBy"`
	Status       TaskStatus `json:"status"`
	PointsReward int        `json:"pointsReward"`
	CategoryIcon string     `json:"categoryIcon,omitempty"`
	TimeSlot     TimeSlot   `json:"timeSlot,omitempty"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
	VerifiedAt  *time.Time `json:"verifiedAt,omitempty"`

	ProofImage     string    `json:"proofImage,omitempty"`
	ProofMediaType MediaType `json:"proofMediaType,omitempty"`

	ChildProofImage     string    `json:"childProofImage,omitempty"`
	ChildProofMediaType MediaType `json:"childProofMediaType,omitempty"`
	ChildFeedback       string    `json:"childFeedback,omitempty"`
	Feedback            string    `json:"feedback,omitempty"`
}

// IsDaily reports whether the task belongs to a daily plan.
func (t Task) IsDaily() bool { return t.TimeSlot != "" }

// FindTask returns the index of the task with the given id, or -1.
func FindTask(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
