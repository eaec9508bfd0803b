// Package task implements the task lifecycle:
//
//	PENDING -> WAITING_VERIFICATION -> COMPLETED | FAILED
//
// Functions take the current task (and member) slices and return new ones.
// Inputs are never modified, so a rejected operation leaves the caller's
// snapshot exactly as it was.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/familyquest/internal/ident"
	"github.com/dukerupert/familyquest/internal/ledger"
	"github.com/dukerupert/familyquest/internal/model"
)

// Draft holds the parent-supplied fields of a new task.
type Draft struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	AssignedToID string         `json:"assignedToId"`
	PointsReward int            `json:"pointsReward"`
	CategoryIcon string         `json:"categoryIcon"`
	TimeSlot     model.TimeSlot `json:"timeSlot,omitempty"`
}

// Submission is what a child hands in. Media is already encoded by the view.
type Submission struct {
	Media     string          `json:"proofMedia,omitempty"`
	MediaType model.MediaType `json:"mediaType,omitempty"`
	Feedback  string          `json:"feedback,omitempty"`
}

// Verdict is the parent's review. Points is the amount credited on
// approval and may differ from the task's nominal PointsReward; nil means
// the task's PointsReward.
type Verdict struct {
	Approved       bool            `json:"approved"`
	Feedback       string          `json:"feedback"`
	Proof          string          `json:"proofImage,omitempty"`
	ProofMediaType model.MediaType `json:"proofMediaType,omitempty"`
	Points         *int            `json:"points,omitempty"`
}

// Credit returns the amount an approval of t credits.
func (v Verdict) Credit(t model.Task) int {
	if v.Points != nil {
		return *v.Points
	}
	return t.PointsReward
}

// CanTransition reports whether a task may move from one status to another.
func CanTransition(from, to model.TaskStatus) bool {
	switch from {
	case model.StatusPending:
		return to == model.StatusWaitingVerification
	case model.StatusWaitingVerification:
		return to == model.StatusCompleted || to == model.StatusFailed
	default:
		return false
	}
}

// Create validates d and returns tasks with the new PENDING task in front.
func Create(members []model.Member, tasks []model.Task, createdBy string, d Draft) ([]model.Task, model.Task, error) {
	t, err := build(members, createdBy, d)
	if err != nil {
		return nil, model.Task{}, err
	}
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, t)
	out = append(out, tasks...)
	return out, t, nil
}

// CreateBatch validates every draft before building any task, so the
// result holds either all of them or none.
func CreateBatch(members []model.Member, tasks []model.Task, createdBy string, drafts []Draft) ([]model.Task, []model.Task, error) {
	if len(drafts) == 0 {
		return nil, nil, ErrEmptyBatch
	}

	created := make([]model.Task, 0, len(drafts))
	for i, d := range drafts {
		t, err := build(members, createdBy, d)
		if err != nil {
			return nil, nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		created = append(created, t)
	}

	out := make([]model.Task, 0, len(tasks)+len(created))
	out = append(out, created...)
	out = append(out, tasks...)
	return out, created, nil
}

func build(members []model.Member, createdBy string, d Draft) (model.Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if d.PointsReward < 0 {
		return model.Task{}, fmt.Errorf("%w: pointsReward must be >= 0", ErrInvalidInput)
	}
	if d.TimeSlot != "" && !d.TimeSlot.Valid() {
		return model.Task{}, fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, d.TimeSlot)
	}

	assignee := model.FindMember(members, d.AssignedToID)
	if assignee == nil || !assignee.IsChild() {
		return model.Task{}, fmt.Errorf("%w: %q", ErrAssigneeNotChild, d.AssignedToID)
	}

	return model.Task{
		ID:           ident.New(ident.PrefixTask),
		Title:        title,
		Description:  d.Description,
		AssignedToID: assignee.ID,
		CreatedBy:    createdBy,
		Status:       model.StatusPending,
		PointsReward: d.PointsReward,
		CategoryIcon: d.CategoryIcon,
		TimeSlot:     d.TimeSlot,
	}, nil
}

// Submit moves a PENDING task to WAITING_VERIFICATION and records the
// child's proof.
func Submit(tasks []model.Task, id string, s Submission, now time.Time) ([]model.Task, error) {
	i := model.FindTask(tasks, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	cur := tasks[i]
	if !CanTransition(cur.Status, model.StatusWaitingVerification) {
		return nil, fmt.Errorf("%w: submit %q from %s", ErrInvalidTransition, id, cur.Status)
	}

	completedAt := now
	cur.Status = model.StatusWaitingVerification
	cur.CompletedAt = &completedAt
	cur.ChildProofImage = s.Media
	cur.ChildProofMediaType = ""
	if s.Media != "" {
		cur.ChildProofMediaType = mediaTypeOrImage(s.MediaType)
	}
	cur.ChildFeedback = s.Feedback

	return replace(tasks, i, cur), nil
}

// Verify closes a WAITING_VERIFICATION task. On approval with positive
// points the assignee is credited; the returned members reflect that.
func Verify(members []model.Member, tasks []model.Task, id string, v Verdict, now time.Time) ([]model.Task, []model.Member, error) {
	i := model.FindTask(tasks, id)
	if i < 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	cur := tasks[i]

	to := model.StatusFailed
	if v.Approved {
		to = model.StatusCompleted
	}
	if !CanTransition(cur.Status, to) {
		return nil, nil, fmt.Errorf("%w: verify %q from %s", ErrInvalidTransition, id, cur.Status)
	}

	verifiedAt := now
	cur.Status = to
	cur.VerifiedAt = &verifiedAt
	cur.Feedback = v.Feedback
	cur.ProofImage, cur.ProofMediaType = archivedProof(cur, v)

	outMembers := append([]model.Member(nil), members...)
	if amount := v.Credit(cur); v.Approved && amount > 0 {
		outMembers = ledger.Credit(members, cur.AssignedToID, amount)
	}
	return replace(tasks, i, cur), outMembers, nil
}

// archivedProof picks the media kept on the task after review: the
// parent's upload, else a previously archived proof, else the child's
// submission. A rejected task archives nothing.
func archivedProof(t model.Task, v Verdict) (string, model.MediaType) {
	if !v.Approved {
		return "", ""
	}
	switch {
	case v.Proof != "":
		return v.Proof, mediaTypeOrImage(v.ProofMediaType)
	case t.ProofImage != "":
		return t.ProofImage, mediaTypeOrImage(t.ProofMediaType)
	case t.ChildProofImage != "":
		return t.ChildProofImage, mediaTypeOrImage(t.ChildProofMediaType)
	}
	return "", ""
}

// Delete removes the task. Points already credited for it stay.
func Delete(tasks []model.Task, id string) ([]model.Task, error) {
	i := model.FindTask(tasks, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	out := make([]model.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	out = append(out, tasks[i+1:]...)
	return out, nil
}

// ClearMemory drops the archived proof and nothing else.
func ClearMemory(tasks []model.Task, id string) ([]model.Task, error) {
	i := model.FindTask(tasks, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	cur := tasks[i]
	cur.ProofImage = ""
	cur.ProofMediaType = ""
	return replace(tasks, i, cur), nil
}

func replace(tasks []model.Task, i int, t model.Task) []model.Task {
	out := append([]model.Task(nil), tasks...)
	out[i] = t
	return out
}

func mediaTypeOrImage(mt model.MediaType) model.MediaType {
	if mt == model.MediaVideo {
		return model.MediaVideo
	}
	return model.MediaImage
}
