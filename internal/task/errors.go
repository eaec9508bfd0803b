package task

import "errors"

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTransition = errors.New("invalid task transition")
	ErrInvalidInput      = errors.New("invalid task input")
	ErrAssigneeNotChild  = errors.New("assignee is not a child member")
	ErrEmptyBatch        = errors.New("empty task batch")
)
