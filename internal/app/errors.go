package app

import "errors"

var (
	ErrNoFamily       = errors.New("family not set up")
	ErrFamilyExists   = errors.New("family already set up")
	ErrInvalidFamily  = errors.New("invalid family")
	ErrNoActiveMember = errors.New("no active member")
	ErrNotParent      = errors.New("active member is not a parent")
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidMember  = errors.New("invalid member")

	ErrInsufficientPoints = errors.New("insufficient points")
)
