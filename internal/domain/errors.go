package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrPartialAssignment  = errors.New("assignee id and name must be set together")
	ErrMissingClient      = errors.New("client identity is required")
	ErrBlobNotFound       = errors.New("blob not found")
	ErrNotInitialized     = errors.New("deskhub not initialized (run 'deskhub init' first)")
	ErrAlreadyInitialized = errors.New("deskhub already initialized")
	ErrNotLoggedIn        = errors.New("not logged in (run 'deskhub login' first)")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("operation not permitted for this role")
	ErrEmptyFile          = errors.New("file is empty")
	ErrNoDraftsInFile     = errors.New("no task drafts found in file")
)
