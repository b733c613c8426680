package service

import "errors"

// Service layer errors. The message of each sentinel is safe to show to clients.
var (
	// validation
	ErrRegisterFieldsRequired = errors.New("Email, username, and password are required")
	ErrLoginFieldsRequired    = errors.New("Email and password are required")
	ErrIdeaContentRequired    = errors.New("Idea content is required")
	ErrProjectNameRequired    = errors.New("Project name is required")
	ErrTaskTitleRequired      = errors.New("Task title is required")
	ErrInvalidStatus          = errors.New("Invalid status value")
	ErrInvalidPriority        = errors.New("Invalid priority value")
	ErrInvalidDocType         = errors.New("Invalid doc type")
	ErrTaskIDsRequired        = errors.New("taskIds must be a non-empty list")

	// conflict
	ErrEmailTaken           = errors.New("email already exists")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrIdeaAlreadyConverted = errors.New("Idea already converted to a project")

	// authentication
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrNoToken            = errors.New("No token provided")
	ErrTokenExpired       = errors.New("Token expired")
	ErrTokenInvalid       = errors.New("Invalid token")
	ErrUserNotFound       = errors.New("User not found")
	ErrNoRefreshToken     = errors.New("No refresh token")
	ErrRefreshInvalid     = errors.New("Invalid refresh token")

	// ownership
	ErrForbidden       = errors.New("Not authorized to update one or more tasks")
	ErrIdeaNotFound    = errors.New("Idea not found")
	ErrProjectNotFound = errors.New("Project not found")
	ErrTaskNotFound    = errors.New("Task not found")
	ErrDocNotFound     = errors.New("Doc not found")

	// upstream
	ErrUpstream         = errors.New("AI service error")
	ErrPredictionFailed = errors.New("Failed to predict project success")
)

var validationErrs = []error{
	ErrRegisterFieldsRequired, ErrLoginFieldsRequired, ErrIdeaContentRequired,
	ErrProjectNameRequired, ErrTaskTitleRequired, ErrInvalidStatus,
	ErrInvalidPriority, ErrInvalidDocType, ErrTaskIDsRequired,
}

var conflictErrs = []error{ErrEmailTaken, ErrUsernameTaken, ErrIdeaAlreadyConverted}

var unauthorizedErrs = []error{
	ErrInvalidCredentials, ErrNoToken, ErrTokenExpired, ErrTokenInvalid,
	ErrUserNotFound, ErrNoRefreshToken,
}

var notFoundErrs = []error{ErrIdeaNotFound, ErrProjectNotFound, ErrTaskNotFound, ErrDocNotFound}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func IsValidation(err error) bool   { return isAny(err, validationErrs) }
func IsConflict(err error) bool     { return isAny(err, conflictErrs) }
func IsUnauthorized(err error) bool { return isAny(err, unauthorizedErrs) }
func IsNotFound(err error) bool     { return isAny(err, notFoundErrs) }

// IsForbidden covers authenticated callers that are not entitled to the resource.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || errors.Is(err, ErrRefreshInvalid)
}

func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstream) || errors.Is(err, ErrPredictionFailed)
}
