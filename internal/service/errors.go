package service

import "errors"

// Call-level failures the handlers map onto HTTP statuses. Content
// exhaustion and time expiry are not here: they are normal engine signals,
// not errors.
var (
	ErrTestNotFound        = errors.New("test not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrForbidden           = errors.New("test belongs to another student")
	ErrInvalidPayload      = errors.New("invalid payload")
	ErrSectionStateMissing = errors.New("test has no section state")
	ErrSubmissionInFlight  = errors.New("another submission for this section is in flight")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
)
