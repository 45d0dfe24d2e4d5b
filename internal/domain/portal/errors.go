package portal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPortalNotRegistered = errors.New("portal: portal not registered")
	ErrNotConfigured       = errors.New("portal: portal is not configured")
	ErrNotPublished        = errors.New("portal: listing is not published on this portal")
	ErrEmptyResponse       = errors.New("portal: empty response from portal")
)

// ValidationError is returned when a mapped payload fails the portal's
// pre-flight validation. Violations carries every accumulated problem.
type ValidationError struct {
	Portal     Code
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("portal: %s payload invalid: %s", e.Portal, strings.Join(e.Violations, "; "))
}

// CredentialError is returned when portal credentials are missing or
// could not be refreshed.
type CredentialError struct {
	Portal Code
	Reason string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("portal: %s credential failure: %s", e.Portal, e.Reason)
}

// UpstreamError is returned when the portal answered with a non-2xx
// HTTP status.
type UpstreamError struct {
	Portal     Code
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("portal: %s responded %d: %s", e.Portal, e.StatusCode, e.Message)
}

// RejectionError is returned when the portal answered 2xx but the body
// carried an embedded error list.
type RejectionError struct {
	Portal   Code
	Messages []string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("portal: %s rejected the request: %s", e.Portal, strings.Join(e.Messages, "; "))
}
