package listing

import (
	"time"
)

// PublicationState is the per-portal publication state of a property
type PublicationState string

const (
	StatusNotSent PublicationState = "not_sent"
	StatusQueued  PublicationState = "queued"
	StatusOK      PublicationState = "ok"
	StatusError   PublicationState = "error"
	StatusStale   PublicationState = "desactualizado"
)

// IsValid checks whether the state is a known value
func (s PublicationState) IsValid() bool {
	switch s {
	case StatusNotSent, StatusQueued, StatusOK, StatusError, StatusStale:
		return true
	}
	return false
}

func (s PublicationState) String() string {
	return string(s)
}

// publicationTransitions is the allowed state machine. ok appears as a
// source of queued so an already published listing can be re-synced on
// demand, not only after going stale.
var publicationTransitions = map[PublicationState][]PublicationState{
	StatusNotSent: {StatusQueued},
	StatusQueued:  {StatusOK, StatusError},
	StatusOK:      {StatusStale, StatusQueued, StatusNotSent},
	StatusError:   {StatusQueued, StatusNotSent},
	StatusStale:   {StatusQueued, StatusNotSent},
}

// CanTransition reports whether moving from s to target is allowed
func (s PublicationState) CanTransition(target PublicationState) bool {
	for _, t := range publicationTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// PortalStatus is the publication record of one property on one
// portal. Uploaded and ExternalID move in lockstep: a record is
// uploaded exactly when it holds a remote id.
type PortalStatus struct {
	Portal      string           `json:"name"`
	Uploaded    bool             `json:"uploaded"`
	ExternalID  *string          `json:"externalId"`
	ExternalURL *string          `json:"externalUrl"`
	Status      PublicationState `json:"status"`
	LastSyncAt  *time.Time       `json:"lastSyncAt"`
	LastError   *string          `json:"lastError"`
}

// NewPortalStatus creates an empty not_sent record for a portal
func NewPortalStatus(portal string) *PortalStatus {
	return &PortalStatus{
		Portal: portal,
		Status: StatusNotSent,
	}
}

// StatusSnapshot captures the external references of a PortalStatus
// before a portal operation, so a failed sync or remove can roll them
// back. The remote listing still holds its last good data after such
// a failure; only the references are worth protecting.
type StatusSnapshot struct {
	Uploaded    bool
	ExternalID  *string
	ExternalURL *string
}

// Snapshot captures the current external references
func (ps *PortalStatus) Snapshot() StatusSnapshot {
	return StatusSnapshot{
		Uploaded:    ps.Uploaded,
		ExternalID:  ps.ExternalID,
		ExternalURL: ps.ExternalURL,
	}
}

// RestoreFailed puts the snapshotted references back and records the
// failure. The record lands on error, not on its previous state, so
// the failed attempt stays actionable while the remote listing keeps
// being addressable through the restored id.
func (ps *PortalStatus) RestoreFailed(snap StatusSnapshot, message string, at time.Time) {
	ps.Uploaded = snap.Uploaded
	ps.ExternalID = snap.ExternalID
	ps.ExternalURL = snap.ExternalURL
	ps.MarkFailed(message, at)
}

// MarkQueued moves the record into queued ahead of a portal call.
// Re-queueing an already queued record is a no-op so an interrupted
// operation cannot wedge it.
func (ps *PortalStatus) MarkQueued() error {
	if ps.Status == StatusQueued {
		return nil
	}
	if !ps.Status.CanTransition(StatusQueued) {
		return ErrInvalidTransition
	}
	ps.Status = StatusQueued
	return nil
}

// MarkPublished records a successful create or sync
func (ps *PortalStatus) MarkPublished(externalID, externalURL string, at time.Time) error {
	if externalID == "" {
		return ErrExternalIDRequired
	}
	ps.Uploaded = true
	ps.ExternalID = &externalID
	if externalURL != "" {
		ps.ExternalURL = &externalURL
	}
	ps.Status = StatusOK
	ps.LastSyncAt = &at
	ps.LastError = nil
	return nil
}

// MarkFailed records a failed portal call
func (ps *PortalStatus) MarkFailed(message string, at time.Time) {
	ps.Status = StatusError
	ps.LastSyncAt = &at
	ps.LastError = &message
}

// MarkRemoved records a successful remote removal. External
// references are cleared together with the uploaded flag.
func (ps *PortalStatus) MarkRemoved(at time.Time) {
	ps.Uploaded = false
	ps.ExternalID = nil
	ps.ExternalURL = nil
	ps.Status = StatusNotSent
	ps.LastSyncAt = &at
	ps.LastError = nil
}
