package publishing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// StatusChange describes the fields a reconciliation write touches.
// Nil pointer fields are left as they are; only supplied fields merge
// into the stored record. LastSyncAt is always stamped by the
// reconciler itself.
type StatusChange struct {
	Status      listing.PublicationState
	ExternalID  *string
	ExternalURL *string
	LastError   *string
	ClearError  bool

	// ClearRefs drops the external references together with the
	// uploaded flag, as a successful removal does.
	ClearRefs bool
}

// StatusReconciler persists per-portal publication state after portal
// operations. Writes never fail loudly: a persistence problem is
// logged and reported as false so the caller can still answer with
// the portal outcome it already has.
type StatusReconciler struct {
	repo   listing.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewStatusReconciler creates a reconciler over the property store
func NewStatusReconciler(repo listing.Repository, logger *zap.Logger) *StatusReconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusReconciler{repo: repo, logger: logger, now: time.Now}
}

// UpdateStatus merges a status change into the stored record of one
// portal and stamps lastSyncAt. Returns false when the property is
// missing or the write fails; both cases are logged.
func (r *StatusReconciler) UpdateStatus(ctx context.Context, propertyID uuid.UUID, portal string, change StatusChange) bool {
	prop, err := r.repo.FindByID(ctx, propertyID)
	if err != nil {
		r.logger.Error("status reconciliation could not load property",
			zap.String("property_id", propertyID.String()),
			zap.String("portal", portal),
			zap.Error(err))
		return false
	}

	st := prop.PortalState(portal)
	now := r.now()

	if change.Status != "" {
		st.Status = change.Status
	}
	if change.ExternalID != nil {
		st.ExternalID = change.ExternalID
	}
	if change.ExternalURL != nil {
		st.ExternalURL = change.ExternalURL
	}
	if change.ClearRefs {
		st.ExternalID = nil
		st.ExternalURL = nil
	}
	if change.LastError != nil {
		st.LastError = change.LastError
	} else if change.ClearError {
		st.LastError = nil
	}

	// Uploaded tracks the presence of a remote id, always.
	st.Uploaded = st.ExternalID != nil
	st.LastSyncAt = &now

	if err := r.repo.SavePortalStatus(ctx, propertyID, st); err != nil {
		r.logger.Error("status reconciliation write failed",
			zap.String("property_id", propertyID.String()),
			zap.String("portal", portal),
			zap.String("status", st.Status.String()),
			zap.Error(err))
		return false
	}
	return true
}

// Restore rolls the external references of a portal record back to
// their pre-operation snapshot and records the failure: the record
// lands on error with lastError attached. Used when a sync or remove
// fails after the record was already marked queued.
func (r *StatusReconciler) Restore(ctx context.Context, propertyID uuid.UUID, portal string, snap listing.StatusSnapshot, lastError string) bool {
	prop, err := r.repo.FindByID(ctx, propertyID)
	if err != nil {
		r.logger.Error("status restore could not load property",
			zap.String("property_id", propertyID.String()),
			zap.String("portal", portal),
			zap.Error(err))
		return false
	}

	st := prop.PortalState(portal)
	now := r.now()

	st.RestoreFailed(snap, lastError, now)

	if err := r.repo.SavePortalStatus(ctx, propertyID, st); err != nil {
		r.logger.Error("status restore write failed",
			zap.String("property_id", propertyID.String()),
			zap.String("portal", portal),
			zap.Error(err))
		return false
	}
	return true
}

// ClearError drops the stored lastError of one portal record
func (r *StatusReconciler) ClearError(ctx context.Context, propertyID uuid.UUID, portal string) bool {
	return r.UpdateStatus(ctx, propertyID, portal, StatusChange{ClearError: true})
}
