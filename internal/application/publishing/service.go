package publishing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inmobiliaria/backend/internal/domain/client"
	"github.com/inmobiliaria/backend/internal/domain/listing"
	"github.com/inmobiliaria/backend/internal/domain/portal"
)

// Request is one portal operation ask. Property, Owner and Images
// override the stored data when supplied, so a caller can publish
// edits it has not saved yet; the persisted aggregate still receives
// every status write.
type Request struct {
	PropertyID uuid.UUID
	Property   *listing.Property
	Owner      *client.Client
	Images     []listing.Image
}

// Outcome is the result of one portal operation. Status reflects the
// record after reconciliation and is present on failures too, so the
// HTTP layer can always report the current portal state.
type Outcome struct {
	Portal  portal.Code
	Result  *portal.PublishResult
	Status  listing.PortalStatus
	Message string
}

// Service orchestrates portal operations: queued, map, validate,
// credentials, one client call, then state reconciliation. No retries
// anywhere; one ask is one remote attempt.
type Service struct {
	repo       listing.Repository
	clients    client.Repository
	registry   *portal.Registry
	reconciler *StatusReconciler
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates the publish orchestrator
func NewService(repo listing.Repository, clients client.Repository, registry *portal.Registry, reconciler *StatusReconciler, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		clients:    clients,
		registry:   registry,
		reconciler: reconciler,
		logger:     logger,
		now:        time.Now,
	}
}

// Publish creates the listing on the given portal
func (s *Service) Publish(ctx context.Context, code portal.Code, req Request) (*Outcome, error) {
	pub, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}
	prop, err := s.repo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	st := prop.PortalState(code.String())
	if err := st.MarkQueued(); err != nil {
		return nil, err
	}
	s.reconciler.UpdateStatus(ctx, prop.ID, code.String(), StatusChange{Status: listing.StatusQueued})

	result, err := pub.Publish(ctx, s.buildRequest(ctx, prop, req, ""))
	now := s.now()
	if err != nil {
		// A failed create leaves a clean error state: no external
		// references were ever obtained.
		msg := err.Error()
		st.MarkFailed(msg, now)
		st.ExternalID = nil
		st.ExternalURL = nil
		st.Uploaded = false
		s.reconciler.UpdateStatus(ctx, prop.ID, code.String(), StatusChange{
			Status:    listing.StatusError,
			LastError: &msg,
			ClearRefs: true,
		})
		return &Outcome{Portal: code, Status: *st}, err
	}

	if markErr := st.MarkPublished(result.ExternalID, result.ExternalURL, now); markErr != nil {
		return nil, markErr
	}
	change := StatusChange{
		Status:     listing.StatusOK,
		ExternalID: &result.ExternalID,
		ClearError: true,
	}
	if result.ExternalURL != "" {
		change.ExternalURL = &result.ExternalURL
	}
	s.reconciler.UpdateStatus(ctx, prop.ID, code.String(), change)

	return &Outcome{
		Portal:  code,
		Result:  result,
		Status:  *st,
		Message: "Property published to " + code.DisplayName(),
	}, nil
}

// Sync pushes the current property data to the portal listing that
// already exists there. A failure keeps the pre-operation external
// references and lands the record on error with the failure attached.
func (s *Service) Sync(ctx context.Context, code portal.Code, req Request) (*Outcome, error) {
	pub, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}
	prop, err := s.repo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	st := prop.PortalState(code.String())
	if st.ExternalID == nil || *st.ExternalID == "" {
		return nil, portal.ErrNotPublished
	}
	externalID := *st.ExternalID
	snap := st.Snapshot()

	if err := st.MarkQueued(); err != nil {
		return nil, err
	}
	s.reconciler.UpdateStatus(ctx, prop.ID, code.String(), StatusChange{Status: listing.StatusQueued})

	result, err := pub.Sync(ctx, s.buildRequest(ctx, prop, req, externalID))
	now := s.now()
	if err != nil {
		msg := err.Error()
		st.RestoreFailed(snap, msg, now)
		s.reconciler.Restore(ctx, prop.ID, code.String(), snap, msg)
		return &Outcome{Portal: code, Status: *st}, err
	}

	url := externalURLOr(result, snap.ExternalURL)
	if markErr := st.MarkPublished(externalID, url, now); markErr != nil {
		return nil, markErr
	}
	change := StatusChange{
		Status:     listing.StatusOK,
		ExternalID: &externalID,
		ClearError: true,
	}
	if url != "" {
		change.ExternalURL = &url
	}
	s.reconciler.UpdateStatus(ctx, prop.ID, code.String(), change)

	return &Outcome{
		Portal:  code,
		Result:  result,
		Status:  *st,
		Message: "Property synced with " + code.DisplayName(),
	}, nil
}

// Remove takes the listing down remotely. Success clears the external
// references and returns the record to not_sent; failure keeps the
// references and lands the record on error.
func (s *Service) Remove(ctx context.Context, code portal.Code, propertyID uuid.UUID) (*Outcome, error) {
	pub, err := s.registry.Get(code)
	if err != nil {
		return nil, err
	}
	prop, err := s.repo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	st := prop.PortalState(code.String())
	if st.ExternalID == nil || *st.ExternalID == "" {
		return nil, portal.ErrNotPublished
	}
	externalID := *st.ExternalID
	snap := st.Snapshot()

	if err := st.MarkQueued(); err != nil {
		return nil, err
	}
	s.reconciler.UpdateStatus(ctx, prop.ID, code.String(), StatusChange{Status: listing.StatusQueued})

	err = pub.Remove(ctx, externalID)
	now := s.now()
	if err != nil {
		msg := err.Error()
		st.RestoreFailed(snap, msg, now)
		s.reconciler.Restore(ctx, prop.ID, code.String(), snap, msg)
		return &Outcome{Portal: code, Status: *st}, err
	}

	st.MarkRemoved(now)
	s.reconciler.UpdateStatus(ctx, prop.ID, code.String(), StatusChange{
		Status:     listing.StatusNotSent,
		ClearRefs:  true,
		ClearError: true,
	})

	return &Outcome{
		Portal:  code,
		Status:  *st,
		Message: "Property removed from " + code.DisplayName(),
	}, nil
}

// Capabilities returns the integration metadata of one portal
func (s *Service) Capabilities(code portal.Code) (portal.Capabilities, error) {
	pub, err := s.registry.Get(code)
	if err != nil {
		return portal.Capabilities{}, err
	}
	return pub.Capabilities(), nil
}

// AllCapabilities returns the metadata of every registered portal
func (s *Service) AllCapabilities() []portal.Capabilities {
	var caps []portal.Capabilities
	for _, code := range s.registry.Codes() {
		if pub, err := s.registry.Get(code); err == nil {
			caps = append(caps, pub.Capabilities())
		}
	}
	return caps
}

// buildRequest assembles the outbound request, preferring the
// caller's overrides over stored data
func (s *Service) buildRequest(ctx context.Context, stored *listing.Property, req Request, externalID string) *portal.PublishRequest {
	source := stored
	if req.Property != nil {
		source = req.Property
	}

	owner := req.Owner
	if owner == nil && stored.OwnerID != nil && s.clients != nil {
		loaded, err := s.clients.FindByID(ctx, *stored.OwnerID)
		if err != nil {
			s.logger.Warn("owner lookup failed, publishing without owner data",
				zap.String("property_id", stored.ID.String()),
				zap.Error(err))
		} else {
			owner = loaded
		}
	}

	images := req.Images
	if images == nil {
		images = source.Images()
	}

	return &portal.PublishRequest{
		Property:   source,
		Owner:      owner,
		Images:     images,
		ExternalID: externalID,
	}
}

func externalURLOr(result *portal.PublishResult, fallback *string) string {
	if result != nil && result.ExternalURL != "" {
		return result.ExternalURL
	}
	if fallback != nil {
		return *fallback
	}
	return ""
}
