package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inmobiliaria/backend/internal/application/publishing"
	"github.com/inmobiliaria/backend/internal/domain/listing"
	"github.com/inmobiliaria/backend/internal/domain/portal"
	"github.com/inmobiliaria/backend/internal/interfaces/http/dto"
)

// PortalHandler handles publish, sync and remove calls against the
// external marketplaces. Its response bodies follow the portal action
// contract rather than the standard envelope: success responses carry
// the raw portal reply and the updated status record under
// portal-prefixed keys.
type PortalHandler struct {
	BaseHandler
	publisher *publishing.Service
}

// NewPortalHandler creates a new PortalHandler
func NewPortalHandler(publisher *publishing.Service) *PortalHandler {
	return &PortalHandler{publisher: publisher}
}

// Publish creates the listing on the portal named in the path.
// POST /portals/:portal
func (h *PortalHandler) Publish(c *gin.Context) {
	code, ok := h.portalCode(c)
	if !ok {
		return
	}

	req, ok := h.bindAction(c, code, "")
	if !ok {
		return
	}

	outcome, err := h.publisher.Publish(c.Request.Context(), code, req)
	if err != nil {
		h.portalError(c, code, outcome, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPortalSuccessResponse(
		code.String(), outcome.Message, rawResult(outcome), &outcome.Status))
}

// Sync pushes the current property data to the already-published
// portal listing. The body must carry action "sync".
// PUT /portals/:portal
func (h *PortalHandler) Sync(c *gin.Context) {
	code, ok := h.portalCode(c)
	if !ok {
		return
	}

	req, ok := h.bindAction(c, code, "sync")
	if !ok {
		return
	}

	outcome, err := h.publisher.Sync(c.Request.Context(), code, req)
	if err != nil {
		h.portalError(c, code, outcome, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPortalSuccessResponse(
		code.String(), outcome.Message, rawResult(outcome), &outcome.Status))
}

// Remove takes the portal listing down. The body must carry action
// "delete".
// DELETE /portals/:portal
func (h *PortalHandler) Remove(c *gin.Context) {
	code, ok := h.portalCode(c)
	if !ok {
		return
	}

	var body dto.PortalActionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewPortalErrorResponse(
			code.String(), "Invalid request body", err.Error(), nil, nil))
		return
	}
	if body.Action != "delete" {
		c.JSON(http.StatusBadRequest, dto.NewPortalErrorResponse(
			code.String(), "Action must be \"delete\"", "", nil, nil))
		return
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewPortalErrorResponse(
			code.String(), "Invalid property ID format", "", nil, nil))
		return
	}

	outcome, err := h.publisher.Remove(c.Request.Context(), code, propertyID)
	if err != nil {
		h.portalError(c, code, outcome, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPortalSuccessResponse(
		code.String(), outcome.Message, nil, &outcome.Status))
}

// Capabilities reports the integration metadata of one portal.
// GET /portals/:portal
func (h *PortalHandler) Capabilities(c *gin.Context) {
	code, ok := h.portalCode(c)
	if !ok {
		return
	}

	caps, err := h.publisher.Capabilities(code)
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodePortalUnknown, "Portal not registered: "+code.String())
		return
	}
	h.Success(c, caps)
}

// ListCapabilities reports the metadata of every registered portal.
// GET /portals
func (h *PortalHandler) ListCapabilities(c *gin.Context) {
	h.Success(c, h.publisher.AllCapabilities())
}

// portalCode resolves and validates the :portal path parameter
func (h *PortalHandler) portalCode(c *gin.Context) (portal.Code, bool) {
	code := portal.Code(c.Param("portal"))
	if !code.IsValid() {
		c.JSON(http.StatusNotFound, dto.NewPortalErrorResponse(
			code.String(), "Unknown portal: "+code.String(), "", nil, nil))
		return "", false
	}
	return code, true
}

// bindAction parses the action body shared by publish and sync
func (h *PortalHandler) bindAction(c *gin.Context, code portal.Code, requireAction string) (publishing.Request, bool) {
	var body dto.PortalActionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewPortalErrorResponse(
			code.String(), "Invalid request body", err.Error(), nil, nil))
		return publishing.Request{}, false
	}
	if requireAction != "" && body.Action != requireAction {
		c.JSON(http.StatusBadRequest, dto.NewPortalErrorResponse(
			code.String(), "Action must be \""+requireAction+"\"", "", nil, nil))
		return publishing.Request{}, false
	}
	propertyID, err := uuid.Parse(body.PropertyID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewPortalErrorResponse(
			code.String(), "Invalid property ID format", "", nil, nil))
		return publishing.Request{}, false
	}
	return publishing.Request{
		PropertyID: propertyID,
		Property:   body.PropertyData,
		Owner:      body.OwnerData,
		Images:     body.Images,
	}, true
}

// portalError maps a failed portal operation to the contract's error
// body and status code. The outcome, when present, carries the status
// record after reconciliation so the caller sees the stored state.
func (h *PortalHandler) portalError(c *gin.Context, code portal.Code, outcome *publishing.Outcome, err error) {
	var status *listing.PortalStatus
	if outcome != nil {
		status = &outcome.Status
	}

	var validationErr *portal.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, dto.NewPortalErrorResponse(
			code.String(), "Property data failed "+code.DisplayName()+" validation",
			"", validationErr.Violations, status))
		return
	}

	var rejectionErr *portal.RejectionError
	if errors.As(err, &rejectionErr) {
		c.JSON(http.StatusBadRequest, dto.NewPortalErrorResponse(
			code.String(), code.DisplayName()+" rejected the listing",
			"", rejectionErr.Messages, status))
		return
	}

	var credentialErr *portal.CredentialError
	if errors.As(err, &credentialErr) {
		c.JSON(http.StatusInternalServerError, dto.NewPortalErrorResponse(
			code.String(), code.DisplayName()+" credentials are missing or invalid",
			credentialErr.Reason, nil, status))
		return
	}

	var upstreamErr *portal.UpstreamError
	if errors.As(err, &upstreamErr) {
		c.JSON(http.StatusBadGateway, dto.NewPortalErrorResponse(
			code.String(), code.DisplayName()+" request failed",
			upstreamErr.Message, nil, status))
		return
	}

	switch {
	case errors.Is(err, portal.ErrEmptyResponse):
		c.JSON(http.StatusUnprocessableEntity, dto.NewPortalErrorResponse(
			code.String(), code.DisplayName()+" reported success but published nothing",
			"", nil, status))
	case errors.Is(err, portal.ErrNotPublished):
		c.JSON(http.StatusConflict, dto.NewPortalErrorResponse(
			code.String(), "Property is not published on "+code.DisplayName(),
			"", nil, status))
	case errors.Is(err, portal.ErrPortalNotRegistered):
		c.JSON(http.StatusNotFound, dto.NewPortalErrorResponse(
			code.String(), "Portal not registered: "+code.String(), "", nil, nil))
	case errors.Is(err, listing.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, dto.NewPortalErrorResponse(
			code.String(), "Property not found", "", nil, nil))
	case errors.Is(err, listing.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, dto.NewPortalErrorResponse(
			code.String(), err.Error(), "", nil, status))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewPortalErrorResponse(
			code.String(), "Portal operation failed", err.Error(), nil, status))
	}
}

// rawResult extracts the decoded portal reply from an outcome
func rawResult(outcome *publishing.Outcome) any {
	if outcome.Result == nil || outcome.Result.Raw == nil {
		return nil
	}
	return outcome.Result.Raw
}
