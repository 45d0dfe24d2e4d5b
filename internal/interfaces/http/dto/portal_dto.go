package dto

import (
	"strings"

	"github.com/inmobiliaria/backend/internal/domain/client"
	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// PortalActionRequest is the body of the portal publish/sync/remove
// endpoints. PropertyData, OwnerData and Images override the stored
// records for this call only; the stored property is left untouched.
type PortalActionRequest struct {
	PropertyID   string            `json:"propertyId" binding:"required,uuid"`
	Action       string            `json:"action"`
	PropertyData *listing.Property `json:"propertyData"`
	OwnerData    *client.Client    `json:"ownerData"`
	Images       []listing.Image   `json:"images"`
}

// portalKey turns a portal code into the camelCase key prefix used by
// the portal endpoints ("inmoup" -> "Inmoup").
func portalKey(portal string) string {
	if portal == "" {
		return ""
	}
	return strings.ToUpper(portal[:1]) + portal[1:]
}

// NewPortalSuccessResponse builds the portal endpoint success body:
// {success, message, <portal>Response, updated<Portal>Data}
func NewPortalSuccessResponse(portal, message string, portalResponse any, status *listing.PortalStatus) map[string]any {
	body := map[string]any{
		"success": true,
		"message": message,
	}
	if portalResponse != nil {
		body[portal+"Response"] = portalResponse
	}
	if status != nil {
		body["updated"+portalKey(portal)+"Data"] = status
	}
	return body
}

// NewPortalErrorResponse builds the portal endpoint failure body:
// {error, details?, validationErrors?, updated<Portal>Data?}
func NewPortalErrorResponse(portal, message, details string, validationErrors []string, status *listing.PortalStatus) map[string]any {
	body := map[string]any{
		"error": message,
	}
	if details != "" {
		body["details"] = details
	}
	if len(validationErrors) > 0 {
		body["validationErrors"] = validationErrors
	}
	if status != nil {
		body["updated"+portalKey(portal)+"Data"] = status
	}
	return body
}
