package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	listingapp "github.com/inmobiliaria/backend/internal/application/listing"
	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// PropertyHandler handles property CRUD endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *listingapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *listingapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Title           string                  `json:"title" binding:"required,min=1,max=200"`
	Description     string                  `json:"description"`
	Notes           string                  `json:"notes"`
	Type            string                  `json:"type" binding:"required"`
	Condition       string                  `json:"condition" binding:"required"`
	Characteristics listing.Characteristics `json:"caracteristics"`
	Environments    listing.Environments    `json:"environments"`
	Amenities       listing.Amenities       `json:"amenities"`
	Location        listing.Location        `json:"location"`
	CoverImage      *listing.Image          `json:"coverImage"`
	Gallery         []listing.Image         `json:"gallery"`
	OwnerID         *string                 `json:"ownerId" binding:"omitempty,uuid"`
}

// UpdatePropertyRequest represents a partial property update. Nil
// fields are left untouched.
type UpdatePropertyRequest struct {
	Title           *string                  `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string                  `json:"description"`
	Notes           *string                  `json:"notes"`
	Lifecycle       *string                  `json:"lifecycle" binding:"omitempty,oneof=disponible reservada terminada"`
	Type            *string                  `json:"type"`
	Condition       *string                  `json:"condition"`
	Characteristics *listing.Characteristics `json:"caracteristics"`
	Environments    *listing.Environments    `json:"environments"`
	Amenities       *listing.Amenities       `json:"amenities"`
	Location        *listing.Location        `json:"location"`
	CoverImage      *listing.Image           `json:"coverImage"`
	Gallery         []listing.Image          `json:"gallery"`
	OwnerID         *string                  `json:"ownerId" binding:"omitempty,uuid"`
}

// PropertyListFilter represents property list query parameters
type PropertyListFilter struct {
	Type         string `form:"type"`
	Condition    string `form:"condition"`
	Lifecycle    string `form:"lifecycle"`
	Portal       string `form:"portal"`
	PortalStatus string `form:"portal_status"`
	OwnerID      string `form:"owner_id" binding:"omitempty,uuid"`
	Search       string `form:"search"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size" binding:"omitempty,max=100"`
}

// Create handles POST /properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := listingapp.CreatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Notes:       req.Notes,
		Classification: listing.Classification{
			Type:      listing.PropertyType(req.Type),
			Condition: listing.Operation(req.Condition),
		},
		Characteristics: req.Characteristics,
		Environments:    req.Environments,
		Amenities:       req.Amenities,
		Location:        req.Location,
		CoverImage:      req.CoverImage,
		Gallery:         req.Gallery,
	}
	if req.OwnerID != nil {
		ownerID, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			h.BadRequest(c, "Invalid owner ID format")
			return
		}
		input.OwnerID = &ownerID
	}

	prop, err := h.propertyService.CreateProperty(c.Request.Context(), input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, prop)
}

// GetByID handles GET /properties/:id
func (h *PropertyHandler) GetByID(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	prop, err := h.propertyService.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, prop)
}

// List handles GET /properties
func (h *PropertyHandler) List(c *gin.Context) {
	var req PropertyListFilter
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter := listing.Filter{
		Type:         listing.PropertyType(req.Type),
		Condition:    listing.Operation(req.Condition),
		Lifecycle:    listing.Lifecycle(req.Lifecycle),
		Portal:       req.Portal,
		PortalStatus: listing.PublicationState(req.PortalStatus),
		Search:       req.Search,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
		Limit:        req.PageSize,
		Offset:       (req.Page - 1) * req.PageSize,
	}
	if req.OwnerID != "" {
		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			h.BadRequest(c, "Invalid owner ID format")
			return
		}
		filter.OwnerID = &ownerID
	}

	props, total, err := h.propertyService.ListProperties(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, props, total, req.Page, req.PageSize)
}

// Update handles PUT /properties/:id
func (h *PropertyHandler) Update(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := listingapp.UpdatePropertyInput{
		Title:           req.Title,
		Description:     req.Description,
		Notes:           req.Notes,
		Characteristics: req.Characteristics,
		Environments:    req.Environments,
		Amenities:       req.Amenities,
		Location:        req.Location,
		CoverImage:      req.CoverImage,
		Gallery:         req.Gallery,
	}
	if req.Lifecycle != nil {
		l := listing.Lifecycle(*req.Lifecycle)
		input.Lifecycle = &l
	}
	if req.Type != nil || req.Condition != nil {
		cls := listing.Classification{}
		if req.Type != nil {
			cls.Type = listing.PropertyType(*req.Type)
		}
		if req.Condition != nil {
			cls.Condition = listing.Operation(*req.Condition)
		}
		input.Classification = &cls
	}
	if req.OwnerID != nil {
		ownerID, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			h.BadRequest(c, "Invalid owner ID format")
			return
		}
		input.OwnerID = &ownerID
	}

	prop, err := h.propertyService.UpdateProperty(c.Request.Context(), propertyID, input)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, prop)
}

// Delete handles DELETE /properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), propertyID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
