package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	contractapp "github.com/inmobiliaria/backend/internal/application/contract"
	"github.com/inmobiliaria/backend/internal/domain/contract"
	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// ContractHandler handles contract endpoints. Creating a contract
// closes the operation and moves the linked property to terminada.
type ContractHandler struct {
	BaseHandler
	contractService *contractapp.Service
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *contractapp.Service) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// CreateContractRequest represents a request to create a contract
type CreateContractRequest struct {
	PropertyID string     `json:"propertyId" binding:"required,uuid"`
	ClientID   string     `json:"clientId" binding:"required,uuid"`
	Operation  string     `json:"operation" binding:"required,oneof=venta alquiler alquiler_temporario"`
	Amount     float64    `json:"amount" binding:"required,gt=0"`
	Currency   string     `json:"currency"`
	SignedAt   *time.Time `json:"signedAt"`
	Notes      string     `json:"notes"`
}

// ContractListFilter represents contract list query parameters
type ContractListFilter struct {
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	ClientID   string `form:"client_id" binding:"omitempty,uuid"`
	Operation  string `form:"operation"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size" binding:"omitempty,max=100"`
}

// Create handles POST /contracts
func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	signedAt := time.Now()
	if req.SignedAt != nil {
		signedAt = *req.SignedAt
	}

	created, err := h.contractService.CreateContract(c.Request.Context(), contractapp.CreateContractInput{
		PropertyID: propertyID,
		ClientID:   clientID,
		Operation:  listing.Operation(req.Operation),
		Amount:     toDecimal(req.Amount),
		Currency:   req.Currency,
		SignedAt:   signedAt,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID handles GET /contracts/:id
func (h *ContractHandler) GetByID(c *gin.Context) {
	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contract ID format")
		return
	}

	found, err := h.contractService.GetContract(c.Request.Context(), contractID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, found)
}

// List handles GET /contracts
func (h *ContractHandler) List(c *gin.Context) {
	var req ContractListFilter
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

	filter := contract.Filter{
		Operation: listing.Operation(req.Operation),
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Limit:     req.PageSize,
		Offset:    (req.Page - 1) * req.PageSize,
	}
	if req.PropertyID != "" {
		id, err := uuid.Parse(req.PropertyID)
		if err != nil {
			h.BadRequest(c, "Invalid property ID format")
			return
		}
		filter.PropertyID = &id
	}
	if req.ClientID != "" {
		id, err := uuid.Parse(req.ClientID)
		if err != nil {
			h.BadRequest(c, "Invalid client ID format")
			return
		}
		filter.ClientID = &id
	}

	contracts, total, err := h.contractService.ListContracts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, contracts, total, req.Page, req.PageSize)
}
