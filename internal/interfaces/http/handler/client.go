package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	clientapp "github.com/inmobiliaria/backend/internal/application/client"
	"github.com/inmobiliaria/backend/internal/domain/client"
	"github.com/inmobiliaria/backend/internal/interfaces/http/dto"
)

// ClientHandler handles client (property owner) CRUD endpoints
type ClientHandler struct {
	BaseHandler
	clientService *clientapp.Service
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *clientapp.Service) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// CreateClientRequest represents a request to create a client
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Phone string `json:"phone" binding:"max=50"`
}

// UpdateClientRequest represents a partial client update. Empty
// fields are left untouched.
type UpdateClientRequest struct {
	Name       string `json:"name" binding:"omitempty,min=1,max=200"`
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	Phone      string `json:"phone" binding:"max=50"`
	DocumentID string `json:"documentId" binding:"max=50"`
	Address    string `json:"address" binding:"max=500"`
	City       string `json:"city" binding:"max=100"`
	Province   string `json:"province" binding:"max=100"`
	Notes      string `json:"notes"`
}

// Create handles POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	created, err := h.clientService.CreateClient(c.Request.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID handles GET /clients/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	found, err := h.clientService.GetClient(c.Request.Context(), clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, found)
}

// List handles GET /clients
func (h *ClientHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := client.Filter{
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Limit:     req.Limit(),
		Offset:    req.Offset(),
	}

	clients, total, err := h.clientService.ListClients(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, clients, total, req.Page, req.PageSize)
}

// Update handles PUT /clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	updated, err := h.clientService.UpdateClient(c.Request.Context(), clientID, clientapp.UpdateClientInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		DocumentID: req.DocumentID,
		Address:    req.Address,
		City:       req.City,
		Province:   req.Province,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Delete handles DELETE /clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
