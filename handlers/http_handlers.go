package handlers

import (
	"errors"
	"net/http"

	"wheel/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// HTTPHandler holds the dependencies for the HTTP handlers
type HTTPHandler struct {
	entries  service.EntryService
	draws    service.DrawService
	accounts service.AccountService
}

// NewHTTPHandler creates a new HTTPHandler
func NewHTTPHandler(entries service.EntryService, draws service.DrawService, accounts service.AccountService) *HTTPHandler {
	return &HTTPHandler{
		entries:  entries,
		draws:    draws,
		accounts: accounts,
	}
}

// RegisterRoutes registers all the application routes
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/login", h.Login)
	api.GET("/entries", h.ListEntries)
	api.GET("/draw/last", h.GetLastDraw)
	api.GET("/admins", h.ListAdmins)

	admin := api.Group("/admin")
	admin.POST("/wheel", h.AddEntries)
	admin.PUT("/wheel/:id", h.RenameEntry)
	admin.DELETE("/wheel/:id", h.DeactivateEntry)
	admin.POST("/draw", h.PerformDraw)
	admin.GET("/users", h.ListAccounts)
	admin.PUT("/users/:id/email", h.UpdateAccountEmail)
	admin.PUT("/users/:id/name", h.UpdateAccountName)
}

type loginRequest struct {
	Email      string `json:"email" binding:"required"`
	AccessCode string `json:"accessCode" binding:"required"`
}

// Login verifies an email and access code pair
func (h *HTTPHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and accessCode are required"})
		return
	}

	account, err := h.accounts.Login(c.Request.Context(), req.Email, req.AccessCode)
	if err != nil {
		if service.IsKind(err, service.KindUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// ListEntries returns the active wheel entries
func (h *HTTPHandler) ListEntries(c *gin.Context) {
	entries, err := h.entries.ListActiveEntries(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetLastDraw returns the most recent draw, or 204 when none exists yet
func (h *HTTPHandler) GetLastDraw(c *gin.Context) {
	detail, err := h.draws.GetLastDraw(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if detail == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListAdmins returns the admin accounts
func (h *HTTPHandler) ListAdmins(c *gin.Context) {
	admins, err := h.accounts.ListAdmins(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, admins)
}

type addEntriesRequest struct {
	AdminID string   `json:"adminId" binding:"required"`
	Labels  []string `json:"labels" binding:"required"`
}

// AddEntries adds a batch of labels to the wheel
func (h *HTTPHandler) AddEntries(c *gin.Context) {
	var req addEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "adminId and labels are required"})
		return
	}

	result, err := h.entries.AddEntries(c.Request.Context(), req.AdminID, req.Labels)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

type renameEntryRequest struct {
	AdminID string `json:"adminId" binding:"required"`
	Label   string `json:"label" binding:"required"`
}

// RenameEntry changes an entry's label
func (h *HTTPHandler) RenameEntry(c *gin.Context) {
	var req renameEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "adminId and label are required"})
		return
	}

	entry, err := h.entries.RenameEntry(c.Request.Context(), req.AdminID, c.Param("id"), req.Label)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

type actorRequest struct {
	AdminID string `json:"adminId" binding:"required"`
}

// DeactivateEntry soft-deletes an entry
func (h *HTTPHandler) DeactivateEntry(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "adminId is required"})
		return
	}

	entry, err := h.entries.DeactivateEntry(c.Request.Context(), req.AdminID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// PerformDraw selects a winner from the wheel
func (h *HTTPHandler) PerformDraw(c *gin.Context) {
	var req actorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "adminId is required"})
		return
	}

	draw, err := h.draws.PerformDraw(c.Request.Context(), req.AdminID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, draw)
}

// ListAccounts returns all accounts; the acting admin is passed as a query
// parameter since GET requests carry no body
func (h *HTTPHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.ListAccounts(c.Request.Context(), c.Query("adminId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

type updateEmailRequest struct {
	AdminID string `json:"adminId" binding:"required"`
	Email   string `json:"email" binding:"required"`
}

// UpdateAccountEmail changes an account's email address
func (h *HTTPHandler) UpdateAccountEmail(c *gin.Context) {
	var req updateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "adminId and email are required"})
		return
	}

	account, err := h.accounts.UpdateAccountEmail(c.Request.Context(), req.AdminID, c.Param("id"), req.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

type updateNameRequest struct {
	AdminID string `json:"adminId" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// UpdateAccountName changes an account's display name
func (h *HTTPHandler) UpdateAccountName(c *gin.Context) {
	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "adminId and name are required"})
		return
	}

	account, err := h.accounts.UpdateAccountName(c.Request.Context(), req.AdminID, c.Param("id"), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// writeError maps a domain error to an HTTP status. Non-domain errors are
// logged and hidden behind a generic 500.
func (h *HTTPHandler) writeError(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindUnauthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": domainMessage(err)})
	case service.KindInvalidID, service.KindInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": domainMessage(err)})
	case service.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": domainMessage(err)})
	case service.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": domainMessage(err)})
	case service.KindInvalidState:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": domainMessage(err)})
	default:
		log.WithError(err).Error("Unhandled error in HTTP handler")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// domainMessage extracts the user-facing message of a domain error
func domainMessage(err error) string {
	var de *service.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
