package activity

import (
	"net/http"

	"backend/internal/apperr"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetCardActivity(c *gin.Context)
	CreateComment(c *gin.Context)
	EditComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Card activity feed
// @Description Actions and comments of a card, newest first
// @Tags Activity
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} EntryListResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/{id}/activity [get]
func (h *handler) GetCardActivity(c *gin.Context) {
	entries, err := h.service.ListByCard(c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, EntryListResponse{Entries: entries})
}

// @Summary Create comment
// @Tags Activity
// @Accept json
// @Produce json
// @Param id path string true "Card ID"
// @Param request body CreateCommentRequest true "Comment text"
// @Success 201 {object} Entry
// @Failure 400 {object} ErrorResponse
// @Router /api/cards/{id}/comments [post]
func (h *handler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	entry, err := h.service.CreateComment(c.Param("id"), middleware.UserID(c), req.Text)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// @Summary Edit comment
// @Description Author-only; action entries cannot be edited
// @Tags Activity
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param request body EditCommentRequest true "New text"
// @Success 200 {object} Entry
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/comments/{id} [patch]
func (h *handler) EditComment(c *gin.Context) {
	var req EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	entry, err := h.service.EditComment(c.Param("id"), middleware.UserID(c), req.Text)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

// @Summary Delete comment
// @Description Author-only; action entries cannot be deleted
// @Tags Activity
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *handler) DeleteComment(c *gin.Context) {
	if _, err := h.service.DeleteComment(c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
