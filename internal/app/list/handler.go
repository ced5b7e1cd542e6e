package list

import (
	"net/http"
	"strconv"

	"backend/internal/apperr"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateList(c *gin.Context)
	RenameList(c *gin.Context)
	ReorderList(c *gin.Context)
	DeleteList(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Create list
// @Description Append a list at the tail of a board
// @Tags List
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param request body CreateListRequest true "List title"
// @Success 201 {object} List
// @Failure 403 {object} ErrorResponse
// @Router /api/boards/{id}/lists [post]
func (h *handler) CreateList(c *gin.Context) {
	boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board ID"})
		return
	}
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	l, err := h.service.CreateList(c.Request.Context(), boardID, middleware.UserID(c), req.Title)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, l)
}

// @Summary Rename list
// @Tags List
// @Accept json
// @Param id path int true "List ID"
// @Param request body RenameListRequest true "New title"
// @Success 204
// @Router /api/lists/{id} [patch]
func (h *handler) RenameList(c *gin.Context) {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list ID"})
		return
	}
	var req RenameListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.RenameList(c.Request.Context(), listID, middleware.UserID(c), req.Title); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reorder list
// @Description Move a list to a new index within its board
// @Tags List
// @Accept json
// @Param id path int true "List ID"
// @Param request body ReorderListRequest true "Target index"
// @Success 204
// @Router /api/lists/{id}/position [patch]
func (h *handler) ReorderList(c *gin.Context) {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list ID"})
		return
	}
	var req ReorderListRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewIndex == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.ReorderList(c.Request.Context(), listID, middleware.UserID(c), *req.NewIndex); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete list
// @Tags List
// @Param id path int true "List ID"
// @Success 204
// @Router /api/lists/{id} [delete]
func (h *handler) DeleteList(c *gin.Context) {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list ID"})
		return
	}

	if err := h.service.DeleteList(c.Request.Context(), listID, middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
