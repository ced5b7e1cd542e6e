package card

import (
	"net/http"
	"strconv"

	"backend/internal/apperr"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetCardsByList(c *gin.Context)
	CreateCard(c *gin.Context)
	UpdateCard(c *gin.Context)
	DeleteCard(c *gin.Context)
	MoveCard(c *gin.Context)
	MoveCardToBoard(c *gin.Context)
	AssignUser(c *gin.Context)
	UnassignUser(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List cards
// @Description Cards of a list in position order
// @Tags Card
// @Produce json
// @Param id path int true "List ID"
// @Success 200 {object} CardListResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/lists/{id}/cards [get]
func (h *handler) GetCardsByList(c *gin.Context) {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list ID"})
		return
	}

	cards, err := h.service.GetCardsByList(listID)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, CardListResponse{Cards: cards})
}

// @Summary Create card
// @Description Append a card at the tail of a list
// @Tags Card
// @Accept json
// @Produce json
// @Param id path int true "List ID"
// @Param request body CreateCardRequest true "Card fields"
// @Success 201 {object} Card
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/lists/{id}/cards [post]
func (h *handler) CreateCard(c *gin.Context) {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid list ID"})
		return
	}
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.service.CreateCard(c.Request.Context(), listID, middleware.UserID(c), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Update card
// @Tags Card
// @Accept json
// @Param id path string true "Card ID"
// @Param request body UpdateCardRequest true "Fields to change"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/{id} [patch]
func (h *handler) UpdateCard(c *gin.Context) {
	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.UpdateCard(c.Request.Context(), c.Param("id"), middleware.UserID(c), req); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete card
// @Description Delete a card and close the position gap in its list
// @Tags Card
// @Param id path string true "Card ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/{id} [delete]
func (h *handler) DeleteCard(c *gin.Context) {
	if err := h.service.DeleteCard(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Move card
// @Description Move a card within its board, same list or across lists
// @Tags Card
// @Accept json
// @Param request body MoveCardRequest true "Move parameters"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/move [patch]
func (h *handler) MoveCard(c *gin.Context) {
	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.MoveCard(c.Request.Context(), req, middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Move card to another board
// @Description Move a card onto another board, pruning assignments and labels that are not valid there
// @Tags Card
// @Accept json
// @Param request body MoveCardToBoardRequest true "Move parameters"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/move-to-board [patch]
func (h *handler) MoveCardToBoard(c *gin.Context) {
	var req MoveCardToBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.MoveCardToBoard(c.Request.Context(), req, middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Assign user
// @Tags Card
// @Param id path string true "Card ID"
// @Param userID path int true "User ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/cards/{id}/assignees/{userID} [put]
func (h *handler) AssignUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user ID"})
		return
	}

	if err := h.service.AssignUser(c.Request.Context(), c.Param("id"), userID, middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Unassign user
// @Tags Card
// @Param id path string true "Card ID"
// @Param userID path int true "User ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/cards/{id}/assignees/{userID} [delete]
func (h *handler) UnassignUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user ID"})
		return
	}

	if err := h.service.UnassignUser(c.Request.Context(), c.Param("id"), userID, middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
