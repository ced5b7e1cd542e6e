package board

import (
	"net/http"
	"strconv"

	"backend/internal/apperr"
	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	GetBoards(c *gin.Context)
	GetBoardView(c *gin.Context)
	CreateBoard(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List boards
// @Description List boards the current user is a member of
// @Tags Board
// @Produce json
// @Success 200 {object} BoardListResponse
// @Router /api/boards [get]
func (h *handler) GetBoards(c *gin.Context) {
	userID := middleware.UserID(c)
	boards, err := h.service.GetBoards(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch boards"})
		return
	}
	c.JSON(http.StatusOK, BoardListResponse{Boards: boards})
}

// @Summary Get board snapshot
// @Description Board with ordered lists and cards
// @Tags Board
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {object} View
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id} [get]
func (h *handler) GetBoardView(c *gin.Context) {
	boardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board ID"})
		return
	}

	view, err := h.service.GetBoardView(c.Request.Context(), boardID, middleware.UserID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Create board
// @Tags Board
// @Accept json
// @Produce json
// @Param request body CreateBoardRequest true "Board name"
// @Success 201 {object} Board
// @Failure 400 {object} ErrorResponse
// @Router /api/boards [post]
func (h *handler) CreateBoard(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	b, err := h.service.CreateBoard(req.Name, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create board"})
		return
	}
	c.JSON(http.StatusCreated, b)
}
