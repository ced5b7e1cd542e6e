package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateSession(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary Create session
// @Description Issue a session key for a registered user
// @Tags Session
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "User email"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /api/sessions [post]
func (h *handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	session, usr, err := h.service.CreateSession(req.Email, c.GetHeader("User-Agent"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_key": session.SessionKey,
		"user_id":     usr.ID,
		"nickname":    usr.Nickname,
		"email":       usr.Email,
		"created_at":  session.CreatedAt,
	})
}
