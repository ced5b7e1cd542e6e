package notification

import (
	"net/http"
	"strconv"

	"backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	ListMine(c *gin.Context)
	MarkRead(c *gin.Context)
	ListPreferences(c *gin.Context)
	SetPreference(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

// @Summary List notifications
// @Tags Notification
// @Produce json
// @Success 200 {object} NotificationListResponse
// @Router /api/notifications [get]
func (h *handler) ListMine(c *gin.Context) {
	notifications, err := h.service.ListMine(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, NotificationListResponse{Notifications: notifications})
}

// @Summary Mark notification read
// @Tags Notification
// @Param id path int true "Notification ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/notifications/{id}/read [post]
func (h *handler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification ID"})
		return
	}

	ok, err := h.service.MarkRead(id, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to mark notification read"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List notification preferences
// @Tags Notification
// @Produce json
// @Success 200 {object} PreferenceListResponse
// @Router /api/notifications/preferences [get]
func (h *handler) ListPreferences(c *gin.Context) {
	prefs, err := h.service.ListPreferences(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch preferences"})
		return
	}
	c.JSON(http.StatusOK, PreferenceListResponse{Preferences: prefs})
}

// @Summary Set notification preference
// @Tags Notification
// @Accept json
// @Param request body SetPreferenceRequest true "Category and enabled flag"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /api/notifications/preferences [put]
func (h *handler) SetPreference(c *gin.Context) {
	var req SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.SetPreference(middleware.UserID(c), req.Category, *req.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to store preference"})
		return
	}
	c.Status(http.StatusNoContent)
}
