package notification

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", handler.ListMine)
		notifications.POST("/:id/read", handler.MarkRead)
		notifications.GET("/preferences", handler.ListPreferences)
		notifications.PUT("/preferences", handler.SetPreference)
	}
}
