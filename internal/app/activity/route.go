package activity

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/cards/:id/activity", handler.GetCardActivity)
	rg.POST("/cards/:id/comments", handler.CreateComment)

	comments := rg.Group("/comments")
	{
		comments.PATCH("/:id", handler.EditComment)
		comments.DELETE("/:id", handler.DeleteComment)
	}
}
