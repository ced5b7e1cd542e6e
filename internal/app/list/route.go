package list

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.POST("/boards/:id/lists", handler.CreateList)

	lists := rg.Group("/lists")
	{
		lists.PATCH("/:id", handler.RenameList)
		lists.PATCH("/:id/position", handler.ReorderList)
		lists.DELETE("/:id", handler.DeleteList)
	}
}
