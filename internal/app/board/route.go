package board

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	boards := rg.Group("/boards")
	{
		boards.GET("", handler.GetBoards)
		boards.POST("", handler.CreateBoard)
		boards.GET("/:id", handler.GetBoardView)
	}
}
