package card

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, handler Handler) {
	rg.GET("/lists/:id/cards", handler.GetCardsByList)
	rg.POST("/lists/:id/cards", handler.CreateCard)

	cards := rg.Group("/cards")
	{
		cards.PATCH("/move", handler.MoveCard)
		cards.PATCH("/move-to-board", handler.MoveCardToBoard)
		cards.PATCH("/:id", handler.UpdateCard)
		cards.DELETE("/:id", handler.DeleteCard)
		cards.PUT("/:id/assignees/:userID", handler.AssignUser)
		cards.DELETE("/:id/assignees/:userID", handler.UnassignUser)
	}
}
