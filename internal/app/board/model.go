package board

import (
	"time"

	"backend/internal/app/card"
	"backend/internal/app/label"
	"backend/internal/app/list"
)

type Board struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	OwnerID   uint64    `json:"owner_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View is the snapshot handed to clients: the board with its lists in board
// order, each list carrying its cards in list order.
type View struct {
	Board  *Board         `json:"board"`
	Labels []*label.Label `json:"labels"`
	Lists  []*ListView    `json:"lists"`
}

type ListView struct {
	List  *list.List  `json:"list"`
	Cards []*CardView `json:"cards"`
}

type CardView struct {
	*card.Card
	Labels []*label.Label `json:"labels,omitempty"`
}

type CreateBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type BoardListResponse struct {
	Boards []*Board `json:"boards"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
