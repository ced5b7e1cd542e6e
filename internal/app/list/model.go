package list

import "time"

type List struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	BoardID   uint64    `json:"board_id" gorm:"not null;index:idx_lists_board_position"`
	Title     string    `json:"title" gorm:"not null"`
	Position  int       `json:"position" gorm:"not null;index:idx_lists_board_position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateListRequest struct {
	Title string `json:"title" binding:"required"`
}

type RenameListRequest struct {
	Title string `json:"title" binding:"required"`
}

type ReorderListRequest struct {
	NewIndex *int `json:"new_index" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
