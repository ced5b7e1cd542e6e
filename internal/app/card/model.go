package card

import "time"

// Card belongs to exactly one list at a time; (list_id, position) only ever
// changes inside the move transaction that relocates it.
type Card struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	ListID      uint64     `json:"list_id" gorm:"not null;index:idx_cards_list_position"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description,omitempty"`
	Position    int        `json:"position" gorm:"not null;index:idx_cards_list_position"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	ProjectRef  *string    `json:"project_ref,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Assignment links a board member to a card. Cross-board moves prune
// assignments whose user is not a member of the destination board.
type Assignment struct {
	CardID        string    `json:"card_id" gorm:"type:uuid;primaryKey"`
	UserID        uint64    `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	AssignedBy    uint64    `json:"assigned_by" gorm:"not null"`
	WorkloadHours *int      `json:"workload_hours,omitempty"`
	DisplayOrder  int       `json:"display_order" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
}

// MoveResult is the committed outcome of one move transaction, captured
// inside the transaction so the fan-out can describe the move without
// racing later writers.
type MoveResult struct {
	Card            *Card
	SourceListID    uint64
	TargetListID    uint64
	SourceBoardID   uint64
	TargetBoardID   uint64
	SourceListTitle string
	TargetListTitle string
	SourceBoardName string
	TargetBoardName string
	NoOp            bool
}

// CrossedList reports whether the card changed containers.
func (r *MoveResult) CrossedList() bool {
	return r.SourceListID != r.TargetListID
}

// CrossedBoard reports whether the card changed boards.
func (r *MoveResult) CrossedBoard() bool {
	return r.SourceBoardID != r.TargetBoardID
}

type CreateCardRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description,omitempty"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	ProjectRef  *string    `json:"project_ref,omitempty"`
}

type UpdateCardRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	ProjectRef  *string    `json:"project_ref,omitempty"`
}

type MoveCardRequest struct {
	CardID       string `json:"card_id" binding:"required"`
	SourceListID uint64 `json:"source_list_id" binding:"required"`
	TargetListID uint64 `json:"target_list_id" binding:"required"`
	NewIndex     *int   `json:"new_index" binding:"required"`
}

type MoveCardToBoardRequest struct {
	CardID        string `json:"card_id" binding:"required"`
	TargetBoardID uint64 `json:"target_board_id" binding:"required"`
	TargetListID  uint64 `json:"target_list_id" binding:"required"`
	NewIndex      *int   `json:"new_index" binding:"required"`
}

type CardListResponse struct {
	Cards []*Card `json:"cards"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
