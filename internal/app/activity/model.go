package activity

import "time"

const (
	KindAction  = "ACTION"
	KindComment = "COMMENT"
)

// Category is attached at creation time so downstream consumers never have
// to infer intent from the entry text.
const (
	CategoryMove       = "move"
	CategoryAssignment = "assignment"
	CategoryComment    = "comment"
	CategoryMention    = "mention"
)

// Entry is append-only. ACTION entries are never mutated; COMMENT entries
// may be edited or deleted, by their author only.
type Entry struct {
	ID        string     `json:"id" gorm:"type:uuid;primaryKey"`
	CardID    string     `json:"card_id" gorm:"type:uuid;not null;index"`
	ActorID   *uint64    `json:"actor_id,omitempty" gorm:"index"`
	Kind      string     `json:"kind" gorm:"not null"`
	Category  string     `json:"category" gorm:"not null"`
	Text      string     `json:"text" gorm:"not null"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type EditCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type EntryListResponse struct {
	Entries []*Entry `json:"entries"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
