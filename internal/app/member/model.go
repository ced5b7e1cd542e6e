package member

import "time"

const (
	RoleOwner    = "owner"
	RoleMember   = "member"
	RoleObserver = "observer"
)

// Actions checked against board membership.
const (
	ActionViewBoard   = "VIEW_BOARD"
	ActionMoveCards   = "MOVE_CARDS"
	ActionManageBoard = "MANAGE_BOARD"
)

type BoardMember struct {
	BoardID   uint64    `json:"board_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    uint64    `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Role      string    `json:"role" gorm:"not null;default:'member'"`
	CreatedAt time.Time `json:"created_at"`
}
