package label

import "time"

// Label is board-scoped; label CRUD lives outside this service. The models
// exist so cross-board moves can prune associations that would otherwise
// dangle into another board.
type Label struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	BoardID   uint64    `json:"board_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Color     string    `json:"color" gorm:"not null;default:'#cccccc'"`
	CreatedAt time.Time `json:"created_at"`
}

type CardLabel struct {
	CardID  string `gorm:"type:uuid;primaryKey"`
	LabelID uint64 `gorm:"primaryKey;autoIncrement:false"`
}
