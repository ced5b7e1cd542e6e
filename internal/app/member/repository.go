package member

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	GetRole(boardID, userID uint64) (string, error)
	ListMemberIDs(boardID uint64) ([]uint64, error)
	AddMember(m *BoardMember) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetRole returns "" when the user is not a member.
func (r *repository) GetRole(boardID, userID uint64) (string, error) {
	var m BoardMember
	err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.Role, nil
}

func (r *repository) ListMemberIDs(boardID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&BoardMember{}).
		Where("board_id = ?", boardID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) AddMember(m *BoardMember) error {
	return r.db.Create(m).Error
}
