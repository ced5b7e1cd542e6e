package board

import "gorm.io/gorm"

type Repository interface {
	GetBoardsForUser(userID uint64) ([]*Board, error)
	GetBoardByID(id uint64) (*Board, error)
	CreateBoard(b *Board) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBoardsForUser(userID uint64) ([]*Board, error) {
	var boards []*Board
	err := r.db.
		Joins("JOIN board_members ON board_members.board_id = boards.id").
		Where("board_members.user_id = ?", userID).
		Order("boards.created_at ASC").
		Find(&boards).Error
	return boards, err
}

func (r *repository) GetBoardByID(id uint64) (*Board, error) {
	var board Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *repository) CreateBoard(b *Board) error {
	return r.db.Create(b).Error
}
