package list

import (
	"errors"
	"fmt"

	"backend/internal/apperr"
	"backend/internal/position"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	ListByBoard(boardID uint64) ([]*List, error)
	GetListByID(id uint64) (*List, error)
	CreateAtTail(l *List) error
	Rename(id uint64, title string) error
	Reorder(id uint64, newIndex int) (*List, error)
	Delete(id uint64) (*List, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByBoard(boardID uint64) ([]*List, error) {
	var lists []*List
	err := r.db.Where("board_id = ?", boardID).Order("position ASC").Find(&lists).Error
	return lists, err
}

func (r *repository) GetListByID(id uint64) (*List, error) {
	var l List
	err := r.db.First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("list %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// CreateAtTail appends the list at the end of its board, deriving the
// position from the current count inside one transaction.
func (r *repository) CreateAtTail(l *List) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockBoard(tx, l.BoardID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&List{}).Where("board_id = ?", l.BoardID).Count(&count).Error; err != nil {
			return err
		}
		l.Position = int(count)
		return tx.Create(l).Error
	})
}

func (r *repository) Rename(id uint64, title string) error {
	res := r.db.Model(&List{}).Where("id = ?", id).Update("title", title)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("list %d not found", id)
	}
	return nil
}

// Reorder relocates the list inside its board, keeping board positions
// dense. Same shift math as card moves, with the board as the container.
func (r *repository) Reorder(id uint64, newIndex int) (*List, error) {
	var moved List
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var l List
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&l, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("list %d not found", id)
		}
		if err != nil {
			return err
		}

		if err := lockBoard(tx, l.BoardID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&List{}).Where("board_id = ?", l.BoardID).Count(&count).Error; err != nil {
			return err
		}

		to := position.Clamp(newIndex, int(count)-1)
		shifts := position.PlanSameContainer(l.BoardID, l.Position, to)
		if shifts == nil {
			moved = l
			return nil
		}
		for _, s := range shifts {
			if err := applyShift(tx, s); err != nil {
				return err
			}
		}
		if err := tx.Model(&List{}).Where("id = ?", l.ID).Update("position", to).Error; err != nil {
			return err
		}
		l.Position = to
		moved = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &moved, nil
}

// Delete removes the list with everything on it and closes the position
// gap it leaves on the board.
func (r *repository) Delete(id uint64) (*List, error) {
	var deleted List
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var l List
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&l, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("list %d not found", id)
		}
		if err != nil {
			return err
		}
		if err := lockBoard(tx, l.BoardID); err != nil {
			return err
		}

		if err := tx.Exec(
			"DELETE FROM assignments WHERE card_id IN (SELECT id FROM cards WHERE list_id = ?)", l.ID,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM card_labels WHERE card_id IN (SELECT id FROM cards WHERE list_id = ?)", l.ID,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM cards WHERE list_id = ?", l.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&List{}, l.ID).Error; err != nil {
			return err
		}
		for _, s := range position.PlanRemoval(l.BoardID, l.Position) {
			if err := applyShift(tx, s); err != nil {
				return err
			}
		}
		deleted = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// lockBoard serializes concurrent reorders of one board's lists on the
// board row.
func lockBoard(tx *gorm.DB, boardID uint64) error {
	var b struct{ ID uint64 }
	err := tx.Table("boards").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", boardID).
		Select("id").
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("board %d not found", boardID)
	}
	return err
}

func applyShift(tx *gorm.DB, s position.Shift) error {
	q := "UPDATE lists SET position = position + ? WHERE board_id = ? AND position >= ?"
	args := []interface{}{s.Delta, s.ContainerID, s.Low}
	if s.High != position.Unbounded {
		q += " AND position <= ?"
		args = append(args, s.High)
	}
	if err := tx.Exec(q, args...).Error; err != nil {
		return fmt.Errorf("failed to shift list positions: %w", err)
	}
	return nil
}
