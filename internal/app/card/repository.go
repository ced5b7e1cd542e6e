package card

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/apperr"
	"backend/internal/position"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetCardByID(id string) (*Card, error)
	ListByList(listID uint64) ([]*Card, error)
	CreateAtTail(c *Card) error
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) (*MoveResult, error)

	// Move relocates a card within one board, same list or across lists,
	// as a single transaction that keeps both containers dense. The
	// context bounds the transaction; a timeout rolls everything back.
	Move(ctx context.Context, cardID string, sourceListID, targetListID uint64, newIndex int) (*MoveResult, error)

	// MoveAcrossBoards relocates a card to a list on another board and, in
	// the same transaction, prunes assignments and labels that are not
	// valid on the destination board.
	MoveAcrossBoards(ctx context.Context, cardID string, targetBoardID, targetListID uint64, newIndex int) (*MoveResult, error)

	ListAssigneeIDs(cardID string) ([]uint64, error)
	ListAssignments(cardID string) ([]*Assignment, error)
	Assign(a *Assignment) error
	Unassign(cardID string, userID uint64) (bool, error)

	BoardIDOfList(listID uint64) (uint64, error)
	BoardIDOfCard(cardID string) (uint64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// listInfo is the container snapshot a move needs: the list row plus its
// board, read inside the move transaction.
type listInfo struct {
	ID        uint64
	BoardID   uint64
	Title     string
	BoardName string
}

func (r *repository) GetCardByID(id string) (*Card, error) {
	var c Card
	err := r.db.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("card %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByList(listID uint64) ([]*Card, error) {
	var cards []*Card
	err := r.db.Where("list_id = ?", listID).Order("position ASC").Find(&cards).Error
	return cards, err
}

func (r *repository) CreateAtTail(c *Card) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockedListInfo(tx, c.ListID); err != nil {
			return err
		}
		count, err := lockedCardCount(tx, c.ListID)
		if err != nil {
			return err
		}
		c.Position = count
		return tx.Create(c).Error
	})
}

func (r *repository) UpdateFields(id string, fields map[string]interface{}) error {
	res := r.db.Model(&Card{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("card %s not found", id)
	}
	return nil
}

// Delete removes the card and closes the gap it leaves, same allocator
// rule as a move out of the list.
func (r *repository) Delete(id string) (*MoveResult, error) {
	var res MoveResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		c, err := lockCard(tx, id)
		if err != nil {
			return err
		}
		src, err := lockedListInfo(tx, c.ListID)
		if err != nil {
			return err
		}

		if err := tx.Where("card_id = ?", c.ID).Delete(&Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM card_labels WHERE card_id = ?", c.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", c.ID).Delete(&Card{}).Error; err != nil {
			return err
		}
		for _, s := range position.PlanRemoval(c.ListID, c.Position) {
			if err := applyCardShift(tx, s); err != nil {
				return err
			}
		}

		res = MoveResult{
			Card:          c,
			SourceListID:  src.ID,
			TargetListID:  src.ID,
			SourceBoardID: src.BoardID,
			TargetBoardID: src.BoardID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repository) Move(ctx context.Context, cardID string, sourceListID, targetListID uint64, newIndex int) (*MoveResult, error) {
	var res MoveResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCard(tx, cardID)
		if err != nil {
			return err
		}
		src, err := lockedListInfo(tx, sourceListID)
		if err != nil {
			return err
		}
		if c.ListID != sourceListID {
			return apperr.InvalidArgument("card %s is not on list %d", cardID, sourceListID)
		}
		dst := src
		if targetListID != sourceListID {
			dst, err = lockedListInfo(tx, targetListID)
			if err != nil {
				return err
			}
			if dst.BoardID != src.BoardID {
				return apperr.InvalidArgument("list %d is on another board, use the cross-board move", targetListID)
			}
		}

		if err := moveLocked(tx, c, src, dst, newIndex, &res); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, classifyTxError(err)
	}
	return &res, nil
}

func (r *repository) MoveAcrossBoards(ctx context.Context, cardID string, targetBoardID, targetListID uint64, newIndex int) (*MoveResult, error) {
	var res MoveResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCard(tx, cardID)
		if err != nil {
			return err
		}
		src, err := lockedListInfo(tx, c.ListID)
		if err != nil {
			return err
		}
		if src.BoardID == targetBoardID {
			return apperr.InvalidArgument("card %s is already on board %d, use the intra-board move", cardID, targetBoardID)
		}

		dst, err := lockedListInfo(tx, targetListID)
		if err != nil {
			return err
		}
		if dst.BoardID != targetBoardID {
			return apperr.InvalidArgument("list %d does not belong to board %d", targetListID, targetBoardID)
		}

		// Migration filter: drop assignments and labels that would dangle
		// into the source board. Committed atomically with the re-home so
		// the card is never observable on the destination board with
		// foreign associations.
		if err := tx.Exec(`
			DELETE FROM assignments
			WHERE card_id = ?
			  AND user_id NOT IN (SELECT user_id FROM board_members WHERE board_id = ?)
		`, c.ID, targetBoardID).Error; err != nil {
			return fmt.Errorf("failed to prune assignments: %w", err)
		}
		if err := tx.Exec(`
			DELETE FROM card_labels
			WHERE card_id = ?
			  AND label_id NOT IN (SELECT id FROM labels WHERE board_id = ?)
		`, c.ID, targetBoardID).Error; err != nil {
			return fmt.Errorf("failed to prune labels: %w", err)
		}

		if err := moveLocked(tx, c, src, dst, newIndex, &res); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, classifyTxError(err)
	}
	return &res, nil
}

// classifyTxError tags serialization and deadlock rollbacks so callers can
// distinguish a retryable conflict from a genuine storage fault.
func classifyTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
		return apperr.TransientStorage("move conflicted with a concurrent transaction", err)
	}
	return err
}

// moveLocked applies the allocator's shifts and re-homes the card. The card
// and both container rows are already locked by the caller's transaction.
func moveLocked(tx *gorm.DB, c *Card, src, dst *listInfo, newIndex int, res *MoveResult) error {
	*res = MoveResult{
		Card:            c,
		SourceListID:    src.ID,
		TargetListID:    dst.ID,
		SourceBoardID:   src.BoardID,
		TargetBoardID:   dst.BoardID,
		SourceListTitle: src.Title,
		TargetListTitle: dst.Title,
		SourceBoardName: src.BoardName,
		TargetBoardName: dst.BoardName,
	}

	count, err := lockedCardCount(tx, dst.ID)
	if err != nil {
		return err
	}

	if src.ID == dst.ID {
		to := position.Clamp(newIndex, count-1)
		shifts := position.PlanSameContainer(src.ID, c.Position, to)
		if shifts == nil {
			res.NoOp = true
			return nil
		}
		for _, s := range shifts {
			if err := applyCardShift(tx, s); err != nil {
				return err
			}
		}
		if err := tx.Model(&Card{}).Where("id = ?", c.ID).Update("position", to).Error; err != nil {
			return err
		}
		c.Position = to
		return nil
	}

	to := position.Clamp(newIndex, count)
	for _, s := range position.PlanCrossContainer(src.ID, dst.ID, c.Position, to) {
		if err := applyCardShift(tx, s); err != nil {
			return err
		}
	}
	if err := tx.Model(&Card{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{"list_id": dst.ID, "position": to}).Error; err != nil {
		return err
	}
	c.ListID = dst.ID
	c.Position = to
	return nil
}

func (r *repository) ListAssigneeIDs(cardID string) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&Assignment{}).
		Where("card_id = ?", cardID).
		Order("display_order ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) ListAssignments(cardID string) ([]*Assignment, error) {
	var assignments []*Assignment
	err := r.db.Where("card_id = ?", cardID).Order("display_order ASC").Find(&assignments).Error
	return assignments, err
}

func (r *repository) Assign(a *Assignment) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(a).Error
}

func (r *repository) Unassign(cardID string, userID uint64) (bool, error) {
	res := r.db.Where("card_id = ? AND user_id = ?", cardID, userID).Delete(&Assignment{})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) BoardIDOfList(listID uint64) (uint64, error) {
	info, err := listInfoByID(r.db, listID)
	if err != nil {
		return 0, err
	}
	return info.BoardID, nil
}

func (r *repository) BoardIDOfCard(cardID string) (uint64, error) {
	var row struct{ BoardID uint64 }
	err := r.db.Table("cards").
		Select("lists.board_id").
		Joins("JOIN lists ON lists.id = cards.list_id").
		Where("cards.id = ?", cardID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.NotFound("card %s not found", cardID)
	}
	if err != nil {
		return 0, err
	}
	return row.BoardID, nil
}

// lockCard acquires the row lock that serializes concurrent moves of the
// same card.
func lockCard(tx *gorm.DB, cardID string) (*Card, error) {
	var c Card
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", cardID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("card %s not found", cardID)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// lockedListInfo locks the list row before positions are read, so two
// movers into the same list serialize on the container.
func lockedListInfo(tx *gorm.DB, listID uint64) (*listInfo, error) {
	return listInfoByID(tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "lists"}}), listID)
}

func listInfoByID(db *gorm.DB, listID uint64) (*listInfo, error) {
	var info listInfo
	err := db.Table("lists").
		Select("lists.id, lists.board_id, lists.title, boards.name AS board_name").
		Joins("JOIN boards ON boards.id = lists.board_id").
		Where("lists.id = ?", listID).
		Take(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("list %d not found", listID)
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// lockedCardCount assumes the list row is already locked; the count itself
// needs no FOR UPDATE (and Postgres rejects it on aggregates anyway).
func lockedCardCount(tx *gorm.DB, listID uint64) (int, error) {
	var count int64
	err := tx.Model(&Card{}).Where("list_id = ?", listID).Count(&count).Error
	return int(count), err
}

func applyCardShift(tx *gorm.DB, s position.Shift) error {
	q := "UPDATE cards SET position = position + ? WHERE list_id = ? AND position >= ?"
	args := []interface{}{s.Delta, s.ContainerID, s.Low}
	if s.High != position.Unbounded {
		q += " AND position <= ?"
		args = append(args, s.High)
	}
	if err := tx.Exec(q, args...).Error; err != nil {
		return fmt.Errorf("failed to shift card positions: %w", err)
	}
	return nil
}
