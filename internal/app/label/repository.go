package label

import "gorm.io/gorm"

type Repository interface {
	ListByBoard(boardID uint64) ([]*Label, error)
	ListByCard(cardID string) ([]*Label, error)
	Attach(cardID string, labelID uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByBoard(boardID uint64) ([]*Label, error) {
	var labels []*Label
	err := r.db.Where("board_id = ?", boardID).Order("id ASC").Find(&labels).Error
	return labels, err
}

func (r *repository) ListByCard(cardID string) ([]*Label, error) {
	var labels []*Label
	err := r.db.
		Joins("JOIN card_labels ON card_labels.label_id = labels.id").
		Where("card_labels.card_id = ?", cardID).
		Order("labels.id ASC").
		Find(&labels).Error
	return labels, err
}

func (r *repository) Attach(cardID string, labelID uint64) error {
	return r.db.Create(&CardLabel{CardID: cardID, LabelID: labelID}).Error
}
