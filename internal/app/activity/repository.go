package activity

import (
	"errors"

	"backend/internal/apperr"

	"gorm.io/gorm"
)

type Repository interface {
	Create(entry *Entry) error
	GetByID(id string) (*Entry, error)
	ListByCard(cardID string) ([]*Entry, error)
	UpdateText(id, text string) error
	Delete(id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(entry *Entry) error {
	return r.db.Create(entry).Error
}

func (r *repository) GetByID(id string) (*Entry, error) {
	var entry Entry
	err := r.db.Where("id = ?", id).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("activity entry %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListByCard(cardID string) ([]*Entry, error) {
	var entries []*Entry
	err := r.db.Where("card_id = ?", cardID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *repository) UpdateText(id, text string) error {
	return r.db.Model(&Entry{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"text": text, "edited_at": gorm.Expr("NOW()")}).Error
}

func (r *repository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&Entry{}).Error
}
