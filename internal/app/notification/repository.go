package notification

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(n *Notification) error
	ListByUser(userID uint64, limit int) ([]*Notification, error)
	MarkRead(id, userID uint64) (bool, error)
	GetPreference(userID uint64, category string) (bool, error)
	ListPreferences(userID uint64) ([]*Preference, error)
	UpsertPreference(p *Preference) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the notification; an existing (user, activity) pair is
// silently left alone.
func (r *repository) Create(n *Notification) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "activity_id"}},
		DoNothing: true,
	}).Create(n).Error
}

func (r *repository) ListByUser(userID uint64, limit int) ([]*Notification, error) {
	var notifications []*Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) MarkRead(id, userID uint64) (bool, error) {
	res := r.db.Model(&Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", gorm.Expr("NOW()"))
	return res.RowsAffected > 0, res.Error
}

// GetPreference defaults to enabled when the user never stored a row for
// the category.
func (r *repository) GetPreference(userID uint64, category string) (bool, error) {
	var p Preference
	err := r.db.Where("user_id = ? AND category = ?", userID, category).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return p.Enabled, nil
}

func (r *repository) ListPreferences(userID uint64) ([]*Preference, error) {
	var prefs []*Preference
	err := r.db.Where("user_id = ?", userID).Order("category ASC").Find(&prefs).Error
	return prefs, err
}

func (r *repository) UpsertPreference(p *Preference) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(p).Error
}
