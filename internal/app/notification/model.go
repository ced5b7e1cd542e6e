package notification

import "time"

// Notification is unique per (user, activity); duplicate creation is a
// silent no-op. Only read_at is ever updated.
type Notification struct {
	ID         uint64     `json:"id" gorm:"primaryKey"`
	UserID     uint64     `json:"user_id" gorm:"not null;uniqueIndex:idx_notifications_user_activity"`
	ActivityID string     `json:"activity_id" gorm:"type:uuid;not null;uniqueIndex:idx_notifications_user_activity"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Preference mutes one activity category for one user. No row means the
// category is enabled.
type Preference struct {
	UserID    uint64    `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Category  string    `json:"category" gorm:"primaryKey"`
	Enabled   bool      `json:"enabled" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SetPreferenceRequest struct {
	Category string `json:"category" binding:"required"`
	Enabled  *bool  `json:"enabled" binding:"required"`
}

type NotificationListResponse struct {
	Notifications []*Notification `json:"notifications"`
}

type PreferenceListResponse struct {
	Preferences []*Preference `json:"preferences"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
