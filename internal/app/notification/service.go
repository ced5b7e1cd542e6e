package notification

import (
	"fmt"

	"go.uber.org/zap"
)

type Service interface {
	// NotifyUsers fans one activity entry out to recipients. The actor is
	// never notified, muted categories are skipped per user, duplicates are
	// absorbed, and one recipient's failure never blocks the rest.
	NotifyUsers(activityID, category string, actorID uint64, recipientIDs []uint64)

	ListMine(userID uint64) ([]*Notification, error)
	MarkRead(id, userID uint64) (bool, error)
	ListPreferences(userID uint64) ([]*Preference, error)
	SetPreference(userID uint64, category string, enabled bool) error
}

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger.Sugar()}
}

func (s *service) NotifyUsers(activityID, category string, actorID uint64, recipientIDs []uint64) {
	for _, userID := range recipientIDs {
		if userID == actorID {
			continue
		}

		enabled, err := s.repo.GetPreference(userID, category)
		if err != nil {
			s.logger.Warnw("Failed to read notification preference, defaulting to enabled",
				"user_id", userID, "category", category, "error", err)
			enabled = true
		}
		if !enabled {
			continue
		}

		if err := s.repo.Create(&Notification{UserID: userID, ActivityID: activityID}); err != nil {
			s.logger.Warnw("Failed to create notification",
				"user_id", userID, "activity_id", activityID, "error", err)
		}
	}
}

func (s *service) ListMine(userID uint64) ([]*Notification, error) {
	return s.repo.ListByUser(userID, 100)
}

func (s *service) MarkRead(id, userID uint64) (bool, error) {
	return s.repo.MarkRead(id, userID)
}

func (s *service) ListPreferences(userID uint64) ([]*Preference, error) {
	return s.repo.ListPreferences(userID)
}

func (s *service) SetPreference(userID uint64, category string, enabled bool) error {
	p := &Preference{UserID: userID, Category: category, Enabled: enabled}
	if err := s.repo.UpsertPreference(p); err != nil {
		return fmt.Errorf("failed to store preference: %w", err)
	}
	return nil
}
