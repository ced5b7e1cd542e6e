package activity

import (
	"fmt"

	"backend/internal/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier and CardContext are the collaborators the comment path needs.
// They are declared here so the activity package stays independent of the
// card and notification packages.
type Notifier interface {
	NotifyUsers(activityID, category string, actorID uint64, recipientIDs []uint64)
}

type CardContext interface {
	ListAssigneeIDs(cardID string) ([]uint64, error)
	BoardIDOfCard(cardID string) (uint64, error)
}

type EventPublisher interface {
	Publish(event string, data interface{})
}

type Service interface {
	LogAction(cardID string, actorID *uint64, category, text string) (*Entry, error)
	ListByCard(cardID string) ([]*Entry, error)
	CreateComment(cardID string, actorID uint64, text string) (*Entry, error)
	EditComment(entryID string, actorID uint64, text string) (*Entry, error)
	DeleteComment(entryID string, actorID uint64) (*Entry, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	cards    CardContext
	eventBus EventPublisher
	logger   *zap.SugaredLogger
}

func NewService(repo Repository, notifier Notifier, cards CardContext, eventBus EventPublisher, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		cards:    cards,
		eventBus: eventBus,
		logger:   logger.Sugar(),
	}
}

// LogAction appends an immutable ACTION entry with its category decided by
// the caller, never inferred from the text.
func (s *service) LogAction(cardID string, actorID *uint64, category, text string) (*Entry, error) {
	entry := &Entry{
		ID:       uuid.NewString(),
		CardID:   cardID,
		ActorID:  actorID,
		Kind:     KindAction,
		Category: category,
		Text:     text,
	}
	if err := s.repo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to log action: %w", err)
	}
	return entry, nil
}

func (s *service) ListByCard(cardID string) ([]*Entry, error) {
	return s.repo.ListByCard(cardID)
}

func (s *service) CreateComment(cardID string, actorID uint64, text string) (*Entry, error) {
	entry := &Entry{
		ID:       uuid.NewString(),
		CardID:   cardID,
		ActorID:  &actorID,
		Kind:     KindComment,
		Category: CategoryComment,
		Text:     text,
	}
	if err := s.repo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.afterComment(entry, actorID)
	return entry, nil
}

func (s *service) EditComment(entryID string, actorID uint64, text string) (*Entry, error) {
	entry, err := s.authorOwnedComment(entryID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateText(entryID, text); err != nil {
		return nil, fmt.Errorf("failed to edit comment: %w", err)
	}
	entry.Text = text
	return entry, nil
}

func (s *service) DeleteComment(entryID string, actorID uint64) (*Entry, error) {
	entry, err := s.authorOwnedComment(entryID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(entryID); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}
	return entry, nil
}

// afterComment notifies the card's assignees and publishes the live event.
// Both are best-effort; the comment is already stored.
func (s *service) afterComment(entry *Entry, actorID uint64) {
	ids, err := s.cards.ListAssigneeIDs(entry.CardID)
	if err != nil {
		s.logger.Warnw("Failed to list assignees for comment notification",
			"card_id", entry.CardID, "error", err)
	} else {
		s.notifier.NotifyUsers(entry.ID, CategoryComment, actorID, ids)
	}

	boardID, err := s.cards.BoardIDOfCard(entry.CardID)
	if err != nil {
		s.logger.Warnw("Failed to resolve board for comment event",
			"card_id", entry.CardID, "error", err)
		return
	}
	s.eventBus.Publish("comment_created", map[string]interface{}{
		"board_id": boardID,
		"card_id":  entry.CardID,
		"entry_id": entry.ID,
	})
}

func (s *service) authorOwnedComment(entryID string, actorID uint64) (*Entry, error) {
	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry.Kind != KindComment {
		return nil, apperr.InvalidArgument("entry %s is not a comment", entryID)
	}
	if entry.ActorID == nil || *entry.ActorID != actorID {
		return nil, apperr.Permission("user %d is not the author of comment %s", actorID, entryID)
	}
	return entry, nil
}
