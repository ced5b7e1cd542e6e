package card

import (
	"context"
	"fmt"
	"time"

	"backend/internal/app/activity"
	"backend/internal/app/member"
	"backend/internal/apperr"
	"backend/internal/providers/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Narrow views of the collaborating services. The fan-out depends on the
// move's output, never the other way around.
type ActivityLogger interface {
	LogAction(cardID string, actorID *uint64, category, text string) (*activity.Entry, error)
}

type Notifier interface {
	NotifyUsers(activityID, category string, actorID uint64, recipientIDs []uint64)
}

type PermissionChecker interface {
	HasPermission(userID, boardID uint64, action string) (bool, error)
}

type EventPublisher interface {
	Publish(event string, data interface{})
}

type Service interface {
	GetCardsByList(listID uint64) ([]*Card, error)
	CreateCard(ctx context.Context, listID, actorID uint64, req CreateCardRequest) (*Card, error)
	UpdateCard(ctx context.Context, cardID string, actorID uint64, req UpdateCardRequest) error
	DeleteCard(ctx context.Context, cardID string, actorID uint64) error

	// MoveCard relocates a card within its board, same list or across
	// lists. The actor needs move permission on the source board.
	// Intra-list reordering is silent: positions change, an event goes
	// out, but no activity entry is written.
	MoveCard(ctx context.Context, req MoveCardRequest, actorID uint64) error

	// MoveCardToBoard relocates a card onto another board. The actor needs
	// move permission on the destination, checked before any write.
	MoveCardToBoard(ctx context.Context, req MoveCardToBoardRequest, actorID uint64) error

	AssignUser(ctx context.Context, cardID string, userID, actorID uint64) error
	UnassignUser(ctx context.Context, cardID string, userID, actorID uint64) error
}

type service struct {
	repo        Repository
	memberSvc   PermissionChecker
	fanout      *fanout
	redisP      *redis.RedisProvider
	eventBus    EventPublisher
	logger      *zap.SugaredLogger
	moveTimeout time.Duration
	cachePrefix string
}

func NewService(
	repo Repository,
	memberSvc PermissionChecker,
	activitySvc ActivityLogger,
	notifier Notifier,
	redisP *redis.RedisProvider,
	eventBus EventPublisher,
	moveTimeout time.Duration,
	logger *zap.Logger,
) Service {
	sugar := logger.Sugar()
	return &service{
		repo:      repo,
		memberSvc: memberSvc,
		fanout: &fanout{
			activities: activitySvc,
			notifier:   notifier,
			assignees:  repo,
			bus:        eventBus,
			logger:     sugar,
		},
		redisP:      redisP,
		eventBus:    eventBus,
		logger:      sugar,
		moveTimeout: moveTimeout,
		cachePrefix: "boards:view",
	}
}

func (s *service) GetCardsByList(listID uint64) ([]*Card, error) {
	if _, err := s.repo.BoardIDOfList(listID); err != nil {
		return nil, err
	}
	return s.repo.ListByList(listID)
}

func (s *service) CreateCard(ctx context.Context, listID, actorID uint64, req CreateCardRequest) (*Card, error) {
	boardID, err := s.repo.BoardIDOfList(listID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMove(actorID, boardID); err != nil {
		return nil, err
	}

	c := &Card{
		ID:          uuid.NewString(),
		ListID:      listID,
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		DueAt:       req.DueAt,
		ProjectRef:  req.ProjectRef,
	}
	if err := s.repo.CreateAtTail(c); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.invalidateBoard(ctx, boardID)
	s.eventBus.Publish("card_created", map[string]interface{}{
		"board_id": boardID,
		"list_id":  listID,
		"card_id":  c.ID,
		"position": c.Position,
	})
	return c, nil
}

func (s *service) UpdateCard(ctx context.Context, cardID string, actorID uint64, req UpdateCardRequest) error {
	c, err := s.repo.GetCardByID(cardID)
	if err != nil {
		return err
	}
	boardID, err := s.repo.BoardIDOfList(c.ListID)
	if err != nil {
		return err
	}
	if err := s.requireMove(actorID, boardID); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.StartAt != nil {
		fields["start_at"] = *req.StartAt
	}
	if req.DueAt != nil {
		fields["due_at"] = *req.DueAt
	}
	if req.ProjectRef != nil {
		fields["project_ref"] = *req.ProjectRef
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.repo.UpdateFields(cardID, fields); err != nil {
		return err
	}

	s.invalidateBoard(ctx, boardID)
	s.eventBus.Publish("card_updated", map[string]interface{}{
		"board_id": boardID,
		"list_id":  c.ListID,
		"card_id":  cardID,
	})
	return nil
}

func (s *service) DeleteCard(ctx context.Context, cardID string, actorID uint64) error {
	c, err := s.repo.GetCardByID(cardID)
	if err != nil {
		return err
	}
	boardID, err := s.repo.BoardIDOfList(c.ListID)
	if err != nil {
		return err
	}
	if err := s.requireMove(actorID, boardID); err != nil {
		return err
	}

	res, err := s.repo.Delete(cardID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	s.invalidateBoard(ctx, res.SourceBoardID)
	s.eventBus.Publish("card_deleted", map[string]interface{}{
		"board_id": res.SourceBoardID,
		"list_id":  res.SourceListID,
		"card_id":  cardID,
	})
	return nil
}

func (s *service) MoveCard(ctx context.Context, req MoveCardRequest, actorID uint64) error {
	if req.NewIndex == nil || *req.NewIndex < 0 {
		return apperr.InvalidArgument("new_index must be a non-negative integer")
	}

	boardID, err := s.repo.BoardIDOfList(req.SourceListID)
	if err != nil {
		return err
	}
	if err := s.requireMove(actorID, boardID); err != nil {
		return err
	}

	moveCtx, cancel := s.boundMove(ctx)
	defer cancel()
	res, err := s.repo.Move(moveCtx, req.CardID, req.SourceListID, req.TargetListID, *req.NewIndex)
	if err != nil {
		return err
	}
	if res.NoOp {
		return nil
	}

	s.invalidateBoard(ctx, res.SourceBoardID)
	s.fanout.afterMove(res, actorID)
	return nil
}

func (s *service) MoveCardToBoard(ctx context.Context, req MoveCardToBoardRequest, actorID uint64) error {
	if req.NewIndex == nil || *req.NewIndex < 0 {
		return apperr.InvalidArgument("new_index must be a non-negative integer")
	}

	// Destination permission gate, before any write.
	ok, err := s.memberSvc.HasPermission(actorID, req.TargetBoardID, member.ActionMoveCards)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !ok {
		return apperr.Permission("user %d cannot move cards onto board %d", actorID, req.TargetBoardID)
	}

	moveCtx, cancel := s.boundMove(ctx)
	defer cancel()
	res, err := s.repo.MoveAcrossBoards(moveCtx, req.CardID, req.TargetBoardID, req.TargetListID, *req.NewIndex)
	if err != nil {
		return err
	}

	s.invalidateBoard(ctx, res.SourceBoardID)
	s.invalidateBoard(ctx, res.TargetBoardID)
	s.fanout.afterMove(res, actorID)
	return nil
}

func (s *service) AssignUser(ctx context.Context, cardID string, userID, actorID uint64) error {
	c, err := s.repo.GetCardByID(cardID)
	if err != nil {
		return err
	}
	boardID, err := s.repo.BoardIDOfList(c.ListID)
	if err != nil {
		return err
	}
	if err := s.requireMove(actorID, boardID); err != nil {
		return err
	}

	// Assignees must be members of the card's board.
	isMember, err := s.memberSvc.HasPermission(userID, boardID, member.ActionViewBoard)
	if err != nil {
		return fmt.Errorf("membership check failed: %w", err)
	}
	if !isMember {
		return apperr.InvalidArgument("user %d is not a member of board %d", userID, boardID)
	}

	if err := s.repo.Assign(&Assignment{CardID: cardID, UserID: userID, AssignedBy: actorID}); err != nil {
		return fmt.Errorf("failed to assign user: %w", err)
	}

	s.invalidateBoard(ctx, boardID)
	s.fanout.afterAssignment(c, boardID, userID, actorID)
	return nil
}

func (s *service) UnassignUser(ctx context.Context, cardID string, userID, actorID uint64) error {
	c, err := s.repo.GetCardByID(cardID)
	if err != nil {
		return err
	}
	boardID, err := s.repo.BoardIDOfList(c.ListID)
	if err != nil {
		return err
	}
	if err := s.requireMove(actorID, boardID); err != nil {
		return err
	}

	removed, err := s.repo.Unassign(cardID, userID)
	if err != nil {
		return fmt.Errorf("failed to unassign user: %w", err)
	}
	if !removed {
		return apperr.NotFound("user %d is not assigned to card %s", userID, cardID)
	}

	s.invalidateBoard(ctx, boardID)
	s.eventBus.Publish("card_unassigned", map[string]interface{}{
		"board_id": boardID,
		"card_id":  cardID,
		"user_id":  userID,
	})
	return nil
}

func (s *service) boundMove(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.moveTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.moveTimeout)
}

func (s *service) requireMove(actorID, boardID uint64) error {
	ok, err := s.memberSvc.HasPermission(actorID, boardID, member.ActionMoveCards)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !ok {
		return apperr.Permission("user %d cannot modify cards on board %d", actorID, boardID)
	}
	return nil
}

func (s *service) invalidateBoard(ctx context.Context, boardID uint64) {
	if s.redisP == nil {
		return
	}
	key := fmt.Sprintf("%s:%d", s.cachePrefix, boardID)
	if err := s.redisP.Del(ctx, key).Err(); err != nil {
		s.logger.Warnw("Failed to invalidate board cache", "board_id", boardID, "error", err)
	}
}
