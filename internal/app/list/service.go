package list

import (
	"context"
	"fmt"

	"backend/internal/app/member"
	"backend/internal/apperr"
	"backend/internal/providers/redis"
	"backend/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	GetListByID(id uint64) (*List, error)
	CreateList(ctx context.Context, boardID, actorID uint64, title string) (*List, error)
	RenameList(ctx context.Context, listID, actorID uint64, title string) error
	ReorderList(ctx context.Context, listID, actorID uint64, newIndex int) error
	DeleteList(ctx context.Context, listID, actorID uint64) error
}

type service struct {
	repo      Repository
	memberSvc member.Service
	redisP    *redis.RedisProvider
	eventBus  *utils.EventBus
	logger    *zap.SugaredLogger
}

func NewService(
	repo Repository,
	memberSvc member.Service,
	redisP *redis.RedisProvider,
	eventBus *utils.EventBus,
	logger *zap.Logger,
) Service {
	return &service{
		repo:      repo,
		memberSvc: memberSvc,
		redisP:    redisP,
		eventBus:  eventBus,
		logger:    logger.Sugar(),
	}
}

func (s *service) GetListByID(id uint64) (*List, error) {
	return s.repo.GetListByID(id)
}

func (s *service) CreateList(ctx context.Context, boardID, actorID uint64, title string) (*List, error) {
	if err := s.requireManage(actorID, boardID); err != nil {
		return nil, err
	}

	l := &List{BoardID: boardID, Title: title}
	if err := s.repo.CreateAtTail(l); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	s.invalidateBoard(ctx, boardID)
	s.eventBus.Publish("list_created", map[string]interface{}{
		"board_id": boardID,
		"list_id":  l.ID,
		"title":    l.Title,
		"position": l.Position,
	})
	return l, nil
}

func (s *service) RenameList(ctx context.Context, listID, actorID uint64, title string) error {
	l, err := s.repo.GetListByID(listID)
	if err != nil {
		return err
	}
	if err := s.requireManage(actorID, l.BoardID); err != nil {
		return err
	}
	if err := s.repo.Rename(listID, title); err != nil {
		return err
	}

	s.invalidateBoard(ctx, l.BoardID)
	s.eventBus.Publish("list_renamed", map[string]interface{}{
		"board_id": l.BoardID,
		"list_id":  listID,
		"title":    title,
	})
	return nil
}

func (s *service) ReorderList(ctx context.Context, listID, actorID uint64, newIndex int) error {
	l, err := s.repo.GetListByID(listID)
	if err != nil {
		return err
	}
	if err := s.requireManage(actorID, l.BoardID); err != nil {
		return err
	}

	moved, err := s.repo.Reorder(listID, newIndex)
	if err != nil {
		return fmt.Errorf("failed to reorder list: %w", err)
	}

	s.invalidateBoard(ctx, moved.BoardID)
	s.eventBus.Publish("list_reordered", map[string]interface{}{
		"board_id": moved.BoardID,
		"list_id":  moved.ID,
		"position": moved.Position,
	})
	return nil
}

func (s *service) DeleteList(ctx context.Context, listID, actorID uint64) error {
	l, err := s.repo.GetListByID(listID)
	if err != nil {
		return err
	}
	if err := s.requireManage(actorID, l.BoardID); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(listID)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	s.invalidateBoard(ctx, deleted.BoardID)
	s.eventBus.Publish("list_deleted", map[string]interface{}{
		"board_id": deleted.BoardID,
		"list_id":  deleted.ID,
	})
	return nil
}

func (s *service) requireManage(actorID, boardID uint64) error {
	ok, err := s.memberSvc.HasPermission(actorID, boardID, member.ActionManageBoard)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !ok {
		return apperr.Permission("user %d cannot manage board %d", actorID, boardID)
	}
	return nil
}

func (s *service) invalidateBoard(ctx context.Context, boardID uint64) {
	key := fmt.Sprintf("boards:view:%d", boardID)
	if err := s.redisP.Del(ctx, key).Err(); err != nil {
		s.logger.Warnw("Failed to invalidate board cache", "board_id", boardID, "error", err)
	}
}
