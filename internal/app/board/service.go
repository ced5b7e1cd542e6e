package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend/internal/app/card"
	"backend/internal/app/label"
	"backend/internal/app/list"
	"backend/internal/app/member"
	"backend/internal/apperr"
	"backend/internal/providers/redis"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetBoards(userID uint64) ([]*Board, error)
	GetBoardView(ctx context.Context, boardID, userID uint64) (*View, error)
	CreateBoard(name string, ownerID uint64) (*Board, error)
}

type service struct {
	repo        Repository
	listRepo    list.Repository
	cardRepo    card.Repository
	labelRepo   label.Repository
	memberSvc   member.Service
	redisP      *redis.RedisProvider
	logger      *zap.SugaredLogger
	cachePrefix string
}

func NewService(
	repo Repository,
	listRepo list.Repository,
	cardRepo card.Repository,
	labelRepo label.Repository,
	memberSvc member.Service,
	redisP *redis.RedisProvider,
	logger *zap.Logger,
) Service {
	return &service{
		repo:        repo,
		listRepo:    listRepo,
		cardRepo:    cardRepo,
		labelRepo:   labelRepo,
		memberSvc:   memberSvc,
		redisP:      redisP,
		logger:      logger.Sugar(),
		cachePrefix: "boards:view",
	}
}

func (s *service) GetBoards(userID uint64) ([]*Board, error) {
	return s.repo.GetBoardsForUser(userID)
}

func (s *service) GetBoardView(ctx context.Context, boardID, userID uint64) (*View, error) {
	ok, err := s.memberSvc.HasPermission(userID, boardID, member.ActionViewBoard)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !ok {
		return nil, apperr.Permission("user %d cannot view board %d", userID, boardID)
	}

	cacheKey := fmt.Sprintf("%s:%d", s.cachePrefix, boardID)
	if cached, err := s.redisP.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		var view View
		if json.Unmarshal([]byte(cached), &view) == nil {
			return &view, nil
		}
	}

	b, err := s.repo.GetBoardByID(boardID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("board %d not found", boardID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	lists, err := s.listRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lists: %w", err)
	}
	labels, err := s.labelRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get labels: %w", err)
	}

	view := &View{Board: b, Labels: labels, Lists: make([]*ListView, 0, len(lists))}
	for _, l := range lists {
		cards, err := s.cardRepo.ListByList(l.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get cards of list %d: %w", l.ID, err)
		}
		lv := &ListView{List: l, Cards: make([]*CardView, 0, len(cards))}
		for _, c := range cards {
			cardLabels, err := s.labelRepo.ListByCard(c.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to get labels of card %s: %w", c.ID, err)
			}
			lv.Cards = append(lv.Cards, &CardView{Card: c, Labels: cardLabels})
		}
		view.Lists = append(view.Lists, lv)
	}

	if data, err := json.Marshal(view); err == nil {
		s.redisP.SetEX(ctx, cacheKey, data, 5*time.Minute)
	}
	return view, nil
}

func (s *service) CreateBoard(name string, ownerID uint64) (*Board, error) {
	b := &Board{Name: name, OwnerID: ownerID}
	if err := s.repo.CreateBoard(b); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	if err := s.memberSvc.AddMember(b.ID, ownerID, member.RoleOwner); err != nil {
		s.logger.Warnw("Failed to add owner membership", "board_id", b.ID, "user_id", ownerID, "error", err)
	}
	return b, nil
}
