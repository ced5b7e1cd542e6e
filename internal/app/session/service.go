package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"backend/internal/app/user"
)

type Service interface {
	CreateSession(email, userAgent string) (*Session, *user.User, error)
	GetUserBySessionKey(sessionKey string) (*user.User, error)
	GetSessionByKey(sessionKey string) (*Session, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
}

func NewService(repo Repository, userRepo user.Repository) Service {
	return &service{repo: repo, userRepo: userRepo}
}

// CreateSession issues an opaque session key for a known user. Identity
// itself is owned elsewhere; this is the glue that lets the API resolve a
// request credential to {userId, email, role}.
func (s *service) CreateSession(email, userAgent string) (*Session, *user.User, error) {
	usr, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("user not found: %w", err)
	}

	_ = s.repo.CloseUserSessions(usr.ID)

	sessionKey, err := generateSessionKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate session key: %w", err)
	}

	session := &Session{
		SessionKey: sessionKey,
		UserID:     usr.ID,
		UserAgent:  &userAgent,
		StartedAt:  time.Now().UTC(),
	}
	if err := s.repo.CreateSession(session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, usr, nil
}

func (s *service) GetUserBySessionKey(sessionKey string) (*user.User, error) {
	session, err := s.repo.GetSessionByKey(sessionKey)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	usr, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return usr, nil
}

func (s *service) GetSessionByKey(sessionKey string) (*Session, error) {
	return s.repo.GetSessionByKey(sessionKey)
}

func generateSessionKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
