package member

import "fmt"

type Service interface {
	HasPermission(userID, boardID uint64, action string) (bool, error)
	ListMemberIDs(boardID uint64) ([]uint64, error)
	AddMember(boardID, userID uint64, role string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) HasPermission(userID, boardID uint64, action string) (bool, error) {
	role, err := s.repo.GetRole(boardID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve board role: %w", err)
	}
	if role == "" {
		return false, nil
	}

	switch action {
	case ActionViewBoard:
		return true, nil
	case ActionMoveCards:
		return role == RoleOwner || role == RoleMember, nil
	case ActionManageBoard:
		return role == RoleOwner, nil
	default:
		return false, nil
	}
}

func (s *service) ListMemberIDs(boardID uint64) ([]uint64, error) {
	return s.repo.ListMemberIDs(boardID)
}

func (s *service) AddMember(boardID, userID uint64, role string) error {
	return s.repo.AddMember(&BoardMember{BoardID: boardID, UserID: userID, Role: role})
}
