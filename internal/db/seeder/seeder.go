package seeder

import (
	"backend/internal/app/board"
	"backend/internal/app/card"
	"backend/internal/app/label"
	"backend/internal/app/list"
	"backend/internal/app/member"
	"backend/internal/app/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

func (s *Seeder) Seed() error {
	s.logger.Info("Running database seeders...")

	if err := s.seedDemoBoard(); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

// seedDemoBoard creates one board with three members, three lists and a
// handful of cards, enough to exercise moves and notifications by hand.
func (s *Seeder) seedDemoBoard() error {
	var count int64
	s.db.Model(&board.Board{}).Count(&count)
	if count > 0 {
		s.logger.Info("Boards already exist, skipping seed")
		return nil
	}

	users := []user.User{
		{Email: "alice@example.com", Nickname: "alice"},
		{Email: "bob@example.com", Nickname: "bob"},
		{Email: "carol@example.com", Nickname: "carol"},
	}
	if err := s.db.Create(&users).Error; err != nil {
		return err
	}

	demo := board.Board{Name: "Sprint Board", OwnerID: users[0].ID}
	if err := s.db.Create(&demo).Error; err != nil {
		return err
	}

	members := []member.BoardMember{
		{BoardID: demo.ID, UserID: users[0].ID, Role: member.RoleOwner},
		{BoardID: demo.ID, UserID: users[1].ID, Role: member.RoleMember},
		{BoardID: demo.ID, UserID: users[2].ID, Role: member.RoleObserver},
	}
	if err := s.db.Create(&members).Error; err != nil {
		return err
	}

	lists := []list.List{
		{BoardID: demo.ID, Title: "To Do", Position: 0},
		{BoardID: demo.ID, Title: "Doing", Position: 1},
		{BoardID: demo.ID, Title: "Done", Position: 2},
	}
	if err := s.db.Create(&lists).Error; err != nil {
		return err
	}

	cards := []card.Card{
		{ID: uuid.NewString(), ListID: lists[0].ID, Title: "Set up project skeleton", Position: 0},
		{ID: uuid.NewString(), ListID: lists[0].ID, Title: "Write API documentation", Position: 1},
		{ID: uuid.NewString(), ListID: lists[1].ID, Title: "Implement board view", Position: 0},
	}
	if err := s.db.Create(&cards).Error; err != nil {
		return err
	}

	assignment := card.Assignment{CardID: cards[2].ID, UserID: users[1].ID, AssignedBy: users[0].ID}
	if err := s.db.Create(&assignment).Error; err != nil {
		return err
	}

	labels := []label.Label{
		{BoardID: demo.ID, Name: "bug", Color: "#d73a4a"},
		{BoardID: demo.ID, Name: "feature", Color: "#a2eeef"},
	}
	if err := s.db.Create(&labels).Error; err != nil {
		return err
	}
	if err := label.NewRepository(s.db).Attach(cards[2].ID, labels[1].ID); err != nil {
		return err
	}

	s.logger.Info("Seeded demo board",
		zap.Uint64("board_id", demo.ID),
		zap.Int("users", len(users)),
		zap.Int("lists", len(lists)),
		zap.Int("cards", len(cards)),
	)
	return nil
}
