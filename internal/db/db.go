package db

import (
	"backend/internal/app/activity"
	"backend/internal/app/board"
	"backend/internal/app/card"
	"backend/internal/app/label"
	"backend/internal/app/list"
	"backend/internal/app/member"
	"backend/internal/app/notification"
	"backend/internal/app/session"
	"backend/internal/app/user"
	"backend/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.PostgresDSN()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)

	return db, nil
}

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	err := db.AutoMigrate(
		&user.User{},
		&session.Session{},
		&board.Board{},
		&member.BoardMember{},
		&list.List{},
		&card.Card{},
		&card.Assignment{},
		&label.Label{},
		&label.CardLabel{},
		&activity.Entry{},
		&notification.Notification{},
		&notification.Preference{},
	)
	if err != nil {
		return err
	}

	logger.Info("Database migrated")
	return nil
}
