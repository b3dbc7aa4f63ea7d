package service

import (
	"context"

	"clubbot/pkg/logger"
	"clubbot/pkg/models"
	"clubbot/storage"
)

type UserService interface {
	Register(ctx context.Context, chatID int64, username string) (*models.User, error)
	Get(ctx context.Context, chatID int64) (*models.User, error)
	AcceptTerms(ctx context.Context, chatID int64) error
	AdjustPoints(ctx context.Context, chatID int64, delta int) error
}

type userService struct {
	stg storage.IUserStorage
	log logger.ILogger
}

func NewUserService(stg storage.IStorage, log logger.ILogger) UserService {
	return &userService{
		stg: stg.User(),
		log: log,
	}
}

func (s *userService) Register(ctx context.Context, chatID int64, username string) (*models.User, error) {
	return s.stg.GetOrCreate(ctx, chatID, username)
}

func (s *userService) Get(ctx context.Context, chatID int64) (*models.User, error) {
	return s.stg.Get(ctx, chatID)
}

func (s *userService) AcceptTerms(ctx context.Context, chatID int64) error {
	return s.stg.AcceptTerms(ctx, chatID)
}

// AdjustPoints applies an administrator's manual correction. The delta may
// be negative and the balance has no floor.
func (s *userService) AdjustPoints(ctx context.Context, chatID int64, delta int) error {
	return s.stg.AddBonus(ctx, chatID, delta)
}
