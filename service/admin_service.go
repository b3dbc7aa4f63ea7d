package service

import (
	"context"

	"clubbot/pkg/logger"
	"clubbot/pkg/models"
	"clubbot/storage"
)

type AdminService interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context) ([]*models.Admin, error)
	Add(ctx context.Context, userID int64, username string, addedBy int64) error
	Remove(ctx context.Context, userID int64) error
}

type adminService struct {
	stg storage.IAdminStorage
	log logger.ILogger
}

func NewAdminService(stg storage.IStorage, log logger.ILogger) AdminService {
	return &adminService{
		stg: stg.Admin(),
		log: log,
	}
}

func (s *adminService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.stg.IsAdmin(ctx, userID)
}

func (s *adminService) List(ctx context.Context) ([]*models.Admin, error) {
	return s.stg.GetAll(ctx)
}

func (s *adminService) Add(ctx context.Context, userID int64, username string, addedBy int64) error {
	return s.stg.Upsert(ctx, &models.Admin{
		UserID:   userID,
		Username: username,
		AddedBy:  addedBy,
	})
}

// Remove deletes unconditionally. Removing an unknown id is a no-op and the
// roster may end up empty.
func (s *adminService) Remove(ctx context.Context, userID int64) error {
	return s.stg.Delete(ctx, userID)
}
