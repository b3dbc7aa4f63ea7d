package storage

import (
	"context"

	"clubbot/pkg/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IStorage interface {
	User() IUserStorage
	Admin() IAdminStorage
	Visit() IVisitStorage
	Close()
	GetPool() *pgxpool.Pool
}

type IUserStorage interface {
	GetOrCreate(ctx context.Context, chatID int64, username string) (*models.User, error)
	Get(ctx context.Context, chatID int64) (*models.User, error)
	AcceptTerms(ctx context.Context, chatID int64) error
	AddGame(ctx context.Context, chatID int64) error
	AddBonus(ctx context.Context, chatID int64, points int) error
	SetPendingFlag(ctx context.Context, chatID int64, pending bool) error
}

type IAdminStorage interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	Get(ctx context.Context, userID int64) (*models.Admin, error)
	GetAll(ctx context.Context) ([]*models.Admin, error)
	Upsert(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, userID int64) error
}

type IVisitStorage interface {
	Create(ctx context.Context, chatID int64, username string) (*models.VisitRequest, error)
	GetByID(ctx context.Context, id int64) (*models.VisitRequest, error)
	Resolve(ctx context.Context, id int64, status string, adminID int64) (bool, error)
}
