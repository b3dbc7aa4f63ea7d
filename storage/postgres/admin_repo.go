package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubbot/pkg/logger"
	"clubbot/pkg/models"
	"clubbot/storage"
)

type adminRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewAdminRepo(db *pgxpool.Pool, log logger.ILogger) storage.IAdminStorage {
	return &adminRepo{db: db, log: log}
}

func (r *adminRepo) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT count(*) FROM admins WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		r.log.Error("failed to check admin", logger.Int64("user_id", userID), logger.Error(err))
		return false, err
	}
	return count > 0, nil
}

func (r *adminRepo) Get(ctx context.Context, userID int64) (*models.Admin, error) {
	var admin models.Admin
	query := `SELECT user_id, username, added_by, added_at FROM admins WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&admin.UserID, &admin.Username, &admin.AddedBy, &admin.AddedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get admin", logger.Int64("user_id", userID), logger.Error(err))
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetAll(ctx context.Context) ([]*models.Admin, error) {
	query := `SELECT user_id, username, added_by, added_at FROM admins ORDER BY added_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list admins", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	var admins []*models.Admin
	for rows.Next() {
		var a models.Admin
		err := rows.Scan(&a.UserID, &a.Username, &a.AddedBy, &a.AddedAt)
		if err != nil {
			return nil, err
		}
		admins = append(admins, &a)
	}
	return admins, nil
}

// Upsert re-adds an existing admin, overwriting username, added_by and added_at.
func (r *adminRepo) Upsert(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (user_id, username, added_by, added_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
			added_by = EXCLUDED.added_by,
			added_at = EXCLUDED.added_at
	`
	_, err := r.db.Exec(ctx, query, admin.UserID, admin.Username, admin.AddedBy)
	if err != nil {
		r.log.Error("failed to upsert admin", logger.Int64("user_id", admin.UserID), logger.Error(err))
	}
	return err
}

func (r *adminRepo) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM admins WHERE user_id = $1", userID)
	if err != nil {
		r.log.Error("failed to delete admin", logger.Int64("user_id", userID), logger.Error(err))
	}
	return err
}
