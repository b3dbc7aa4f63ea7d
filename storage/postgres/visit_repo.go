package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubbot/pkg/logger"
	"clubbot/pkg/models"
	"clubbot/storage"
)

type visitRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewVisitRepo(db *pgxpool.Pool, log logger.ILogger) storage.IVisitStorage {
	return &visitRepo{db: db, log: log}
}

func (r *visitRepo) Create(ctx context.Context, chatID int64, username string) (*models.VisitRequest, error) {
	req := models.VisitRequest{
		UserChatID: chatID,
		Username:   username,
		Status:     models.VisitStatusPending,
	}
	query := `
		INSERT INTO visit_requests (user_chat_id, username, status)
		VALUES ($1, $2, $3)
		RETURNING id, requested_at
	`
	err := r.db.QueryRow(ctx, query, chatID, username, req.Status).Scan(&req.ID, &req.RequestedAt)
	if err != nil {
		r.log.Error("failed to create visit request", logger.Int64("chat_id", chatID), logger.Error(err))
		return nil, err
	}
	return &req, nil
}

func (r *visitRepo) GetByID(ctx context.Context, id int64) (*models.VisitRequest, error) {
	var req models.VisitRequest
	query := `SELECT id, user_chat_id, username, status, resolved_by, resolved_at, requested_at FROM visit_requests WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserChatID, &req.Username, &req.Status, &req.ResolvedBy, &req.ResolvedAt, &req.RequestedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get visit request", logger.Int64("id", id), logger.Error(err))
		return nil, err
	}
	return &req, nil
}

// Resolve moves a request out of PENDING exactly once. The returned bool is
// false when the request was already terminal, so resolution side effects
// are never re-applied on a second click.
func (r *visitRepo) Resolve(ctx context.Context, id int64, status string, adminID int64) (bool, error) {
	res, err := r.db.Exec(ctx,
		"UPDATE visit_requests SET status = $1, resolved_by = $2, resolved_at = NOW() WHERE id = $3 AND status = $4",
		status, adminID, id, models.VisitStatusPending,
	)
	if err != nil {
		r.log.Error("failed to resolve visit request", logger.Int64("id", id), logger.Error(err))
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
