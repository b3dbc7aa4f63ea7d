package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubbot/pkg/logger"
	"clubbot/pkg/models"
	"clubbot/storage"
)

type userRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewUserRepo(db *pgxpool.Pool, log logger.ILogger) storage.IUserStorage {
	return &userRepo{db: db, log: log}
}

func (r *userRepo) GetOrCreate(ctx context.Context, chatID int64, username string) (*models.User, error) {
	var user models.User
	query := `
		INSERT INTO users (chat_id, username)
		VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE
		SET username = EXCLUDED.username
		RETURNING chat_id, username, games_played, bonus_points, terms_accepted, has_pending_request, created_at
	`
	err := r.db.QueryRow(ctx, query, chatID, username).Scan(
		&user.ChatID, &user.Username, &user.GamesPlayed, &user.BonusPoints, &user.TermsAccepted, &user.HasPendingRequest, &user.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to get or create user", logger.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Get(ctx context.Context, chatID int64) (*models.User, error) {
	var user models.User
	query := `SELECT chat_id, username, games_played, bonus_points, terms_accepted, has_pending_request, created_at FROM users WHERE chat_id = $1`
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&user.ChatID, &user.Username, &user.GamesPlayed, &user.BonusPoints, &user.TermsAccepted, &user.HasPendingRequest, &user.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get user", logger.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) AcceptTerms(ctx context.Context, chatID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET terms_accepted = TRUE WHERE chat_id = $1", chatID)
	if err != nil {
		r.log.Error("failed to accept terms", logger.Int64("chat_id", chatID), logger.Error(err))
	}
	return err
}

// AddGame credits one completed visit: a game plus the fixed bonus award.
func (r *userRepo) AddGame(ctx context.Context, chatID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET games_played = games_played + 1, bonus_points = bonus_points + 10 WHERE chat_id = $1", chatID)
	if err != nil {
		r.log.Error("failed to add game", logger.Int64("chat_id", chatID), logger.Error(err))
	}
	return err
}

func (r *userRepo) AddBonus(ctx context.Context, chatID int64, points int) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET bonus_points = bonus_points + $1 WHERE chat_id = $2", points, chatID)
	if err != nil {
		r.log.Error("failed to add bonus points", logger.Int64("chat_id", chatID), logger.Error(err))
	}
	return err
}

func (r *userRepo) SetPendingFlag(ctx context.Context, chatID int64, pending bool) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET has_pending_request = $1 WHERE chat_id = $2", pending, chatID)
	if err != nil {
		r.log.Error("failed to set pending flag", logger.Int64("chat_id", chatID), logger.Error(err))
	}
	return err
}
