package models

import "time"

type User struct {
	ChatID            int64     `json:"chat_id"`
	Username          string    `json:"username"`
	GamesPlayed       int       `json:"games_played"`
	BonusPoints       int       `json:"bonus_points"`
	TermsAccepted     bool      `json:"terms_accepted"`
	HasPendingRequest bool      `json:"has_pending_request"`
	CreatedAt         time.Time `json:"created_at"`
}
