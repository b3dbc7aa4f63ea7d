package models

import "time"

type Admin struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	AddedBy  int64     `json:"added_by"`
	AddedAt  time.Time `json:"added_at"`
}
