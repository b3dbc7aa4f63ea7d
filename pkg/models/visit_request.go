package models

import "time"

const (
	VisitStatusPending  = "PENDING"
	VisitStatusApproved = "APPROVED"
	VisitStatusRejected = "REJECTED"
)

type VisitRequest struct {
	ID          int64      `json:"id"`
	UserChatID  int64      `json:"user_chat_id"`
	Username    string     `json:"username"`
	Status      string     `json:"status"`
	ResolvedBy  *int64     `json:"resolved_by"`
	ResolvedAt  *time.Time `json:"resolved_at"`
	RequestedAt time.Time  `json:"requested_at"`
}
