package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"clubbot/pkg/logger"
	"clubbot/pkg/models"
	"clubbot/service"

	tele "gopkg.in/telebot.v3"
)

var (
	btnApprove = tele.Btn{Unique: "visit_approve"}
	btnReject  = tele.Btn{Unique: "visit_reject"}
)

func (b *Bot) handleApprove(c tele.Context) error {
	return b.resolveCallback(c, models.VisitStatusApproved)
}

func (b *Bot) handleReject(c tele.Context) error {
	return b.resolveCallback(c, models.VisitStatusRejected)
}

// resolveCallback is the entry point for approve/reject clicks. The request
// id rides in the callback payload, so no chat state is consulted.
func (b *Bot) resolveCallback(c tele.Context, status string) error {
	ctx := context.Background()
	adminID := c.Sender().ID

	requestID, err := strconv.ParseInt(strings.TrimSpace(c.Data()), 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: msg("cb_not_found")})
	}

	var req *models.VisitRequest
	if status == models.VisitStatusApproved {
		req, err = b.Svc.Visit().Approve(ctx, requestID, adminID)
	} else {
		req, err = b.Svc.Visit().Reject(ctx, requestID, adminID)
	}

	switch err {
	case nil:
	case service.ErrAlreadyResolved:
		b.retireControls(c, requestID, status)
		return c.Respond(&tele.CallbackResponse{Text: msg("cb_already_resolved")})
	case service.ErrRequestNotFound:
		return c.Respond(&tele.CallbackResponse{Text: msg("cb_not_found")})
	default:
		b.Log.Error("failed to resolve visit request",
			logger.Int64("request_id", requestID),
			logger.Int64("admin_id", adminID),
			logger.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: msg("store_error")})
	}

	b.notifyRequestOutcome(ctx, req)
	b.retireControls(c, requestID, status)

	ack := msg("cb_rejected")
	if status == models.VisitStatusApproved {
		ack = msg("cb_approved")
	}
	return c.Respond(&tele.CallbackResponse{Text: ack})
}

// retireControls rewrites the admin-facing notification so the stale
// approve/reject buttons disappear. Best effort only.
func (b *Bot) retireControls(c tele.Context, requestID int64, status string) {
	key := "edit_rejected"
	if status == models.VisitStatusApproved {
		key = "edit_approved"
	}
	if _, err := b.edit.Edit(c.Callback().Message, fmt.Sprintf(msg(key), requestID)); err != nil {
		b.Log.Warning("failed to edit request notification", logger.Int64("request_id", requestID), logger.Error(err))
	}
}
