package bot

import (
	"context"
	"fmt"
	"strconv"

	"clubbot/pkg/logger"
	"clubbot/pkg/models"

	tele "gopkg.in/telebot.v3"
)

// recipientSender and messageEditor are the parts of *tele.Bot the
// notification paths need.
type recipientSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type messageEditor interface {
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// notifyAdmins broadcasts a new visit request, with approve/reject
// controls, to the roster as it stands right now.
func (b *Bot) notifyAdmins(ctx context.Context, req *models.VisitRequest) {
	admins, err := b.Svc.Admin().List(ctx)
	if err != nil {
		b.Log.Error("failed to list admins for fan-out", logger.Int64("request_id", req.ID), logger.Error(err))
		return
	}

	text := fmt.Sprintf(msg("admin_new_request"),
		req.ID, req.Username, req.UserChatID, req.RequestedAt.Format("02.01.2006 15:04"))

	fanOut(b.send, b.Log, admins, text, approveKeyboard(req.ID))
}

// fanOut delivers to every admin independently; one failed send never
// blocks the rest.
func fanOut(s recipientSender, log logger.ILogger, admins []*models.Admin, text string, markup *tele.ReplyMarkup) int {
	sent := 0
	for _, a := range admins {
		if _, err := s.Send(&tele.User{ID: a.UserID}, text, markup, tele.ModeMarkdown); err != nil {
			log.Error("failed to notify admin", logger.Int64("admin_id", a.UserID), logger.Error(err))
			continue
		}
		sent++
	}
	return sent
}

func approveKeyboard(requestID int64) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	payload := strconv.FormatInt(requestID, 10)
	menu.Inline(menu.Row(
		menu.Data(msg("btn_approve"), btnApprove.Unique, payload),
		menu.Data(msg("btn_reject"), btnReject.Unique, payload),
	))
	return menu
}

// notifyRequestOutcome tells the originating user how the request ended.
// Approvals also carry the refreshed statistics.
func (b *Bot) notifyRequestOutcome(ctx context.Context, req *models.VisitRequest) {
	to := &tele.User{ID: req.UserChatID}

	if req.Status != models.VisitStatusApproved {
		if _, err := b.send.Send(to, msg("request_rejected")); err != nil {
			b.Log.Error("failed to notify user", logger.Int64("chat_id", req.UserChatID), logger.Error(err))
		}
		return
	}

	if _, err := b.send.Send(to, msg("request_approved")); err != nil {
		b.Log.Error("failed to notify user", logger.Int64("chat_id", req.UserChatID), logger.Error(err))
		return
	}
	user, err := b.Svc.User().Get(ctx, req.UserChatID)
	if err != nil || user == nil {
		return
	}
	if _, err := b.send.Send(to, formatStats(user)); err != nil {
		b.Log.Error("failed to send refreshed stats", logger.Int64("chat_id", req.UserChatID), logger.Error(err))
	}
}
