package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"clubbot/pkg/logger"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleAdminCommand(c tele.Context, text string) error {
	cmd, err := parseAdminCommand(text)
	if err == errUnknownCommand {
		return c.Send(msg("unknown_command"))
	}
	if err == errBadArguments {
		return c.Send(usageFor(cmd.Verb))
	}

	ctx := context.Background()
	chatID := c.Chat().ID

	switch cmd.Verb {
	case cmdAdminList:
		return b.sendAdminList(c)

	case cmdAdminHelp:
		return c.Send(msg("admin_help"), tele.ModeMarkdown)

	case cmdAdminAdd:
		if !cmd.HasTarget {
			b.Capture.Set(chatID, captureAdminAdd)
			return c.Send(msg("admin_add_prompt"))
		}
		return b.addAdmin(c, cmd.TargetID)

	case cmdAdminRemove:
		if !cmd.HasTarget {
			b.Capture.Set(chatID, captureAdminRemove)
			return c.Send(msg("admin_remove_prompt"))
		}
		return b.removeAdmin(c, cmd.TargetID)

	case cmdBonusAdd:
		if err := b.Svc.User().AdjustPoints(ctx, cmd.TargetID, cmd.Points); err != nil {
			return c.Send(msg("store_error"))
		}
		return c.Send(msg("bonus_added"))

	case cmdBonusRemove:
		if err := b.Svc.User().AdjustPoints(ctx, cmd.TargetID, -cmd.Points); err != nil {
			return c.Send(msg("store_error"))
		}
		return c.Send(msg("bonus_removed"))

	case cmdStats:
		user, err := b.Svc.User().Get(ctx, cmd.TargetID)
		if err != nil {
			return c.Send(msg("store_error"))
		}
		if user == nil {
			return c.Send(msg("stats_not_found"))
		}
		return c.Send(formatStats(user))
	}
	return nil
}

// handleCaptureInput consumes the message that completes a bare /admin_add
// or /admin_remove. A non-numeric id keeps the marker in place.
func (b *Bot) handleCaptureInput(c tele.Context, text string) error {
	chatID := c.Chat().ID

	targetID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return c.Send(msg("bad_capture_id"))
	}

	action := b.Capture.Get(chatID)
	b.Capture.Clear(chatID)

	switch action {
	case captureAdminAdd:
		return b.addAdmin(c, targetID)
	case captureAdminRemove:
		return b.removeAdmin(c, targetID)
	}
	return nil
}

func (b *Bot) addAdmin(c tele.Context, targetID int64) error {
	ctx := context.Background()

	// Administrators are not required to be participants; the handle is
	// cosmetic and stays empty when none is known.
	username := ""
	if user, err := b.Svc.User().Get(ctx, targetID); err == nil && user != nil {
		username = user.Username
	}

	if err := b.Svc.Admin().Add(ctx, targetID, username, c.Sender().ID); err != nil {
		return c.Send(msg("store_error"))
	}
	b.Log.Info("admin added", logger.Int64("user_id", targetID), logger.Int64("added_by", c.Sender().ID))
	return c.Send(msg("admin_added"))
}

func (b *Bot) removeAdmin(c tele.Context, targetID int64) error {
	if err := b.Svc.Admin().Remove(context.Background(), targetID); err != nil {
		return c.Send(msg("store_error"))
	}
	b.Log.Info("admin removed", logger.Int64("user_id", targetID), logger.Int64("removed_by", c.Sender().ID))
	return c.Send(msg("admin_removed"))
}

func (b *Bot) sendAdminList(c tele.Context) error {
	admins, err := b.Svc.Admin().List(context.Background())
	if err != nil {
		return c.Send(msg("store_error"))
	}

	var sb strings.Builder
	sb.WriteString(msg("admin_list_header"))
	for _, a := range admins {
		sb.WriteString(fmt.Sprintf("• @%s (ID: %d)\n", a.Username, a.UserID))
	}
	return c.Send(sb.String(), tele.ModeMarkdown)
}

func usageFor(verb commandVerb) string {
	switch verb {
	case cmdAdminAdd:
		return msg("bad_id_add")
	case cmdAdminRemove:
		return msg("bad_id_remove")
	case cmdBonusAdd:
		return msg("bad_bonus_add")
	case cmdBonusRemove:
		return msg("bad_bonus_remove")
	case cmdStats:
		return msg("bad_stats")
	}
	return msg("unknown_command")
}
