package bot

import (
	"context"
	"fmt"
	"time"

	"clubbot/config"
	"clubbot/pkg/logger"
	"clubbot/pkg/models"
	"clubbot/service"

	tele "gopkg.in/telebot.v3"
)

type Bot struct {
	Bot     *tele.Bot
	Log     logger.ILogger
	Cfg     *config.Config
	Svc     service.IServiceManager
	Capture *captureTable

	send recipientSender
	edit messageEditor
}

const (
	btnAcceptTerms = "✅ Принять соглашение"
	btnAddGame     = "🎮 Добавить игру"
	btnMyStats     = "⭐ Моя статистика"
	btnBonuses     = "🎁 Бонусы"
)

var messages = map[string]map[string]string{
	"ru": {
		"terms": "📝 *Пользовательское соглашение*\n\n" +
			"1. Бот предназначен для учета посещений пейнтбольного клуба\n" +
			"2. Ваши данные (ID чата, статистика) сохраняются в базе данных\n" +
			"3. Вы можете в любой момент прекратить использование бота\n" +
			"4. Администрация оставляет за собой право изменять правила\n\n" +
			"Для использования бота необходимо принять соглашение:",
		"terms_accepted":  "✅ Отлично! Вы приняли пользовательское соглашение.\n\nТеперь вам доступен весь функционал бота!",
		"welcome":         "🎯 Добро пожаловать в Paintball Club Bot!\n\nВыберите действие:",
		"request_sent":    "✅ Запрос на добавление игры отправлен администраторам. Ожидайте подтверждения.",
		"request_failed":  "❌ Ошибка при создании запроса. Попробуйте позже.",
		"request_pending": "⏳ У вас уже есть запрос на рассмотрении. Дождитесь решения администратора.",
		"stats": "🎯 Ваша статистика:\n\n" +
			"🎮 Сыграно игр: %d\n" +
			"⭐ Бонусные баллы: %d\n" +
			"📅 Дата регистрации: %s\n\n" +
			"💎 10 бонусов = 1 бесплатная игра",
		"stats_not_found": "❌ Пользователь не найден!",
		"bonus_info": "🎁 *Бонусная система*\n\n" +
			"⭐ Ваши бонусы: %d\n" +
			"🎮 Доступно бесплатных игр: %d\n\n" +
			"💎 *Правила:*\n" +
			"• 1 игра = 10 бонусов\n" +
			"• 100 бонусов = 1 бесплатная игра\n" +
			"• Бонусы не сгорают",
		"request_approved": "✅ Ваша игра подтверждена администратором! +10 бонусов",
		"request_rejected": "❌ Ваш запрос на игру отклонен администратором.",
		"admin_new_request": "🎮 *Новый запрос на добавление игры*\n\n" +
			"ID запроса: %d\n" +
			"Пользователь: @%s\n" +
			"Chat ID: %d\n" +
			"Время: %s\n\n" +
			"Подтвердить добавление игры?",
		"btn_approve":         "✅ Подтвердить",
		"btn_reject":          "❌ Отклонить",
		"cb_approved":         "✅ Игра подтверждена",
		"cb_rejected":         "❌ Игра отклонена",
		"cb_already_resolved": "⚠️ Запрос уже обработан",
		"cb_not_found":        "❌ Запрос не найден",
		"edit_approved":       "✅ Запрос #%d подтвержден",
		"edit_rejected":       "❌ Запрос #%d отклонен",
		"admin_add_prompt":    "Для добавления администратора отправьте:\n/admin_add [ID пользователя]",
		"admin_remove_prompt": "Для удаления администратора отправьте:\n/admin_remove [ID пользователя]",
		"admin_added":         "✅ Администратор успешно добавлен!",
		"admin_removed":       "✅ Администратор успешно удален!",
		"admin_list_header":   "👑 *Список администраторов:*\n\n",
		"bonus_added":         "✅ Бонусы успешно добавлены пользователю!",
		"bonus_removed":       "✅ Бонусы успешно сняты у пользователя!",
		"bad_id_add":          "❌ Неверный формат ID. Используйте: /admin_add [числовой ID]",
		"bad_id_remove":       "❌ Неверный формат ID. Используйте: /admin_remove [числовой ID]",
		"bad_capture_id":      "❌ Неверный формат ID. Отправьте числовой ID пользователя.",
		"bad_bonus_add":       "❌ Неверный формат. Используйте: /bonus_add [ID пользователя] [количество баллов]",
		"bad_bonus_remove":    "❌ Неверный формат. Используйте: /bonus_remove [ID пользователя] [количество баллов]",
		"bad_stats":           "❌ Неверный формат. Используйте: /stats [ID пользователя]",
		"unknown_command":     "❓ Неизвестная команда. Список команд: /admin_help",
		"store_error":         "❌ Ошибка при сохранении. Попробуйте позже.",
		"admin_help": "🛠 *Команды администратора:*\n\n" +
			"/admin_list — Список администраторов\n" +
			"/admin_add [ID] — Добавить администратора\n" +
			"/admin_remove [ID] — Удалить администратора\n" +
			"/bonus_add [ID] [баллы] — Добавить бонусы пользователю\n" +
			"/bonus_remove [ID] [баллы] — Снять бонусы у пользователя\n" +
			"/stats [ID] — Статистика пользователя\n" +
			"/admin_help — Справка по командам",
	},
}

func msg(key string) string {
	return messages["ru"][key]
}

func New(cfg *config.Config, svc service.IServiceManager, log logger.ILogger) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.TelegramBotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Bot:     b,
		Log:     log,
		Cfg:     cfg,
		Svc:     svc,
		Capture: newCaptureTable(),
		send:    b,
		edit:    b,
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle(tele.OnText, b.handleText)
	b.Bot.Handle(&btnApprove, b.handleApprove)
	b.Bot.Handle(&btnReject, b.handleReject)
}

func (b *Bot) Start() {
	b.Log.Info("🤖 Club Bot Started...")
	b.Bot.Start()
}

func (b *Bot) Stop() {
	b.Bot.Stop()
}

// handleText routes every inbound text message. Precedence: administrator
// commands, then a pending two-step capture, then the terms gate, then the
// user menu. Unrecognized plain text is dropped without a reply.
func (b *Bot) handleText(c tele.Context) error {
	ctx := context.Background()
	chatID := c.Chat().ID
	text := c.Text()

	isAdmin, err := b.Svc.Admin().IsAdmin(ctx, c.Sender().ID)
	if err != nil {
		// A failed lookup is not "not an admin"; skip the event instead
		// of misrouting it.
		b.Log.Error("admin lookup failed", logger.Int64("sender_id", c.Sender().ID), logger.Error(err))
		return nil
	}

	if isAdmin && claimsAdminCommand(text) {
		return b.handleAdminCommand(c, text)
	}
	if isAdmin && b.Capture.Get(chatID) != captureNone {
		return b.handleCaptureInput(c, text)
	}

	user, err := b.Svc.User().Register(ctx, chatID, c.Sender().Username)
	if err != nil {
		b.Log.Error("user registration failed", logger.Int64("chat_id", chatID), logger.Error(err))
		return nil
	}

	if !user.TermsAccepted {
		return b.handleTerms(c, text)
	}

	switch text {
	case "/start":
		return b.sendWelcome(c)
	case btnAddGame:
		return b.handleGameRequest(c, user)
	case btnMyStats:
		return c.Send(formatStats(user))
	case btnBonuses:
		freeGames := user.BonusPoints / 10
		return c.Send(fmt.Sprintf(msg("bonus_info"), user.BonusPoints, freeGames), tele.ModeMarkdown)
	}
	return nil
}

func (b *Bot) handleTerms(c tele.Context, text string) error {
	if text == btnAcceptTerms {
		if err := b.Svc.User().AcceptTerms(context.Background(), c.Chat().ID); err != nil {
			return c.Send(msg("store_error"))
		}
		if err := c.Send(msg("terms_accepted")); err != nil {
			b.Log.Error("failed to send terms confirmation", logger.Error(err))
		}
		return b.sendWelcome(c)
	}
	return b.sendTerms(c)
}

func (b *Bot) sendTerms(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	menu.Reply(menu.Row(menu.Text(btnAcceptTerms)))
	return c.Send(msg("terms"), menu, tele.ModeMarkdown)
}

func (b *Bot) sendWelcome(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnAddGame), menu.Text(btnMyStats)),
		menu.Row(menu.Text(btnBonuses)),
	)
	return c.Send(msg("welcome"), menu)
}

func (b *Bot) handleGameRequest(c tele.Context, user *models.User) error {
	req, err := b.Svc.Visit().Create(context.Background(), user.ChatID, user.Username)
	if err != nil {
		if err == service.ErrAlreadyPending {
			return c.Send(msg("request_pending"))
		}
		b.Log.Error("failed to create visit request", logger.Int64("chat_id", user.ChatID), logger.Error(err))
		return c.Send(msg("request_failed"))
	}

	if err := c.Send(msg("request_sent")); err != nil {
		b.Log.Error("failed to confirm visit request", logger.Error(err))
	}
	b.notifyAdmins(context.Background(), req)
	return nil
}

func formatStats(user *models.User) string {
	return fmt.Sprintf(msg("stats"),
		user.GamesPlayed,
		user.BonusPoints,
		user.CreatedAt.Format("02.01.2006"),
	)
}
