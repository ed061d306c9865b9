package bot

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"rentadmin/internal/config"
	"rentadmin/internal/events"
	"rentadmin/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Bot is the operator-facing dashboard: paginated entity lists, schema
// driven forms, confirm dialogs and notifications, all over Telegram.
type Bot struct {
	tg       *tgbotapi.BotAPI
	config   *config.Config
	stores   *store.Stores
	eventBus *events.EventBus
	sessions *sessionStore
	files    *http.Client
	logger   *zerolog.Logger
	adminSet map[int64]bool
}

func NewBot(token string, cfg *config.Config, stores *store.Stores, eventBus *events.EventBus, logger *zerolog.Logger) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	botAPI.Debug = cfg.Telegram.Debug

	if eventBus == nil {
		eventBus = events.NewEventBus()
	}
	if logger == nil {
		l := zerolog.New(os.Stdout).With().Timestamp().Logger()
		logger = &l
	}

	adminSet := make(map[int64]bool, len(cfg.Admins))
	for _, id := range cfg.Admins {
		adminSet[id] = true
	}

	b := &Bot{
		tg:       botAPI,
		config:   cfg,
		stores:   stores,
		eventBus: eventBus,
		sessions: newSessionStore(),
		files:    &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
		adminSet: adminSet,
	}
	b.subscribeNotifications()
	return b, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tg.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tg.Self.UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.processUpdate(ctx, update)
		}
	}
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	requestID := uuid.New().String()
	l := b.logger.With().Str("request_id", requestID).Logger()
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		chatID := chatIDOf(update)
		if chatID == 0 {
			return
		}

		if !b.isAdmin(chatID) {
			b.sendMessage(chatID, "This console is restricted to platform administrators.")
			return
		}

		if !b.allowMessage(chatID) {
			b.sendMessage(chatID, "Too many requests, please slow down.")
			return
		}

		switch {
		case update.CallbackQuery != nil:
			b.handleCallback(updateCtx, update.CallbackQuery)
		case update.Message != nil:
			b.handleMessage(updateCtx, update.Message)
		}
	})
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, msg.Command())
		return
	}

	// Non-command input belongs to an open form, if any.
	session := b.sessions.get(chatID)
	if session.form != nil {
		b.handleFormInput(ctx, chatID, msg)
		return
	}

	b.sendMainMenu(chatID)
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, command string) {
	switch command {
	case "start", "menu":
		b.sessions.reset(chatID)
		b.sendMainMenu(chatID)
	case "users":
		b.showUsersList(ctx, chatID, 0, roleFilterAll)
	case "properties":
		b.showPropertiesList(ctx, chatID, 0)
	case "bookings":
		b.showBookingsList(ctx, chatID, 0)
	case "export_users":
		b.exportUsers(ctx, chatID)
	case "export_bookings":
		b.exportBookings(ctx, chatID)
	case "skip":
		b.handleFormSkip(ctx, chatID)
	case "cancel":
		b.cancelForm(chatID)
	default:
		b.sendMessage(chatID, "Unknown command. Use /menu.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Acknowledge immediately so the client stops its spinner.
	_, _ = b.tg.Request(tgbotapi.NewCallback(query.ID, ""))

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	parts := strings.SplitN(query.Data, ":", 3)

	switch parts[0] {
	case "menu":
		b.sendMainMenu(chatID)
	case "users":
		b.handleUsersCallback(ctx, chatID, query.Message.MessageID, parts[1:])
	case "props":
		b.handlePropertiesCallback(ctx, chatID, query.Message.MessageID, parts[1:])
	case "bookings":
		b.handleBookingsCallback(ctx, chatID, query.Message.MessageID, parts[1:])
	case "form":
		b.handleFormCallback(ctx, chatID, parts[1:])
	}
}

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "*Rental platform console*\n\nPick a collection to manage.")
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Users", "users:list:0"),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Properties", "props:list:0"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Bookings", "bookings:list:0"),
		),
	)
	b.send(msg)
}

func chatIDOf(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID
	default:
		return 0
	}
}
