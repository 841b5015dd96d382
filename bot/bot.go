package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"mama-doner/config"
	"mama-doner/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	cfg       *config.Config
	lifecycle *services.Lifecycle
	log       *slog.Logger
}

func New(cfg *config.Config, lc *services.Lifecycle, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, cfg: cfg, lifecycle: lc, log: log}, nil
}

// API exposes the underlying client so the invoice issuer can share it.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.PreCheckoutQuery != nil {
			b.handlePreCheckout(update.PreCheckoutQuery)
			continue
		}
		if update.Message == nil {
			continue
		}
		msg := update.Message

		if msg.SuccessfulPayment != nil {
			b.handleSuccessfulPayment(msg)
			continue
		}

		text := strings.TrimSpace(msg.Text)
		switch {
		case text == "/start":
			b.handleStart(msg.Chat.ID)
		case text == "/add" || strings.HasPrefix(text, "/add "):
			b.handleAddItem(msg)
		case text == "/del" || strings.HasPrefix(text, "/del "):
			b.handleDeleteItem(msg)
		}
	}
}

func (b *Bot) handleStart(chatID int64) {
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Order Food", b.cfg.Web.WebAppURL),
		),
	)
	msg := tgbotapi.NewMessage(chatID, "Welcome!\nTap the button below to open the menu.")
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send start message", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}

// handlePreCheckout always accepts: the order was already validated
// when the invoice was created.
func (b *Bot) handlePreCheckout(q *tgbotapi.PreCheckoutQuery) {
	_, err := b.api.Request(tgbotapi.PreCheckoutConfig{
		PreCheckoutQueryID: q.ID,
		OK:                 true,
	})
	if err != nil {
		b.log.Error("answer pre-checkout", slog.String("query_id", q.ID), slog.Any("error", err))
	}
}

func (b *Bot) handleSuccessfulPayment(msg *tgbotapi.Message) {
	if msg.From == nil {
		b.send(msg.Chat.ID, "Error: User information is not available.")
		return
	}
	p := msg.SuccessfulPayment

	receipt, err := b.lifecycle.ConfirmPayment(
		context.Background(), msg.From.ID, int64(p.TotalAmount), p.Currency, p.InvoicePayload,
	)
	switch {
	case errors.Is(err, services.ErrInvalidPayload):
		b.send(msg.Chat.ID, "Error: Invalid order payload.")
	case errors.Is(err, services.ErrOrderNotFound):
		b.send(msg.Chat.ID, "Error: Order not found. Please contact support.")
	case err != nil:
		b.log.Error("confirm payment",
			slog.String("payload", p.InvoicePayload), slog.Any("error", err))
		b.send(msg.Chat.ID, "An error occurred while processing your payment. Check server logs.")
	default:
		b.sendHTML(msg.Chat.ID, receipt)
	}
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("send message", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}

func (b *Bot) sendHTML(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}
