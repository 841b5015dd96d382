package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mama-doner/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	addUsage = "Usage: /add <name> <price> <category> <emoji> <description>"
	delUsage = "Usage: /del <dish_name>"
	notAdmin = "You do not have administrator permissions."
)

var errTooFewArgs = errors.New("too few arguments")

type addCommand struct {
	Name        string
	Price       float64
	Category    string
	Emoji       string
	Description string
}

// parseAddCommand splits "/add <name> <price> <category> <emoji>
// <description...>"; everything after the emoji is the description.
func parseAddCommand(text string) (*addCommand, error) {
	parts := strings.Fields(text)
	if len(parts) < 6 {
		return nil, errTooFewArgs
	}
	price, err := services.ParsePrice(parts[2])
	if err != nil {
		return nil, err
	}
	return &addCommand{
		Name:        parts[1],
		Price:       price,
		Category:    parts[3],
		Emoji:       parts[4],
		Description: strings.Join(parts[5:], " "),
	}, nil
}

// parseDelCommand returns the item name, which may contain spaces.
func parseDelCommand(text string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "/del"))
}

func (b *Bot) handleAddItem(msg *tgbotapi.Message) {
	if msg.From == nil || !b.cfg.IsAdmin(msg.From.ID) {
		b.send(msg.Chat.ID, notAdmin)
		return
	}

	cmd, err := parseAddCommand(msg.Text)
	switch {
	case errors.Is(err, errTooFewArgs):
		b.send(msg.Chat.ID, addUsage)
		return
	case errors.Is(err, services.ErrInvalidPrice):
		b.send(msg.Chat.ID, "Error: Invalid price.")
		return
	}

	err = services.AddMenuItem(context.Background(), cmd.Name, cmd.Price, cmd.Description, cmd.Category, cmd.Emoji)
	switch {
	case errors.Is(err, services.ErrMenuItemExists):
		b.send(msg.Chat.ID, fmt.Sprintf("Menu item '%s' already exists.", cmd.Name))
	case errors.Is(err, services.ErrInvalidName):
		b.send(msg.Chat.ID, "Error: Invalid menu item name.")
	case errors.Is(err, services.ErrInvalidPrice):
		b.send(msg.Chat.ID, "Error: Invalid price.")
	case err != nil:
		b.log.Error("add menu item", slog.String("name", cmd.Name), slog.Any("error", err))
		b.send(msg.Chat.ID, "An error occurred while adding menu item. Check server logs.")
	default:
		b.send(msg.Chat.ID, fmt.Sprintf("Menu item '%s' added successfully.", cmd.Name))
	}
}

func (b *Bot) handleDeleteItem(msg *tgbotapi.Message) {
	if msg.From == nil || !b.cfg.IsAdmin(msg.From.ID) {
		b.send(msg.Chat.ID, notAdmin)
		return
	}

	name := parseDelCommand(msg.Text)
	if name == "" {
		b.send(msg.Chat.ID, delUsage)
		return
	}

	deleted, err := services.DeleteMenuItem(context.Background(), name)
	if err != nil {
		b.log.Error("delete menu item", slog.String("name", name), slog.Any("error", err))
		b.send(msg.Chat.ID, "An error occurred while deleting menu item.")
		return
	}
	if !deleted {
		b.send(msg.Chat.ID, fmt.Sprintf("Menu item '%s' not found.", name))
		return
	}
	b.send(msg.Chat.ID, fmt.Sprintf("Menu item '%s' deleted successfully.", name))
}
