package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"mama-doner/models"
)

var (
	ErrEmptyCart      = errors.New("cart is empty or has no resolvable items")
	ErrInvalidPayload = errors.New("invalid order payload")
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvoiceIssuer  = errors.New("invoice issuer failure")
)

type MenuStore interface {
	ListActive(ctx context.Context) ([]models.MenuItem, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type PendingStore interface {
	Create(ctx context.Context, items []models.CartItem) (int64, error)
	Fetch(ctx context.Context, id int64) ([]models.CartItem, bool, error)
	Delete(ctx context.Context, id int64) error
}

type OrderStore interface {
	// Finalize persists the paid order and consumes the pending draft.
	Finalize(ctx context.Context, userID, pendingID int64, items []models.CartItem, totalPrice float64) error
}

type InvoiceIssuer interface {
	CreateInvoiceLink(ctx context.Context, inv models.Invoice) (string, error)
}

// Lifecycle drives a cart through pending payment to a persisted order.
// It is the only component that creates order rows.
type Lifecycle struct {
	Menu          MenuStore
	Pending       PendingStore
	Orders        OrderStore
	Issuer        InvoiceIssuer // nil in web-only mode
	ProviderToken string
	Currency      string
	InvoiceTitle  string
	Log           *slog.Logger
}

const defaultInvoiceTitle = "Mama Doner Order"

func (l *Lifecycle) logger() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return slog.Default()
}

// RequestInvoice prices the cart against the active menu, stores the
// original cart as a pending order and asks the issuer for a payable
// link. Lines with unknown or inactive items, or a non-positive count,
// are dropped.
func (l *Lifecycle) RequestInvoice(ctx context.Context, cart []models.CartItem) (string, error) {
	if len(cart) == 0 {
		return "", ErrEmptyCart
	}
	if l.Issuer == nil {
		return "", fmt.Errorf("%w: bot is not configured", ErrInvoiceIssuer)
	}

	menu, err := l.Menu.ListActive(ctx)
	if err != nil {
		return "", fmt.Errorf("load menu: %w", err)
	}
	byID := make(map[int64]models.MenuItem, len(menu))
	for _, mi := range menu {
		byID[mi.ID] = mi
	}

	var prices []models.PricedLine
	for _, line := range cart {
		mi, ok := byID[line.ID]
		if !ok {
			l.logger().Warn("dropping unresolvable cart line",
				slog.Int64("item_id", line.ID), slog.Int("count", line.Count))
			continue
		}
		if line.Count <= 0 {
			l.logger().Warn("dropping cart line with non-positive count",
				slog.Int64("item_id", line.ID), slog.Int("count", line.Count))
			continue
		}
		label := mi.Name
		if line.Count > 1 {
			label = fmt.Sprintf("%s (x%d)", mi.Name, line.Count)
		}
		// Minor currency units, truncated toward zero.
		amount := int64(mi.Price * float64(line.Count) * 100)
		prices = append(prices, models.PricedLine{Label: label, Amount: amount})
	}
	if len(prices) == 0 {
		return "", ErrEmptyCart
	}

	// The draft keeps the client's cart verbatim; the receipt is built
	// from it later, not from the priced lines.
	orderID, err := l.Pending.Create(ctx, cart)
	if err != nil {
		return "", fmt.Errorf("save pending order: %w", err)
	}

	title := l.InvoiceTitle
	if title == "" {
		title = defaultInvoiceTitle
	}
	link, err := l.Issuer.CreateInvoiceLink(ctx, models.Invoice{
		Title:         title,
		Description:   fmt.Sprintf("Order #%d", orderID),
		Payload:       strconv.FormatInt(orderID, 10),
		ProviderToken: l.ProviderToken,
		Currency:      l.Currency,
		Prices:        prices,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvoiceIssuer, err)
	}
	return link, nil
}

// ConfirmPayment consumes the pending order named by the payment
// payload, persists the final order and returns the receipt text
// (Telegram HTML).
func (l *Lifecycle) ConfirmPayment(ctx context.Context, userID int64, totalAmount int64, currency, payload string) (string, error) {
	orderID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return "", ErrInvalidPayload
	}

	items, found, err := l.Pending.Fetch(ctx, orderID)
	if err != nil {
		return "", fmt.Errorf("fetch pending order %d: %w", orderID, err)
	}
	if !found {
		return "", ErrOrderNotFound
	}

	total := float64(totalAmount) / 100.0
	if err := l.Orders.Finalize(ctx, userID, orderID, items, total); err != nil {
		return "", fmt.Errorf("finalize order %d: %w", orderID, err)
	}
	return buildReceipt(items, total, currency), nil
}

// currencySymbols maps codes the shop actually sees to short symbols;
// unknown codes pass through unchanged.
var currencySymbols = map[string]string{
	"BYN": "Br",
}

func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code
}

func buildReceipt(items []models.CartItem, total float64, currency string) string {
	sym := CurrencySymbol(currency)
	var b strings.Builder
	b.WriteString("✓ <b>Payment Successful!</b>\n\n")
	b.WriteString("📋 <b>Your Receipt:</b>\n")
	for _, it := range items {
		lineTotal := it.Price * float64(it.Count)
		fmt.Fprintf(&b, "• %s x%d — %.2f %s\n", it.Name, it.Count, lineTotal, sym)
	}
	fmt.Fprintf(&b, "\n<b>Total Paid: %.2f %s</b>", total, sym)
	b.WriteString("\n\nThe kitchen is preparing your order!")
	return b.String()
}
