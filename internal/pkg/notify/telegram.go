// internal/pkg/notify/telegram.go
package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/socdefainder-oss/pronto-backend/internal/config"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/order"
)

// TelegramNotifier posts new orders to the staff Telegram group
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *logrus.Logger
}

// NewTelegramNotifier creates a Telegram notifier. Returns nil when no
// bot token is configured so the caller can skip notifications.
func NewTelegramNotifier(cfg *config.Config, logger *logrus.Logger) (*TelegramNotifier, error) {
	if cfg.External.Telegram.BotToken == "" {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.External.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: cfg.External.Telegram.ChatID,
		logger: logger,
	}, nil
}

// NotifyNewOrder posts an order card to the staff chat. Failures are
// logged, never propagated: notifications must not block checkout.
func (n *TelegramNotifier) NotifyNewOrder(ctx context.Context, o *order.Order) {
	msg := tgbotapi.NewMessage(n.chatID, BuildOrderCard(o))
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.WithFields(logrus.Fields{
			"order_number": o.OrderNumber,
			"chat_id":      n.chatID,
		}).WithError(err).Error("Failed to send order notification")
	}
}

// BuildOrderCard formats an order as a plain-text staff notification
func BuildOrderCard(o *order.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🆕 New order %s\n\n", o.OrderNumber)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", o.CustomerName, o.CustomerPhone)

	if o.DeliveryType == order.DeliveryTypePickup {
		b.WriteString("Pickup at the counter\n")
	} else if o.Address != nil {
		fmt.Fprintf(&b, "Deliver to: %s, %s", o.Address.Street, o.Address.Number)
		if o.Address.Complement != "" {
			fmt.Fprintf(&b, " (%s)", o.Address.Complement)
		}
		fmt.Fprintf(&b, " - %s, %s/%s\n", o.Address.District, o.Address.City, o.Address.State)
	}

	b.WriteString("\nItems:\n")
	for _, line := range o.Items {
		fmt.Fprintf(&b, "  %dx %s - R$ %.2f\n", line.Quantity, line.Name, float64(line.TotalPrice)/100)
	}

	if o.DiscountAmount > 0 {
		fmt.Fprintf(&b, "\nDiscount: -R$ %.2f", float64(o.DiscountAmount)/100)
		if o.CouponCode != "" {
			fmt.Fprintf(&b, " (%s)", o.CouponCode)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total: R$ %.2f\n", float64(o.TotalAmount)/100)

	fmt.Fprintf(&b, "\nPayment: %s", o.PaymentMethod)
	if o.CardBrand != "" {
		fmt.Fprintf(&b, " (%s)", o.CardBrand)
	}
	b.WriteString("\n")

	if o.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", o.Notes)
	}

	return b.String()
}
