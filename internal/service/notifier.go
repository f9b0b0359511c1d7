package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"starpro_store/internal/model"
)

// Notification is an outbound message handed to the client. Delivery is not
// acknowledged: the client follows URL and nothing reports back.
type Notification struct {
	Channel string `json:"channel"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Notifier announces committed orders. A nil Notification means the order
// view is re-rendered in place instead.
type Notifier interface {
	OrderPlaced(ctx context.Context, order model.Order) (*Notification, error)
}

// NoopNotifier is used when no messaging channel is configured.
type NoopNotifier struct{}

func (NoopNotifier) OrderPlaced(context.Context, model.Order) (*Notification, error) {
	return nil, nil
}

// WhatsAppNotifier builds a wa.me click-to-chat link addressed to the business number.
type WhatsAppNotifier struct {
	Number string
}

func NewWhatsAppNotifier(number string) *WhatsAppNotifier {
	return &WhatsAppNotifier{Number: strings.TrimPrefix(strings.TrimSpace(number), "+")}
}

func (n *WhatsAppNotifier) OrderPlaced(_ context.Context, order model.Order) (*Notification, error) {
	if n.Number == "" {
		return nil, fmt.Errorf("whatsapp number is not configured")
	}
	msg := OrderMessage(order)
	return &Notification{
		Channel: "whatsapp",
		URL:     "https://wa.me/" + n.Number + "?text=" + encodeURIComponent(msg),
		Message: msg,
	}, nil
}

// OrderMessage renders the templated text sent to the business for a new order.
func OrderMessage(order model.Order) string {
	return fmt.Sprintf("🌟 *New Order Received!* 🌟\n\n👤 *Customer:* %s\n🍦 *Item:* %s\n💰 *Total:* ₹%s\n\nPlease check the dashboard for details! 🍦",
		order.CustomerName, strings.Join(order.Items, ", "), order.Total.String())
}

var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes like the JavaScript function of the same name:
// spaces become %20 and !'()* are left as they are.
func encodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}
