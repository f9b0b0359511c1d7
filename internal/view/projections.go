package view

import (
	"strconv"
	"strings"

	"starpro_store/internal/model"

	"github.com/shopspring/decimal"
)

const (
	NoAltPhoneLabel   = "No alternate number"
	NoAddressLabel    = "Address not set"
	NoOrdersLabel     = "No orders found."
	StatusClassPrefix = "status-"
)

// CustomerCard is one card of the customer listing.
type CustomerCard struct {
	ID       int64  `json:"id"`
	ShortID  string `json:"short_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	AltPhone string `json:"alt_phone"`
	Address  string `json:"address"`
	Joined   string `json:"joined"`
}

// OrderRow is one row of the order table.
type OrderRow struct {
	ID            int64  `json:"id"`
	ShortID       string `json:"short_id"`
	CustomerName  string `json:"customer_name"`
	Date          string `json:"date"`
	Items         string `json:"items"`
	Status        string `json:"status"`
	StatusClass   string `json:"status_class"`
	PaymentStatus string `json:"payment_status"`
	Method        string `json:"method"`
	Amount        string `json:"amount"`
}

// OrderTable is the order view for one session. Total is only set for the owner.
type OrderTable struct {
	Rows        []OrderRow `json:"rows"`
	Placeholder string     `json:"placeholder,omitempty"`
	Total       string     `json:"total,omitempty"`
}

// CustomerCards projects every customer in store order.
func (f Formatter) CustomerCards(customers []model.Customer) []CustomerCard {
	cards := make([]CustomerCard, 0, len(customers))
	for _, c := range customers {
		card := CustomerCard{
			ID:       c.ID,
			ShortID:  shortID(c.ID, 4),
			Name:     c.Name,
			Phone:    c.Phone,
			AltPhone: c.AltPhone,
			Address:  c.Address,
			Joined:   f.Date(c.Joined),
		}
		if card.AltPhone == "" {
			card.AltPhone = NoAltPhoneLabel
		}
		if card.Address == "" {
			card.Address = NoAddressLabel
		}
		cards = append(cards, card)
	}
	return cards
}

// VisibleOrders filters orders for sess: a customer sees the orders placed
// with their phone number, anyone else sees every order.
func VisibleOrders(orders []model.Order, sess model.Session) []model.Order {
	if sess.Role != model.RoleCustomer {
		return orders
	}
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.CustomerPhone == sess.Phone {
			out = append(out, o)
		}
	}
	return out
}

// OrderTable projects the orders visible to sess.
func (f Formatter) OrderTable(orders []model.Order, sess model.Session) OrderTable {
	visible := VisibleOrders(orders, sess)
	table := OrderTable{Rows: make([]OrderRow, 0, len(visible))}

	total := decimal.Zero
	for _, o := range visible {
		method := o.Method
		if method == "" {
			method = model.DefaultPaymentMethod
		}
		table.Rows = append(table.Rows, OrderRow{
			ID:            o.ID,
			ShortID:       shortID(o.ID, 6),
			CustomerName:  o.CustomerName,
			Date:          f.Date(o.Date),
			Items:         strings.Join(o.Items, ", "),
			Status:        o.Status,
			StatusClass:   StatusClassPrefix + strings.ToLower(o.Status),
			PaymentStatus: o.PaymentStatus,
			Method:        method,
			Amount:        FormatINR(o.Total),
		})
		total = total.Add(o.Total)
	}

	if len(table.Rows) == 0 {
		table.Placeholder = NoOrdersLabel
	}
	if sess.IsOwner() {
		table.Total = FormatINR(total)
	}
	return table
}

func shortID(id int64, n int) string {
	s := strconv.FormatInt(id, 10)
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
