package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"starpro_store/internal/model"

	"github.com/shopspring/decimal"
)

// storedOrder accepts every order shape that has been persisted: the canonical
// one plus the older item/amount/customer fields.
type storedOrder struct {
	ID            int64               `json:"id"`
	Customer      string              `json:"customer"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	Item          *string             `json:"item"`
	Items         json.RawMessage     `json:"items"`
	Amount        decimal.NullDecimal `json:"amount"`
	Total         decimal.NullDecimal `json:"total"`
	Date          time.Time           `json:"date"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"paymentStatus"`
	Method        string              `json:"method"`
}

// normalizeOrders converts raw persisted orders to the canonical schema.
// migrated reports whether any record was not already canonical.
func normalizeOrders(raws []json.RawMessage) (orders []model.Order, migrated bool, err error) {
	orders = make([]model.Order, 0, len(raws))
	for i, raw := range raws {
		var so storedOrder
		if err := json.Unmarshal(raw, &so); err != nil {
			return nil, false, fmt.Errorf("order %d: %w", i, err)
		}
		o, changed, err := so.canonical()
		if err != nil {
			return nil, false, fmt.Errorf("order %d: %w", i, err)
		}
		migrated = migrated || changed
		orders = append(orders, o)
	}
	return orders, migrated, nil
}

func (so storedOrder) canonical() (model.Order, bool, error) {
	changed := false

	name := so.CustomerName
	if name == "" && so.Customer != "" {
		name = so.Customer
	}
	if so.Customer != "" {
		changed = true
	}

	items, itemsCanonical, err := decodeItems(so.Items)
	if err != nil {
		return model.Order{}, false, err
	}
	if !itemsCanonical {
		changed = true
	}
	if items == nil && so.Item != nil {
		items = []string{*so.Item}
	}
	if so.Item != nil {
		changed = true
	}
	if items == nil {
		items = []string{}
	}

	// a NaN amount from the browser build was persisted as null and counts as zero
	total := decimal.Zero
	switch {
	case so.Total.Valid:
		total = so.Total.Decimal
	case so.Amount.Valid:
		total = so.Amount.Decimal
	}
	if !so.Total.Valid || so.Amount.Valid {
		changed = true
	}

	method := so.Method
	if method == "" {
		method = model.DefaultPaymentMethod
		changed = true
	}

	return model.Order{
		ID:            so.ID,
		CustomerName:  name,
		CustomerPhone: so.CustomerPhone,
		Items:         items,
		Total:         total,
		Date:          so.Date,
		Status:        so.Status,
		PaymentStatus: so.PaymentStatus,
		Method:        method,
	}, changed, nil
}

// decodeItems accepts a JSON array of strings or a bare string.
// canonical is false unless raw was an array.
func decodeItems(raw json.RawMessage) (items []string, canonical bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false, nil
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, false, fmt.Errorf("items: %w", err)
		}
		return items, true, nil
	}
	var single string
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, false, fmt.Errorf("items: %w", err)
	}
	if strings.TrimSpace(single) == "" {
		return []string{}, false, nil
	}
	return []string{single}, false, nil
}
