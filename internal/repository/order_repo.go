package repository

import (
	"context"
	"slices"

	"starpro_store/internal/model"
)

// Orders returns a copy of the orders collection, newest first.
func (s *RecordStore) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.orders)
}

// PrependOrder assigns an id and date when unset, puts the order at the front
// of the collection and persists it.
func (s *RecordStore) PrependOrder(ctx context.Context, o model.Order) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return model.Order{}, ErrNotHydrated
	}

	prev, prevIDs := s.orders, s.orderIDs
	now := s.now()
	if o.ID == 0 {
		o.ID = s.orderIDs.next(now)
	} else {
		s.orderIDs.observe(o.ID)
	}
	if o.Date.IsZero() {
		o.Date = now.UTC()
	}
	if o.Items == nil {
		o.Items = []string{}
	}
	if o.Method == "" {
		o.Method = model.DefaultPaymentMethod
	}

	s.orders = prepend(s.orders, o)
	if err := s.saveLocked(ctx, CollectionOrders); err != nil {
		s.orders, s.orderIDs = prev, prevIDs
		return model.Order{}, err
	}
	return o, nil
}
