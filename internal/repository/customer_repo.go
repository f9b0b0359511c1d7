package repository

import (
	"context"
	"slices"

	"starpro_store/internal/model"
)

// Customers returns a copy of the customers collection, newest first.
func (s *RecordStore) Customers() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.customers)
}

// PrependCustomer assigns an id and join time when unset, puts the customer at
// the front of the collection and persists it. No uniqueness check is made.
func (s *RecordStore) PrependCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return model.Customer{}, ErrNotHydrated
	}

	prev, prevIDs := s.customers, s.customerIDs
	c = s.stampCustomer(c)
	s.customers = prepend(s.customers, c)
	if err := s.saveLocked(ctx, CollectionCustomers); err != nil {
		s.customers, s.customerIDs = prev, prevIDs
		return model.Customer{}, err
	}
	return c, nil
}

func (s *RecordStore) stampCustomer(c model.Customer) model.Customer {
	now := s.now()
	if c.ID == 0 {
		c.ID = s.customerIDs.next(now)
	} else {
		s.customerIDs.observe(c.ID)
	}
	if c.Joined.IsZero() {
		c.Joined = now.UTC()
	}
	return c
}

// prepend returns a new slice with v in front of in; in is left untouched.
func prepend[T any](in []T, v T) []T {
	out := make([]T, 0, len(in)+1)
	out = append(out, v)
	return append(out, in...)
}
