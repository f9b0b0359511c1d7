package repository

import (
	"context"
	"errors"
	"slices"

	"starpro_store/internal/model"
)

var ErrDuplicatePhone = errors.New("phone number already registered")

// Users returns a copy of the users collection in append order.
func (s *RecordStore) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.users)
}

// FindUsersByIdentifier returns every user whose username or phone equals identifier.
func (s *RecordStore) FindUsersByIdentifier(identifier string) []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, u := range s.users {
		if u.Username == identifier || (u.Phone != "" && u.Phone == identifier) {
			out = append(out, u)
		}
	}
	return out
}

// RegisterCustomer appends user and prepends customer as one step. The phone
// must not already belong to a user (checked against the phone field only).
// Users are persisted before customers; if either write fails both collections
// are restored in memory and the error is returned.
func (s *RecordStore) RegisterCustomer(ctx context.Context, user model.User, customer model.Customer) (model.User, model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return model.User{}, model.Customer{}, ErrNotHydrated
	}

	for _, u := range s.users {
		if u.Phone != "" && u.Phone == user.Phone {
			return model.User{}, model.Customer{}, ErrDuplicatePhone
		}
	}

	prevUsers, prevCustomers, prevIDs := s.users, s.customers, s.customerIDs
	customer = s.stampCustomer(customer)

	s.users = append(slices.Clone(s.users), user)
	if err := s.saveLocked(ctx, CollectionUsers); err != nil {
		s.users, s.customerIDs = prevUsers, prevIDs
		return model.User{}, model.Customer{}, err
	}

	s.customers = prepend(s.customers, customer)
	if err := s.saveLocked(ctx, CollectionCustomers); err != nil {
		s.users, s.customers, s.customerIDs = prevUsers, prevCustomers, prevIDs
		// best effort: put the persisted users back in line with memory
		_ = s.saveLocked(ctx, CollectionUsers)
		return model.User{}, model.Customer{}, err
	}
	return user, customer, nil
}
