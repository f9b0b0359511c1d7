package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"starpro_store/internal/kv"
	"starpro_store/internal/model"
	"starpro_store/internal/utils"
)

// Collection names a persisted record collection.
type Collection string

const (
	CollectionCustomers Collection = "customers"
	CollectionUsers     Collection = "users"
	CollectionOrders    Collection = "orders"
)

// Fixed storage keys. They match the keys written by the browser build so
// existing data can be imported as-is.
const (
	KeyCustomers = "starpro_customers"
	KeyOrders    = "starpro_orders"
	KeyUsers     = "starpro_users"
	KeySession   = "starpro_user"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrCorruptCollection = errors.New("persisted collection is not valid")
	ErrNotHydrated       = errors.New("record store has not been hydrated")
)

func (c Collection) key() (string, error) {
	switch c {
	case CollectionCustomers:
		return KeyCustomers, nil
	case CollectionUsers:
		return KeyUsers, nil
	case CollectionOrders:
		return KeyOrders, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, string(c))
}

// RecordStore holds the customers, users and orders collections in memory and
// flushes a whole collection to the key-value store on every mutation.
// Customers and orders are kept newest-first, users in append order.
type RecordStore struct {
	mu       sync.Mutex
	kv       kv.Store
	logger   *slog.Logger
	now      func() time.Time
	hydrated bool

	customers []model.Customer
	users     []model.User
	orders    []model.Order

	customerIDs idSequence
	orderIDs    idSequence
}

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithClock overrides the clock used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) { s.now = now }
}

// NewRecordStore creates a RecordStore over store. Call Hydrate before use.
func NewRecordStore(store kv.Store, logger *slog.Logger, opts ...Option) *RecordStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &RecordStore{kv: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads all three collections from the key-value store, replacing any
// in-memory state. A missing key yields an empty collection, except users which
// yields the seeded owner. A value that does not decode is ErrCorruptCollection.
func (s *RecordStore) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, _, err := loadCollection[model.Customer](ctx, s.kv, KeyCustomers)
	if err != nil {
		return err
	}

	rawOrders, _, err := loadCollection[json.RawMessage](ctx, s.kv, KeyOrders)
	if err != nil {
		return err
	}
	orders, ordersMigrated, err := normalizeOrders(rawOrders)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptCollection, KeyOrders, err)
	}

	users, usersPresent, err := loadCollection[model.User](ctx, s.kv, KeyUsers)
	if err != nil {
		return err
	}
	usersMigrated := false
	if !usersPresent {
		seed, err := seedOwner()
		if err != nil {
			return err
		}
		users = []model.User{seed}
	} else {
		usersMigrated, err = hashLegacyPasswords(users)
		if err != nil {
			return err
		}
	}

	s.customers = customers
	s.orders = orders
	s.users = users
	s.customerIDs = idSequence{}
	s.orderIDs = idSequence{}
	for _, c := range customers {
		s.customerIDs.observe(c.ID)
	}
	for _, o := range orders {
		s.orderIDs.observe(o.ID)
	}
	s.hydrated = true

	if ordersMigrated {
		s.logger.Info("migrated legacy order records", "count", len(orders))
		if err := s.saveLocked(ctx, CollectionOrders); err != nil {
			return err
		}
	}
	if usersMigrated {
		s.logger.Info("hashed legacy cleartext passwords", "count", len(users))
		if err := s.saveLocked(ctx, CollectionUsers); err != nil {
			return err
		}
	}

	s.logger.Debug("record store hydrated",
		"customers", len(customers), "users", len(users), "orders", len(orders))
	return nil
}

// Save serializes the whole named collection and writes it under its key.
func (s *RecordStore) Save(ctx context.Context, c Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hydrated {
		return ErrNotHydrated
	}
	return s.saveLocked(ctx, c)
}

func (s *RecordStore) saveLocked(ctx context.Context, c Collection) error {
	key, err := c.key()
	if err != nil {
		return err
	}

	var payload any
	switch c {
	case CollectionCustomers:
		payload = nonNil(s.customers)
	case CollectionUsers:
		payload = nonNil(s.users)
	case CollectionOrders:
		payload = nonNil(s.orders)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", c, err)
	}
	return nil
}

// loadCollection decodes the JSON array stored under key. present is false
// when the key has never been written.
func loadCollection[T any](ctx context.Context, store kv.Store, key string) (out []T, present bool, err error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return []T{}, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", ErrCorruptCollection, key, err)
	}
	if out == nil {
		// "null" was persisted
		out = []T{}
	}
	return out, true, nil
}

func seedOwner() (model.User, error) {
	hash, err := utils.HashPassword(model.SeedOwnerPassword)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash seed owner password: %w", err)
	}
	return model.User{
		Username: model.SeedOwnerUsername,
		Password: hash,
		Role:     model.RoleOwner,
		Name:     model.SeedOwnerName,
	}, nil
}

func hashLegacyPasswords(users []model.User) (bool, error) {
	changed := false
	for i := range users {
		if utils.IsPasswordHash(users[i].Password) {
			continue
		}
		hash, err := utils.HashPassword(users[i].Password)
		if err != nil {
			return false, fmt.Errorf("failed to hash password for %q: %w", users[i].Username, err)
		}
		users[i].Password = hash
		changed = true
	}
	return changed, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
