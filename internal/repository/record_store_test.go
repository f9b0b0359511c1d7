package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"starpro_store/internal/kv"
	"starpro_store/internal/model"
	"starpro_store/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func hydrated(t *testing.T, store kv.Store, opts ...Option) *RecordStore {
	t.Helper()
	rs := NewRecordStore(store, nil, opts...)
	require.NoError(t, rs.Hydrate(context.Background()))
	return rs
}

func TestHydrate_EmptyStoreSeedsOwner(t *testing.T) {
	rs := hydrated(t, kv.NewMemory())

	assert.Empty(t, rs.Customers())
	assert.Empty(t, rs.Orders())

	users := rs.Users()
	require.Len(t, users, 1)
	assert.Equal(t, model.SeedOwnerUsername, users[0].Username)
	assert.Equal(t, model.RoleOwner, users[0].Role)
	assert.Equal(t, model.SeedOwnerName, users[0].Name)
	assert.True(t, utils.CheckPasswordHash(model.SeedOwnerPassword, users[0].Password))
}

func TestHydrate_PersistedEmptyUsersHasNoSeed(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(context.Background(), KeyUsers, `[]`))

	rs := hydrated(t, mem)
	assert.Empty(t, rs.Users())
}

func TestHydrate_CorruptCollectionFails(t *testing.T) {
	for _, key := range []string{KeyCustomers, KeyOrders, KeyUsers} {
		t.Run(key, func(t *testing.T) {
			mem := kv.NewMemory()
			require.NoError(t, mem.Set(context.Background(), key, `{not json`))

			err := NewRecordStore(mem, nil).Hydrate(context.Background())
			assert.ErrorIs(t, err, ErrCorruptCollection)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	rs := hydrated(t, mem, WithClock(fixedClock(time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC))))

	_, err := rs.PrependCustomer(ctx, model.Customer{Name: "Asha", Phone: "9999999999", Address: "MG Road"})
	require.NoError(t, err)
	_, err = rs.PrependCustomer(ctx, model.Customer{Name: "Ravi", Phone: "8888888888", AltPhone: "7777777777"})
	require.NoError(t, err)
	_, err = rs.PrependOrder(ctx, model.Order{
		CustomerName:  "Asha",
		CustomerPhone: "9999999999",
		Items:         []string{"Vanilla Cup", "Choco Bar"},
		Total:         decimal.RequireFromString("72.50"),
		Status:        model.OrderStatusPlaced,
		PaymentStatus: model.PaymentStatusSuccess,
	})
	require.NoError(t, err)
	require.NoError(t, rs.Save(ctx, CollectionUsers))

	again := hydrated(t, mem)
	assert.Equal(t, rs.Customers(), again.Customers())
	assert.Equal(t, rs.Users(), again.Users())

	want, got := rs.Orders(), again.Orders()
	require.Len(t, got, 1)
	assert.True(t, want[0].Total.Equal(got[0].Total))
	want[0].Total, got[0].Total = decimal.Zero, decimal.Zero
	assert.Equal(t, want, got)
}

func TestSave_UnknownCollection(t *testing.T) {
	rs := hydrated(t, kv.NewMemory())
	assert.ErrorIs(t, rs.Save(context.Background(), Collection("carts")), ErrUnknownCollection)
}

func TestSave_BeforeHydrate(t *testing.T) {
	rs := NewRecordStore(kv.NewMemory(), nil)
	assert.ErrorIs(t, rs.Save(context.Background(), CollectionOrders), ErrNotHydrated)
}

func TestPrepend_NewestFirstAndMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	// a frozen clock forces every id into the same millisecond
	rs := hydrated(t, kv.NewMemory(), WithClock(fixedClock(time.UnixMilli(1760000000000))))

	var ids []int64
	for _, name := range []string{"a", "b", "c", "d"} {
		c, err := rs.PrependCustomer(ctx, model.Customer{Name: name, Phone: name})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}

	customers := rs.Customers()
	assert.Equal(t, "d", customers[0].Name)
	assert.Equal(t, "a", customers[3].Name)

	o1, err := rs.PrependOrder(ctx, model.Order{CustomerName: "a"})
	require.NoError(t, err)
	o2, err := rs.PrependOrder(ctx, model.Order{CustomerName: "b"})
	require.NoError(t, err)
	assert.Greater(t, o2.ID, o1.ID)
	assert.Equal(t, model.DefaultPaymentMethod, o1.Method)
	assert.Equal(t, o2.ID, rs.Orders()[0].ID)
}

func TestIDs_ContinueAfterHydratedMax(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, KeyCustomers, `[{"id":9000000000000,"name":"Future","phone":"1","joined":"2026-01-01T00:00:00.000Z","address":"","location":null}]`))

	rs := hydrated(t, mem, WithClock(fixedClock(time.UnixMilli(1760000000000))))
	c, err := rs.PrependCustomer(ctx, model.Customer{Name: "Next", Phone: "2"})
	require.NoError(t, err)
	assert.Equal(t, int64(9000000000001), c.ID)
}

func TestRegisterCustomer_DuplicatePhone(t *testing.T) {
	ctx := context.Background()
	rs := hydrated(t, kv.NewMemory())

	_, _, err := rs.RegisterCustomer(ctx,
		model.User{Username: "9999999999", Phone: "9999999999", Role: model.RoleCustomer},
		model.Customer{Name: "Asha", Phone: "9999999999"})
	require.NoError(t, err)

	_, _, err = rs.RegisterCustomer(ctx,
		model.User{Username: "9999999999", Phone: "9999999999", Role: model.RoleCustomer},
		model.Customer{Name: "Imposter", Phone: "9999999999"})
	assert.ErrorIs(t, err, ErrDuplicatePhone)
	assert.Len(t, rs.Users(), 2)
	assert.Len(t, rs.Customers(), 1)
}

// failingKV fails every Set for the configured key.
type failingKV struct {
	*kv.Memory
	failKey string
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestRegisterCustomer_RollsBackOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingKV{Memory: kv.NewMemory(), failKey: KeyCustomers}
	rs := hydrated(t, store)

	_, _, err := rs.RegisterCustomer(ctx,
		model.User{Username: "9999999999", Phone: "9999999999", Role: model.RoleCustomer},
		model.Customer{Name: "Asha", Phone: "9999999999"})
	require.Error(t, err)

	assert.Len(t, rs.Users(), 1)
	assert.Empty(t, rs.Customers())

	raw, ok, err := store.Get(ctx, KeyUsers)
	require.NoError(t, err)
	require.True(t, ok)
	var persisted []model.User
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	assert.Len(t, persisted, 1)
}

func TestFindUsersByIdentifier(t *testing.T) {
	ctx := context.Background()
	rs := hydrated(t, kv.NewMemory())
	_, _, err := rs.RegisterCustomer(ctx,
		model.User{Username: "9999999999", Phone: "9999999999", Role: model.RoleCustomer, Name: "Asha"},
		model.Customer{Name: "Asha", Phone: "9999999999"})
	require.NoError(t, err)

	assert.Len(t, rs.FindUsersByIdentifier("admin"), 1)
	assert.Len(t, rs.FindUsersByIdentifier("9999999999"), 1)
	assert.Empty(t, rs.FindUsersByIdentifier("nobody"))
	assert.Empty(t, rs.FindUsersByIdentifier(""))
}
