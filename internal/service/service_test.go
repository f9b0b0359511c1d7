package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"starpro_store/internal/kv"
	"starpro_store/internal/repository"
	"starpro_store/internal/utils"

	"github.com/stretchr/testify/require"
)

var errWriteFailed = errors.New("write failed")

// flakyKV fails writes to one key while failKey is set.
type flakyKV struct {
	*kv.Memory
	failKey atomic.Value
}

func (f *flakyKV) Set(ctx context.Context, key, value string) error {
	if k, _ := f.failKey.Load().(string); k == key {
		return errWriteFailed
	}
	return f.Memory.Set(ctx, key, value)
}

type fixture struct {
	kv        *flakyKV
	store     *repository.RecordStore
	sessions  *repository.SessionHolder
	jwt       *utils.JWTUtil
	auth      AuthService
	customers CustomerService
	orders    OrderService
}

func newFixture(t *testing.T, delay time.Duration) *fixture {
	t.Helper()
	mem := &flakyKV{Memory: kv.NewMemory()}
	store := repository.NewRecordStore(mem, nil)
	require.NoError(t, store.Hydrate(context.Background()))
	sessions := repository.NewSessionHolder(mem, nil)
	jwtUtil := utils.NewJWTUtil("test-secret", 1)

	return &fixture{
		kv:        mem,
		store:     store,
		sessions:  sessions,
		jwt:       jwtUtil,
		auth:      NewAuthService(store, sessions, jwtUtil, nil),
		customers: NewCustomerService(store, nil),
		orders:    NewOrderService(store, sessions, NewWhatsAppNotifier("917904410087"), delay, nil),
	}
}
