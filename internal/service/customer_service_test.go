package service

import (
	"context"
	"testing"

	"starpro_store/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCustomer(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	first, err := f.customers.AddCustomer(ctx, model.AddCustomerRequest{Name: "Ravi", Phone: "8888888888"})
	require.NoError(t, err)
	second, err := f.customers.AddCustomer(ctx, model.AddCustomerRequest{Name: "Ravi again", Phone: "8888888888", Address: " MG Road ", AltPhone: "7777777777"})
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, "MG Road", second.Address)

	list, err := f.customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "newest customer first")
	assert.Equal(t, first.ID, list[1].ID)

	// customers added by the owner never become users
	assert.Len(t, f.store.Users(), 1)
}

func TestAddCustomer_MissingField(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.customers.AddCustomer(context.Background(), model.AddCustomerRequest{Name: "Ravi"})
	assert.ErrorIs(t, err, ErrMissingField)

	list, err := f.customers.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
