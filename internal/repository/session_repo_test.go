package repository

import (
	"context"
	"testing"

	"starpro_store/internal/kv"
	"starpro_store/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHolder_Lifecycle(t *testing.T) {
	ctx := context.Background()
	h := NewSessionHolder(kv.NewMemory(), nil)

	sess, err := h.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	owner := model.Session{Username: "admin", Role: model.RoleOwner, Name: "Star Pro Owner"}
	require.NoError(t, h.Set(ctx, owner))

	sess, err = h.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, owner, *sess)

	// a second login replaces the first
	customer := model.Session{Username: "9999999999", Role: model.RoleCustomer, Name: "Asha", Phone: "9999999999"}
	require.NoError(t, h.Set(ctx, customer))
	sess, err = h.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, customer, *sess)

	require.NoError(t, h.Clear(ctx))
	sess, err = h.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionHolder_MalformedIsAbsent(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, KeySession, `{"username":`))

	sess, err := NewSessionHolder(mem, nil).Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionHolder_ReadsLegacyRecord(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, KeySession,
		`{"name":"Asha","phone":"9999999999","password":"pw","role":"Customer","username":"9999999999"}`))

	sess, err := NewSessionHolder(mem, nil).Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "9999999999", sess.Phone)
	assert.Equal(t, model.RoleCustomer, sess.Role)
}
