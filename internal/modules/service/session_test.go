package service

import (
	"context"
	"testing"

	"github.com/schema-studio/schema-studio/internal/modules/model"
	"github.com/schema-studio/schema-studio/internal/modules/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_List(t *testing.T) {
	ctx := context.Background()
	r := repo.NewMemorySessionRepo()
	svc := NewSessionService(r)

	out, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count)
	assert.Empty(t, out.Sessions)

	require.NoError(t, r.Create(ctx, &model.Session{ID: "session_a"}))
	require.NoError(t, r.Create(ctx, &model.Session{ID: "session_b"}))

	out, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, []string{"session_a", "session_b"}, out.Sessions)
}

func TestSessionService_GetByID(t *testing.T) {
	ctx := context.Background()
	r := repo.NewMemorySessionRepo()
	svc := NewSessionService(r)

	_, err := svc.GetByID(ctx, "session_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, r.Create(ctx, &model.Session{ID: "session_a", APIKey: "k1"}))
	got, err := svc.GetByID(ctx, "session_a")
	require.NoError(t, err)
	assert.Equal(t, "session_a", got.ID)
}

func TestSessionService_Delete(t *testing.T) {
	ctx := context.Background()
	r := repo.NewMemorySessionRepo()
	svc := NewSessionService(r)

	assert.ErrorIs(t, svc.Delete(ctx, "session_missing"), ErrSessionNotFound)

	require.NoError(t, r.Create(ctx, &model.Session{ID: "session_a"}))
	require.NoError(t, svc.Delete(ctx, "session_a"))
	assert.ErrorIs(t, svc.Delete(ctx, "session_a"), ErrSessionNotFound)
}
