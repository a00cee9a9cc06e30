package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/schema-studio/schema-studio/internal/modules/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(id string) *model.Session {
	return &model.Session{
		ID:                 id,
		ProjectDescription: "blog platform with users and posts",
		APIKey:             "k1",
		ModelName:          "gemini-2.0-flash",
	}
}

func TestMemorySessionRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepo()

	require.NoError(t, r.Create(ctx, newSession("session_a")))

	got, err := r.Get(ctx, "session_a")
	require.NoError(t, err)
	assert.Equal(t, "blog platform with users and posts", got.ProjectDescription)
	assert.False(t, got.CreatedAt.IsZero())

	got.DetailedDesign = &model.DetailedDesign{
		DesignOverview: "two tables",
		Tables: []model.TableInfo{
			{TableName: "users", SequenceOrder: 1},
			{TableName: "posts", SequenceOrder: 2, Dependencies: []string{"users"}},
		},
	}
	require.NoError(t, r.Update(ctx, got))

	got, err = r.Get(ctx, "session_a")
	require.NoError(t, err)
	require.NotNil(t, got.DetailedDesign)
	assert.Len(t, got.DetailedDesign.Tables, 2)

	existed, err := r.Delete(ctx, "session_a")
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = r.Get(ctx, "session_a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionRepo_GetMissing(t *testing.T) {
	r := NewMemorySessionRepo()
	_, err := r.Get(context.Background(), "session_missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionRepo_UpdateMissing(t *testing.T) {
	r := NewMemorySessionRepo()
	err := r.Update(context.Background(), newSession("session_missing"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionRepo_DeleteMissing(t *testing.T) {
	r := NewMemorySessionRepo()
	existed, err := r.Delete(context.Background(), "session_missing")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestMemorySessionRepo_List(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepo()

	ids, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, r.Create(ctx, newSession("session_b")))
	require.NoError(t, r.Create(ctx, newSession("session_a")))

	ids, err = r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"session_a", "session_b"}, ids)
}

func TestMemorySessionRepo_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepo()
	require.NoError(t, r.Create(ctx, newSession("session_a")))

	got, err := r.Get(ctx, "session_a")
	require.NoError(t, err)
	got.ProjectDescription = "mutated"

	again, err := r.Get(ctx, "session_a")
	require.NoError(t, err)
	assert.Equal(t, "blog platform with users and posts", again.ProjectDescription)
}

func TestMemorySessionRepo_GetDoesNotAliasMaps(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepo()

	s := newSession("session_a")
	s.Answers = map[string]string{"q1": "a"}
	s.TableSchemas = map[string]model.TableSchema{
		"users": {SQLSchema: "CREATE TABLE users ();", Relationships: []string{"posts.user_id"}},
	}
	s.GeneratedCode = map[string]model.GeneratedCode{
		"go_gorm": {Files: []model.CodeFile{{Filename: "models.go"}}},
	}
	require.NoError(t, r.Create(ctx, s))

	got, err := r.Get(ctx, "session_a")
	require.NoError(t, err)
	got.Answers["q2"] = "b"
	got.TableSchemas["posts"] = model.TableSchema{SQLSchema: "CREATE TABLE posts ();"}
	got.GeneratedCode["python_sqlalchemy"] = model.GeneratedCode{}

	again, err := r.Get(ctx, "session_a")
	require.NoError(t, err)
	assert.Len(t, again.Answers, 1)
	assert.Len(t, again.TableSchemas, 1)
	assert.Len(t, again.GeneratedCode, 1)
}

// Run with -race. A shallow copy would share map backing storage between the
// two fetched records and this would be a concurrent map read and write.
func TestMemorySessionRepo_ConcurrentReadWrite(t *testing.T) {
	ctx := context.Background()
	r := NewMemorySessionRepo()

	s := newSession("session_a")
	s.TableSchemas = map[string]model.TableSchema{
		"users": {SQLSchema: "CREATE TABLE users ();"},
	}
	require.NoError(t, r.Create(ctx, s))

	reader, err := r.Get(ctx, "session_a")
	require.NoError(t, err)
	writer, err := r.Get(ctx, "session_a")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			for name, ts := range reader.TableSchemas {
				_ = name
				_ = ts.SQLSchema
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			writer.TableSchemas[fmt.Sprintf("t%d", i)] = model.TableSchema{}
			require.NoError(t, r.Update(ctx, writer))
		}
	}()
	wg.Wait()
}
