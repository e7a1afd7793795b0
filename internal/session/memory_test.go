package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatterloop/widget/internal/domain/models"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	captured := time.Now()

	err := store.Save(ctx, "bot-1", "visitor-1", models.UserDetails{Name: "A", Phone: "1", CapturedAt: captured})
	require.NoError(t, err)

	got, err := store.Load(ctx, "bot-1", "visitor-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "1", got.Phone)
	assert.WithinDuration(t, captured, got.CapturedAt, time.Second)
}

func TestMemoryStore_KeysAreNamespaced(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "bot-1", "v", models.UserDetails{Name: "A", CapturedAt: time.Now()}))

	got, err := store.Load(ctx, "bot-2", "v")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_ExpiryPurges(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	captured := time.Now()
	require.NoError(t, store.Save(ctx, "bot-1", "v", models.UserDetails{Name: "A", Phone: "1", CapturedAt: captured}))

	// Just past the 24h window.
	store.now = func() time.Time { return captured.Add(models.UserDetailsTTL + time.Millisecond) }

	got, err := store.Load(ctx, "bot-1", "v")
	require.NoError(t, err)
	assert.Nil(t, got)

	// The entry is gone even if the clock is rolled back.
	store.now = time.Now
	got, err = store.Load(ctx, "bot-1", "v")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_JustInsideWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	captured := time.Now()
	require.NoError(t, store.Save(ctx, "bot-1", "v", models.UserDetails{Name: "A", CapturedAt: captured}))

	store.now = func() time.Time { return captured.Add(models.UserDetailsTTL - time.Second) }

	got, err := store.Load(ctx, "bot-1", "v")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMemoryStore_CorruptEntryTreatedAsAbsent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.putRaw(Key("bot-1", "v"), []byte("{not json"))

	got, err := store.Load(ctx, "bot-1", "v")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "bot-1", "v", models.UserDetails{Name: "A", CapturedAt: time.Now()}))
	require.NoError(t, store.Clear(ctx, "bot-1", "v"))

	got, err := store.Load(ctx, "bot-1", "v")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_SweepExpired(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, "bot-1", "fresh", models.UserDetails{Name: "F", CapturedAt: now}))
	require.NoError(t, store.Save(ctx, "bot-1", "stale", models.UserDetails{Name: "S", CapturedAt: now.Add(-25 * time.Hour)}))
	store.putRaw(Key("bot-1", "corrupt"), []byte("???"))

	removed, err := store.SweepExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	got, err := store.Load(ctx, "bot-1", "fresh")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
