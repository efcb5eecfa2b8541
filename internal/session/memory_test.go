package session

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibuzordev/owlow/internal/config"
	"github.com/chibuzordev/owlow/internal/model"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	filters := model.DefaultFilter()
	city := "Kraków"
	filters.City = &city

	require.NoError(t, store.SaveFilters(ctx, "sess-1", filters))

	got, err := store.GetFilters(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.City)
	assert.Equal(t, "Kraków", *got.City)
}

func TestMemoryStore_AbsentSession(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.GetFilters(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := New(&config.RedisConfig{URL: ""}, log)
	_, ok := store.(*MemoryStore)
	assert.True(t, ok)
}
