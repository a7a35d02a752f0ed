package appconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalajat/archive/internal/client/kv"
	"github.com/kalajat/archive/internal/common"
	"github.com/kalajat/archive/internal/models"
)

func newStore(t *testing.T) kv.Store {
	t.Helper()
	s, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoad_DefaultsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	cfg, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAppConfig(), cfg)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	cfg := models.DefaultAppConfig()
	cfg.AppName = "سجل المقالب"
	cfg.SlipPrompt = "custom {name} {content}"
	require.NoError(t, Save(ctx, store, cfg))

	got, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestAdminPassword(t *testing.T) {
	cfg := models.DefaultAppConfig()

	// no hash yet: everything is rejected
	assert.ErrorIs(t, CheckAdminPassword(cfg, []byte("anything")), common.ErrorUnauthorized)

	require.NoError(t, SetAdminPassword(&cfg, []byte("s3cret")))
	assert.NoError(t, CheckAdminPassword(cfg, []byte("s3cret")))
	assert.ErrorIs(t, CheckAdminPassword(cfg, []byte("wrong")), common.ErrorUnauthorized)
}
