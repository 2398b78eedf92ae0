package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlenoir/octogym-cli/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	config := viper.New()
	config.Set("session.path", sessionPath)

	store, err := NewStore(config)
	require.NoError(t, err)
	return store, sessionPath
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	session := domain.Session{Token: "tok-123", Email: "octo@gym.se"}

	require.NoError(t, store.Save(context.Background(), session))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestLoadWithoutFileReturnsZeroSession(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Established())
}

func TestClearRemovesCredentialButKeepsTheme(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	require.NoError(t, store.SetTheme(context.Background(), "dark"))
	require.NoError(t, store.Save(context.Background(), domain.Session{Token: "tok", Email: "octo@gym.se"}))

	require.NoError(t, store.Clear(context.Background()))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Established())

	theme, err := store.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}

func TestSaveRejectsPartialSession(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	require.Error(t, store.Save(context.Background(), domain.Session{Token: "tok"}))
	require.Error(t, store.Save(context.Background(), domain.Session{Email: "octo@gym.se"}))
}

func TestHalfWrittenCredentialTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	config := viper.New()
	config.Set("session.path", sessionPath)

	require.NoError(t, os.WriteFile(sessionPath, []byte("version = 1\n\n[session]\ntoken = \"tok\"\n"), 0o600))

	store, err := NewStore(config)
	require.NoError(t, err)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.Established())
}

func TestSessionFileWrittenWithRestrictedMode(t *testing.T) {
	t.Parallel()

	store, sessionPath := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), domain.Session{Token: "tok", Email: "octo@gym.se"}))

	info, err := os.Stat(sessionPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestUnsupportedSchemaVersionRejected(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	config := viper.New()
	config.Set("session.path", sessionPath)

	require.NoError(t, os.WriteFile(sessionPath, []byte("version = 99\n"), 0o600))

	store, err := NewStore(config)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported session schema version")
}
