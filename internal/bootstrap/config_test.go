package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDefaults(t *testing.T) {
	cfg, err := Setup(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sgfkit", cfg.MongoDatabase)
	assert.Equal(t, 3600, cfg.CacheTTLSeconds)
	assert.False(t, cfg.IsLocalCors)
}

func TestSetupFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT=9000\nMONGO_DATABASE=games\nLOCAL_CORS=true\n"), 0o600))
	t.Setenv("MONGO_DATABASE", "override")

	cfg, err := Setup(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "override", cfg.MongoDatabase)
	assert.True(t, cfg.IsLocalCors)
}

func TestSetupRejectsNegativeTTL(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "-1")

	_, err := Setup("")
	assert.Error(t, err)
}
