package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "orders", cfg.Stan.Subject)
	assert.Equal(t, "orders.status", cfg.Stan.EventSubject)
	assert.Equal(t, "Akura Institute", cfg.Receipts.Brand)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("addr: \":9090\"\nstan:\n  subject: shop-orders\nreceipts:\n  brand: Test Institute\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "shop-orders", cfg.Stan.Subject)
	assert.Equal(t, "Test Institute", cfg.Receipts.Brand)
	// untouched fields keep their defaults
	assert.Equal(t, "akura-cluster", cfg.Stan.ClusterID)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [broken"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":7070")
	t.Setenv("STAN_SUBJECT", "env-orders")
	t.Setenv("RECEIPT_DIR", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "env-orders", cfg.Stan.Subject)
	// empty env value falls back to the default, not to empty
	assert.Equal(t, "receipts", cfg.Receipts.Dir)
}
