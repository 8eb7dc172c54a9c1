package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"tools": map[string]any{
			"invocationRate": 2,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "TOOLS_INVOCATIONRATE", want: "tools.invocationRate"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsOptionalSections(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, defaultPageSize, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, defaultMaxPageSize, cfg.Catalog.MaxPageSize)
	assert.Equal(t, defaultCategoryTTL, cfg.Cache.CategoryTTL)
	assert.Equal(t, float64(defaultInvocationRate), cfg.Tools.InvocationRate)
	assert.Equal(t, defaultInvocationBurst, cfg.Tools.InvocationBurst)
	assert.Equal(t, defaultQRCodeSize, cfg.Tools.QRCode.Size)
	assert.Equal(t, "M", cfg.Tools.QRCode.ErrorCorrectionLevel)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Tools.BcryptCost)
	assert.NotNil(t, cfg.PubSub)
}

func TestApplyDefaults_ClampsDefaultPageSize(t *testing.T) {
	cfg := &Config{Catalog: &CatalogConfig{DefaultPageSize: 500, MaxPageSize: 50}}

	applyDefaults(cfg)

	assert.Equal(t, 50, cfg.Catalog.DefaultPageSize)
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	content := []byte("tools:\n  invocationRate: 1\n  bindings:\n    - serviceId: 7d3c1f0e-3a2b-4c5d-8e9f-0a1b2c3d4e5f\n      kind: qr-code\ncatalog:\n  maxPageSize: 10\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), content, 0o600))
	t.Chdir(dir)
	t.Setenv("TOOLS_INVOCATIONRATE", "3.5")

	cfg, err := LoadWithEnv[Config]("catalog")

	require.NoError(t, err)
	require.NotNil(t, cfg.Tools)
	assert.Equal(t, 3.5, cfg.Tools.InvocationRate)
	require.Len(t, cfg.Tools.Bindings, 1)
	assert.Equal(t, "qr-code", cfg.Tools.Bindings[0].Kind)
	assert.Equal(t, 10, cfg.Catalog.MaxPageSize)
}
