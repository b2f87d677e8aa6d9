package config

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir keeps a developer's config.json or .env out of the test
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Backend.PageSize)
	assert.Equal(t, "tenant", cfg.Backend.TenantField)
	assert.Equal(t, "local", cfg.Storage.Mode)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "0 15 0 * * *", cfg.Jobs.SnapshotCron)
	assert.Equal(t, 15*time.Second, cfg.Backend.TimeoutDuration())
}

func TestLoad_EnvOverrides(t *testing.T) {
	inTempDir(t)
	t.Setenv("BACKEND_BASEURL", "https://cms.example.com")
	t.Setenv("BACKEND_API_TOKEN", "token-123")
	t.Setenv("JWT_SECRET", "jwt-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://cms.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "token-123", cfg.Backend.APIToken)
	assert.Equal(t, "jwt-secret", cfg.Auth.JWTSecret)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Backend: BackendConfig{BaseURL: "http://cms", PageSize: 1000},
			Storage: StorageConfig{Mode: "local"},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Backend.BaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Backend.PageSize = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Storage.Mode = "s3"
	assert.Error(t, cfg.Validate())
}

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecretOrEnv(_ context.Context, secretName, _ string) (string, error) {
	if v, ok := f[secretName]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "localhost"}}

	err := ApplySecrets(context.Background(), cfg, fakeSecrets{
		"BACKEND-API-TOKEN":    "vault-token",
		"JWT-SECRET":           "vault-jwt",
		"POSTGRES-PORTAL-HOST": "db.internal",
	})
	require.NoError(t, err)

	assert.Equal(t, "vault-token", cfg.Backend.APIToken)
	assert.Equal(t, "vault-jwt", cfg.Auth.JWTSecret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Empty(t, cfg.Auth.APIKey)
}

func TestApplySecrets_MissingBackendToken(t *testing.T) {
	err := ApplySecrets(context.Background(), &Config{}, fakeSecrets{})
	assert.Error(t, err)
}
