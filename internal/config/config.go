package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/straye-as/crm-portal/internal/secrets"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
	Import    ImportConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

// BackendConfig describes the headless content backend holding the CRM records
type BackendConfig struct {
	// BaseURL is the backend origin, e.g. https://cms.example.com (without /api)
	BaseURL string
	// APIToken is sent as a bearer token on every request (from BACKEND-API-TOKEN secret)
	APIToken string
	// PageSize is the page size used by aggregation fan-out reads
	PageSize int
	// Timeout is the per-request timeout in seconds
	Timeout int
	// RequestsPerSecond caps outbound request rate (0 disables the limiter)
	RequestsPerSecond float64
	Burst             int
	// MaxRetries is the number of retries for transient failures (408, 429, 5xx, network)
	MaxRetries int
	// TenantField is the relation used to scope records to a tenant
	TenantField string
}

// DatabaseConfig is the local PostgreSQL database for stage history, audit logs and snapshots.
// CRM records never live here.
type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// AuthConfig holds token validation settings
type AuthConfig struct {
	// JWTSecret verifies HS256 tokens issued by the content backend
	JWTSecret string
	// APIKey authenticates system integrations via x-api-key
	APIKey string
	// TenantClaim is the JWT claim carrying the tenant slug
	TenantClaim string
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
	EnableMetrics  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	// FrameOptions sets the X-Frame-Options header (DENY, SAMEORIGIN, or empty to disable)
	FrameOptions       string
	ContentTypeNosniff bool
	ReferrerPolicy     string
	PermissionsPolicy  string
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	Enabled               bool
	RequestsPerMinute     int
	RequestsPerMinuteAuth int
	WhitelistIPs          []string
	WhitelistPaths        []string
}

// JobsConfig holds background job settings
type JobsConfig struct {
	SnapshotEnabled bool
	// SnapshotCron uses the six-field cron format (with seconds)
	SnapshotCron string
	// SnapshotTimeout is the job timeout in seconds
	SnapshotTimeout int
	// SnapshotTenants lists tenants to snapshot; empty means a single unscoped snapshot
	SnapshotTenants []string
	// AuditRetentionDays prunes older audit rows after each snapshot run (0 keeps everything)
	AuditRetentionDays int
}

// ImportConfig bounds lead imports
type ImportConfig struct {
	MaxRows int
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// TimeoutDuration returns the backend request timeout as duration
func (b *BackendConfig) TimeoutDuration() time.Duration {
	return time.Duration(b.Timeout) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// SnapshotTimeoutDuration returns the snapshot job timeout as duration
func (j *JobsConfig) SnapshotTimeoutDuration() time.Duration {
	return time.Duration(j.SnapshotTimeout) * time.Second
}

// Load loads configuration from file and environment variables.
// It does not fetch secrets from vault; use LoadWithSecrets for that.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Backend.APIToken == "" {
		cfg.Backend.APIToken = v.GetString("BACKEND_API_TOKEN")
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = v.GetString("JWT_SECRET")
	}
	if cfg.Auth.APIKey == "" {
		cfg.Auth.APIKey = v.GetString("ADMIN_API_KEY")
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that would otherwise fail late at request time
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.baseURL is required")
	}
	if c.Backend.PageSize <= 0 {
		return fmt.Errorf("backend.pageSize must be positive, got %d", c.Backend.PageSize)
	}
	if c.Backend.MaxRetries < 0 {
		return fmt.Errorf("backend.maxRetries must not be negative")
	}
	switch c.Storage.Mode {
	case "local", "cloud":
	default:
		return fmt.Errorf("storage.mode must be local or cloud, got %q", c.Storage.Mode)
	}
	return nil
}

// LoadWithSecrets loads configuration and resolves secrets from the configured source.
//
// Key Vault is used when USE_AZURE_KEY_VAULT=true and the environment is staging or production.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	if err := ApplySecrets(ctx, cfg, provider); err != nil {
		return nil, err
	}

	logger.Info("Secrets loaded from vault successfully",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)
	return cfg, nil
}

// SecretGetter resolves a secret by vault name with an environment override
type SecretGetter interface {
	GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error)
}

// ApplySecrets overlays secrets onto cfg. The backend token is mandatory, the rest optional.
func ApplySecrets(ctx context.Context, cfg *Config, provider SecretGetter) error {
	token, err := provider.GetSecretOrEnv(ctx, "BACKEND-API-TOKEN", "BACKEND_API_TOKEN")
	if err != nil || token == "" {
		return fmt.Errorf("failed to resolve backend API token: %w", err)
	}
	cfg.Backend.APIToken = token

	optional := []struct {
		secret, env string
		target      *string
	}{
		{"JWT-SECRET", "JWT_SECRET", &cfg.Auth.JWTSecret},
		{"ADMIN-API-KEY", "ADMIN_API_KEY", &cfg.Auth.APIKey},
		{"POSTGRES-PORTAL-HOST", "DATABASE_HOST", &cfg.Database.Host},
		{"POSTGRES-PORTAL-USER", "DATABASE_USER", &cfg.Database.User},
		{"POSTGRES-PORTAL-PASSWORD", "DATABASE_PASSWORD", &cfg.Database.Password},
		{"STORAGE-CONNECTION-STRING", "STORAGE_CLOUDCONNECTIONSTRING", &cfg.Storage.CloudConnectionString},
	}
	for _, o := range optional {
		if value, err := provider.GetSecretOrEnv(ctx, o.secret, o.env); err == nil && value != "" {
			*o.target = value
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "CRM Portal API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	v.SetDefault("backend.baseURL", "http://localhost:1337")
	v.SetDefault("backend.pageSize", 1000)
	v.SetDefault("backend.timeout", 15)
	v.SetDefault("backend.requestsPerSecond", 20)
	v.SetDefault("backend.burst", 40)
	v.SetDefault("backend.maxRetries", 2)
	v.SetDefault("backend.tenantField", "tenant")

	// The local database is optional; without it stage history, audit logs and snapshots are off
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "crm_portal")
	v.SetDefault("database.user", "crm_portal")
	v.SetDefault("database.password", "crm_portal")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 2)
	v.SetDefault("database.connMaxLifetime", 300)

	v.SetDefault("auth.tenantClaim", "tenant")

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.cloudContainer", "lead-imports")
	v.SetDefault("storage.maxUploadSizeMB", 20)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)
	v.SetDefault("server.enableMetrics", true)

	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID", "X-Tenant"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 240)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/ready", "/metrics"})

	v.SetDefault("jobs.snapshotEnabled", true)
	v.SetDefault("jobs.snapshotCron", "0 15 0 * * *") // 00:15 every day
	v.SetDefault("jobs.snapshotTimeout", 120)
	v.SetDefault("jobs.snapshotTenants", []string{})
	v.SetDefault("jobs.auditRetentionDays", 365)

	v.SetDefault("import.maxRows", 5000)
}
