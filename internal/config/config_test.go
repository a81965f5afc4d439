package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
session:
  secret: ` + testSecret + `
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testdb", cfg.Database.Name)
				assert.Equal(t, "testuser", cfg.Database.User)
				assert.Equal(t, testSecret, cfg.Session.Secret)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
session:
  secret: ` + testSecret + `
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.PoolSize)
				assert.Equal(t, "devlog_session", cfg.Session.Name)
				assert.Equal(t, 7*24*time.Hour, cfg.Session.MaxAge)
				assert.False(t, cfg.Session.Secure)
				assert.Equal(t, "DevLog", cfg.Blog.Title)
				assert.Equal(t, 6, cfg.Blog.PageSize)
				assert.Equal(t, 8, cfg.Auth.MinPasswordLength)
				assert.InDelta(t, 10.0, cfg.Auth.LoginRatePerMinute, 0.001)
				assert.Equal(t, 5, cfg.Auth.LoginBurst)
				assert.Equal(t, 30*24*time.Hour, cfg.Drafts.TTL)
				assert.Equal(t, time.Hour, cfg.Drafts.PurgeInterval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
  password: "${TEST_DB_PASSWORD}"
session:
  secret: "${TEST_SESSION_SECRET}"
`,
			envVars: map[string]string{
				"TEST_DB_PASSWORD":    "secret123",
				"TEST_SESSION_SECRET": testSecret,
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.Database.Password)
				assert.Equal(t, testSecret, cfg.Session.Secret)
			},
		},
		{
			name: "missing required database.host",
			yaml: `
database:
  name: testdb
  user: testuser
session:
  secret: ` + testSecret + `
`,
			wantErr: "database.host is required",
		},
		{
			name: "missing required database.name",
			yaml: `
database:
  host: localhost
  user: testuser
session:
  secret: ` + testSecret + `
`,
			wantErr: "database.name is required",
		},
		{
			name: "missing required database.user",
			yaml: `
database:
  host: localhost
  name: testdb
session:
  secret: ` + testSecret + `
`,
			wantErr: "database.user is required",
		},
		{
			name: "short session secret",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
session:
  secret: tooshort
`,
			wantErr: "session.secret must be at least 32 bytes",
		},
		{
			name: "negative page size",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
session:
  secret: ` + testSecret + `
blog:
  page_size: -6
`,
			wantErr: "blog.page_size must be positive (got -6)",
		},
		{
			name: "purge interval too small",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
session:
  secret: ` + testSecret + `
drafts:
  purge_interval: 5s
`,
			wantErr: "drafts.purge_interval must be at least 1m",
		},
		{
			name: "invalid trusted proxy",
			yaml: `
server:
  trusted_proxies: ["10.0.0.0/8", "proxy.local"]
database:
  host: localhost
  name: testdb
  user: testuser
session:
  secret: ` + testSecret + `
`,
			wantErr: `server.trusted_proxies: invalid CIDR "proxy.local"`,
		},
		{
			name: "invalid logging format",
			yaml: `
database:
  host: localhost
  name: testdb
  user: testuser
session:
  secret: ` + testSecret + `
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json (got "xml")`,
		},
		{
			name: "multiple errors reported together",
			yaml: `
database:
  host: localhost
`,
			wantErr: "database.name is required\ndatabase.user is required",
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 60s
  shutdown_timeout: 5s
  trusted_proxies: ["10.0.0.0/8"]
database:
  host: db.example.com
  port: 5433
  name: devlog_prod
  user: admin
  password: pass
  sslmode: require
  pool_size: 20
session:
  secret: ` + testSecret + `
  name: dl
  max_age: 24h
  secure: true
blog:
  title: My Dev Notes
  page_size: 12
auth:
  min_password_length: 12
  login_rate_per_minute: 3
  login_burst: 2
drafts:
  ttl: 168h
  purge_interval: 30m
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, []string{"10.0.0.0/8"}, cfg.Server.TrustedProxies)
				assert.Equal(t, "db.example.com", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, 20, cfg.Database.PoolSize)
				assert.Equal(t, "dl", cfg.Session.Name)
				assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
				assert.True(t, cfg.Session.Secure)
				assert.Equal(t, "My Dev Notes", cfg.Blog.Title)
				assert.Equal(t, 12, cfg.Blog.PageSize)
				assert.Equal(t, 12, cfg.Auth.MinPasswordLength)
				assert.InDelta(t, 3.0, cfg.Auth.LoginRatePerMinute, 0.001)
				assert.Equal(t, 2, cfg.Auth.LoginBurst)
				assert.Equal(t, 168*time.Hour, cfg.Drafts.TTL)
				assert.Equal(t, 30*time.Minute, cfg.Drafts.PurgeInterval)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "basic DSN",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				Name:     "testdb",
				User:     "testuser",
				Password: "testpass",
				SSLMode:  "disable",
			},
			want: "host=localhost port=5432 dbname=testdb user=testuser password=testpass sslmode=disable",
		},
		{
			name: "production DSN",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				Name:     "devlog",
				User:     "admin",
				Password: "s3cret",
				SSLMode:  "require",
			},
			want: "host=db.example.com port=5433 dbname=devlog user=admin password=s3cret sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
