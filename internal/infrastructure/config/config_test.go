package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// 包目录下没有config.yaml，只使用默认值
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file::memory:?cache=shared", cfg.Database.DSN)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.BookTTL)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, 0, cfg.GRPC.HealthPort)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  mode: release
database:
  driver: mysql
  host: db
  user: library
  password: secret
  dbname: books
  loc: Asia/Shanghai
redis:
  enabled: true
  host: cache
  book_ttl: 30s
grpc:
  health_port: 9001
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "library:secret@tcp(db:3306)/books?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", cfg.Database.MySQLDSN())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 30*time.Second, cfg.Redis.BookTTL)
	assert.Equal(t, 9001, cfg.GRPC.HealthPort)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("LIBRARY_SERVER_PORT", "9100")
	t.Setenv("LIBRARY_SEED_ENABLED", "false")
	t.Setenv("LIBRARY_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.False(t, cfg.Seed.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Mode: "debug"},
			Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		}
	}

	t.Run("合法配置", func(t *testing.T) {
		assert.NoError(t, validate(valid()))
	})

	t.Run("端口越界", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 70000
		assert.Error(t, validate(cfg))
	})

	t.Run("未知模式", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Mode = "prod"
		assert.Error(t, validate(cfg))
	})

	t.Run("未知驱动", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Driver = "postgres"
		assert.Error(t, validate(cfg))
	})

	t.Run("gRPC端口与HTTP端口冲突", func(t *testing.T) {
		cfg := valid()
		cfg.GRPC.HealthPort = 8080
		assert.Error(t, validate(cfg))
	})

	t.Run("未知日志级别", func(t *testing.T) {
		cfg := valid()
		cfg.Log.Level = "verbose"
		assert.Error(t, validate(cfg))
	})

	t.Run("开启追踪但没有端点", func(t *testing.T) {
		cfg := valid()
		cfg.Tracing.Enabled = true
		assert.Error(t, validate(cfg))
	})
}
