package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(writeConfig(t, "server: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.False(t, cfg.AnalysisEnabled())
	assert.False(t, cfg.HistoryEnabled())
	assert.False(t, cfg.UploadsEnabled())
}

func TestLoadEnvKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg, err := Load(writeConfig(t, "ai:\n  provider: gemini\n"))
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.AI.APIKey)
	assert.True(t, cfg.AnalysisEnabled())

	t.Setenv("OPENAI_API_KEY", "o-key")
	cfg, err = Load(writeConfig(t, "ai:\n  provider: openai\n"))
	require.NoError(t, err)
	assert.Equal(t, "o-key", cfg.AI.APIKey)
}

func TestLoadFull(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9090
ai:
  provider: openai
  apiKey: sk-test
  model: gpt-4o-2024-08-06
database:
  driver: postgres
  host: db.local
  port: 5432
  user: critic
  password: secret
  name: songs
  sslMode: require
minio:
  endpoint: minio.local:9000
  accessKey: ak
  secretKey: sk
  bucketName: exports
  region: us-east-1
auth:
  users:
    - id: user-1
      name: Alice
      key: key-1
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.AnalysisEnabled())
	assert.True(t, cfg.HistoryEnabled())
	assert.True(t, cfg.UploadsEnabled())
	require.Len(t, cfg.Auth.Users, 1)
	assert.Equal(t, "Alice", cfg.Auth.Users[0].Name)

	assert.Equal(t,
		"host=db.local port=5432 user=critic password=secret dbname=songs sslmode=require",
		cfg.PostgresDSN())
}

func TestMySQLDSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
database:
  driver: mysql
  host: localhost
  port: 3306
  user: root
  password: pw
  name: songs
`))
	require.NoError(t, err)
	assert.Equal(t,
		"root:pw@tcp(localhost:3306)/songs?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
