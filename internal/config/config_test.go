package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

var allEnv = []string{
	EnvLogLevel, EnvURL, EnvUserAgent,
	EnvDBHost, EnvDBPort, EnvDBName, EnvDBUser, EnvDBPassword, EnvDBSSLMode,
}

// clearEnv unsets every variable Load reads and restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnv {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("CI", "")
	t.Setenv("CODESPACES", "")
	keyring.MockInit()
}

func newCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	RegisterFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args), "parse flags")
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(newCmd(t, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, err)

	assert.Equal(t, DefaultURL, cfg.URL)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, Database{Host: "localhost", Port: 5432, Name: "fef_activities", User: "postgres", SSLMode: "disable"}, cfg.Database)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDBHost, "db.internal")
	t.Setenv(EnvDBPort, "6543")
	t.Setenv(EnvDBName, "activities")
	t.Setenv(EnvDBUser, "scraper")
	t.Setenv(EnvDBPassword, "s3cret")
	t.Setenv(EnvURL, "https://example.com/list")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, Database{Host: "db.internal", Port: 6543, Name: "activities", User: "scraper", Password: "s3cret", SSLMode: "disable"}, cfg.Database)
	assert.Equal(t, "https://example.com/list", cfg.URL)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "DB_HOST=filehost\nDB_NAME=fromfile\nDB_PASSWORD=filepass\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	// Real environment wins over the file
	t.Setenv(EnvDBName, "fromenv")

	cfg, err := Load(newCmd(t, "--env-file", path))
	require.NoError(t, err)

	assert.Equal(t, "filehost", cfg.Database.Host)
	assert.Equal(t, "fromenv", cfg.Database.Name)
	assert.Equal(t, "filepass", cfg.Database.Password)
}

func TestLoadFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvUserAgent, "env-agent")

	cfg, err := Load(newCmd(t,
		"--env-file", filepath.Join(t.TempDir(), "none.env"),
		"--user-agent", "flag-agent",
		"--timeout", "5s",
		"--url", "http://localhost:8080/page",
		"-H", "cookie: a=b",
		"-v",
	))
	require.NoError(t, err)

	assert.Equal(t, "flag-agent", cfg.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "http://localhost:8080/page", cfg.URL)
	assert.Equal(t, "a=b", cfg.Headers["Cookie"])
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadKeyringPassword(t *testing.T) {
	clearEnv(t)
	require.NoError(t, StorePassword("postgres", "from-keyring"))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", cfg.Database.Password)

	// An explicit password is never replaced
	t.Setenv(EnvDBPassword, "explicit")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.Database.Password)

	require.NoError(t, DeletePassword("postgres"))
	require.NoError(t, DeletePassword("postgres"), "deleting a missing password")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{name: "bad port", env: map[string]string{EnvDBPort: "abc"}, want: "DB_PORT"},
		{name: "port out of range", env: map[string]string{EnvDBPort: "70000"}, want: "port"},
		{name: "bad sslmode", env: map[string]string{EnvDBSSLMode: "sometimes"}, want: "sslmode"},
		{name: "bad url", env: map[string]string{EnvURL: "ftp://example.com"}, want: "scheme"},
		{name: "bad timeout", args: []string{"--timeout", "soon"}, want: "timeout"},
		{name: "zero timeout", args: []string{"--timeout", "0s"}, want: "timeout"},
		{name: "bad header", args: []string{"-H", "nocolon"}, want: "malformed header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			args := append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, tt.args...)
			_, err := Load(newCmd(t, args...))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := Database{Host: "localhost", Port: 5432, Name: "fef_activities", User: "postgres", Password: "p@ss word", SSLMode: "disable"}
	dsn := d.DSN()
	assert.Regexp(t, `^postgres://postgres:.+@localhost:5432/fef_activities\?sslmode=disable$`, dsn)
	assert.NotContains(t, dsn, "p@ss word", "password must be escaped")

	red := d.Redacted()
	assert.NotContains(t, red, "p%40ss")
	assert.Contains(t, red, "xxxxx")

	d.Password = ""
	assert.Equal(t, "postgres://postgres@localhost:5432/fef_activities?sslmode=disable", d.DSN())
}
