package allegro

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gollegro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("TEST_ALLEGRO_PASSWORD", "sekret")

	path := writeConfigFile(t, `
username: shop-account
password: ${TEST_ALLEGRO_PASSWORD}
apiKey: webapi-key
countryCode: 56
retryDelay: 10s
debug: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "shop-account", cfg.Username)
	assert.Equal(t, "sekret", cfg.Password)
	assert.Equal(t, "webapi-key", cfg.APIKey)
	assert.Equal(t, 56, cfg.CountryCode)
	assert.Equal(t, 10*time.Second, cfg.RetryDelay)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
username: shop-account
password: sekret
apiKey: webapi-key
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultCountryCode, cfg.CountryCode)
	assert.Equal(t, defaultRetryDelay, cfg.RetryDelay)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.Endpoint)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "missing username",
			contents: "password: sekret\napiKey: webapi-key\n",
			want:     "username is required",
		},
		{
			name:     "missing password",
			contents: "username: shop-account\napiKey: webapi-key\n",
			want:     "password is required",
		},
		{
			name:     "missing api key",
			contents: "username: shop-account\npassword: sekret\n",
			want:     "apiKey is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfigFile(t, tt.contents))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	_, err := LoadConfig(writeConfigFile(t, "username: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}
