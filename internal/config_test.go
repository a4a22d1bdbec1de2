package internal_test

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfiguration(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sandwich-events.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), internal.PermissionWrite))

	return path
}

func generatePublicKey(t *testing.T) string {
	t.Helper()

	publicKey, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	return hex.EncodeToString(publicKey)
}

func TestConfigProviderFromPath(t *testing.T) {
	t.Parallel()

	publicKey := generatePublicKey(t)

	path := writeConfiguration(t, `
token: abc
public_key: `+publicKey+`
consumer:
  type: JetStream
  configuration:
    address: 127.0.0.1:4222
    channel: sandwich
http:
  enabled: true
  host: 127.0.0.1:8080
  response_timeout: 1s
event_blacklist:
  - TYPING_START
dedupe_ttl: 1m
concurrency: 4
`)

	configuration, err := internal.NewConfigProviderFromPath(path).GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bot abc", configuration.Token)
	assert.Equal(t, publicKey, configuration.PublicKey)
	assert.Equal(t, "JetStream", configuration.Consumer.Type)
	assert.Equal(t, "sandwich-events", configuration.Consumer.ClientName)
	assert.Equal(t, "sandwich", configuration.Consumer.Configuration["channel"])
	assert.Equal(t, internal.StateTypeMemory, configuration.State.Type)
	assert.Equal(t, []string{"TYPING_START"}, configuration.EventBlacklist)
	assert.Equal(t, time.Minute, configuration.DedupeTTL)
	assert.Equal(t, time.Second, configuration.HTTP.ResponseTimeout)
	assert.Equal(t, 4, configuration.Concurrency)

	key, err := configuration.DecodePublicKey()
	require.NoError(t, err)
	assert.Len(t, key, ed25519.PublicKeySize)
}

func TestConfigProviderFromPathErrors(t *testing.T) {
	t.Parallel()

	_, err := internal.NewConfigProviderFromPath(filepath.Join(t.TempDir(), "missing.yaml")).GetConfig(context.Background())
	assert.ErrorIs(t, err, internal.ErrReadConfigurationFailure)

	_, err = internal.NewConfigProviderFromPath(writeConfiguration(t, "token: [")).GetConfig(context.Background())
	assert.ErrorIs(t, err, internal.ErrLoadConfigurationFailure)

	_, err = internal.NewConfigProviderFromPath(writeConfiguration(t, "debug: true")).GetConfig(context.Background())
	assert.ErrorIs(t, err, internal.ErrConfigurationValidateToken)
}

func TestConfigProviderFromPathEnvironment(t *testing.T) {
	t.Setenv(internal.EnvToken, "Bot from-env")
	t.Setenv(internal.EnvRedisPassword, "hunter2")

	path := writeConfiguration(t, `
token: from-file
state:
  type: redis
  address: 127.0.0.1:6379
  password: from-file
`)

	configuration, err := internal.NewConfigProviderFromPath(path).GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bot from-env", configuration.Token)
	assert.Equal(t, "hunter2", configuration.State.Password)
	assert.Equal(t, internal.StateTypeRedis, configuration.State.Type)
}

func TestSaveConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sandwich-events.yaml")
	provider := internal.NewConfigProviderFromPath(path)

	configuration := &internal.Configuration{Token: "Bot abc", Concurrency: 8}
	require.NoError(t, provider.SaveConfig(context.Background(), configuration))

	loaded, err := provider.GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bot abc", loaded.Token)
	assert.Equal(t, 8, loaded.Concurrency)
}

func TestConfigurationValidate(t *testing.T) {
	t.Parallel()

	publicKey := generatePublicKey(t)

	tests := []struct {
		name      string
		configure func(c *internal.Configuration)
		err       error
	}{
		{
			name:      "missing token",
			configure: func(c *internal.Configuration) { c.Token = "" },
			err:       internal.ErrConfigurationValidateToken,
		},
		{
			name: "http without host",
			configure: func(c *internal.Configuration) {
				c.HTTP.Enabled = true
				c.PublicKey = publicKey
			},
			err: internal.ErrConfigurationValidateHTTP,
		},
		{
			name: "http with invalid public key",
			configure: func(c *internal.Configuration) {
				c.HTTP.Enabled = true
				c.HTTP.Host = "127.0.0.1:8080"
				c.PublicKey = "not-hex"
			},
			err: internal.ErrConfigurationValidatePublicKey,
		},
		{
			name: "http with short public key",
			configure: func(c *internal.Configuration) {
				c.HTTP.Enabled = true
				c.HTTP.Host = "127.0.0.1:8080"
				c.PublicKey = publicKey[:10]
			},
			err: internal.ErrConfigurationValidatePublicKey,
		},
		{
			name:      "unknown consumer",
			configure: func(c *internal.Configuration) { c.Consumer.Type = "rabbitmq" },
			err:       internal.ErrConfigurationValidateConsumer,
		},
		{
			name:      "unknown state",
			configure: func(c *internal.Configuration) { c.State.Type = "sqlite" },
			err:       internal.ErrConfigurationValidateState,
		},
		{
			name: "valid",
			configure: func(c *internal.Configuration) {
				c.HTTP.Enabled = true
				c.HTTP.Host = "127.0.0.1:8080"
				c.PublicKey = publicKey
				c.Consumer.Type = "kafka"
				c.Consumer.ClientName = "stickers"
			},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configuration := &internal.Configuration{Token: "Bot abc"}
			tt.configure(configuration)

			err := configuration.Validate()
			if tt.err == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.err)
		})
	}
}
