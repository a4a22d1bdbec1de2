package internal

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/messaging"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const (
	PermissionWrite = 0o600

	// Environment variables that override secrets in the configuration file.
	EnvToken         = "SANDWICH_EVENTS_TOKEN"
	EnvPublicKey     = "SANDWICH_EVENTS_PUBLIC_KEY"
	EnvRedisPassword = "SANDWICH_EVENTS_REDIS_PASSWORD"

	StateTypeMemory = "memory"
	StateTypeRedis  = "redis"
)

// Configuration represents the configuration file.
type Configuration struct {
	// Token of the bot. Tokens without a "Bot " prefix have one added.
	Token string `json:"token" yaml:"token"`

	// PublicKey of the application as shown in the developer portal, hex encoded.
	PublicKey string `json:"public_key" yaml:"public_key"`

	Consumer struct {
		Configuration map[string]interface{} `json:"configuration" yaml:"configuration"`
		Type          string                 `json:"type" yaml:"type"`
		ClientName    string                 `json:"client_name" yaml:"client_name"`
	} `json:"consumer" yaml:"consumer"`

	State struct {
		Type     string `json:"type" yaml:"type"`
		Address  string `json:"address" yaml:"address"`
		Password string `json:"password" yaml:"password"`
		Prefix   string `json:"prefix" yaml:"prefix"`
		DB       int    `json:"db" yaml:"db"`
	} `json:"state" yaml:"state"`

	HTTP struct {
		Host string `json:"host" yaml:"host"`

		// ResponseTimeout is how long handlers have to respond before an
		// interaction is deferred. Defaults to 2.5 seconds.
		ResponseTimeout time.Duration `json:"response_timeout" yaml:"response_timeout"`

		Enabled bool `json:"enabled" yaml:"enabled"`
	} `json:"http" yaml:"http"`

	// Events that the dispatcher should not handle.
	EventBlacklist []string `json:"event_blacklist" yaml:"event_blacklist"`

	DedupeTTL   time.Duration `json:"dedupe_ttl" yaml:"dedupe_ttl"`
	Concurrency int           `json:"concurrency" yaml:"concurrency"`

	Debug bool `json:"debug" yaml:"debug"`
}

// ConfigProvider loads and saves the configuration.
type ConfigProvider interface {
	GetConfig(ctx context.Context) (*Configuration, error)
	SaveConfig(ctx context.Context, config *Configuration) error
}

// ConfigProviderFromPath reads and writes the configuration as a yaml file.
type ConfigProviderFromPath struct {
	path string
}

func NewConfigProviderFromPath(path string) ConfigProviderFromPath {
	return ConfigProviderFromPath{path}
}

func (c ConfigProviderFromPath) GetConfig(_ context.Context) (*Configuration, error) {
	file, err := os.ReadFile(c.path)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", err.Error(), ErrReadConfigurationFailure)
	}

	var configuration Configuration

	if err = yaml.Unmarshal(file, &configuration); err != nil {
		return nil, xerrors.Errorf("%s: %w", err.Error(), ErrLoadConfigurationFailure)
	}

	configuration.ApplyEnvironment()

	if err = configuration.Validate(); err != nil {
		return nil, err
	}

	return &configuration, nil
}

func (c ConfigProviderFromPath) SaveConfig(_ context.Context, config *Configuration) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return xerrors.Errorf("failed to marshal configuration: %w", err)
	}

	if err = os.WriteFile(c.path, data, PermissionWrite); err != nil {
		return xerrors.Errorf("failed to write configuration to file: %w", err)
	}

	return nil
}

// ApplyEnvironment replaces secrets with the values of their environment variables, if set.
func (c *Configuration) ApplyEnvironment() {
	if value := os.Getenv(EnvToken); value != "" {
		c.Token = value
	}

	if value := os.Getenv(EnvPublicKey); value != "" {
		c.PublicKey = value
	}

	if value := os.Getenv(EnvRedisPassword); value != "" {
		c.State.Password = value
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Configuration) Validate() error {
	if c.Token == "" {
		return ErrConfigurationValidateToken
	}

	if !strings.HasPrefix(c.Token, "Bot ") {
		c.Token = "Bot " + c.Token
	}

	if c.HTTP.Enabled {
		if c.HTTP.Host == "" {
			return ErrConfigurationValidateHTTP
		}

		if _, err := c.DecodePublicKey(); err != nil {
			return err
		}
	}

	if c.Consumer.Type != "" {
		if _, err := messaging.NewConsumer(c.Consumer.Type); err != nil {
			return xerrors.Errorf("%s: %w", c.Consumer.Type, ErrConfigurationValidateConsumer)
		}

		if c.Consumer.ClientName == "" {
			c.Consumer.ClientName = "sandwich-events"
		}
	}

	switch c.State.Type {
	case "":
		c.State.Type = StateTypeMemory
	case StateTypeMemory, StateTypeRedis:
	default:
		return xerrors.Errorf("%s: %w", c.State.Type, ErrConfigurationValidateState)
	}

	return nil
}

// DecodePublicKey returns the ed25519 key used to verify interaction requests.
func (c *Configuration) DecodePublicKey() (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(c.PublicKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return nil, ErrConfigurationValidatePublicKey
	}

	return ed25519.PublicKey(key), nil
}
