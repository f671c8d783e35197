package sessionkit

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tracknest/sessionkit/storage"
	"github.com/tracknest/sessionkit/storage/etcdstore"
	"github.com/tracknest/sessionkit/storage/memstore"
	"github.com/tracknest/sessionkit/storage/redistore"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config is the file-loadable tracker and storage configuration.
type Config struct {
	// SessionTimeout is the inactivity window after which a session expires.
	SessionTimeout Duration `yaml:"session_timeout"`

	// ClientTTL is the persistence horizon for the client identifier.
	ClientTTL Duration `yaml:"client_ttl"`

	// RandomnessLength is the identifier suffix length, floor 12.
	RandomnessLength int `yaml:"randomness_length"`

	// UseStubs enables tagged identifiers.
	UseStubs bool `yaml:"use_stubs"`

	// Storage selects and configures the storage backend.
	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig selects a storage backend.
type StorageConfig struct {
	// Backend is one of "memory", "cookie", "redis", "etcd". Empty means
	// the caller wires its own storage.Store.
	Backend string `yaml:"backend"`

	// Redis configures the redis backend.
	Redis RedisConfig `yaml:"redis"`

	// Etcd configures the etcd backend.
	Etcd EtcdConfig `yaml:"etcd"`
}

// NewStore constructs the configured storage backend. The cookie backend is
// request-scoped and cannot be built from configuration alone; build it per
// request with cookiestore.New instead.
func (c StorageConfig) NewStore() (storage.Store, error) {
	const op = "StorageConfig.NewStore"

	switch c.Backend {
	case "memory":
		return memstore.New(), nil
	case "redis":
		s, err := redistore.New(redistore.Options{URL: c.Redis.URL})
		if err != nil {
			return nil, &Error{Op: op, Kind: KindStorage, Err: err}
		}
		return s, nil
	case "etcd":
		s, err := etcdstore.New(etcdstore.Options{Endpoints: c.Etcd.Endpoints})
		if err != nil {
			return nil, &Error{Op: op, Kind: KindStorage, Err: err}
		}
		return s, nil
	}
	return nil, &Error{
		Op:   op,
		Kind: KindConfiguration,
		Err:  fmt.Errorf("%w: backend %q is not constructible from configuration", ErrInvalidConfig, c.Backend),
	}
}

// RedisConfig holds redis backend settings.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// EtcdConfig holds etcd backend settings.
type EtcdConfig struct {
	Endpoints []string `yaml:"endpoints"`
}

// DefaultConfig returns the configuration New applies when no options are
// given.
func DefaultConfig() Config {
	return Config{
		SessionTimeout:   Duration(DefaultSessionTimeout),
		ClientTTL:        Duration(DefaultClientTTL),
		RandomnessLength: DefaultRandomnessLength,
	}
}

// LoadConfig reads and validates a YAML configuration file. Omitted fields
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &Error{Op: "LoadConfig", Kind: KindConfiguration, Err: err}
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, &Error{Op: "LoadConfig", Kind: KindConfiguration, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.SessionTimeout <= 0 {
		return &Error{
			Op:   "Config.Validate",
			Kind: KindConfiguration,
			Err:  fmt.Errorf("%w: session_timeout must be positive", ErrInvalidConfig),
		}
	}
	if c.ClientTTL <= 0 {
		return &Error{
			Op:   "Config.Validate",
			Kind: KindConfiguration,
			Err:  fmt.Errorf("%w: client_ttl must be positive", ErrInvalidConfig),
		}
	}
	if c.RandomnessLength < 0 {
		return &Error{
			Op:   "Config.Validate",
			Kind: KindConfiguration,
			Err:  fmt.Errorf("%w: randomness_length must not be negative", ErrInvalidConfig),
		}
	}
	switch c.Storage.Backend {
	case "", "memory", "cookie", "redis", "etcd":
	default:
		return &Error{
			Op:   "Config.Validate",
			Kind: KindConfiguration,
			Err:  fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend),
		}
	}
	return nil
}

// Options bridges a Config to tracker options.
func (c Config) Options() []Option {
	return []Option{
		WithSessionTimeout(time.Duration(c.SessionTimeout)),
		WithClientTTL(time.Duration(c.ClientTTL)),
		WithRandomnessLength(c.RandomnessLength),
		WithStubs(c.UseStubs),
	}
}
