package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "16KB"
)

// Persistence drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Persistence selects the store backing drops and user locations
	Persistence *PersistenceConfig `json:"persistence" yaml:"persistence"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	// TestRoutes configuration for testing endpoints
	TestRoutes *TestRoutesConfig `json:"testRoutes" yaml:"testRoutes"`

	// Drops configures generation, placement and expiry of drops
	Drops *DropsConfig `json:"drops" yaml:"drops"`

	// Proximity configures the nearby-drops query
	Proximity *ProximityConfig `json:"proximity" yaml:"proximity"`

	// Scheduler configures the lifecycle tick
	Scheduler *SchedulerConfig `json:"scheduler" yaml:"scheduler"`

	// PubSub configuration for tick triggers and drop batch events
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// MQTT configuration for location ingest
	MQTT *MQTTConfig `json:"mqtt" yaml:"mqtt"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PersistenceConfig selects and configures the store driver
type PersistenceConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver string `json:"driver" yaml:"driver"`

	// SQLitePath is the database file for the sqlite driver (":memory:" allowed)
	SQLitePath string `json:"sqlitePath" yaml:"sqlitePath"`
}

// TestRoutesConfig defines configuration for testing endpoints
type TestRoutesConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// DropsConfig groups the drop lifecycle settings
type DropsConfig struct {
	// Generation overrides the environment preset when set
	Generation *GenerationConfig `json:"generation" yaml:"generation"`

	Placement PlacementConfig `json:"placement" yaml:"placement"`

	Expiration ExpirationConfig `json:"expiration" yaml:"expiration"`

	// RewardWeights maps drop type to its relative draw weight
	RewardWeights map[string]float64 `json:"rewardWeights" yaml:"rewardWeights"`
}

// GenerationConfig is the per-tick generation contract handed to the scheduler
type GenerationConfig struct {
	MinQuota              int           `json:"minQuota" yaml:"minQuota"`
	MaxQuota              int           `json:"maxQuota" yaml:"maxQuota"`
	DiscoveryRadiusMeters float64       `json:"discoveryRadiusMeters" yaml:"discoveryRadiusMeters"`
	TTL                   time.Duration `json:"ttl" yaml:"ttl"`
}

// PlacementConfig tunes the minimum-separation resampling
type PlacementConfig struct {
	// Minimum distance in meters between two drops of a batch or a batch drop and a live drop
	MinSeparationMeters float64 `json:"minSeparationMeters" yaml:"minSeparationMeters"`

	// Resample attempts per drop before the best candidate is kept
	MaxAttempts int `json:"maxAttempts" yaml:"maxAttempts"`
}

// ExpirationConfig defines the retention policy of expired drops
type ExpirationConfig struct {
	// RetainClaimed keeps expired claimed drops (deactivated) for audit instead of deleting them
	RetainClaimed bool `json:"retainClaimed" yaml:"retainClaimed"`
}

// ProximityConfig defines tier radius caps for nearby queries
type ProximityConfig struct {
	DefaultRadiusMeters     float64 `json:"defaultRadiusMeters" yaml:"defaultRadiusMeters"`
	FreeMaxRadiusMeters     float64 `json:"freeMaxRadiusMeters" yaml:"freeMaxRadiusMeters"`
	ElevatedMaxRadiusMeters float64 `json:"elevatedMaxRadiusMeters" yaml:"elevatedMaxRadiusMeters"`

	// CircularFilter drops bounding box corner hits beyond the true great-circle radius
	CircularFilter bool `json:"circularFilter" yaml:"circularFilter"`

	// MaxResults truncates the nearest-first result list (0 = unlimited)
	MaxResults int `json:"maxResults" yaml:"maxResults"`
}

// SchedulerConfig defines the lifecycle tick execution
type SchedulerConfig struct {
	// Number of concurrent per-user generation workers
	Workers int `json:"workers" yaml:"workers"`

	// Overall deadline of the generation phase of a tick
	TickTimeout time.Duration `json:"tickTimeout" yaml:"tickTimeout"`

	// Deadline of the sweep phase, which runs even after the tick deadline
	SweepTimeout time.Duration `json:"sweepTimeout" yaml:"sweepTimeout"`

	// Users whose location is older than this are not seeded
	FreshnessWindow time.Duration `json:"freshnessWindow" yaml:"freshnessWindow"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint of the worker push handler (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// MQTTConfig defines the location ingest subscription
type MQTTConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	Broker      string `json:"broker" yaml:"broker"`
	ClientID    string `json:"clientId" yaml:"clientId"`
	TopicPrefix string `json:"topicPrefix" yaml:"topicPrefix"`
	QoS         byte   `json:"qos" yaml:"qos"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Example: DROPS_GENERATION_TTL -> drops.generation.ttl, POSTGRES_SSLMODE -> postgres.sslMode
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Persistence.Driver {
	case DriverPostgres:
		if c.Postgres == nil {
			return errors.New("postgres driver selected but postgres section is missing")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Persistence.SQLitePath) == "" {
			return errors.New("sqlite driver selected but sqlitePath is empty")
		}
	default:
		return errors.Errorf("unknown persistence driver: %s", c.Persistence.Driver)
	}

	gen := c.Drops.Generation
	if gen.MinQuota < 0 || gen.MaxQuota < gen.MinQuota {
		return errors.Errorf("invalid generation quota range [%d, %d]", gen.MinQuota, gen.MaxQuota)
	}
	if gen.TTL <= 0 {
		return errors.Errorf("generation ttl must be positive, got %s", gen.TTL)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
