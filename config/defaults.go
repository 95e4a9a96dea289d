package config

import (
	"strings"
	"time"
)

// Generation presets
const (
	PresetProduction = "production"
	PresetDevelop    = "develop"
)

const (
	defaultMinSeparationMeters     = 25.0
	defaultPlacementMaxAttempts    = 20
	defaultProximityRadiusMeters   = 1000.0
	defaultFreeMaxRadiusMeters     = 10000.0
	defaultElevatedMaxRadiusMeters = 100000.0
	defaultSchedulerWorkers        = 8
	defaultTickTimeout             = 2 * time.Minute
	defaultSweepTimeout            = 30 * time.Second
	defaultFreshnessWindow         = 15 * time.Minute
	defaultSQLitePath              = "dropradar.db"
	defaultMQTTTopicPrefix         = "dropradar"
)

// ProductionPreset is the generation contract used in production.
func ProductionPreset() GenerationConfig {
	return GenerationConfig{
		MinQuota:              3,
		MaxQuota:              8,
		DiscoveryRadiusMeters: 300,
		TTL:                   7 * 24 * time.Hour,
	}
}

// DevelopPreset is a faster-cycling, denser contract for local testing.
func DevelopPreset() GenerationConfig {
	return GenerationConfig{
		MinQuota:              1,
		MaxQuota:              3,
		DiscoveryRadiusMeters: 150,
		TTL:                   time.Hour,
	}
}

// PresetFor returns the named preset; anything but "develop" maps to production.
func PresetFor(name string) GenerationConfig {
	if strings.EqualFold(strings.TrimSpace(name), PresetDevelop) {
		return DevelopPreset()
	}

	return ProductionPreset()
}

// ApplyDefaults fills missing sections and zero values.
func ApplyDefaults(cfg *Config) {
	if cfg.Persistence == nil {
		cfg.Persistence = &PersistenceConfig{}
	}
	if cfg.Persistence.Driver == "" {
		if cfg.Postgres != nil {
			cfg.Persistence.Driver = DriverPostgres
		} else {
			cfg.Persistence.Driver = DriverSQLite
		}
	}
	if cfg.Persistence.Driver == DriverSQLite && cfg.Persistence.SQLitePath == "" {
		cfg.Persistence.SQLitePath = defaultSQLitePath
	}

	if cfg.Drops == nil {
		cfg.Drops = &DropsConfig{}
	}
	cfg.Drops.Generation = mergeGeneration(cfg.Drops.Generation, PresetFor(cfg.Env.Env))
	if cfg.Drops.Placement.MinSeparationMeters <= 0 {
		cfg.Drops.Placement.MinSeparationMeters = defaultMinSeparationMeters
	}
	if cfg.Drops.Placement.MaxAttempts <= 0 {
		cfg.Drops.Placement.MaxAttempts = defaultPlacementMaxAttempts
	}

	if cfg.Proximity == nil {
		cfg.Proximity = &ProximityConfig{}
	}
	if cfg.Proximity.DefaultRadiusMeters <= 0 {
		cfg.Proximity.DefaultRadiusMeters = defaultProximityRadiusMeters
	}
	if cfg.Proximity.FreeMaxRadiusMeters <= 0 {
		cfg.Proximity.FreeMaxRadiusMeters = defaultFreeMaxRadiusMeters
	}
	if cfg.Proximity.ElevatedMaxRadiusMeters <= 0 {
		cfg.Proximity.ElevatedMaxRadiusMeters = defaultElevatedMaxRadiusMeters
	}

	if cfg.Scheduler == nil {
		cfg.Scheduler = &SchedulerConfig{}
	}
	if cfg.Scheduler.Workers <= 0 {
		cfg.Scheduler.Workers = defaultSchedulerWorkers
	}
	if cfg.Scheduler.TickTimeout <= 0 {
		cfg.Scheduler.TickTimeout = defaultTickTimeout
	}
	if cfg.Scheduler.SweepTimeout <= 0 {
		cfg.Scheduler.SweepTimeout = defaultSweepTimeout
	}
	if cfg.Scheduler.FreshnessWindow <= 0 {
		cfg.Scheduler.FreshnessWindow = defaultFreshnessWindow
	}

	if cfg.MQTT != nil && cfg.MQTT.TopicPrefix == "" {
		cfg.MQTT.TopicPrefix = defaultMQTTTopicPrefix
	}
}

// ResolveGeneration returns the generation contract for a tick, honouring a
// per-tick preset override.
func (c *Config) ResolveGeneration(preset string) GenerationConfig {
	if strings.TrimSpace(preset) != "" {
		return PresetFor(preset)
	}
	if c.Drops != nil && c.Drops.Generation != nil {
		return *c.Drops.Generation
	}

	return PresetFor(c.Env.Env)
}

func mergeGeneration(override *GenerationConfig, preset GenerationConfig) *GenerationConfig {
	if override == nil {
		return &preset
	}

	merged := *override
	if merged.MinQuota <= 0 && merged.MaxQuota <= 0 {
		merged.MinQuota = preset.MinQuota
		merged.MaxQuota = preset.MaxQuota
	}
	if merged.DiscoveryRadiusMeters <= 0 {
		merged.DiscoveryRadiusMeters = preset.DiscoveryRadiusMeters
	}
	if merged.TTL <= 0 {
		merged.TTL = preset.TTL
	}

	return &merged
}
