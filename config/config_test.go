package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetFor(t *testing.T) {
	assert.Equal(t, DevelopPreset(), PresetFor("develop"))
	assert.Equal(t, DevelopPreset(), PresetFor(" Develop "))
	assert.Equal(t, ProductionPreset(), PresetFor("production"))
	assert.Equal(t, ProductionPreset(), PresetFor(""))

	prod := ProductionPreset()
	assert.Equal(t, 3, prod.MinQuota)
	assert.Equal(t, 8, prod.MaxQuota)
	assert.InDelta(t, 300.0, prod.DiscoveryRadiusMeters, 0)
	assert.Equal(t, 7*24*time.Hour, prod.TTL)

	dev := DevelopPreset()
	assert.Equal(t, 1, dev.MinQuota)
	assert.Equal(t, 3, dev.MaxQuota)
	assert.InDelta(t, 150.0, dev.DiscoveryRadiusMeters, 0)
	assert.Equal(t, time.Hour, dev.TTL)
}

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Env.Env = PresetDevelop

	ApplyDefaults(cfg)

	assert.Equal(t, DriverSQLite, cfg.Persistence.Driver)
	assert.Equal(t, defaultSQLitePath, cfg.Persistence.SQLitePath)
	assert.Equal(t, DevelopPreset(), *cfg.Drops.Generation)
	assert.InDelta(t, 25.0, cfg.Drops.Placement.MinSeparationMeters, 0)
	assert.Equal(t, 20, cfg.Drops.Placement.MaxAttempts)
	assert.InDelta(t, 10000.0, cfg.Proximity.FreeMaxRadiusMeters, 0)
	assert.InDelta(t, 100000.0, cfg.Proximity.ElevatedMaxRadiusMeters, 0)
	assert.Equal(t, 8, cfg.Scheduler.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Scheduler.TickTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.FreshnessWindow)
	require.NoError(t, cfg.Validate())
}

func TestApplyDefaults_PartialGenerationOverride(t *testing.T) {
	cfg := &Config{
		Drops: &DropsConfig{
			Generation: &GenerationConfig{TTL: 2 * time.Hour},
		},
	}

	ApplyDefaults(cfg)

	gen := cfg.Drops.Generation
	assert.Equal(t, 2*time.Hour, gen.TTL)
	assert.Equal(t, 3, gen.MinQuota)
	assert.Equal(t, 8, gen.MaxQuota)
	assert.InDelta(t, 300.0, gen.DiscoveryRadiusMeters, 0)
}

func TestConfig_ResolveGeneration(t *testing.T) {
	cfg := &Config{}
	cfg.Env.Env = PresetProduction
	ApplyDefaults(cfg)

	assert.Equal(t, ProductionPreset(), cfg.ResolveGeneration(""))
	assert.Equal(t, DevelopPreset(), cfg.ResolveGeneration("develop"))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "postgres without section", mutate: func(c *Config) { c.Persistence.Driver = DriverPostgres }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Persistence.Driver = "mongo" }, wantErr: true},
		{name: "inverted quota", mutate: func(c *Config) { c.Drops.Generation.MinQuota, c.Drops.Generation.MaxQuota = 5, 2 }, wantErr: true},
		{name: "zero quota range", mutate: func(c *Config) { c.Drops.Generation.MinQuota, c.Drops.Generation.MaxQuota = 0, 0 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadWithEnv_OverlaysEnvironment(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
env:
  env: develop
  serviceName: dropradar
drops:
  generation:
    ttl: 1h
  placement:
    minSeparationMeters: 25
scheduler:
  tickTimeout: 2m
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), content, 0o600))
	t.Chdir(dir)
	t.Setenv("DROPS_GENERATION_TTL", "3h")
	t.Setenv("DROPS_PLACEMENT_MINSEPARATIONMETERS", "40")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "develop", cfg.Env.Env)
	assert.Equal(t, 3*time.Hour, cfg.Drops.Generation.TTL)
	assert.InDelta(t, 40.0, cfg.Drops.Placement.MinSeparationMeters, 0)
	assert.Equal(t, 2*time.Minute, cfg.Scheduler.TickTimeout)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	assert.Error(t, err)
}
