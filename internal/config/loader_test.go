package config_test

import (
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/okian/kayfabe/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DefaultMode, convey.ShouldEqual, "advanced")
				convey.So(cfg.MatchQueueSize, convey.ShouldEqual, 10_000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000)
				convey.So(cfg.HometownBonus, convey.ShouldEqual, 1.05)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("KAYFABE_DEFAULT_MODE", "simple")
			_ = os.Setenv("KAYFABE_QUEUE_SIZE", "5000")
			_ = os.Setenv("KAYFABE_WORKER_COUNT", "16")
			_ = os.Setenv("KAYFABE_MAX_INJURY_CHANCE", "80")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DefaultMode, convey.ShouldEqual, "simple")
				convey.So(cfg.MatchQueueSize, convey.ShouldEqual, 5000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.MaxInjuryChance, convey.ShouldEqual, 80)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
log_level: debug
default_mode: simple
queue_size: 2000
worker_count: 8
hometown_bonus: 1.1
near_fall_chance: 0.25
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("KAYFABE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DefaultMode, convey.ShouldEqual, "simple")
				convey.So(cfg.MatchQueueSize, convey.ShouldEqual, 2000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
				convey.So(cfg.HometownBonus, convey.ShouldEqual, 1.1)
				convey.So(cfg.NearFallChance, convey.ShouldEqual, 0.25)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
default_mode: simple
queue_size: 2000
worker_count: 8
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("KAYFABE_CONFIG", tmpFile)
			_ = os.Setenv("KAYFABE_WORKER_COUNT", "32")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DefaultMode, convey.ShouldEqual, "simple") // From file
				convey.So(cfg.MatchQueueSize, convey.ShouldEqual, 2000) // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32)      // Overridden by env
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			yamlContent := `
worker_count: 4
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("KAYFABE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)            // From file
				convey.So(cfg.MatchQueueSize, convey.ShouldEqual, 10_000)    // From defaults
				convey.So(cfg.FinishWeights["pinfall"], convey.ShouldEqual, 60) // From defaults
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("KAYFABE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("KAYFABE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown mode", func() {
			_ = os.Setenv("KAYFABE_DEFAULT_MODE", "cinematic")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "default_mode")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with inverted momentum bounds", func() {
			_ = os.Setenv("KAYFABE_MIN_MOMENTUM_SHIFTS", "6")
			_ = os.Setenv("KAYFABE_MAX_MOMENTUM_SHIFTS", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an out-of-range injury ceiling", func() {
			_ = os.Setenv("KAYFABE_MAX_INJURY_CHANCE", "150")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("KAYFABE_QUEUE_SIZE", "invalid")
			_ = os.Setenv("KAYFABE_WORKER_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigLoaderFinishWeights(t *testing.T) {
	convey.Convey("Given finish weight overrides in a YAML file", t, func() {
		ctx := context.Background()

		yamlContent := `
finish_weights:
  pinfall: 50
  submission: 30
  knockout: 10
  countout: 5
  disqualification: 5
`
		tmpFile := createTempConfigFile(yamlContent)
		defer func() { _ = os.Remove(tmpFile) }()

		_ = os.Setenv("KAYFABE_CONFIG", tmpFile)
		defer clearConfigEnvVars()

		cfg, err := config.Load(ctx)

		convey.Convey("Then the advanced table should be replaced", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.FinishWeights["pinfall"], convey.ShouldEqual, 50)
			convey.So(cfg.FinishWeights["submission"], convey.ShouldEqual, 30)
		})

		convey.Convey("Then the simple table should keep its defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.SimpleFinishWeights["pinfall"], convey.ShouldEqual, 65)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"KAYFABE_CONFIG",
		"KAYFABE_LOG_LEVEL",
		"KAYFABE_DEFAULT_MODE",
		"KAYFABE_QUEUE_SIZE",
		"KAYFABE_WORKER_COUNT",
		"KAYFABE_DEDUPE_SIZE",
		"KAYFABE_MAX_INJURY_CHANCE",
		"KAYFABE_MIN_MOMENTUM_SHIFTS",
		"KAYFABE_MAX_MOMENTUM_SHIFTS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "kayfabe-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
