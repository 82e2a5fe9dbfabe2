// SPDX-License-Identifier: MIT

// Package config loads the ppcperf configuration with viper.
//
// Sources, lowest to highest precedence: built-in defaults, the YAML file
// passed to Load, and PPC_-prefixed environment variables (PPC_PERF_MAX_TIME
// overrides perf.max_time).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PPC"

// Perf modes.
const (
	ModePipeline = "pipeline"
	ModeTaskRun  = "task_run"
	ModeBoth     = "both"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the decoded configuration.
type Config struct {
	Perf   Perf
	Comm   Comm
	Tasks  Tasks
	Log    Log
	Report Report
}

// Perf configures the measurement loops.
type Perf struct {
	NumRunning int
	MaxTime    float64
	Mode       string
}

// Comm configures the parallel world.
type Comm struct {
	Size int
}

// Tasks selects and sizes catalog entries.
type Tasks struct {
	Seed    int64
	Size    int
	Include []string
}

// Log configures the zap logger.
type Log struct {
	Level  string
	Format string
}

// Report configures the YAML report.
type Report struct {
	Path string
}

// New returns a viper instance with defaults and environment overrides but
// no config file.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the YAML file at path on top of New. An empty path uses
// defaults and environment only.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return Decode(v)
}

// Decode validates v and copies it into a Config.
func Decode(v *viper.Viper) (*Config, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}
	return &Config{
		Perf: Perf{
			NumRunning: v.GetInt("perf.num_running"),
			MaxTime:    v.GetFloat64("perf.max_time"),
			Mode:       v.GetString("perf.mode"),
		},
		Comm: Comm{Size: v.GetInt("comm.size")},
		Tasks: Tasks{
			Seed:    v.GetInt64("tasks.seed"),
			Size:    v.GetInt("tasks.size"),
			Include: v.GetStringSlice("tasks.include"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Report: Report{Path: v.GetString("report.path")},
	}, nil
}

// Pipeline reports whether PipelineRun is enabled.
func (p Perf) Pipeline() bool { return p.Mode == ModePipeline || p.Mode == ModeBoth }

// TaskRun reports whether TaskRun is enabled.
func (p Perf) TaskRun() bool { return p.Mode == ModeTaskRun || p.Mode == ModeBoth }
