// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"

	"github.com/katalvlaran/ppc/perf"
)

// SetDefaults installs the default value of every key.
func SetDefaults(v *viper.Viper) {
	// perf
	v.SetDefault("perf.num_running", perf.DefaultNumRunning)
	v.SetDefault("perf.max_time", perf.DefaultMaxTime)
	v.SetDefault("perf.mode", ModeBoth)

	// comm
	v.SetDefault("comm.size", min(runtime.NumCPU(), 4))

	// tasks
	v.SetDefault("tasks.seed", 1)
	v.SetDefault("tasks.size", 128)
	v.SetDefault("tasks.include", []string{})

	// log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// report
	v.SetDefault("report.path", "")
}

// Validate checks every key of v.
func Validate(v *viper.Viper) error {
	if n := v.GetInt("perf.num_running"); n <= 0 {
		return fmt.Errorf("%w: perf.num_running %d (must be > 0)", ErrInvalid, n)
	}
	if t := v.GetFloat64("perf.max_time"); t < 0 {
		return fmt.Errorf("%w: perf.max_time %v (must be >= 0)", ErrInvalid, t)
	}
	switch m := v.GetString("perf.mode"); m {
	case ModePipeline, ModeTaskRun, ModeBoth:
	default:
		return fmt.Errorf("%w: perf.mode %q (pipeline/task_run/both)", ErrInvalid, m)
	}
	if s := v.GetInt("comm.size"); s <= 0 {
		return fmt.Errorf("%w: comm.size %d (must be > 0)", ErrInvalid, s)
	}
	if s := v.GetInt("tasks.size"); s <= 0 {
		return fmt.Errorf("%w: tasks.size %d (must be > 0)", ErrInvalid, s)
	}
	switch l := v.GetString("log.level"); l {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (debug/info/warn/error)", ErrInvalid, l)
	}
	switch f := v.GetString("log.format"); f {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q (console/json)", ErrInvalid, f)
	}
	return nil
}
