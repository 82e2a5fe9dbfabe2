// SPDX-License-Identifier: MIT

// Command ppcperf measures the built-in tasks and verifies their outputs.
//
//	ppcperf -conf config.yaml [-list] [-only matmul/,sobel/par] [-fixtures dir]
//
// Exit status is 1 when any task fails, misses its time limit or produces
// wrong output.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/ppc/internal/config"
	"github.com/katalvlaran/ppc/internal/logging"
	"github.com/katalvlaran/ppc/internal/runner"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ppcperf", flag.ContinueOnError)
	var (
		confPath = fs.String("conf", "", "path to the YAML config file (defaults and PPC_* env when empty)")
		list     = fs.Bool("list", false, "print the task names and exit")
		only     = fs.String("only", "", "comma-separated task name prefixes; overrides tasks.include")
		fixtures = fs.String("fixtures", "", "directory of YAML fixtures to verify instead of measuring")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*confPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed, err:%v\n", err)
		return 1
	}

	logger, restore, err := logging.Install(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed, err:%v\n", err)
		return 1
	}
	defer restore()

	r, err := runner.New(cfg)
	if err != nil {
		logger.Error("init runner failed", zap.Error(err))
		return 1
	}

	if *list {
		for _, n := range r.Registry().Names() {
			fmt.Println(n)
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var rep *runner.Report
	if *fixtures != "" {
		paths, gerr := filepath.Glob(filepath.Join(*fixtures, "*.yaml"))
		if gerr != nil {
			logger.Error("list fixtures failed", zap.Error(gerr))
			return 1
		}
		rep, err = r.Fixtures(ctx, paths...)
	} else {
		rep, err = r.Measure(ctx, splitList(*only)...)
	}
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return 1
	}

	if cfg.Report.Path != "" {
		if err = rep.WriteFile(cfg.Report.Path); err != nil {
			logger.Error("write report failed", zap.Error(err))
			return 1
		}
		logger.Info("report written", zap.String("path", cfg.Report.Path))
	}

	logger.Info("done", zap.Int("entries", len(rep.Entries)), zap.Int("failed", rep.Failed))
	if rep.Failed > 0 {
		return 1
	}
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
