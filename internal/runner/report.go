// SPDX-License-Identifier: MIT

package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/katalvlaran/ppc/perf"
)

// Report is the YAML document written after a run.
type Report struct {
	Generated time.Time `yaml:"generated"`
	WorldSize int       `yaml:"world_size"`
	Size      int       `yaml:"size"`
	Seed      int64     `yaml:"seed"`
	Entries   []Entry   `yaml:"entries"`
	Failed    int       `yaml:"failed"`
}

// Entry is the outcome of one catalog entry or fixture.
type Entry struct {
	Name     string          `yaml:"name"`
	Results  []*perf.Results `yaml:"results,omitempty"`
	Verified bool            `yaml:"verified"`
	Kind     string          `yaml:"kind,omitempty"`
	Error    string          `yaml:"error,omitempty"`
}

// OK reports whether the entry ran, met its time limits and verified.
func (e Entry) OK() bool {
	if e.Error != "" || !e.Verified {
		return false
	}
	for _, r := range e.Results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func (r *Report) add(e Entry) {
	if !e.OK() {
		r.Failed++
	}
	r.Entries = append(r.Entries, e)
}

// Marshal encodes the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// WriteFile writes the report to path, creating parent directories.
func (r *Report) WriteFile(path string) error {
	buf, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("runner: encode report: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	if err = os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	return nil
}
