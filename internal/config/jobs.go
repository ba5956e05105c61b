package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/watzon/quando/internal/cronexpr"
)

// JobDefinition declares one scheduled command in the jobs file.
type JobDefinition struct {
	Name     string   `yaml:"name"`
	Schedule string   `yaml:"schedule"`
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
}

// JobsFile is the parsed YAML job definitions file.
type JobsFile struct {
	Jobs []JobDefinition `yaml:"jobs"`
}

// LoadJobsFile reads and validates a YAML jobs file. Every definition needs
// a unique non-empty name, a parseable schedule expression, and a command.
func LoadJobsFile(path string) (*JobsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file: %w", err)
	}

	var file JobsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing jobs file %s: %w", path, err)
	}

	seen := make(map[string]bool)
	for i, def := range file.Jobs {
		if def.Name == "" {
			return nil, fmt.Errorf("jobs file %s: job %d has no name", path, i)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("jobs file %s: duplicate job name %q", path, def.Name)
		}
		seen[def.Name] = true

		if _, err := cronexpr.Parse(def.Schedule); err != nil {
			return nil, fmt.Errorf("jobs file %s: job %q: %w", path, def.Name, err)
		}
		if def.Command == "" {
			return nil, fmt.Errorf("jobs file %s: job %q has no command", path, def.Name)
		}
	}

	return &file, nil
}
