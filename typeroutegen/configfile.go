package typeroutegen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project config file loaded by the CLI when present.
const ConfigFileName = "typeroute.yaml"

// FileConfig is the on-disk shape of typeroute.yaml. All fields are
// optional; flags and fluent-API calls take precedence over file values.
type FileConfig struct {
	OutDir       string   `yaml:"out_dir"`
	OutFile      string   `yaml:"out_file"`
	Packages     []string `yaml:"packages"`
	ClientModule string   `yaml:"client_module"`

	Definitions FileFilter `yaml:"definitions"`
	Routes      FileFilter `yaml:"routes"`
}

// FileFilter holds filter pattern lists for one target. Entries delimited
// as "/re/" are treated as regular expressions. When both lists are set,
// only wins.
type FileFilter struct {
	Only   []string `yaml:"only"`
	Except []string `yaml:"except"`
}

func (f FileFilter) filter() (RouteFilter, error) {
	patterns := f.Only
	build := Only
	if len(patterns) == 0 {
		patterns = f.Except
		build = Except
	}
	if len(patterns) == 0 {
		return Unfiltered(), nil
	}
	matchers := make([]Matcher, 0, len(patterns))
	for _, p := range patterns {
		m, err := parseMatcher(p)
		if err != nil {
			return RouteFilter{}, err
		}
		matchers = append(matchers, m)
	}
	return build(matchers...), nil
}

// LoadConfigFile reads a typeroute.yaml. A missing file is not an error and
// returns a nil config.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fc, nil
}

// Apply folds file values into cfg, filling only fields the caller left
// unset.
func (fc *FileConfig) Apply(cfg *Config) error {
	if fc == nil {
		return nil
	}
	if cfg.OutDir == "" {
		cfg.OutDir = fc.OutDir
	}
	if cfg.OutFile == "" {
		cfg.OutFile = fc.OutFile
	}
	if len(cfg.Packages) == 0 {
		cfg.Packages = fc.Packages
	}
	if cfg.ClientModule == "" {
		cfg.ClientModule = fc.ClientModule
	}
	if cfg.Definitions.IsZero() {
		f, err := fc.Definitions.filter()
		if err != nil {
			return fmt.Errorf("definitions filter: %w", err)
		}
		cfg.Definitions = f
	}
	if cfg.Routes.IsZero() {
		f, err := fc.Routes.filter()
		if err != nil {
			return fmt.Errorf("routes filter: %w", err)
		}
		cfg.Routes = f
	}
	return nil
}
