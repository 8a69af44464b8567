package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aalvaropc/diatonic/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads diatonic.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Diatonic.Defaults.Direction != "" {
		dir, err := domain.ParseDirection(y.Diatonic.Defaults.Direction)
		if err != nil {
			return cfg, invalidConfig(path, "diatonic.defaults.direction", err)
		}
		cfg.Defaults.Direction = dir
	}
	if f := y.Diatonic.Defaults.Format; f != "" {
		if f != domain.FormatPretty && f != domain.FormatJSON {
			return cfg, invalidConfig(path, "diatonic.defaults.format", fmt.Errorf("unsupported format %q (expected pretty|json)", f))
		}
		cfg.Defaults.Format = f
	}
	if y.Diatonic.Paths.SheetsDir != "" {
		cfg.Paths.SheetsDir = y.Diatonic.Paths.SheetsDir
	}
	if y.Diatonic.Paths.RunsDir != "" {
		cfg.Paths.RunsDir = y.Diatonic.Paths.RunsDir
	}

	return cfg, nil
}

func invalidConfig(path, field string, err error) error {
	return &domain.OpError{
		Op:   "workspacefinder.loadconfig",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %v: %w", field, err, domain.ErrInvalidConfig),
	}
}

type yamlConfig struct {
	Diatonic struct {
		Defaults struct {
			Direction string `yaml:"direction"`
			Format    string `yaml:"format"`
		} `yaml:"defaults"`

		Paths struct {
			SheetsDir string `yaml:"sheets_dir"`
			RunsDir   string `yaml:"runs_dir"`
		} `yaml:"paths"`
	} `yaml:"diatonic"`
}
