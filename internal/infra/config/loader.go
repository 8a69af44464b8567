package config

import (
	"os"

	"github.com/aalvaropc/diatonic/internal/domain"
	"gopkg.in/yaml.v3"
)

func LoadSheet(path string) (domain.Sheet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Sheet{}, &domain.OpError{
			Op:   "config.load_sheet",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLSheet
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Sheet{}, &domain.OpError{
			Op:   "config.load_sheet",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapSheet(path, dto)
}

// ReadSheetName returns only the name field of a sheet file.
func ReadSheetName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}
