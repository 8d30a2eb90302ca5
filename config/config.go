package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"check-elasticsearch-snapshots/internal/validator"
	"check-elasticsearch-snapshots/pkg/check/aggregates"

	"gopkg.in/yaml.v3"
)

const (
	millisPerSecond = 1000
	millisPerDay    = 86400000
)

// Configuration is everything the check needs, merged from the optional
// yaml file and the command line flags (flags win).
type Configuration struct {
	Server     string `yaml:"server" validate:"required"`
	Port       uint32 `yaml:"port" validate:"required"`
	Warning    string `yaml:"warning" validate:"required"`
	Critical   string `yaml:"critical" validate:"required"`
	Repository string `yaml:"repository"`
	Textfile   string `yaml:"textfile"`
}

// Load reads the yaml configuration file.
func Load(path string) (Configuration, error) {
	var config Configuration
	file, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("fail to read configuration file: %w", err)
	}
	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("fail to parse yaml configuration file: %w", err)
	}
	return config, nil
}

// Validate checks the merged configuration and converts the threshold
// strings into the canonical unit. Any error here is a pre-flight
// configuration error: the caller must exit CRITICAL before touching the
// network.
func (c Configuration) Validate() (aggregates.Thresholds, error) {
	var thresholds aggregates.Thresholds
	if err := validator.Validator.Struct(c); err != nil {
		return thresholds, fmt.Errorf("invalid configuration: %w", err)
	}
	warning, err := ParseThreshold(c.Warning)
	if err != nil {
		return thresholds, fmt.Errorf("invalid warning threshold: %w", err)
	}
	critical, err := ParseThreshold(c.Critical)
	if err != nil {
		return thresholds, fmt.Errorf("invalid critical threshold: %w", err)
	}
	if warning > critical {
		return thresholds, fmt.Errorf("warning threshold %s is greater than critical threshold %s", c.Warning, c.Critical)
	}
	thresholds.WarningMillis = warning
	thresholds.CriticalMillis = critical
	return thresholds, nil
}

// URL builds the cluster base URL from the server and port values.
func (c Configuration) URL() string {
	return fmt.Sprintf("http://%s:%d", c.Server, c.Port)
}

// ParseThreshold converts a threshold value into milliseconds. A bare
// number is seconds; a number suffixed with "d" is days. The numeric part
// may be fractional.
func ParseThreshold(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	unit := int64(millisPerSecond)
	if strings.HasSuffix(trimmed, "d") {
		trimmed = strings.TrimSuffix(trimmed, "d")
		unit = millisPerDay
	}
	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("fail to parse threshold %q: %w", value, err)
	}
	if number <= 0 {
		return 0, fmt.Errorf("threshold %q must be positive", value)
	}
	return int64(number * float64(unit)), nil
}
