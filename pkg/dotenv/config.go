package dotenv

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Optional YAML filter config: lets a deployment declare its dot-env
// filter dimensions (build environment, locale, ...) in a file instead
// of constructing []Filter by hand, the way pmdci-pathuni's
// Config/PlatformConfig declares its path lists. This is additive sugar
// over Filter/NewFilter — FilterConfig.Filters() is the only thing
// Discover ever consumes, so nothing bypasses Filter's own matching
// rules.

// FilterDimension is one YAML-configured filter dimension: the values
// relevant to the current run and the full universe of values that
// dimension could ever take.
type FilterDimension struct {
	Cur []string `yaml:"cur,omitempty"`
	All []string `yaml:"all,omitempty"`
}

// FilterConfig is the on-disk shape for a set of filter dimensions.
type FilterConfig struct {
	Indicator  string            `yaml:"indicator,omitempty"`
	Dimensions []FilterDimension `yaml:"dimensions,omitempty"`
}

// LoadFilterConfig reads and parses a FilterConfig from path.
func LoadFilterConfig(path string) (FilterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FilterConfig{}, err
	}
	var cfg FilterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FilterConfig{}, err
	}
	return cfg, nil
}

// Filters converts cfg into the []Filter Discover consumes, one Filter
// per declared dimension.
func (cfg FilterConfig) Filters() []Filter {
	filters := make([]Filter, 0, len(cfg.Dimensions))
	for _, d := range cfg.Dimensions {
		filters = append(filters, NewFilter(cfg.Indicator, d.Cur, d.All))
	}
	return filters
}
