package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/pelletier/go-toml/v2"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package.
type DefaultConfigValues struct {
	Threshold         float64
	MaxInputBytes     int64
	MaxArchiveEntries int

	MaxConcurrency int
	TimeoutSeconds int
	MinCombined    float64

	LogFilename   string
	LogLevel      string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int

	ServerAddress string
	MaxUploadMB   int
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		Threshold:         domain.DefaultThreshold,
		MaxInputBytes:     domain.DefaultMaxInputBytes,
		MaxArchiveEntries: domain.DefaultMaxArchiveEntries,

		MaxConcurrency: domain.DefaultBatchConcurrency,
		TimeoutSeconds: int(domain.DefaultBatchTimeout / time.Second),
		MinCombined:    domain.DefaultBatchMinCombined,

		LogFilename:   domain.DefaultLogFilename,
		LogLevel:      domain.DefaultLogLevel,
		LogMaxSize:    domain.DefaultLogMaxSizeMB,
		LogMaxBackups: domain.DefaultLogMaxBackups,
		LogMaxAge:     domain.DefaultLogMaxAgeDays,

		ServerAddress: domain.DefaultServerAddress,
		MaxUploadMB:   domain.DefaultMaxUploadMB,
	}
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered template back into a Config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	var file tomlFile
	if err := toml.Unmarshal([]byte(configTOML), &file); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	NewTomlConfigLoader().merge(cfg, &file)
	return cfg, nil
}
