package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"cssmix/motion"
	"cssmix/sizing"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// MotionConfig carries per-key overrides for the built-in motion
	// tables. Overrides merge on top of defaults - an empty map keeps the
	// built-in table intact.
	MotionConfig struct {
		Durations map[string]int    `yaml:"durations" validate:"dive,min=0"`
		Easings   map[string]string `yaml:"easings" validate:"dive,required"`
		Aliases   map[string]string `yaml:"aliases" validate:"dive,required"`
	}

	// SizingConfig carries reference-width overrides and conversion
	// defaults for the rpx helper.
	SizingConfig struct {
		Widths  map[string]float64 `yaml:"widths" validate:"dive,gt=0"`
		Unit    string             `yaml:"unit" validate:"required"`
		Decimal int                `yaml:"decimal" validate:"min=0,max=6"`
	}

	HelpersConfig struct {
		Motion MotionConfig `yaml:"motion"`
		Sizing SizingConfig `yaml:"sizing"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Helpers   HelpersConfig  `yaml:"helpers"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Tables merges configured overrides on top of the built-in motion tables.
func (m MotionConfig) Tables() motion.Tables {
	t := motion.DefaultTables()
	maps.Copy(t.Durations, m.Durations)
	maps.Copy(t.Easings, m.Easings)
	maps.Copy(t.Aliases, m.Aliases)
	return t
}

// Table merges configured overrides on top of the built-in width table.
func (s SizingConfig) Table() sizing.Widths {
	w := sizing.DefaultWidths()
	maps.Copy(w, s.Widths)
	return w
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a
// byte slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
