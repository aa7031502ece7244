package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	DiscoveryConfig struct {
		Order DiscoveryOrder `yaml:"order" validate:"gte=0"`
	}

	LinksConfig struct {
		Strategy  LinkStrategy `yaml:"strategy" validate:"gte=0"`
		BaseURL   string       `yaml:"base_url"`
		LocalRoot string       `yaml:"local_root" sanitize:"path_clean"`
		BaseRoot  string       `yaml:"base_root" validate:"omitempty,url"`
	}

	ImagesConfig struct {
		JPEGQuality int  `yaml:"jpeg_quality" validate:"min=40,max=100"`
		JPEGDPI     int  `yaml:"jpeg_dpi" validate:"min=0,max=2400"`
		AutoOrient  bool `yaml:"auto_orient"`
	}

	DocumentConfig struct {
		Width                 float64 `yaml:"width" validate:"gt=0"`
		FixZip                bool    `yaml:"fix_zip"`
		OutputNameTemplate    string  `yaml:"output_name_template"`
		FileNameTransliterate bool    `yaml:"file_name_transliterate"`
		Title                 string  `yaml:"title"`
		Creator               string  `yaml:"creator"`
	}

	SettingsConfig struct {
		Path string `yaml:"path" sanitize:"path_clean" validate:"omitempty,filepath"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Discovery DiscoveryConfig `yaml:"discovery"`
		Links     LinksConfig     `yaml:"links"`
		Images    ImagesConfig    `yaml:"images"`
		Document  DocumentConfig  `yaml:"document"`
		Settings  SettingsConfig  `yaml:"settings"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, output name template is expanded
	// later for every document, not when configuration is loaded
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"

	// BadFileName replaces document names with nothing usable left after
	// cleaning.
	BadFileName = "_bad_file_name_"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
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
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
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

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
