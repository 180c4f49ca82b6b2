package dossier

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// Database declares a SQL source for a dataset. Either Table or Query
// must be set; Query wins when both are.
type Database struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Driver   string `json:"driver" yaml:"driver"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	SslMode  string `json:"ssl_mode" yaml:"ssl_mode"`
	Table    string `json:"table" yaml:"table"`
	Query    string `json:"query" yaml:"query"`
}

// DatasetConfig declares one dataset: where its records come from and how
// the engine indexes them. Path and Database may be left empty when the
// records are discovered from a data directory or supplied
// programmatically; a Database source takes precedence over files.
type DatasetConfig struct {
	Path           string    `json:"path" yaml:"path"`
	Database       *Database `json:"database,omitempty" yaml:"database"`
	TextFields     []string  `json:"text_fields" yaml:"text_fields"`
	UniqueKeyField string    `json:"unique_key_field" yaml:"unique_key_field"`
	ShingleSize    int       `json:"shingle_size" yaml:"shingle_size"`
	FoldDiacritics bool      `json:"fold_diacritics" yaml:"fold_diacritics"`
}

// Options converts the declaration into engine options.
func (d DatasetConfig) Options() Options {
	return Options{
		TextFields:     d.TextFields,
		UniqueKeyField: d.UniqueKeyField,
		ShingleSize:    d.ShingleSize,
		FoldDiacritics: d.FoldDiacritics,
	}
}

// Config is the whole-service configuration: a data directory plus one
// declaration per dataset.
type Config struct {
	DataDir  string                   `json:"data_dir" yaml:"data_dir"`
	Datasets map[string]DatasetConfig `json:"datasets" yaml:"datasets"`
}

// Names returns the configured dataset names, sorted.
func (c Config) Names() []string {
	names := maps.Keys(c.Datasets)
	sort.Strings(names)
	return names
}

// DefaultConfig declares the stock KYC datasets: consumer credit reports,
// employer income verification, county property records and recorded
// liens, each searchable on its person-name field (plus address where the
// source carries one) and keyed on its government or document identifier.
func DefaultConfig() Config {
	return Config{
		DataDir: "data",
		Datasets: map[string]DatasetConfig{
			"credit_reports": {
				TextFields:     []string{"full_legal_name", "primary_address"},
				UniqueKeyField: "government_id",
			},
			"income_verification": {
				TextFields:     []string{"employee_name"},
				UniqueKeyField: "government_id",
			},
			"property_records": {
				TextFields:     []string{"owner_name_on_deed", "property_address"},
				UniqueKeyField: "property_id",
			},
			"lien_records": {
				TextFields:     []string{"debtor_name", "debtor_address"},
				UniqueKeyField: "lien_id",
			},
		},
	}
}

// LoadConfig reads a YAML config file. Fields left out of the file keep
// their zero values, so a file can declare only what it overrides.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return cfg, nil
}
