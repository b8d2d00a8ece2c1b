package cmd

import (
	"log"
	"os"

	"github.com/nefay/licspend"
	"github.com/nefay/licspend/kv"
	"gopkg.in/yaml.v3"
)

// Config is the optional lss.yaml file in the working directory.
type Config struct {
	DataDir    string               `yaml:"dataDir"`
	Budget     int64                `yaml:"budget"` // storage budget in bytes
	KPISources []licspend.KPISource `yaml:"kpiSources"`
}

const configFile = "lss.yaml"

// LoadConfig reads lss.yaml when present, filling in defaults otherwise. A
// broken config file is reported and ignored.
func LoadConfig() Config {
	cfg := Config{DataDir: ".lss", Budget: kv.DefaultBudget}
	content, err := os.ReadFile(configFile)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		log.Printf("warning: ignoring broken %s: %v", configFile, err)
		return Config{DataDir: ".lss", Budget: kv.DefaultBudget}
	}
	if cfg.DataDir == "" {
		cfg.DataDir = ".lss"
	}
	if cfg.Budget <= 0 {
		cfg.Budget = kv.DefaultBudget
	}
	return cfg
}
