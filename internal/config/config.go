// Package config discovers and loads filesort's persistent
// configuration: the source folder to sort, the rules file to read,
// where logs and run history live. Discovery and first-run creation
// are collaborator concerns; the core engine only consumes the
// resulting Config value.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the small struct the core engine consumes.
type Config struct {
	SourceFolder string `mapstructure:"source_folder"`
	RulesFile    string `mapstructure:"rules_file"`
	LogsFolder   string `mapstructure:"logs_folder"`
	HistoryDB    string `mapstructure:"history_db"`
	Verbosity    int    `mapstructure:"verbosity"`
}

const defaultConfigTemplate = `# ~/.filesort/config.yml
# Directory filesort scans when no --source flag is given.
source_folder: "%s"

# Rule file describing the ruleset to apply.
rules_file: "%s"

# Where run logs are written.
logs_folder: "%s"

# SQLite database recording past sort runs.
history_db: "%s"

# 0=warn, 1=info, 2=debug, 3=trace
verbosity: 0
`

// Load discovers ~/.filesort/config.yml (or the directory named by
// FILESORT_CONFIG_DIR), creating a default file on first run, and
// returns the resolved Config. Environment variables FILESORT_CONFIG_DIR,
// FILESORT_DATA_DIR and FILESORT_SOURCE_FOLDER override discovery.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	configDir := os.Getenv("FILESORT_CONFIG_DIR")
	if configDir == "" {
		configDir = filepath.Join(home, ".filesort")
	}
	dataDir := os.Getenv("FILESORT_DATA_DIR")
	if dataDir == "" {
		dataDir = configDir
	}

	configName := "config"
	configType := "yml"
	configFile := filepath.Join(configDir, configName+"."+configType)

	v := viper.New()
	v.AddConfigPath(configDir)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.SetEnvPrefix("FILESORT")
	v.AutomaticEnv()

	v.SetDefault("source_folder", filepath.Join(home, "Downloads"))
	v.SetDefault("rules_file", filepath.Join(configDir, "rules.yml"))
	v.SetDefault("logs_folder", filepath.Join(dataDir, "logs"))
	v.SetDefault("history_db", filepath.Join(dataDir, "history.db"))
	v.SetDefault("verbosity", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := createDefault(configDir, configFile, v); err != nil {
				return nil, err
			}
		} else {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if src := os.Getenv("FILESORT_SOURCE_FOLDER"); src != "" {
		v.Set("source_folder", src)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func createDefault(configDir, configFile string, v *viper.Viper) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	body := fmt.Sprintf(defaultConfigTemplate,
		v.GetString("source_folder"),
		v.GetString("rules_file"),
		v.GetString("logs_folder"),
		v.GetString("history_db"),
	)
	if err := os.WriteFile(configFile, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return v.ReadInConfig()
}
