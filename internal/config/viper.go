// Package config provides hierarchical configuration for the exporter:
// defaults, an optional YAML config file, and CAMT_-prefixed environment
// variables, with a godotenv bridge for .env files.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter     string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeader bool   `mapstructure:"include_header" yaml:"include_header"`
		WriteBOM      bool   `mapstructure:"write_bom" yaml:"write_bom"`
	} `mapstructure:"csv" yaml:"csv"`

	Export struct {
		SignedAmount        bool   `mapstructure:"signed_amount" yaml:"signed_amount"`
		CreditAsBool        bool   `mapstructure:"credit_as_bool" yaml:"credit_as_bool"`
		RemittanceSeparator string `mapstructure:"remittance_separator" yaml:"remittance_separator"`
		EffectiveCredit     bool   `mapstructure:"effective_credit" yaml:"effective_credit"`
		PreferUltimateParty bool   `mapstructure:"prefer_ultimate_party" yaml:"prefer_ultimate_party"`
		SortByValueDate     bool   `mapstructure:"sort_by_value_date" yaml:"sort_by_value_date"`
	} `mapstructure:"export" yaml:"export"`

	GVC struct {
		TableFile string `mapstructure:"table_file" yaml:"table_file"`
	} `mapstructure:"gvc" yaml:"gvc"`
}

// InitializeConfig builds the configuration from defaults, an optional
// config.yaml, and CAMT_-prefixed environment variables, in that order.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.camt-export")
	v.AddConfigPath(".camt-export")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CAMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file should not kill the run; defaults and
			// environment variables still apply.
			Logger.WithError(err).Warnf("Error reading config file %s", v.ConfigFileUsed())
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ";")
	v.SetDefault("csv.include_header", true)
	v.SetDefault("csv.write_bom", false)

	v.SetDefault("export.signed_amount", true)
	v.SetDefault("export.credit_as_bool", true)
	v.SetDefault("export.remittance_separator", "")
	v.SetDefault("export.effective_credit", false)
	v.SetDefault("export.prefer_ultimate_party", true)
	v.SetDefault("export.sort_by_value_date", false)

	v.SetDefault("gvc.table_file", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logger matching the configuration.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
