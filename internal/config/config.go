package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LLMConfig configures the optional AI summary of a coverage report.
type LLMConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

// ReportConfig configures where and how reports are rendered.
type ReportConfig struct {
	OutputDir string   `mapstructure:"output_dir"`
	Formats   []string `mapstructure:"formats"` // console, markdown, json
}

// Config is the top-level configuration for a diffcov run.
type Config struct {
	CoveragePath     string   `mapstructure:"coverage_path"`
	BaseBranch       string   `mapstructure:"base_branch"`
	PackageRoot      string   `mapstructure:"package_root"`
	SourceExtensions []string `mapstructure:"source_extensions"`
	LogLevel         string   `mapstructure:"log_level"`
	LogFile          string   `mapstructure:"log_file"`

	Report ReportConfig `mapstructure:"report"`
	LLM    LLMConfig    `mapstructure:"llm"`
}

// Load reads a configuration file from the "configs" directory into a
// struct. The configName parameter should be the base name of the file
// without the extension (e.g., "diffcov").
func Load(configName string, result interface{}) error {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	// Search upward so the config is also found when running from package
	// subdirectories (go test runs inside the package directory).
	v.AddConfigPath("configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(result); err != nil {
		return fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	return nil
}

// LoadConfig loads the diffcov configuration, applying defaults for
// anything the file leaves out. A missing config file is not an error; the
// defaults describe a conventional Dart package layout.
func LoadConfig() (*Config, error) {
	// .env is optional; it typically carries the LLM API key.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := Load("diffcov", cfg); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.CoveragePath == "" {
		cfg.CoveragePath = "coverage/lcov.info"
	}
	if len(cfg.SourceExtensions) == 0 {
		cfg.SourceExtensions = []string{".dart"}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "coverage_report"
	}
	if len(cfg.Report.Formats) == 0 {
		cfg.Report.Formats = []string{"console"}
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("DIFFCOV_API_KEY")
	}
}
