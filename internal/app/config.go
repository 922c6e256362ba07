package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/selfinvest-backend/internal/platform/logger"
	"github.com/yungbote/selfinvest-backend/internal/utils"
)

type Config struct {
	Port           string   `yaml:"port"`
	Environment    string   `yaml:"environment"`
	Version        string   `yaml:"version"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoadConfig layers an optional yaml file (CONFIG_PATH) over built-in
// defaults, then lets environment variables win.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:        "8080",
		Environment: "development",
		Version:     "dev",
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.Port = utils.GetEnv("PORT", cfg.Port, log)
	cfg.Environment = utils.GetEnv("ENVIRONMENT", cfg.Environment, log)
	cfg.Version = utils.GetEnv("VERSION", cfg.Version, log)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = cfg.AllowedOrigins[:0]
		for _, part := range strings.Split(origins, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, part)
			}
		}
	}
	return cfg, nil
}
