package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration loaded from config.yaml. Database
// settings come from the environment (see internal/dbconfig); everything
// here has a sensible zero-setup default.
type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Quiz struct {
		// SeedDefaultQuestions loads the bundled question set into the store
		// at startup when the bank is empty.
		SeedDefaultQuestions bool `yaml:"seed_default_questions"`
	} `yaml:"quiz"`

	NATS struct {
		Enabled       bool          `yaml:"enabled"`
		URL           string        `yaml:"url"`
		StreamName    string        `yaml:"stream_name"`
		SubjectPrefix string        `yaml:"subject_prefix"`
		MaxAge        time.Duration `yaml:"max_age"`
	} `yaml:"nats"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loadConfig reads the yaml config. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := &Config{}
	config.Server.Port = "8080"
	config.Server.AllowedOrigins = []string{"*"}
	config.Quiz.SeedDefaultQuestions = true

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}
