package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// Environment variables that override config file values. They match the
// names used by the LimeSurvey docker images and CI setups.
const (
	envURL      = "LS_URL"
	envUsername = "LS_USER"
	envPassword = "LS_PASSWORD"
)

// Config holds the server connection details for the citric CLI.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// URL of the LimeSurvey RemoteControl 2 endpoint,
	// e.g. https://survey.example.com/index.php/admin/remotecontrol
	URL string `yaml:"url" validate:"required,url"`
	// Username for the LimeSurvey admin account
	Username string `yaml:"username" validate:"required"`
	// Password for the LimeSurvey admin account (stored for convenience)
	Password string `yaml:"password"`
}

var config *Config

var validate = validator.New()

// GetDefaultConfigPath returns the default path for the config file
// (e.g. ~/.config/citric/config.yaml on Linux).
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "citric", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file and applies
// environment overrides. A .env file in the working directory is picked up
// first so local setups need no exported variables.
func LoadConfig(file string) error {
	// Missing .env is fine.
	_ = godotenv.Load()

	var c Config
	yamlStr, err := os.ReadFile(file)
	if err == nil {
		if err := yaml.Unmarshal(yamlStr, &c); err != nil {
			return fmt.Errorf("unable to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("unable to read config file: %w", err)
	} else if !envConfigured() {
		return err
	}

	if v := os.Getenv(envURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(envUsername); v != "" {
		c.Username = v
	}
	if v := os.Getenv(envPassword); v != "" {
		c.Password = v
	}

	if err := c.Validate(); err != nil {
		return err
	}

	config = &c
	return nil
}

func envConfigured() bool {
	return os.Getenv(envURL) != "" && os.Getenv(envUsername) != ""
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the configuration to the specified file.
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, yamlStr, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// Validate checks required fields and URL format.
func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			switch field.Tag() {
			case "required":
				return fmt.Errorf("%s is required; set it in the config file or the environment", field.Field())
			case "url":
				return fmt.Errorf("%s must be a valid URL", field.Field())
			}
		}
		return err
	}
	return nil
}
