// Package config implements application configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding secrets from the YAML file.
const (
	EnvExplorerAPIKey = "SECHELPER_EXPLORER_API_KEY"
	EnvSMTPPassword   = "SECHELPER_SMTP_PASSWORD"
	EnvDiscordToken   = "SECHELPER_DISCORD_TOKEN"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:  DefaultLoggerLevel,
			Format: DefaultLoggerFormat,
		},
		ETHClient: ETHClientConfig{
			NodeURL:               DefaultEthNodeURL,
			RequestTimeoutSeconds: DefaultEthRequestTimeoutSeconds,
			SubscriptionBuffer:    DefaultEthSubscriptionBuffer,
		},
		Explorer: ExplorerConfig{
			BaseURL:               DefaultExplorerBaseURL,
			RequestTimeoutSeconds: DefaultExplorerRequestTimeoutSeconds,
		},
		Registry: RegistryConfig{
			Path:  DefaultRegistryPath,
			Chain: DefaultRegistryChain,
		},
		Alert: AlertConfig{
			Transports: []Transport{TransportLog},
			SMTP:       SMTPConfig{Port: DefaultSMTPPort},
			Kafka:      KafkaConfig{Topic: DefaultKafkaTopic},
		},
		Server: ServerConfig{
			Port:                     DefaultServerPort,
			ReadTimeoutSeconds:       DefaultServerReadTimeoutSeconds,
			WriteTimeoutSeconds:      DefaultServerWriteTimeoutSeconds,
			IdleTimeoutSeconds:       DefaultServerIdleTimeoutSeconds,
			ReadHeaderTimeoutSeconds: DefaultServerReadHeaderTimeoutSeconds,
		},
		Monitor: MonitorConfig{
			ThresholdWindowBlocks:    DefaultMonitorThresholdWindowBlocks,
			ThresholdIntervalSeconds: DefaultMonitorThresholdIntervalSeconds,
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of the defaults,
// applies environment overrides and validates the result.
// A missing file is only tolerated when the default path is used.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()

	loadPath := filePath
	if loadPath == "" {
		loadPath = DefaultConfigFilePath
	}

	fileBytes, err := os.ReadFile(loadPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(fileBytes, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", loadPath, err)
		}
	case os.IsNotExist(err) && (filePath == "" || filePath == DefaultConfigFilePath):
		fmt.Fprintf(os.Stderr, "Config file '%s' not found, using default values for all sections.\n", loadPath)
	default:
		return nil, fmt.Errorf("failed to read config file '%s': %w", loadPath, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in '%s': %w", loadPath, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvExplorerAPIKey); v != "" {
		cfg.Explorer.APIKey = v
	}
	if v := os.Getenv(EnvSMTPPassword); v != "" {
		cfg.Alert.SMTP.Password = v
	}
	if v := os.Getenv(EnvDiscordToken); v != "" {
		cfg.Alert.Discord.BotToken = v
	}
}
