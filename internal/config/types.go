package config

import (
	"errors"
	"fmt"
	"strings"
)

// Default config values.
const (
	DefaultConfigFilePath                  = "config.yml"
	DefaultLoggerLevel                     = LogLevelInfo
	DefaultLoggerFormat                    = LogFormatJSON
	DefaultEthNodeURL                      = "ws://localhost:8546"
	DefaultEthRequestTimeoutSeconds        = 20
	DefaultEthSubscriptionBuffer           = 64
	DefaultExplorerBaseURL                 = "https://api.etherscan.io/api"
	DefaultExplorerRequestTimeoutSeconds   = 20
	DefaultRegistryPath                    = "data/addresses.json"
	DefaultRegistryChain                   = "eth"
	DefaultSMTPPort                        = 587
	DefaultKafkaTopic                      = "sechelper.alerts"
	DefaultServerPort                      = ":2112"
	DefaultServerReadTimeoutSeconds        = 30
	DefaultServerWriteTimeoutSeconds       = 30
	DefaultServerIdleTimeoutSeconds        = 60
	DefaultServerReadHeaderTimeoutSeconds  = 30
	DefaultMonitorThresholdWindowBlocks    = 240
	DefaultMonitorThresholdIntervalSeconds = 30
)

// LogLevel defines the type for logger levels.
type LogLevel string

// LogFormat defines the type for logger output formats.
type LogFormat string

// Defines the supported logger levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Defines the supported logger output formats.
const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// Transport names an alert delivery channel.
type Transport string

// Defines the supported alert transports.
const (
	TransportSMTP    Transport = "smtp"
	TransportDiscord Transport = "discord"
	TransportKafka   Transport = "kafka"
	TransportLog     Transport = "log"
)

// Normalize returns the canonical lower-case transport name.
func (t Transport) Normalize() Transport {
	return Transport(strings.ToLower(strings.TrimSpace(string(t))))
}

// Config holds all configuration for the application.
type Config struct {
	Logger    LoggerConfig    `yaml:"logger"`
	ETHClient ETHClientConfig `yaml:"eth_client"`
	Explorer  ExplorerConfig  `yaml:"explorer"`
	Registry  RegistryConfig  `yaml:"registry"`
	Alert     AlertConfig     `yaml:"alert"`
	Server    ServerConfig    `yaml:"server"`
	Monitor   MonitorConfig   `yaml:"monitor"`
}

// LoggerConfig holds all configuration related to logging.
type LoggerConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// ETHClientConfig holds all configuration related to the Ethereum node connection.
type ETHClientConfig struct {
	NodeURL               string `yaml:"node_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	SubscriptionBuffer    int    `yaml:"subscription_buffer"`
}

// ExplorerConfig holds configuration of the block explorer REST API.
type ExplorerConfig struct {
	BaseURL               string `yaml:"base_url"`
	APIKey                string `yaml:"api_key"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// RegistryConfig locates the persisted address registry.
type RegistryConfig struct {
	Path  string `yaml:"path"`
	Chain string `yaml:"chain"`
}

// AlertConfig selects and configures the alert transports.
type AlertConfig struct {
	Transports []Transport   `yaml:"transports"`
	SMTP       SMTPConfig    `yaml:"smtp"`
	Discord    DiscordConfig `yaml:"discord"`
	Kafka      KafkaConfig   `yaml:"kafka"`
}

// SMTPConfig holds the relay host and sender credentials.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Sender   string `yaml:"sender"`
	Password string `yaml:"password"`
}

// DiscordConfig holds the bot credentials. Alert recipients are channel IDs.
type DiscordConfig struct {
	BotToken string `yaml:"bot_token"`
}

// KafkaConfig holds the producer settings. Alert recipients become message keys.
type KafkaConfig struct {
	Brokers  []string `yaml:"brokers"`
	Topic    string   `yaml:"topic"`
	ClientID string   `yaml:"client_id"`
}

// ServerConfig holds all configuration related to the status/metrics HTTP server.
type ServerConfig struct {
	Enabled                  bool   `yaml:"enabled"`
	Port                     string `yaml:"port"`
	ReadTimeoutSeconds       int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds      int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds       int    `yaml:"idle_timeout_seconds"`
	ReadHeaderTimeoutSeconds int    `yaml:"read_header_timeout_seconds"`
}

// MonitorConfig holds detector policy knobs.
type MonitorConfig struct {
	ThresholdWindowBlocks    uint64 `yaml:"threshold_window_blocks"`
	ThresholdIntervalSeconds int    `yaml:"threshold_interval_seconds"`
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(string(c.Logger.Level))] {
		return fmt.Errorf(
			"invalid logger level (config key: logger.level): '%s', must be one of: debug, info, warn, error",
			c.Logger.Level,
		)
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(string(c.Logger.Format))] {
		return fmt.Errorf(
			"invalid logger format (config key: logger.format): '%s', must be one of: json, text",
			c.Logger.Format,
		)
	}

	if c.ETHClient.NodeURL == "" {
		return errors.New("ethereum node URL (config key: eth_client.node_url) cannot be empty")
	}
	if !isSubscribableURL(c.ETHClient.NodeURL) {
		return fmt.Errorf(
			"ethereum node URL (config key: eth_client.node_url) '%s' must be a ws://, wss:// or IPC endpoint to support subscriptions",
			c.ETHClient.NodeURL,
		)
	}
	if c.ETHClient.RequestTimeoutSeconds <= 0 {
		return errors.New("ethereum request timeout seconds (config key: eth_client.request_timeout_seconds) must be greater than 0")
	}
	if c.ETHClient.SubscriptionBuffer <= 0 {
		return errors.New("subscription buffer (config key: eth_client.subscription_buffer) must be greater than 0")
	}

	if c.Explorer.BaseURL == "" {
		return errors.New("explorer base URL (config key: explorer.base_url) cannot be empty")
	}
	if c.Explorer.RequestTimeoutSeconds <= 0 {
		return errors.New("explorer request timeout seconds (config key: explorer.request_timeout_seconds) must be greater than 0")
	}

	if c.Registry.Path == "" {
		return errors.New("registry path (config key: registry.path) cannot be empty")
	}
	if c.Registry.Chain == "" {
		return errors.New("registry chain (config key: registry.chain) cannot be empty")
	}

	if err := c.Alert.validate(); err != nil {
		return err
	}

	if c.Server.Enabled {
		if c.Server.Port == "" || (strings.HasPrefix(c.Server.Port, ":") && len(c.Server.Port) == 1) {
			return errors.New("server port (config key: server.port) cannot be empty or just ':'")
		}
		if c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0 ||
			c.Server.IdleTimeoutSeconds < 0 || c.Server.ReadHeaderTimeoutSeconds < 0 {
			return errors.New("server timeouts (config keys: server.*_timeout_seconds) cannot be negative")
		}
	}

	if c.Monitor.ThresholdWindowBlocks == 0 {
		return errors.New("threshold window (config key: monitor.threshold_window_blocks) must be greater than 0")
	}
	if c.Monitor.ThresholdIntervalSeconds <= 0 {
		return errors.New("threshold interval (config key: monitor.threshold_interval_seconds) must be greater than 0")
	}

	return nil
}

func (a *AlertConfig) validate() error {
	if len(a.Transports) == 0 {
		return errors.New("alert transports (config key: alert.transports) cannot be empty")
	}
	for _, t := range a.Transports {
		switch t.Normalize() {
		case TransportSMTP:
			if a.SMTP.Host == "" || a.SMTP.Sender == "" {
				return errors.New("smtp transport requires alert.smtp.host and alert.smtp.sender")
			}
			if a.SMTP.Port <= 0 {
				return errors.New("smtp port (config key: alert.smtp.port) must be greater than 0")
			}
		case TransportDiscord:
			if a.Discord.BotToken == "" {
				return errors.New("discord transport requires alert.discord.bot_token")
			}
		case TransportKafka:
			if len(a.Kafka.Brokers) == 0 {
				return errors.New("kafka transport requires alert.kafka.brokers")
			}
			if a.Kafka.Topic == "" {
				return errors.New("kafka topic (config key: alert.kafka.topic) cannot be empty")
			}
		case TransportLog:
		default:
			return fmt.Errorf(
				"invalid alert transport (config key: alert.transports): '%s', must be one of: smtp, discord, kafka, log", t,
			)
		}
	}
	return nil
}

func isSubscribableURL(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "ws://") ||
		strings.HasPrefix(lower, "wss://") ||
		strings.HasPrefix(url, "/") ||
		strings.HasPrefix(url, `\\.\pipe\`)
}
