// Package config loads the pingbot configuration.
//
// Configuration is read from a YAML file. ${VAR} references are expanded
// from the environment before parsing, and a missing variable is an error so
// credentials never silently end up empty.
//
// # Example Configuration
//
//	chat:
//	  host: "stackexchange.com"
//	  email: "${PINGBOT_EMAIL}"
//	  password: "${PINGBOT_PASSWORD}"
//	room:
//	  id: 12345
//	  role: "participant"
//	  announce: true
//	  watch: "polling"
//	  poll_interval: "5s"
//	logging:
//	  level: "info"
//	  file: "~/.pingbot/logs/pingbot.log"
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/keepmind9/pingbot/internal/chat"
	"github.com/keepmind9/pingbot/internal/logger"
	"github.com/keepmind9/pingbot/pkg/constants"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel = "info"

	// maxGoodbyeDelay bounds how long shutdown may wait after the goodbye
	maxGoodbyeDelay = 10 * time.Second
)

// LoadConfig loads configuration from file and expands environment variables
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData, err := expandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

// validateConfig applies defaults and checks the configuration
func validateConfig(config *Config) error {
	if config.Chat.Driver == "" {
		config.Chat.Driver = chat.DefaultDriver
	}
	if config.Chat.Host == "" {
		config.Chat.Host = constants.DefaultHost
	}
	if config.Chat.Email == "" {
		return fmt.Errorf("chat.email is required")
	}
	if config.Chat.Password == "" {
		return fmt.Errorf("chat.password is required")
	}

	if err := validateRoom(&config.Room); err != nil {
		return err
	}

	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = constants.DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = constants.DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = constants.DefaultLogMaxAge
	}
	if config.Logging.EnableStdout == nil {
		config.Logging.EnableStdout = boolPtr(true)
	}
	if config.Logging.File != "" {
		file, err := expandHome(config.Logging.File)
		if err != nil {
			return err
		}
		config.Logging.File = file
	}

	return nil
}

func validateRoom(room *RoomConfig) error {
	if room.ID <= 0 {
		return fmt.Errorf("room.id must be a positive room id (got %d)", room.ID)
	}

	switch room.Role {
	case "":
		room.Role = RoleParticipant
	case RoleObserver, RoleParticipant:
	default:
		return fmt.Errorf("room.role must be %q or %q (got %q)", RoleObserver, RoleParticipant, room.Role)
	}

	if room.LeaveOnClose == nil {
		room.LeaveOnClose = boolPtr(true)
	}
	if room.Announce == nil {
		room.Announce = boolPtr(true)
	}

	if room.PingFormat == "" {
		room.PingFormat = constants.DefaultPingFormat
	}
	if room.SuperpingFormat == "" {
		room.SuperpingFormat = constants.DefaultSuperpingFormat
	}
	if !strings.Contains(room.PingFormat, constants.FormatPlaceholder) {
		return fmt.Errorf("room.ping_format must contain %q (got %q)", constants.FormatPlaceholder, room.PingFormat)
	}
	if !strings.Contains(room.SuperpingFormat, constants.FormatPlaceholder) {
		return fmt.Errorf("room.superping_format must contain %q (got %q)", constants.FormatPlaceholder, room.SuperpingFormat)
	}

	mode, err := chat.ParseWatchMode(room.Watch)
	if err != nil {
		return fmt.Errorf("invalid room.watch: %w", err)
	}
	room.Watch = string(mode)

	if room.PollInterval == "" {
		room.PollInterval = constants.DefaultPollInterval.String()
	}
	interval, err := time.ParseDuration(room.PollInterval)
	if err != nil {
		return fmt.Errorf("invalid room.poll_interval: %w", err)
	}
	if interval < constants.MinPollInterval {
		return fmt.Errorf("room.poll_interval must be at least %v (got %v)", constants.MinPollInterval, interval)
	}
	if interval > constants.MaxPollInterval {
		return fmt.Errorf("room.poll_interval is too large (max %v, got %v)", constants.MaxPollInterval, interval)
	}

	if room.GoodbyeDelay == "" {
		room.GoodbyeDelay = constants.DefaultGoodbyeDelay.String()
	}
	delay, err := time.ParseDuration(room.GoodbyeDelay)
	if err != nil {
		return fmt.Errorf("invalid room.goodbye_delay: %w", err)
	}
	if delay < 0 || delay > maxGoodbyeDelay {
		return fmt.Errorf("room.goodbye_delay must be between 0 and %v (got %v)", maxGoodbyeDelay, delay)
	}

	return nil
}

// expandHome expands ~ to user's home directory
func expandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home + path[1:], nil
	}
	return path, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func durationOr(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// IsObserver reports whether the bot only watches the room
func (r RoomConfig) IsObserver() bool {
	return r.Role == RoleObserver
}

// WatchMode returns the configured event transport
func (r RoomConfig) WatchMode() chat.WatchMode {
	mode, err := chat.ParseWatchMode(r.Watch)
	if err != nil {
		return chat.WatchModeCallback
	}
	return mode
}

// PollIntervalDuration returns the polling interval
func (r RoomConfig) PollIntervalDuration() time.Duration {
	return durationOr(r.PollInterval, constants.DefaultPollInterval)
}

// ObserverConfig converts the room settings for chat.NewRoomObserver
func (r RoomConfig) ObserverConfig() chat.ObserverConfig {
	return chat.ObserverConfig{
		LeaveRoomOnClose: boolOr(r.LeaveOnClose, true),
		PingFormat:       r.PingFormat,
		SuperpingFormat:  r.SuperpingFormat,
	}
}

// ParticipantConfig converts the room settings for chat.NewRoomParticipant
func (r RoomConfig) ParticipantConfig() chat.ParticipantConfig {
	return chat.ParticipantConfig{
		ObserverConfig: r.ObserverConfig(),
		Announce:       boolOr(r.Announce, true),
		GoodbyeDelay:   durationOr(r.GoodbyeDelay, constants.DefaultGoodbyeDelay),
	}
}

// LoggerConfig converts the logging settings for logger.InitLogger
func (l LoggingConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        l.Level,
		File:         l.File,
		MaxSize:      l.MaxSize,
		MaxBackups:   l.MaxBackups,
		MaxAge:       l.MaxAge,
		Compress:     l.Compress,
		EnableStdout: boolOr(l.EnableStdout, true),
	}
}
