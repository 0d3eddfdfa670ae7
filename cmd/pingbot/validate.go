package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/keepmind9/pingbot/internal/chat"
	"github.com/keepmind9/pingbot/internal/config"
	"github.com/spf13/cobra"
)

var (
	validateConfigFile string
	validateShow       bool
	validateJSON       bool
	validateStrict     bool
)

// ValidationResult represents the validation result
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Config   string   `json:"config"`
	Host     string   `json:"host,omitempty"`
	RoomID   int      `json:"room_id,omitempty"`
	Role     string   `json:"role,omitempty"`
	Watch    string   `json:"watch,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate pingbot configuration file",
	Long: `Validate the pingbot configuration file without joining any room.

This command checks:
  - YAML syntax
  - Environment variable references
  - Chat credentials
  - Room settings (id, role, mention templates, watch mode)

Exit codes:
  0 - Configuration is valid
  1 - Configuration has errors (or warnings with --strict)`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		configFile := validateConfigFile
		if configFile == "" {
			configFile = findConfigFile()
		}
		if configFile == "" {
			fmt.Fprintln(out, "❌ No configuration file found")
			fmt.Fprintln(out, "\nSpecify a config file with --config or ensure one exists at:")
			for _, loc := range defaultConfigLocations() {
				fmt.Fprintf(out, "  - %s\n", loc)
			}
			os.Exit(1)
		}

		result, cfg := validateFile(configFile, validateStrict)
		if validateShow && cfg != nil {
			showConfig(out, configFile, cfg)
		}
		outputValidationResult(out, result, validateJSON)

		if !result.Valid {
			os.Exit(1)
		}
	},
}

func defaultConfigLocations() []string {
	return []string{
		"config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/pingbot/config.yaml"),
		"/etc/pingbot/config.yaml",
	}
}

func findConfigFile() string {
	for _, loc := range defaultConfigLocations() {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// validateFile loads configFile and collects errors and warnings. With strict
// set, warnings make the result invalid.
func validateFile(configFile string, strict bool) (ValidationResult, *config.Config) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return ValidationResult{
			Valid:  false,
			Config: configFile,
			Errors: []string{err.Error()},
		}, nil
	}

	result := ValidationResult{
		Valid:    true,
		Config:   configFile,
		Host:     cfg.Chat.Host,
		RoomID:   cfg.Room.ID,
		Role:     cfg.Room.Role,
		Watch:    cfg.Room.Watch,
		Warnings: validateConfigDetails(cfg),
	}
	if strict && len(result.Warnings) > 0 {
		result.Valid = false
	}
	return result, cfg
}

func validateConfigDetails(cfg *config.Config) []string {
	var warnings []string

	if !slices.Contains(chat.Drivers(), cfg.Chat.Driver) {
		warnings = append(warnings, fmt.Sprintf("chat driver %q is not linked into this binary - run will fail (registered: %v)", cfg.Chat.Driver, chat.Drivers()))
	}

	if !cfg.Room.ObserverConfig().LeaveRoomOnClose {
		warnings = append(warnings, "leave_on_close is disabled - the bot stays listed in the room after shutdown")
	}

	if cfg.Room.WatchMode() == chat.WatchModePolling && cfg.Room.PollIntervalDuration() < time.Second {
		warnings = append(warnings, fmt.Sprintf("poll_interval %s is aggressive - the chat host may rate limit the bot", cfg.Room.PollInterval))
	}

	if cfg.Logging.File == "" && !cfg.Logging.LoggerConfig().EnableStdout {
		warnings = append(warnings, "logging has no output - set logging.file or enable_stdout")
	}

	return warnings
}

func showConfig(out io.Writer, configFile string, cfg *config.Config) {
	fmt.Fprintf(out, "✓ Configuration loaded: %s\n\n", configFile)
	fmt.Fprintf(out, "Chat:\n")
	fmt.Fprintf(out, "  - driver: %s\n", cfg.Chat.Driver)
	fmt.Fprintf(out, "  - host: %s\n", cfg.Chat.Host)
	fmt.Fprintf(out, "  - email: %s\n", cfg.Chat.Email)
	fmt.Fprintf(out, "\nRoom %d:\n", cfg.Room.ID)
	fmt.Fprintf(out, "  - role: %s\n", cfg.Room.Role)
	fmt.Fprintf(out, "  - watch: %s\n", cfg.Room.Watch)
	if cfg.Room.WatchMode() == chat.WatchModePolling {
		fmt.Fprintf(out, "  - poll_interval: %s\n", cfg.Room.PollInterval)
	}
	participant := cfg.Room.ParticipantConfig()
	fmt.Fprintf(out, "  - leave_on_close: %v\n", participant.LeaveRoomOnClose)
	if !cfg.Room.IsObserver() {
		fmt.Fprintf(out, "  - announce: %v\n", participant.Announce)
		fmt.Fprintf(out, "  - goodbye_delay: %s\n", participant.GoodbyeDelay)
	}
	fmt.Fprintf(out, "  - ping_format: %s\n", cfg.Room.PingFormat)
	fmt.Fprintf(out, "  - superping_format: %s\n", cfg.Room.SuperpingFormat)
	fmt.Fprintln(out)
}

func outputValidationResult(out io.Writer, result ValidationResult, jsonFormat bool) {
	if jsonFormat {
		output, err := json.Marshal(result)
		if err != nil {
			fmt.Fprintf(out, "{\"error\": \"failed to marshal json: %v\"}\n", err)
			return
		}
		fmt.Fprintln(out, string(output))
		return
	}

	if result.Valid {
		fmt.Fprintln(out, "✓ Configuration is valid")
		fmt.Fprintf(out, "  - Config: %s\n", result.Config)
		fmt.Fprintf(out, "  - Host: %s\n", result.Host)
		fmt.Fprintf(out, "  - Room: %d (%s, %s watch)\n", result.RoomID, result.Role, result.Watch)
		if len(result.Warnings) > 0 {
			fmt.Fprintln(out, "\n⚠️  Warnings:")
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "  - %s\n", warning)
			}
		}
		return
	}

	fmt.Fprintln(out, "❌ Configuration validation failed:")
	if len(result.Errors) > 0 {
		fmt.Fprintln(out, "\nErrors:")
		for _, errMsg := range result.Errors {
			fmt.Fprintf(out, "  - %s\n", errMsg)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, warning := range result.Warnings {
			fmt.Fprintf(out, "  - %s\n", warning)
		}
	}
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "config", "c", "", "Configuration file path")
	validateCmd.Flags().BoolVar(&validateShow, "show", false, "Show full configuration details")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat warnings as errors")
}
