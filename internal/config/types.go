package config

// Room roles
const (
	RoleObserver    = "observer"    // Join and watch only
	RoleParticipant = "participant" // Join, watch, send and announce
)

// Config represents the complete pingbot configuration structure
type Config struct {
	Chat    ChatConfig    `yaml:"chat"`
	Room    RoomConfig    `yaml:"room"`
	Logging LoggingConfig `yaml:"logging"`
}

// ChatConfig represents the chat account the bot logs in with
type ChatConfig struct {
	Driver   string `yaml:"driver"`   // Registered client driver (default: chatexchange)
	Host     string `yaml:"host"`     // Chat host (default: stackexchange.com)
	Email    string `yaml:"email"`    // Account email
	Password string `yaml:"password"` // Account password, usually "${PINGBOT_PASSWORD}"
}

// RoomConfig represents the room the bot joins and how it behaves there
type RoomConfig struct {
	ID              int    `yaml:"id"`
	Role            string `yaml:"role"`             // observer or participant (default: participant)
	LeaveOnClose    *bool  `yaml:"leave_on_close"`   // Leave the room on shutdown (default: true)
	Announce        *bool  `yaml:"announce"`         // Announce join and leave (default: true, participant only)
	PingFormat      string `yaml:"ping_format"`      // default: "@{}"
	SuperpingFormat string `yaml:"superping_format"` // default: "@@{}"
	Watch           string `yaml:"watch"`            // callback, polling or socket (default: callback)
	PollInterval    string `yaml:"poll_interval"`    // Polling mode interval (default: "5s")
	GoodbyeDelay    string `yaml:"goodbye_delay"`    // Wait after the goodbye message (default: "500ms")
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	File         string `yaml:"file"`          // Log file path
	MaxSize      int    `yaml:"max_size"`      // Single file max size in MB (default: 100)
	MaxBackups   int    `yaml:"max_backups"`   // Number of backups to keep (default: 5)
	MaxAge       int    `yaml:"max_age"`       // Maximum days to retain (default: 30)
	Compress     bool   `yaml:"compress"`      // Whether to compress old logs
	EnableStdout *bool  `yaml:"enable_stdout"` // Also output to stdout (default: true)
}
