package constants

import "time"

// Chat platform defaults
const (
	// DefaultHost is the chat host used when none is configured
	DefaultHost = "stackexchange.com"
	// DefaultPingFormat renders a mention for a user pingable by name
	DefaultPingFormat = "@{}"
	// DefaultSuperpingFormat renders a mention for a user addressed by id
	DefaultSuperpingFormat = "@@{}"
	// FormatPlaceholder is replaced with the name or id in mention templates
	FormatPlaceholder = "{}"
)

// Automated message tagging
const (
	// AutoMessageMarker prefixes every message the bot sends
	AutoMessageMarker = "[auto]"
	// AnnounceJoinMessage is sent when a participant becomes active
	AnnounceJoinMessage = "Ping bot is now active"
	// AnnounceLeaveMessage is sent when a participant closes
	AnnounceLeaveMessage = "Ping bot is leaving"
)

// Timeouts and delays
const (
	// DefaultGoodbyeDelay gives the client time to flush its outbound queue
	// after the goodbye message and before the room is left
	DefaultGoodbyeDelay = 500 * time.Millisecond
	// DefaultPollInterval is used by the polling watch mode
	DefaultPollInterval = 5 * time.Second
	// MinPollInterval is the lower bound accepted for poll_interval
	MinPollInterval = 100 * time.Millisecond
	// MaxPollInterval is the upper bound accepted for poll_interval
	MaxPollInterval = 60 * time.Second
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 100
	// DefaultLogMaxBackups is the default number of rotated files to keep
	DefaultLogMaxBackups = 5
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
)

// Credential masking
const (
	// MinSecretLengthForMasking is the minimum length to keep a prefix and suffix
	MinSecretLengthForMasking = 8
	// SecretMaskPrefixLength is the length of prefix to show before masking
	SecretMaskPrefixLength = 2
	// SecretMaskSuffixLength is the length of suffix to show after masking
	SecretMaskSuffixLength = 2
)
