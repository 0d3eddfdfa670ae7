package chat

import "errors"

// Sentinel errors for room sessions
var (
	ErrAuthentication   = errors.New("chat authentication failed")
	ErrObserverClosed   = errors.New("room observer is closed")
	ErrUnknownWatchMode = errors.New("unknown watch mode")
	ErrUserListMismatch = errors.New("pingable user ids and names differ in length")
)
