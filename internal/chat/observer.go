package chat

import (
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/keepmind9/pingbot/pkg/constants"
	"github.com/sirupsen/logrus"
)

// WatchMode selects how room events are delivered
type WatchMode string

const (
	WatchModeCallback WatchMode = "callback" // client's default transport
	WatchModePolling  WatchMode = "polling"  // fetch new events at a fixed interval
	WatchModeSocket   WatchMode = "socket"   // push over the client's socket
)

// ParseWatchMode converts a configuration value into a WatchMode.
// An empty string selects WatchModeCallback.
func ParseWatchMode(s string) (WatchMode, error) {
	switch WatchMode(s) {
	case "":
		return WatchModeCallback, nil
	case WatchModeCallback, WatchModePolling, WatchModeSocket:
		return WatchMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWatchMode, s)
	}
}

// ObserverConfig holds the options of a RoomObserver
type ObserverConfig struct {
	LeaveRoomOnClose bool               // Leave the room on Close (false keeps the bot listed as present)
	PingFormat       string             // Mention template for pingable users (default: "@{}")
	SuperpingFormat  string             // Mention template for everyone else (default: "@@{}")
	Logger           logrus.FieldLogger // Defaults to the session logger
}

// DefaultObserverConfig returns the default observer configuration
func DefaultObserverConfig() ObserverConfig {
	return ObserverConfig{
		LeaveRoomOnClose: true,
		PingFormat:       constants.DefaultPingFormat,
		SuperpingFormat:  constants.DefaultSuperpingFormat,
	}
}

// RoomObserver is joined to one room and relays its events.
//
// The observer is active from a successful join until Close. It never
// becomes active again; a new observer is needed to rejoin.
type RoomObserver struct {
	roomID           int
	leaveRoomOnClose bool
	pingFormat       string
	superpingFormat  string
	log              logrus.FieldLogger

	mu     sync.RWMutex
	room   Room // nil once closed
	active atomic.Bool
}

// NewRoomObserver joins roomID through session. The observer is only
// returned when the join succeeded.
func NewRoomObserver(session *Session, roomID int, config ObserverConfig) (*RoomObserver, error) {
	if session == nil {
		return nil, fmt.Errorf("cannot join room %d without a session", roomID)
	}
	if config.PingFormat == "" {
		config.PingFormat = constants.DefaultPingFormat
	}
	if config.SuperpingFormat == "" {
		config.SuperpingFormat = constants.DefaultSuperpingFormat
	}

	log := config.Logger
	if log == nil {
		log = session.log
	}
	log = log.WithField("room_id", roomID)

	room := session.client.Room(roomID)
	if room == nil {
		return nil, fmt.Errorf("chat client returned no handle for room %d", roomID)
	}

	if err := room.Join(); err != nil {
		log.WithField("error", err).Error("failed-to-join-room")
		return nil, fmt.Errorf("failed to join room %d: %w", roomID, err)
	}

	o := &RoomObserver{
		roomID:           roomID,
		leaveRoomOnClose: config.LeaveRoomOnClose,
		pingFormat:       config.PingFormat,
		superpingFormat:  config.SuperpingFormat,
		log:              log,
		room:             room,
	}
	o.active.Store(true)

	log.Info("joined-room")
	return o, nil
}

// currentRoom returns the room, or nil once the observer has been closed.
// The lock only guards the reference; client calls run without it so event
// handlers may call Close.
func (o *RoomObserver) currentRoom() Room {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.room
}

func (o *RoomObserver) watch(mode WatchMode, register func(Room) error) error {
	if !o.active.Load() {
		o.log.WithField("mode", mode).Debug("ignoring-watch-on-inactive-observer")
		return nil
	}

	room := o.currentRoom()
	if room == nil {
		o.log.WithField("mode", mode).Debug("ignoring-watch-on-inactive-observer")
		return nil
	}
	if err := register(room); err != nil {
		return fmt.Errorf("failed to watch room %d (%s): %w", o.roomID, mode, err)
	}

	o.log.WithField("mode", mode).Debug("watching-room")
	return nil
}

// Watch delivers room events to handler using the client's default transport
func (o *RoomObserver) Watch(handler EventHandler) error {
	return o.watch(WatchModeCallback, func(r Room) error {
		return r.Watch(handler)
	})
}

// WatchPolling delivers room events to handler, polling every interval
func (o *RoomObserver) WatchPolling(handler EventHandler, interval time.Duration) error {
	return o.watch(WatchModePolling, func(r Room) error {
		return r.WatchPolling(handler, interval)
	})
}

// WatchSocket delivers room events to handler over the client's socket
func (o *RoomObserver) WatchSocket(handler EventHandler) error {
	return o.watch(WatchModeSocket, func(r Room) error {
		return r.WatchSocket(handler)
	})
}

// WatchWith registers handler with the transport selected by mode.
// A non-positive interval in polling mode falls back to the default.
func (o *RoomObserver) WatchWith(mode WatchMode, handler EventHandler, interval time.Duration) error {
	switch mode {
	case "", WatchModeCallback:
		return o.Watch(handler)
	case WatchModePolling:
		if interval <= 0 {
			interval = constants.DefaultPollInterval
		}
		return o.WatchPolling(handler, interval)
	case WatchModeSocket:
		return o.WatchSocket(handler)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownWatchMode, mode)
	}
}

// Close releases the room, leaving it when LeaveRoomOnClose is set.
// It is safe to call concurrently; only the first call does anything.
func (o *RoomObserver) Close() error {
	if !o.active.CompareAndSwap(true, false) {
		return nil
	}
	o.log.Debug("closing-room-observer")

	o.mu.Lock()
	room := o.room
	o.room = nil
	o.mu.Unlock()

	if !o.leaveRoomOnClose {
		o.log.Info("not-leaving-room")
		return nil
	}

	o.log.Info("leaving-room")
	if err := room.Leave(); err != nil {
		o.log.WithField("error", err).Warn("failed-to-leave-room")
		return fmt.Errorf("failed to leave room %d: %w", o.roomID, err)
	}
	return nil
}

// Events returns the room events that arrived since the last poll. Each
// call returns an independent sequence; nothing is yielded once closed.
func (o *RoomObserver) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		room := o.currentRoom()
		if room == nil {
			return
		}
		for event := range room.NewEvents() {
			if !yield(event) {
				return
			}
		}
	}
}

// PingString returns the mention string for one user
func (o *RoomObserver) PingString(userID int, quote bool) (string, error) {
	pings, err := o.PingStrings([]int{userID}, quote)
	if err != nil {
		return "", err
	}
	return pings[0], nil
}

// PingStrings returns one mention string per user id, in input order.
// Users the room can resolve to a name get PingFormat with the name, the
// rest SuperpingFormat with their id. With quote set, the templates are
// rendered as inline code.
func (o *RoomObserver) PingStrings(userIDs []int, quote bool) ([]string, error) {
	pingFormat, superpingFormat := o.pingFormat, o.superpingFormat
	if quote {
		pingFormat = codeQuote(pingFormat)
		superpingFormat = codeQuote(superpingFormat)
	}

	room := o.currentRoom()
	if room == nil {
		return nil, ErrObserverClosed
	}
	ids, err := room.PingableUserIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pingable users of room %d: %w", o.roomID, err)
	}
	names, err := room.PingableUserNames()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pingable users of room %d: %w", o.roomID, err)
	}
	if len(ids) != len(names) {
		return nil, fmt.Errorf("%w: %d ids, %d names", ErrUserListMismatch, len(ids), len(names))
	}

	pingable := make(map[int]string, len(ids))
	for i, id := range ids {
		pingable[id] = names[i]
	}

	pings := make([]string, len(userIDs))
	for i, id := range userIDs {
		pings[i] = formatPing(pingFormat, superpingFormat, id, pingable)
	}
	return pings, nil
}

// PresentUserIDs returns the users currently in the room
func (o *RoomObserver) PresentUserIDs() (UserIDSet, error) {
	return o.userIDs(Room.CurrentUserIDs)
}

// PingableUserIDs returns the users that can currently be pinged by name
func (o *RoomObserver) PingableUserIDs() (UserIDSet, error) {
	return o.userIDs(Room.PingableUserIDs)
}

func (o *RoomObserver) userIDs(query func(Room) ([]int, error)) (UserIDSet, error) {
	room := o.currentRoom()
	if room == nil {
		return nil, ErrObserverClosed
	}
	ids, err := query(room)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users of room %d: %w", o.roomID, err)
	}
	return newUserIDSet(ids), nil
}

// Active reports whether the observer is still joined
func (o *RoomObserver) Active() bool {
	return o.active.Load()
}

// RoomID returns the id of the observed room
func (o *RoomObserver) RoomID() int {
	return o.roomID
}

// LeaveRoomOnClose reports whether Close leaves the room
func (o *RoomObserver) LeaveRoomOnClose() bool {
	return o.leaveRoomOnClose
}
