// Package chat provides room sessions for a bot on Stack Exchange chat.
//
// The package does not speak the chat protocol itself. It drives an external
// client through the Client and Room interfaces and adds the lifecycle rules
// a bot needs on top of them.
//
// # Roles
//
//   - RoomObserver: joins a room, relays events and leaves exactly once
//   - RoomParticipant: an observer that can also send and reply, announcing
//     itself when it joins and when it leaves
//
// # Usage
//
//	session, err := chat.Open(client, email, password, "stackexchange.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	room, err := session.Participate(roomID, chat.DefaultParticipantConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer room.Close()
//
//	room.Send("hello")
//
// # Thread Safety
//
// Close may be called from any goroutine at any time, concurrently with other
// calls. Only the first Close performs the leave; later ones return nil.
// Event handlers run on whatever goroutine the client delivers them on.
package chat

import (
	"iter"
	"time"
)

// Event is a room event as produced by the client. Its structure is owned by
// the client; this package only relays it.
type Event any

// EventHandler receives events delivered by a Room watch.
type EventHandler func(Event)

// Message is something that can be replied to, usually a chat message event.
type Message interface {
	Reply(text string) error
}

// Client defines what we need from an authenticated chat client.
type Client interface {
	// Login authenticates against host with the given credentials
	Login(host, email, password string) error

	// Logout ends the authenticated session
	Logout() error

	// Room returns a handle for roomID without joining it
	Room(roomID int) Room
}

// Room defines what we need from a chat room handle.
type Room interface {
	Join() error
	Leave() error

	// Watch registers handler using the client's default transport
	Watch(handler EventHandler) error
	// WatchPolling registers handler, fetching events every interval
	WatchPolling(handler EventHandler, interval time.Duration) error
	// WatchSocket registers handler on the client's socket transport
	WatchSocket(handler EventHandler) error

	SendMessage(text string) error

	// NewEvents returns the events that arrived since the last poll.
	// Every call returns an independent sequence.
	NewEvents() iter.Seq[Event]

	// PingableUserIDs and PingableUserNames are parallel slices
	PingableUserIDs() ([]int, error)
	PingableUserNames() ([]string, error)

	CurrentUserIDs() ([]int, error)
}

// Sender is implemented by roles that can post to a room.
type Sender interface {
	Send(message string) error
	Reply(message string, target Message) error
}
