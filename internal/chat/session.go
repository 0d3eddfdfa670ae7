package chat

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/keepmind9/pingbot/internal/logger"
	"github.com/keepmind9/pingbot/pkg/constants"
	"github.com/sirupsen/logrus"
)

// Session is an authenticated connection to a chat host
type Session struct {
	client Client
	id     string
	email  string
	host   string
	log    logrus.FieldLogger

	closeOnce sync.Once
	closeErr  error
}

// SessionOption customizes a Session
type SessionOption func(*Session)

// WithLogger makes the session and the rooms it opens log to l
func WithLogger(l logrus.FieldLogger) SessionOption {
	return func(s *Session) {
		s.log = l
	}
}

// Open logs client in and returns the session. An empty host means
// stackexchange.com.
func Open(client Client, email, password, host string, opts ...SessionOption) (*Session, error) {
	if host == "" {
		host = constants.DefaultHost
	}

	s := &Session{
		client: client,
		id:     uuid.NewString(),
		email:  email,
		host:   host,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.OrDefault(s.log).WithFields(logrus.Fields{
		"session_id": s.id,
		"host":       host,
	})

	s.log.WithField("email", maskEmail(email)).Debug("logging-in")

	if err := client.Login(host, email, password); err != nil {
		s.log.WithField("error", err).Error("chat-login-failed")
		return nil, fmt.Errorf("%w: %s at %s: %w", ErrAuthentication, maskEmail(email), host, err)
	}

	s.log.Info("chat-session-opened")
	return s, nil
}

// WithSession opens a session, runs fn and logs out afterwards no matter how
// fn returns. An error from fn takes precedence over a logout error.
func WithSession(client Client, email, password, host string, fn func(*Session) error, opts ...SessionOption) (err error) {
	s, err := Open(client, email, password, host, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}

// ID returns the random id used to correlate this session's log lines
func (s *Session) ID() string {
	return s.id
}

// Host returns the chat host the session is logged in to
func (s *Session) Host() string {
	return s.host
}

// Listen returns a handle for roomID. The room is joined when the handle is
// turned into an observer or participant.
func (s *Session) Listen(roomID int) *Listener {
	return &Listener{session: s, roomID: roomID}
}

// Observe joins roomID as an observer
func (s *Session) Observe(roomID int, config ObserverConfig) (*RoomObserver, error) {
	return NewRoomObserver(s, roomID, config)
}

// Participate joins roomID as a participant
func (s *Session) Participate(roomID int, config ParticipantConfig) (*RoomParticipant, error) {
	return NewRoomParticipant(s, roomID, config)
}

// Close logs the client out. Only the first call reaches the client.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.log.Debug("logging-out")
		if err := s.client.Logout(); err != nil {
			s.log.WithField("error", err).Warn("chat-logout-failed")
			s.closeErr = fmt.Errorf("failed to log out of %s: %w", s.host, err)
			return
		}
		s.log.Info("chat-session-closed")
	})
	return s.closeErr
}

// Listener is a session bound to a room that has not been joined yet
type Listener struct {
	session *Session
	roomID  int
}

// RoomID returns the room the listener is bound to
func (l *Listener) RoomID() int {
	return l.roomID
}

// Observe joins the room as an observer
func (l *Listener) Observe(config ObserverConfig) (*RoomObserver, error) {
	return NewRoomObserver(l.session, l.roomID, config)
}

// Participate joins the room as a participant
func (l *Listener) Participate(config ParticipantConfig) (*RoomParticipant, error) {
	return NewRoomParticipant(l.session, l.roomID, config)
}
