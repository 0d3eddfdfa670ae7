package chat

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/keepmind9/pingbot/pkg/constants"
	"github.com/sirupsen/logrus"
)

// ParticipantConfig holds the options of a RoomParticipant
type ParticipantConfig struct {
	ObserverConfig

	Announce     bool          // Announce joining and leaving in the room
	GoodbyeDelay time.Duration // Wait after the goodbye message before leaving
}

// DefaultParticipantConfig returns the default participant configuration
func DefaultParticipantConfig() ParticipantConfig {
	return ParticipantConfig{
		ObserverConfig: DefaultObserverConfig(),
		Announce:       true,
		GoodbyeDelay:   constants.DefaultGoodbyeDelay,
	}
}

// RoomParticipant is a RoomObserver that can also post to the room.
//
// Sending is possible from construction until Close begins. Close says
// goodbye (when announcing) and then closes the observer.
type RoomParticipant struct {
	*RoomObserver

	announce     bool
	goodbyeDelay time.Duration

	participantActive atomic.Bool
}

var _ Sender = (*RoomParticipant)(nil)

// NewRoomParticipant joins roomID through session and, when announcing,
// tells the room the bot is active.
func NewRoomParticipant(session *Session, roomID int, config ParticipantConfig) (*RoomParticipant, error) {
	observer, err := NewRoomObserver(session, roomID, config.ObserverConfig)
	if err != nil {
		return nil, err
	}

	p := &RoomParticipant{
		RoomObserver: observer,
		announce:     config.Announce,
		goodbyeDelay: config.GoodbyeDelay,
	}
	p.participantActive.Store(true)

	if p.announce {
		if err := p.send(constants.AnnounceJoinMessage, nil); err != nil {
			p.log.WithField("error", err).Warn("failed-to-send-announcement")
		}
	}

	return p, nil
}

// Send posts message to the room. It is dropped once the participant is
// inactive.
func (p *RoomParticipant) Send(message string) error {
	return p.Reply(message, nil)
}

// Reply answers target with message, or posts it to the room when target is
// nil. It is dropped once the participant is inactive.
func (p *RoomParticipant) Reply(message string, target Message) error {
	if !p.participantActive.Load() {
		p.log.WithField("message", message).Info("dropping-message-participant-inactive")
		return nil
	}
	return p.send(message, target)
}

// send skips the active check; Close uses it for the goodbye message.
func (p *RoomParticipant) send(message string, target Message) error {
	message = FormatMessage(message)
	log := p.log.WithField("message", message)

	if target != nil {
		log.Debug("replying-with-message")
		if err := target.Reply(message); err != nil {
			return fmt.Errorf("failed to reply in room %d: %w", p.roomID, err)
		}
		return nil
	}

	room := p.currentRoom()
	if room == nil {
		return ErrObserverClosed
	}
	log.Debug("sending-message")
	if err := room.SendMessage(message); err != nil {
		return fmt.Errorf("failed to send message to room %d: %w", p.roomID, err)
	}
	return nil
}

// Close deactivates the participant, says goodbye when announcing and closes
// the observer. Only the first call does anything; later calls, including
// ones made from an event handler during the goodbye, return nil at once.
func (p *RoomParticipant) Close() error {
	if !p.participantActive.CompareAndSwap(true, false) {
		return nil
	}
	p.log.Debug("closing-room-participant")
	if p.announce {
		p.sayGoodbye()
	}
	return p.RoomObserver.Close()
}

func (p *RoomParticipant) sayGoodbye() {
	defer func() {
		if r := recover(); r != nil {
			p.log.WithField("panic", r).Error("panic-sending-goodbye-message")
		}
	}()

	if err := p.send(constants.AnnounceLeaveMessage, nil); err != nil {
		p.log.WithFields(logrus.Fields{"error": err}).Error("failed-to-send-goodbye-message")
		return
	}
	if p.goodbyeDelay > 0 {
		time.Sleep(p.goodbyeDelay)
	}
}

// ParticipantActive reports whether the participant may still send
func (p *RoomParticipant) ParticipantActive() bool {
	return p.participantActive.Load()
}

// Announce reports whether the participant announces joining and leaving
func (p *RoomParticipant) Announce() bool {
	return p.announce
}

// Observer returns the underlying observer
func (p *RoomParticipant) Observer() *RoomObserver {
	return p.RoomObserver
}
