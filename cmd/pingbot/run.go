package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keepmind9/pingbot/internal/chat"
	"github.com/keepmind9/pingbot/internal/config"
	"github.com/keepmind9/pingbot/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runConfigFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Join the configured chat room and watch it until interrupted",
	Long: `Log in with the configured chat driver, join the room as an observer or a
participant and watch its events. On SIGINT or SIGTERM the bot says goodbye
(participants with announce enabled), leaves the room and logs out.

The driver named by chat.driver must be linked into the binary: a client
package registers itself with chat.Register from its init function and is
imported for side effects. "pingbot validate" warns when it is missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(runConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := logger.InitLogger(cfg.Logging.LoggerConfig()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log := logger.GetLogger()
		log.WithFields(logrus.Fields{
			"config_file": runConfigFile,
			"log_level":   cfg.Logging.Level,
			"log_file":    cfg.Logging.File,
		}).Info("logger-initialized")

		client, err := chat.NewClient(cfg.Chat.Driver)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runBot(ctx, client, cfg, log)
	},
}

// roomSession is what runBot needs from either role
type roomSession interface {
	WatchWith(mode chat.WatchMode, handler chat.EventHandler, interval time.Duration) error
	Close() error
}

// runBot joins the configured room and blocks until ctx is done, then leaves
// the room and logs out.
func runBot(ctx context.Context, client chat.Client, cfg *config.Config, log logrus.FieldLogger) error {
	return chat.WithSession(client, cfg.Chat.Email, cfg.Chat.Password, cfg.Chat.Host, func(s *chat.Session) error {
		room, err := joinRoom(s, cfg.Room)
		if err != nil {
			return err
		}
		defer func() {
			if err := room.Close(); err != nil {
				log.WithField("error", err).Warn("failed-to-close-room")
			}
		}()

		handler := func(event chat.Event) {
			log.WithField("event", event).Debug("room-event")
		}
		if err := room.WatchWith(cfg.Room.WatchMode(), handler, cfg.Room.PollIntervalDuration()); err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"room_id": cfg.Room.ID,
			"role":    cfg.Room.Role,
			"watch":   cfg.Room.Watch,
		}).Info("pingbot-running")

		<-ctx.Done()
		log.Info("pingbot-shutting-down")
		return nil
	}, chat.WithLogger(log))
}

func joinRoom(s *chat.Session, room config.RoomConfig) (roomSession, error) {
	if room.IsObserver() {
		observer, err := s.Observe(room.ID, room.ObserverConfig())
		if err != nil {
			return nil, err
		}
		return observer, nil
	}

	participant, err := s.Participate(room.ID, room.ParticipantConfig())
	if err != nil {
		return nil, err
	}
	return participant, nil
}

func init() {
	runCmd.Flags().StringVarP(&runConfigFile, "config", "c", "config.yaml", "Configuration file path")
}
