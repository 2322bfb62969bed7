// Package bot is the companion Discord bot: it watches chat for facebook
// post links and replies with the same links rewritten onto the fixer host,
// so the channel gets working embeds.
package bot

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"facebookfix/internal/config"
	"facebookfix/internal/pkg/urldetector"
)

// BotService handles Discord bot operations
type BotService struct {
	config      *config.Config
	logger      *slog.Logger
	session     *discordgo.Session
	urlDetector *urldetector.Detector
}

// New creates a new bot service
func New(config *config.Config, logger *slog.Logger) (*BotService, error) {
	session, err := discordgo.New("Bot " + config.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	botService := &BotService{
		config:      config,
		logger:      logger,
		session:     session,
		urlDetector: urldetector.New(),
	}

	botService.registerHandlers()

	return botService, nil
}

func (s *BotService) Start() error {
	s.logger.Info("Starting Discord bot...")

	// Reading message content requires the privileged intent
	s.session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	if err := s.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	s.logger.Info("Discord bot connected successfully")

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("Bot is running. Press Ctrl+C to stop.")
	<-stop

	s.logger.Info("Shutting down Discord bot...")
	return s.Stop()
}

func (s *BotService) Stop() error {
	if s.session != nil {
		s.logger.Info("Closing Discord connection...")
		if err := s.session.Close(); err != nil {
			s.logger.Error("Error closing Discord connection", "error", err)
			return err
		}
	}

	s.logger.Info("Discord bot stopped")
	return nil
}

func (s *BotService) registerHandlers() {
	s.session.AddHandler(s.onReady)
	s.session.AddHandler(s.onMessageCreate)
}

// onReady is called when the bot successfully connects to Discord
func (s *BotService) onReady(session *discordgo.Session, ready *discordgo.Ready) {
	s.logger.Info("Bot is ready",
		"username", ready.User.Username,
		"guilds", len(ready.Guilds),
	)
}
