package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// onMessageCreate handles new Discord messages
func (s *BotService) onMessageCreate(session *discordgo.Session, message *discordgo.MessageCreate) {
	// Ignore bot messages, our own replies included
	if message.Author.Bot {
		return
	}

	urls := s.urlDetector.DetectURLs(message.Content)
	if len(urls) == 0 {
		return
	}

	var fixed []string
	for _, info := range urls {
		rewritten, ok := s.urlDetector.Rewrite(info, s.config.PublicHost)
		if !ok {
			s.logger.Warn("Failed to rewrite detected URL", "url", info.URL)
			continue
		}
		fixed = append(fixed, rewritten)
	}
	if len(fixed) == 0 {
		return
	}

	s.logger.Info("Rewriting facebook links",
		"message_id", message.ID,
		"channel_id", message.ChannelID,
		"guild_id", message.GuildID,
		"count", len(fixed),
	)

	reply := strings.Join(fixed, "\n")
	if _, err := session.ChannelMessageSendReply(message.ChannelID, reply, message.Reference()); err != nil {
		s.logger.Error("Failed to send reply",
			"error", err,
			"message_id", message.ID,
			"channel_id", message.ChannelID,
		)
	}
}
