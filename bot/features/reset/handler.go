package reset

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gachabot/bot/common"
	"gachabot/service"
)

// Feature handles the quota reset command. It zeroes the guild's spin
// counter and sweeps the channel of old spin announcements.
type Feature struct {
	counterService service.CounterService
	isPrivileged   func(userID string) bool
}

func New(counterService service.CounterService, isPrivileged func(userID string) bool) *Feature {
	return &Feature{counterService: counterService, isPrivileged: isPrivileged}
}

func (f *Feature) HandleCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx := context.Background()

	if !f.isPrivileged(m.Author.ID) {
		f.reply(s, m.ChannelID, "❌ Only the owner or an authorized admin can reset the gacha~")
		return
	}

	guildID := common.MessageGuildID(m)

	// Announcement cleanup is best effort. The counter reset happens
	// regardless of how it went.
	if err := f.clearRewardAnnouncements(s, m.ChannelID); err != nil {
		log.WithField("channel_id", m.ChannelID).WithError(err).Warn("Failed to sweep reward announcements")
		f.reply(s, m.ChannelID, "⚠️ Couldn't clear the old spin results, resetting the counter anyway~")
	}

	if err := f.counterService.Reset(ctx, guildID); err != nil {
		log.WithField("guild_id", guildID).WithError(err).Error("Failed to reset spin counter")
		f.reply(s, m.ChannelID, "⚠️ Couldn't reset the spin counter. Please try again.")
		return
	}

	f.reply(s, m.ChannelID, "🔄 Spin counter is back to **0**! Let the next round begin 💫")
}

// clearRewardAnnouncements deletes the bot's own spin announcements from the
// most recent messages in the channel. Individual delete failures are logged
// and skipped.
func (f *Feature) clearRewardAnnouncements(s *discordgo.Session, channelID string) error {
	messages, err := s.ChannelMessages(channelID, 100, "", "", "")
	if err != nil {
		return err
	}

	botID := ""
	if s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}

	for _, msg := range messages {
		if msg.Author == nil || msg.Author.ID != botID {
			continue
		}
		if !strings.Contains(msg.Content, common.RewardAnnouncePhrase) {
			continue
		}
		if err := s.ChannelMessageDelete(channelID, msg.ID); err != nil {
			log.WithFields(log.Fields{
				"channel_id": channelID,
				"message_id": msg.ID,
			}).WithError(err).Warn("Failed to delete spin announcement")
		}
	}
	return nil
}

func (f *Feature) reply(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.WithField("channel_id", channelID).WithError(err).Warn("Failed to send reset reply")
	}
}
