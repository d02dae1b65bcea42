package menu

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gachabot/bot/common"
	"gachabot/models"
	"gachabot/service"
)

// Feature posts the gacha menu embed with its three buttons. Only the owner
// may post it; everyone interacts with it through the buttons afterwards.
type Feature struct {
	ownerID   string
	rewards   []models.RewardEntry
	spinLimit int
}

func New(ownerID string, rewards []models.RewardEntry, spinLimit int) *Feature {
	return &Feature{ownerID: ownerID, rewards: rewards, spinLimit: spinLimit}
}

func (f *Feature) HandleCommand(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID != f.ownerID {
		if _, err := s.ChannelMessageSend(m.ChannelID, "❌ Only the owner can post the menu~"); err != nil {
			log.WithError(err).Warn("Failed to send menu rejection")
		}
		return
	}

	embed := f.buildEmbed()
	buttons := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Spin 🎰",
				Style:    discordgo.PrimaryButton,
				CustomID: common.CustomIDGacha,
			},
			discordgo.Button{
				Label:    "Balance 💰",
				Style:    discordgo.SecondaryButton,
				CustomID: common.CustomIDBalance,
			},
			discordgo.Button{
				Label:    "Top up 💸",
				Style:    discordgo.SuccessButton,
				CustomID: common.CustomIDSlip,
			},
		},
	}

	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{buttons},
	})
	if err != nil {
		log.WithField("channel_id", m.ChannelID).WithError(err).Error("Failed to post menu")
		return
	}

	if _, err := s.ChannelMessageSendReply(m.ChannelID, "✅ Menu is up! Let the spins begin~", m.Reference()); err != nil {
		log.WithError(err).Warn("Failed to confirm menu post")
	}
}

func (f *Feature) buildEmbed() *discordgo.MessageEmbed {
	var lines []string
	for _, entry := range f.rewards {
		lines = append(lines, fmt.Sprintf("• %s — %d%%", entry.Label, entry.Weight))
	}

	return &discordgo.MessageEmbed{
		Title: "🎀 Sketch Gacha 🎀",
		Description: fmt.Sprintf(
			"Press **Spin** to try your luck! Each spin costs **%d coin**.\n"+
				"Top up **%d** to get **1 coin**.\nOnly **%d spins** per server each round~",
			service.CoinsPerSpin, service.ExchangeRate, f.spinLimit),
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Prizes",
				Value: strings.Join(lines, "\n"),
			},
			{
				Name:  "How to top up",
				Value: "Press **Top up**, then send `!slip <amount>` with your payment slip attached in my DMs 💌",
			},
		},
	}
}
