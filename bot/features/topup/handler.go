package topup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gachabot/bot/common"
	"gachabot/bot/features/approval"
	"gachabot/models"
	"gachabot/service"
)

// Feature drives the two-step top-up flow: the button opens a DM asking for
// a slip, and the DM handler records the slip and notifies the admins.
type Feature struct {
	topUpService   service.TopUpService
	ledgerService  service.LedgerService
	adminChannelID string
}

func New(topUpService service.TopUpService, ledgerService service.LedgerService, adminChannelID string) *Feature {
	return &Feature{
		topUpService:   topUpService,
		ledgerService:  ledgerService,
		adminChannelID: adminChannelID,
	}
}

// HandleButton starts a top-up. It remembers which guild the user came from
// and moves the conversation to DMs.
func (f *Feature) HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := common.InteractionUser(i)
	guildID := common.InteractionGuildID(i)

	f.topUpService.Begin(models.PendingTopUp{
		UserID:    user.ID,
		GuildID:   guildID,
		GuildName: f.guildName(s, i.GuildID),
		ChannelID: i.ChannelID,
	})

	dm, err := s.UserChannelCreate(user.ID)
	if err == nil {
		_, err = s.ChannelMessageSend(dm.ID,
			"💌 Send me your payment slip here!\nUse `!slip <amount>` and attach the slip image, e.g. `!slip 100` 💚")
	}
	if err != nil {
		log.WithField("user_id", user.ID).WithError(err).Warn("Failed to DM top-up prompt")
		common.RespondEphemeral(s, i,
			"⚠️ I couldn't DM you! Please allow direct messages from server members and press the button again.")
		return
	}

	common.RespondEphemeral(s, i, "📬 Check your DMs to submit the slip!")
}

// HandleDirectMessage processes a `!slip <amount>` DM with an attachment.
func (f *Feature) HandleDirectMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx := context.Background()

	amount, slipURL, perr := parseSlipMessage(m)
	if perr != "" {
		f.reply(s, m.ChannelID, perr)
		return
	}

	pending, ok := f.topUpService.Get(m.Author.ID)
	if !ok {
		f.reply(s, m.ChannelID, "❓ I don't have a top-up in progress for you. Press the **Top up** button in the server first~")
		return
	}

	row, err := f.ledgerService.RecordSlip(ctx, m.Author.ID, m.Author.Username, pending.GuildID, pending.GuildName, slipURL)
	if err != nil {
		log.WithFields(log.Fields{
			"user_id":  m.Author.ID,
			"guild_id": pending.GuildID,
		}).WithError(err).Error("Failed to record slip")
		f.reply(s, m.ChannelID, "⚠️ Couldn't save your slip. Please try again in a moment.")
		return
	}

	f.topUpService.Complete(m.Author.ID)
	f.reply(s, m.ChannelID, fmt.Sprintf("✅ Got your slip for **%s**! An admin will review it soon 💚", common.FormatAmount(amount)))

	if err := f.notifyAdmins(s, pending, m.Author, amount, slipURL); err != nil {
		log.WithFields(log.Fields{
			"user_id":  m.Author.ID,
			"guild_id": pending.GuildID,
			"row_id":   row.ID,
		}).WithError(err).Error("Failed to notify admins of slip")
		f.reply(s, m.ChannelID, "⚠️ Your slip is saved, but I couldn't reach the admins. Please ping one directly.")
	}
}

// notifyAdmins posts the slip embed with approve/reject buttons. The admin
// channel is preferred; the channel the top-up started from is the fallback.
func (f *Feature) notifyAdmins(s *discordgo.Session, pending models.PendingTopUp, submitter *discordgo.User, amount float64, slipURL string) error {
	embed := &discordgo.MessageEmbed{
		Title: "💸 New top-up slip",
		Color: common.ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("%s (%s)", submitter.Username, common.GetUserMention(submitter.ID)), Inline: true},
			{Name: "Amount", Value: common.FormatAmount(amount), Inline: true},
			{Name: "Server", Value: pending.GuildName, Inline: true},
		},
		Image: &discordgo.MessageEmbedImage{URL: slipURL},
	}
	send := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			approval.Buttons(submitter.ID, amount, pending.GuildID),
		},
	}

	if f.adminChannelID != "" {
		if _, err := s.ChannelMessageSendComplex(f.adminChannelID, send); err == nil {
			return nil
		} else {
			log.WithField("channel_id", f.adminChannelID).WithError(err).Warn("Admin channel unreachable, falling back to origin channel")
		}
	}

	_, err := s.ChannelMessageSendComplex(pending.ChannelID, send)
	return err
}

func (f *Feature) guildName(s *discordgo.Session, guildID string) string {
	if guildID == "" {
		return common.DMGuildID
	}
	if g, err := s.State.Guild(guildID); err == nil && g.Name != "" {
		return g.Name
	}
	if g, err := s.Guild(guildID); err == nil {
		return g.Name
	}
	return "Unknown Server"
}

func (f *Feature) reply(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.WithField("channel_id", channelID).WithError(err).Warn("Failed to send top-up reply")
	}
}

// parseSlipMessage validates a `!slip` DM. It returns a user-facing
// correction message when the submission is malformed.
func parseSlipMessage(m *discordgo.MessageCreate) (amount float64, slipURL string, errMsg string) {
	fields := strings.Fields(m.Content)
	if len(fields) < 2 {
		return 0, "", "❓ Please include the amount, e.g. `!slip 100`"
	}

	amount, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || amount <= 0 {
		return 0, "", "❓ That amount doesn't look right. Use a positive number, e.g. `!slip 100`"
	}

	if len(m.Attachments) == 0 {
		return 0, "", "📎 Please attach your payment slip image to the same message!"
	}

	return amount, m.Attachments[0].URL, ""
}
