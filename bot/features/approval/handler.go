package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gachabot/bot/common"
	"gachabot/service"
)

// Feature resolves pending slips when an admin clicks approve or reject.
type Feature struct {
	ledgerService service.LedgerService
}

func New(ledgerService service.LedgerService) *Feature {
	return &Feature{ledgerService: ledgerService}
}

// HandleButton processes an approve/reject click. The clicked message is
// rewritten with the outcome and its buttons removed, then the submitter is
// told the verdict over DM.
func (f *Feature) HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate, action Action) {
	ctx := context.Background()

	guildID := action.GuildID
	if guildID == "" {
		guildID = common.InteractionGuildID(i)
	}

	var err error
	var coinsGranted int64
	switch action.Kind {
	case KindApprove:
		approved, aerr := f.ledgerService.Approve(ctx, action.UserID, guildID, action.Amount)
		if aerr == nil {
			coinsGranted = approved.Coins
		}
		err = aerr
	case KindReject:
		_, err = f.ledgerService.Reject(ctx, action.UserID, guildID)
	}

	if errors.Is(err, service.ErrNoPendingSlip) {
		common.RespondEphemeral(s, i, "❌ No pending slip found for that user. It may already be resolved.")
		return
	}
	if err != nil {
		log.WithFields(log.Fields{
			"user_id":  action.UserID,
			"guild_id": guildID,
		}).WithError(err).Error("Failed to resolve slip")
		common.RespondEphemeral(s, i, "⚠️ Couldn't update the ledger. Please try again.")
		return
	}

	admin := common.InteractionUser(i)
	submitterName := action.UserID
	if user, uerr := s.User(action.UserID); uerr == nil {
		submitterName = user.Username
	}

	var outcome string
	if action.Kind == KindApprove {
		outcome = fmt.Sprintf("✅ **%s** approved %s's slip (%s, +%d coins)",
			admin.Username, submitterName, common.FormatAmount(action.Amount), coinsGranted)
	} else {
		outcome = fmt.Sprintf("❌ **%s** rejected %s's slip", admin.Username, submitterName)
	}
	common.UpdateMessage(s, i, outcome)

	f.notifySubmitter(s, action, coinsGranted)
}

// notifySubmitter DMs the verdict to the user who sent the slip. Failure is
// logged only; the ledger update already happened.
func (f *Feature) notifySubmitter(s *discordgo.Session, action Action, coinsGranted int64) {
	dm, err := s.UserChannelCreate(action.UserID)
	if err != nil {
		log.WithField("user_id", action.UserID).WithError(err).Warn("Failed to open DM for slip verdict")
		return
	}

	var msg string
	if action.Kind == KindApprove {
		msg = fmt.Sprintf("💚 Your payment of **%s** was approved! **%d coins** have been added 🎉",
			common.FormatAmount(action.Amount), coinsGranted)
	} else {
		msg = "😢 Your slip was rejected. If you think this is a mistake, please contact an admin."
	}

	if _, err := s.ChannelMessageSend(dm.ID, msg); err != nil {
		log.WithField("user_id", action.UserID).WithError(err).Warn("Failed to DM slip verdict")
	}
}

