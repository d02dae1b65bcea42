package gacha

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gachabot/bot/common"
	"gachabot/service"
)

// Feature runs a spin when a user clicks the gacha button.
type Feature struct {
	gachaService service.GachaService
	spinLimit    int
}

func New(gachaService service.GachaService, spinLimit int) *Feature {
	return &Feature{gachaService: gachaService, spinLimit: spinLimit}
}

func (f *Feature) HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	guildID := common.InteractionGuildID(i)

	// Defer publicly; the spin result is announced to the whole channel.
	if err := common.DeferResponse(s, i, false); err != nil {
		log.WithError(err).Error("Failed to defer gacha interaction")
		return
	}

	result, err := f.gachaService.Spin(ctx, user.ID, guildID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoLedgerEntry):
			common.EditDeferred(s, i, "❌ You don't have any coins yet. Top up first! 💚")
		case errors.Is(err, service.ErrInsufficientFunds):
			common.EditDeferred(s, i, "❌ You don't have enough coins for a spin!")
		case errors.Is(err, service.ErrQuotaExceeded):
			common.EditDeferred(s, i, fmt.Sprintf("🔒 All **%d** spins for this round are used up. Wait for the next reset~", f.spinLimit))
		default:
			common.HandleError(s, i, common.NewSystemError(err, "gacha spin failed"), true)
		}
		return
	}

	content := fmt.Sprintf("🎉 %s %s **%s**!\n🎰 Spin %d/%d\n💰 Coins left: **%d**",
		common.GetUserMention(user.ID), common.RewardAnnouncePhrase, result.Reward,
		result.SpinNumber, result.SpinLimit, result.Remaining)
	common.EditDeferred(s, i, content)

	if result.LimitReached {
		if _, err := s.ChannelMessageSend(i.ChannelID,
			fmt.Sprintf("🔒 That was spin **%d/%d**! The gacha is locked until the next reset 💚", result.SpinNumber, result.SpinLimit)); err != nil {
			log.WithError(err).Warn("Failed to announce spin lock")
		}
	}
}
