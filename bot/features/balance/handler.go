package balance

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gachabot/bot/common"
	"gachabot/service"
)

// Feature answers the balance button with an ephemeral coin total.
type Feature struct {
	ledgerService service.LedgerService
}

func New(ledgerService service.LedgerService) *Feature {
	return &Feature{ledgerService: ledgerService}
}

func (f *Feature) HandleButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	user := common.InteractionUser(i)
	guildID := common.InteractionGuildID(i)

	if err := common.DeferResponse(s, i, true); err != nil {
		log.WithError(err).Error("Failed to defer balance interaction")
		return
	}

	total, err := f.ledgerService.GetBalance(ctx, user.ID, guildID)
	if err != nil && !errors.Is(err, service.ErrNoLedgerEntry) {
		common.HandleError(s, i, common.NewSystemError(err, "failed to read balance"), true)
		return
	}

	// A user with no ledger rows simply has nothing yet.
	common.EditDeferred(s, i, fmt.Sprintf("💰 You have **%d coins** in this server", total))
}
