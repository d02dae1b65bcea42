package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"gachabot/bot/common"
	"gachabot/bot/features/approval"
	"gachabot/bot/features/balance"
	"gachabot/bot/features/gacha"
	"gachabot/bot/features/menu"
	"gachabot/bot/features/reset"
	"gachabot/bot/features/topup"
	"gachabot/models"
	"gachabot/service"
)

// Config carries everything the Discord layer needs that isn't a service
type Config struct {
	Token          string
	OwnerID        string
	AdminChannelID string
	SpinLimit      int
	Rewards        []models.RewardEntry

	// IsPrivileged reports whether a user may run admin commands
	IsPrivileged func(userID string) bool
}

// Bot owns the Discord session and routes events to feature handlers
type Bot struct {
	session *discordgo.Session

	menuFeature     *menu.Feature
	gachaFeature    *gacha.Feature
	balanceFeature  *balance.Feature
	topupFeature    *topup.Feature
	approvalFeature *approval.Feature
	resetFeature    *reset.Feature
}

// New builds the bot, registers its handlers, and opens the gateway
func New(cfg Config,
	gachaService service.GachaService,
	ledgerService service.LedgerService,
	counterService service.CounterService,
	topUpService service.TopUpService,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Message content is needed for the prefix commands and the DM slip flow
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session:         session,
		menuFeature:     menu.New(cfg.OwnerID, cfg.Rewards, cfg.SpinLimit),
		gachaFeature:    gacha.New(gachaService, cfg.SpinLimit),
		balanceFeature:  balance.New(ledgerService),
		topupFeature:    topup.New(topUpService, ledgerService, cfg.AdminChannelID),
		approvalFeature: approval.New(ledgerService),
		resetFeature:    reset.New(counterService, cfg.IsPrivileged),
	}

	session.AddHandler(b.handleReady)
	session.AddHandler(b.handleMessageCreate)
	session.AddHandler(b.handleInteractionCreate)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord connection: %w", err)
	}

	return b, nil
}

// Close shuts down the Discord connection
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"username": r.User.Username,
		"guilds":   len(r.Guilds),
	}).Info("Discord connection ready")
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	fields := strings.Fields(m.Content)
	if len(fields) == 0 {
		return
	}

	switch strings.ToLower(fields[0]) {
	case "!menu":
		b.menuFeature.HandleCommand(s, m)
	case "!reset":
		b.resetFeature.HandleCommand(s, m)
	case "!slip":
		// Slips are only accepted over DM
		if m.GuildID == "" {
			b.topupFeature.HandleDirectMessage(s, m)
		}
	}
}

func (b *Bot) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch customID {
	case common.CustomIDGacha:
		b.gachaFeature.HandleButton(s, i)
	case common.CustomIDBalance:
		b.balanceFeature.HandleButton(s, i)
	case common.CustomIDSlip:
		b.topupFeature.HandleButton(s, i)
	default:
		if action, ok := approval.ParseAction(customID); ok {
			b.approvalFeature.HandleButton(s, i, action)
			return
		}
		log.WithField("custom_id", customID).Debug("Ignoring unknown component interaction")
	}
}
