package topup

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gachabot/models"
	"gachabot/service"
)

type recordingTransport struct {
	bodies []string
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		body, _ := io.ReadAll(req.Body)
		rt.bodies = append(rt.bodies, string(body))
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func newRecordedSession(t *testing.T) (*discordgo.Session, *recordingTransport) {
	t.Helper()
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	transport := &recordingTransport{}
	session.Client = &http.Client{Transport: transport}
	return session, transport
}

func slipMessage(content string, attachments ...*discordgo.MessageAttachment) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:          "555",
			ChannelID:   "dm-channel",
			Content:     content,
			Author:      &discordgo.User{ID: "111", Username: "tester"},
			Attachments: attachments,
		},
	}
}

func TestParseSlipMessage(t *testing.T) {
	slip := &discordgo.MessageAttachment{URL: "https://cdn.example/slip.png"}

	tests := []struct {
		name        string
		message     *discordgo.MessageCreate
		wantAmount  float64
		wantURL     string
		wantErrText string
	}{
		{
			name:       "valid submission",
			message:    slipMessage("!slip 100", slip),
			wantAmount: 100,
			wantURL:    "https://cdn.example/slip.png",
		},
		{
			name:       "fractional amount",
			message:    slipMessage("!slip 99.5", slip),
			wantAmount: 99.5,
			wantURL:    "https://cdn.example/slip.png",
		},
		{
			name:        "missing amount",
			message:     slipMessage("!slip", slip),
			wantErrText: "include the amount",
		},
		{
			name:        "non-numeric amount",
			message:     slipMessage("!slip abc", slip),
			wantErrText: "doesn't look right",
		},
		{
			name:        "zero amount",
			message:     slipMessage("!slip 0", slip),
			wantErrText: "doesn't look right",
		},
		{
			name:        "negative amount",
			message:     slipMessage("!slip -50", slip),
			wantErrText: "doesn't look right",
		},
		{
			name:        "no attachment",
			message:     slipMessage("!slip 100"),
			wantErrText: "attach your payment slip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, slipURL, errMsg := parseSlipMessage(tt.message)
			if tt.wantErrText != "" {
				assert.Contains(t, errMsg, tt.wantErrText)
				assert.Zero(t, amount)
				assert.Empty(t, slipURL)
				return
			}
			assert.Empty(t, errMsg)
			assert.Equal(t, tt.wantAmount, amount)
			assert.Equal(t, tt.wantURL, slipURL)
		})
	}
}

func TestHandleDirectMessage_NoPendingTopUp(t *testing.T) {
	session, transport := newRecordedSession(t)
	mockLedger := new(service.MockLedgerService)
	feature := New(service.NewTopUpService(30*time.Minute), mockLedger, "")

	feature.HandleDirectMessage(session, slipMessage("!slip 100",
		&discordgo.MessageAttachment{URL: "https://cdn.example/slip.png"}))

	mockLedger.AssertNotCalled(t, "RecordSlip",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	require.Len(t, transport.bodies, 1)
	assert.Contains(t, transport.bodies[0], "top-up in progress")
}

func TestHandleDirectMessage_MalformedSlipKeepsPending(t *testing.T) {
	session, transport := newRecordedSession(t)
	mockLedger := new(service.MockLedgerService)
	topUpService := service.NewTopUpService(30 * time.Minute)
	topUpService.Begin(models.PendingTopUp{
		UserID:    "111",
		GuildID:   "999",
		GuildName: "Test Guild",
		ChannelID: "origin-channel",
	})
	feature := New(topUpService, mockLedger, "")

	feature.HandleDirectMessage(session, slipMessage("!slip abc",
		&discordgo.MessageAttachment{URL: "https://cdn.example/slip.png"}))

	mockLedger.AssertNotCalled(t, "RecordSlip",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// A bad submission costs nothing; the user can try again.
	_, ok := topUpService.Get("111")
	assert.True(t, ok)
	require.Len(t, transport.bodies, 1)
	assert.Contains(t, transport.bodies[0], "doesn't look right")
}

func TestHandleDirectMessage_RecordsSlipAndNotifies(t *testing.T) {
	session, transport := newRecordedSession(t)
	mockLedger := new(service.MockLedgerService)
	mockLedger.On("RecordSlip", mock.Anything, "111", "tester", "999", "Test Guild", "https://cdn.example/slip.png").
		Return(&models.LedgerRow{ID: 7, UserID: "111", GuildID: "999", Status: models.SlipStatusPending}, nil).Once()

	topUpService := service.NewTopUpService(30 * time.Minute)
	topUpService.Begin(models.PendingTopUp{
		UserID:    "111",
		GuildID:   "999",
		GuildName: "Test Guild",
		ChannelID: "origin-channel",
	})
	feature := New(topUpService, mockLedger, "")

	feature.HandleDirectMessage(session, slipMessage("!slip 100",
		&discordgo.MessageAttachment{URL: "https://cdn.example/slip.png"}))

	mockLedger.AssertExpectations(t)

	// The pending top-up is consumed once the slip row is durable
	_, ok := topUpService.Get("111")
	assert.False(t, ok)

	require.Len(t, transport.bodies, 2)
	assert.Contains(t, transport.bodies[0], "Got your slip")
	assert.Contains(t, transport.bodies[1], "approve_111_100_999")
	assert.Contains(t, transport.bodies[1], "reject_111_999")
}
