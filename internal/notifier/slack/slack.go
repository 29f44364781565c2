package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clubops/teesheet/internal/booking"
	"github.com/clubops/teesheet/internal/folio"
	"github.com/clubops/teesheet/internal/metrics"
	"github.com/clubops/teesheet/internal/notifier"
	"github.com/clubops/teesheet/internal/pricing"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending staff notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncStaffNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncStaffNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendCheckInNotification(b *booking.Booking, dryRun bool) error {
	msg := s.formatCheckInNotification(b)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendRateGapWarning(b *booking.Booking, code pricing.IdentityCode, dryRun bool) error {
	msg := s.formatRateGapWarning(b, code)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendSettlementNotification(f *folio.Folio, forced bool, dryRun bool) error {
	msg := s.formatSettlementNotification(f, forced)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatCheckInNotification creates the Slack message for a checked-in party using Block Kit.
func (s *Notifier) formatCheckInNotification(b *booking.Booking) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Party checked in", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Course: %s\nTee time: %s\nHoles: %d",
		b.CourseID, b.TeeTime.Format("Monday 02 Jan, 15:04"), b.HolesBooked)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var playerLines []string
	for _, p := range b.Players {
		if p.Name != "" {
			playerLines = append(playerLines, fmt.Sprintf("- %s (%s)", p.Name, p.IdentityCode))
		}
	}
	if len(playerLines) > 0 {
		playersText := "Players:\n" + strings.Join(playerLines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playersText, true, false), nil, nil))
	}

	var contextElements []slack.MixedElement
	if b.Resources.CaddyID != "" {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("Caddy: %s", b.Resources.CaddyID), true, false))
	}
	if b.Resources.CartNo != "" {
		contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", fmt.Sprintf("Cart: %s", b.Resources.CartNo), true, false))
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatRateGapWarning flags a zero-amount charge so staff can fix the rate sheet.
func (s *Notifier) formatRateGapWarning(b *booking.Booking, code pricing.IdentityCode) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Rate sheet gap", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("No rate configured for identity %q on %s (%s).\nA zero-amount charge was posted; please correct the rate sheet.",
		code, b.Date.Format("2006-01-02"), b.TeeTime.Format("15:04"))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatSettlementNotification creates the Slack message for a settled folio.
func (s *Notifier) formatSettlementNotification(f *folio.Folio, forced bool) slack.Message {
	blocks := make([]slack.Block, 0)

	title := "Folio settled"
	if forced {
		title = "Folio force-settled"
	}
	headerText := slack.NewTextBlockObject("plain_text", title, true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Booking: %s\nCharges: %s\nPayments: %s\nBalance: %s",
		f.BookingID, f.TotalCharges(), f.TotalPayments(), f.Balance())
	if forced {
		detailsText += "\nSettled by operator override with an outstanding balance."
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
