package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/donaldgifford/vehicle-valuator/internal/metrics"
	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // High confidence
	colorYellow = 0xF1C40F // Medium confidence
	colorOrange = 0xE67E22 // Low confidence
)

// maxDescription is Discord's embed description limit.
const maxDescription = 4096

// defaultMaxRetryAfter bounds how long a rate-limited send waits before its
// single retry.
const defaultMaxRetryAfter = 2 * time.Second

var errRateLimited = errors.New("discord rate limited (429)")

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL    string
	client        *http.Client
	maxRetryAfter time.Duration
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},

		maxRetryAfter: defaultMaxRetryAfter,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithMaxRetryAfter sets the longest Retry-After a rate-limited send will
// honor. Zero disables the retry.
func WithMaxRetryAfter(d time.Duration) DiscordOption {
	return func(n *DiscordNotifier) {
		n.maxRetryAfter = d
	}
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// SendValuation posts the valuation as a single Discord embed.
func (d *DiscordNotifier) SendValuation(ctx context.Context, v *ValuationPayload) error {
	start := time.Now()
	payload := discordWebhookPayload{Embeds: []discordEmbed{buildEmbed(v)}}
	err := d.post(ctx, payload)
	var rl *rateLimitError
	if errors.As(err, &rl) && rl.wait <= d.maxRetryAfter && d.maxRetryAfter > 0 {
		err = d.retryAfter(ctx, rl.wait, payload)
	}
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return err
	}
	metrics.NotificationsSentTotal.Inc()
	return nil
}

func buildEmbed(v *ValuationPayload) discordEmbed {
	embed := discordEmbed{
		Title:       fmt.Sprintf("Valuation: %s", v.Vehicle),
		URL:         v.ReportURL,
		Color:       levelColor(v.Level),
		Description: truncate(v.Explanation, maxDescription),
		Fields: []discordEmbedField{
			{Name: "Value", Value: v.FinalValue, Inline: true},
			{Name: "Range", Value: v.PriceRange, Inline: true},
			{Name: "Confidence", Value: fmt.Sprintf("%d/100 (%s)", v.Confidence, v.Level), Inline: true},
			{Name: "Method", Value: string(v.Method), Inline: true},
		},
		Footer: &discordFooter{Text: "Valuation " + v.ValuationID},
	}

	if v.ZIP != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: "ZIP", Value: v.ZIP, Inline: true})
	}
	if v.VIN != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: "VIN", Value: v.VIN, Inline: true})
	}
	if v.Fallback {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: "Note", Value: "Computed locally (remote unavailable)"})
	}

	return embed
}

func levelColor(l domain.ConfidenceLevel) int {
	switch l {
	case domain.ConfidenceHigh:
		return colorGreen
	case domain.ConfidenceMedium:
		return colorYellow
	default:
		return colorOrange
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &rateLimitError{wait: retryAfterHeader(resp.Header.Get("Retry-After"))}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}

// rateLimitError carries the server-requested wait. A negative wait means
// the server gave none.
type rateLimitError struct {
	wait time.Duration
}

func (*rateLimitError) Error() string { return errRateLimited.Error() }

func (*rateLimitError) Unwrap() error { return errRateLimited }

func retryAfterHeader(v string) time.Duration {
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs < 0 {
		return -1
	}
	return time.Duration(secs * float64(time.Second))
}

func (d *DiscordNotifier) retryAfter(ctx context.Context, wait time.Duration, payload discordWebhookPayload) error {
	if wait < 0 {
		return errRateLimited
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting out discord rate limit: %w", ctx.Err())
	case <-t.C:
	}
	return d.post(ctx, payload)
}
