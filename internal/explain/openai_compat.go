package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

const systemPrompt = "You are an automotive pricing analyst. Explain vehicle valuations to " +
	"consumers in plain English, in at most four sentences. Use only the figures provided. " +
	"Never change the final value."

// OpenAICompat asks an OpenAI chat-completions compatible endpoint (vLLM,
// LM Studio, text-generation-inference, OpenAI) to narrate a valuation.
type OpenAICompat struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// OpenAICompatOption configures OpenAICompat.
type OpenAICompatOption func(*OpenAICompat)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) OpenAICompatOption {
	return func(o *OpenAICompat) {
		o.client = c
	}
}

// WithAPIKey sets the bearer token.
func WithAPIKey(key string) OpenAICompatOption {
	return func(o *OpenAICompat) {
		o.apiKey = key
	}
}

// NewOpenAICompat creates an AI explainer for model at endpoint.
func NewOpenAICompat(endpoint, model string, opts ...OpenAICompatOption) *OpenAICompat {
	o := &OpenAICompat{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		client: &http.Client{
			Timeout:   60 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Name returns the backend name.
func (*OpenAICompat) Name() string {
	return "openai_compat"
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// promptFacts is the valuation summary handed to the model.
type promptFacts struct {
	Vehicle      string              `json:"vehicle"`
	ZIP          string              `json:"zip,omitempty"`
	Mileage      *int                `json:"mileage,omitempty"`
	Condition    domain.Condition    `json:"condition"`
	FinalValue   string              `json:"final_value"`
	PriceRange   string              `json:"price_range"`
	BaseValue    string              `json:"base_value"`
	BaseMethod   domain.BaseMethod   `json:"base_method"`
	ListingCount int                 `json:"listing_count"`
	Confidence   int                 `json:"confidence"`
	Adjustments  []domain.Adjustment `json:"adjustments"`
}

// Explain implements Explainer.
func (o *OpenAICompat) Explain(ctx context.Context, r *domain.ValuationResult) (string, error) {
	facts, err := json.Marshal(promptFacts{
		Vehicle:      vehicleLabel(r.Vehicle),
		ZIP:          r.ZIP,
		Mileage:      r.Mileage,
		Condition:    r.Condition,
		FinalValue:   Dollars(r.FinalValue),
		PriceRange:   Dollars(r.PriceRange.Low) + " - " + Dollars(r.PriceRange.High),
		BaseValue:    Dollars(r.BaseValue),
		BaseMethod:   r.BaseMethod,
		ListingCount: r.ListingCount,
		Confidence:   r.ConfidenceScore,
		Adjustments:  r.Adjustments,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling prompt facts: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Explain this valuation:\n" + string(facts)},
		},
		Temperature: 0.2,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		o.endpoint+"/v1/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling openai-compatible API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"openai-compatible API error (status %d): %s",
			resp.StatusCode,
			string(respBody),
		)
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("empty choices from openai-compatible API")
	}

	text := strings.TrimSpace(cr.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty explanation from openai-compatible API")
	}
	return text, nil
}
