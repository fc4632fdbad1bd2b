// Package claude wraps the Anthropic SDK behind the research collaborator
// interface the investigation pipeline consumes.
package claude

import (
	"context"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/veritide/compliance-cli/internal/model"
)

// Researcher synthesizes a compliance report from an assembled customer
// record. The record is read-only input; implementations must not mutate it.
type Researcher interface {
	Research(ctx context.Context, rec *model.CustomerRecord) (*model.Report, error)
}

// Client implements Researcher using the official anthropic-sdk-go.
type Client struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(m string) Option {
	return func(c *Client) { c.model = m }
}

// WithMaxTokens overrides the response token limit.
func WithMaxTokens(n int64) Option {
	return func(c *Client) { c.maxTokens = n }
}

// NewClient creates a Researcher backed by the Anthropic API.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     "claude-sonnet-4-5-20250929",
		maxTokens: 2048,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Research sends the record to the model and parses the sectioned response
// into a report. The report's risk level is the record's extracted level,
// not a model opinion.
func (c *Client) Research(ctx context.Context, rec *model.CustomerRecord) (*model.Report, error) {
	prompt := buildPrompt(rec)

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []sdk.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "claude: research request")
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, eris.New("claude: empty research response")
	}

	zap.L().Debug("claude: research response received",
		zap.String("model", string(msg.Model)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	report := parseReport(text)
	report.CustomerName = rec.Personal.Name
	report.GeneratedAt = time.Now()
	report.RiskLevel = rec.RiskLevel
	report.Record = rec
	return report, nil
}
