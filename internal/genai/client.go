// Package genai provides the Anthropic API integration backing the Saathi agents.
package genai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Client wraps the Anthropic SDK client with token tracking.
type Client struct {
	inner   anthropic.Client
	model   anthropic.Model
	tracker *TokenTracker
}

// ClientConfig contains configuration for creating a new Client.
type ClientConfig struct {
	// Model is the Claude model to use (e.g., anthropic.ModelClaudeSonnet4_20250514).
	Model anthropic.Model
	// APIKey is the Anthropic API key. If empty, uses ANTHROPIC_API_KEY env var.
	APIKey string
	// UseAWSBedrock indicates whether to use AWS Bedrock instead of direct API.
	UseAWSBedrock bool
	// AWSRegion is the AWS region for Bedrock (e.g., "us-west-2").
	AWSRegion string
	// AWSProfile is the optional AWS profile name to use.
	AWSProfile string
}

// NewClient creates a new Anthropic API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	var opts []option.RequestOption

	if cfg.UseAWSBedrock {
		ctx := context.Background()

		var loadOpts []func(*config.LoadOptions) error
		if cfg.AWSRegion != "" {
			loadOpts = append(loadOpts, config.WithRegion(cfg.AWSRegion))
		}
		if cfg.AWSProfile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.AWSProfile))
		}

		opts = append(opts, bedrock.WithLoadDefaultConfig(ctx, loadOpts...))
	} else {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	inner := anthropic.NewClient(opts...)

	model := cfg.Model
	if model == "" {
		model = anthropic.ModelClaudeSonnet4_20250514
	}

	if cfg.UseAWSBedrock {
		model = translateModelForBedrock(model)
	}

	return &Client{
		inner:   inner,
		model:   model,
		tracker: NewTokenTracker(),
	}, nil
}

// translateModelForBedrock converts standard Anthropic model names to Bedrock inference profile format.
// Bedrock uses cross-region inference profiles: us.anthropic.{model}-v1:0
func translateModelForBedrock(model anthropic.Model) anthropic.Model {
	bedrockModels := map[anthropic.Model]string{
		anthropic.ModelClaudeSonnet4_20250514:   "us.anthropic.claude-sonnet-4-20250514-v1:0",
		anthropic.ModelClaudeSonnet4_5_20250929: "us.anthropic.claude-sonnet-4-5-20250929-v1:0",
		anthropic.ModelClaudeHaiku4_5_20251001:  "us.anthropic.claude-haiku-4-5-20251001-v1:0",
		anthropic.ModelClaude3_5Haiku20241022:   "us.anthropic.claude-3-5-haiku-20241022-v1:0",
	}

	if bedrockModel, ok := bedrockModels[model]; ok {
		return anthropic.Model(bedrockModel)
	}

	return model
}

// Model returns the configured model name.
func (c *Client) Model() anthropic.Model {
	return c.model
}

// ModelName returns the configured model as a plain string, for result metadata.
func (c *Client) ModelName() string {
	return string(c.model)
}

// Tracker returns the token tracker for this client.
func (c *Client) Tracker() *TokenTracker {
	return c.tracker
}

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	// MaxTokens caps the response length. Defaults to 2048.
	MaxTokens int64
	// Temperature controls sampling randomness. Nil uses the API default.
	Temperature *float64
}

func (o GenerateOptions) maxTokens() int64 {
	if o.MaxTokens <= 0 {
		return 2048
	}
	return o.MaxTokens
}

// Generate sends a single prompt and returns the concatenated text response.
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: opts.maxTokens(),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if opts.Temperature != nil {
		params.Temperature = anthropic.Float(*opts.Temperature)
	}

	resp, err := c.inner.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("API call failed: %w", err)
	}

	c.tracker.Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return textContent(resp), nil
}

// GenerateWithImage sends a prompt together with a base64-encoded image.
// The data may be a raw base64 string or a data: URL; data URLs carry their
// own media type which overrides mediaType.
func (c *Client) GenerateWithImage(ctx context.Context, prompt, mediaType, data string, opts GenerateOptions) (string, error) {
	mt, b64 := splitImageData(mediaType, data)

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: opts.maxTokens(),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mt, b64),
				anthropic.NewTextBlock(prompt),
			),
		},
	}
	if opts.Temperature != nil {
		params.Temperature = anthropic.Float(*opts.Temperature)
	}

	resp, err := c.inner.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("API call failed: %w", err)
	}

	c.tracker.Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	return textContent(resp), nil
}

// splitImageData separates the media type and payload of an image submission.
// Accepts "data:image/png;base64,<data>" URLs or bare base64 with an explicit
// media type (defaulting to image/jpeg, matching the original service).
func splitImageData(mediaType, data string) (string, string) {
	if strings.HasPrefix(data, "data:") {
		if idx := strings.Index(data, ","); idx != -1 {
			header := data[:idx]
			payload := data[idx+1:]
			header = strings.TrimPrefix(header, "data:")
			header = strings.TrimSuffix(header, ";base64")
			if header != "" {
				return header, payload
			}
			return "image/jpeg", payload
		}
	}
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	return mediaType, data
}

// textContent concatenates all text blocks of a response.
func textContent(resp *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(variant.Text)
		}
	}
	return sb.String()
}
