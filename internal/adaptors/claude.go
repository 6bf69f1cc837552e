package adaptors

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	log "github.com/sirupsen/logrus"
)

// ClaudeVision implements VisionModel with Anthropic's Messages API.
type ClaudeVision struct {
	client    *anthropic.Client
	maxTokens int64
	log       *log.Logger
}

func NewClaudeVision(apiKey string, httpClient *http.Client, log *log.Logger, opts ...option.RequestOption) *ClaudeVision {
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	}, opts...)
	client := anthropic.NewClient(opts...)
	return &ClaudeVision{
		client:    &client,
		maxTokens: 2048,
		log:       log,
	}
}

func (c *ClaudeVision) GenerateContent(ctx context.Context, model string, image *models.Artifact, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(imageMimeType(image), base64.StdEncoding.EncodeToString(image.Data)),
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	if err != nil {
		c.log.WithContext(ctx).WithError(err).Error(`claude request failed`)
		return "", errors.Wrap(err, `claude API error`)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New(`empty response from Claude`)
	}
	return sb.String(), nil
}
