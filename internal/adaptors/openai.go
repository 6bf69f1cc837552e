package adaptors

import (
	"context"
	"encoding/base64"
	"net/http"

	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// OpenAIVision implements VisionModel with the chat completions API, sending
// the screenshot as a data URL.
type OpenAIVision struct {
	client    *openai.Client
	maxTokens int
	log       *log.Logger
}

// NewOpenAIVision builds the client. baseURL may be empty for the public API.
func NewOpenAIVision(apiKey, baseURL string, httpClient *http.Client, log *log.Logger) *OpenAIVision {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = httpClient
	return &OpenAIVision{
		client:    openai.NewClientWithConfig(cfg),
		maxTokens: 2048,
		log:       log,
	}
}

func (o *OpenAIVision) GenerateContent(ctx context.Context, model string, image *models.Artifact, prompt string) (string, error) {
	dataURL := "data:" + imageMimeType(image) + ";base64," + base64.StdEncoding.EncodeToString(image.Data)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: o.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
				},
			},
		},
	})
	if err != nil {
		o.log.WithContext(ctx).WithError(err).Error(`openai request failed`)
		return "", errors.Wrap(err, `OpenAI API error`)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New(`empty response from OpenAI`)
	}
	return resp.Choices[0].Message.Content, nil
}
