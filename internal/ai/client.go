package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

const summaryPrompt = `You analyze school announcements and documents for busy parents.
For the provided text produce:
1. A brief summary (2-3 sentences)
2. Key points parents need to know (bullet list)
3. Important dates mentioned
4. Any action items for parents or students
Keep the tone plain and factual.`

const eventsPrompt = `You extract calendar-worthy events from school announcements.
For the provided text list every event with its name, date (YYYY-MM-DD where stated),
time if mentioned, and location if mentioned. If no events are present, say so.`

const actionItemsPrompt = `You identify action items in school announcements.
For the provided text list each thing a parent or student must do, with its deadline
where stated, ordered by urgency. If nothing is required, say so.`

// Client runs document analysis through the OpenAI chat completions API.
// It passes the model's text through untouched apart from trimming; shaping
// the analysis into structure is the model's job, not ours.
type Client struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
	logger    *zap.Logger
}

// NewClient builds an analysis client for the given model name.
func NewClient(apiKey, model string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		client:    &client,
		model:     openai.ChatModel(model),
		modelName: model,
		logger:    logger,
	}
}

// ModelName reports the configured model, for response metadata.
func (c *Client) ModelName() string {
	return c.modelName
}

// Analyze sends the text with the mode's system prompt and returns the raw
// analysis text.
func (c *Client) Analyze(ctx context.Context, text string, mode models.AnalysisType) (string, error) {
	prompt, err := promptFor(mode)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "openai call failed")
	}
	if len(resp.Choices) == 0 {
		return "", appErrors.Clone(appErrors.ErrUpstream, "openai returned no choices")
	}

	c.logger.Debug("document analyzed", zap.String("mode", string(mode)))
	return cleanResponse(resp.Choices[0].Message.Content), nil
}

func promptFor(mode models.AnalysisType) (string, error) {
	switch mode {
	case models.AnalysisSummary:
		return summaryPrompt, nil
	case models.AnalysisEvents:
		return eventsPrompt, nil
	case models.AnalysisActionItems:
		return actionItemsPrompt, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown analysis_type %q", mode))
	}
}

// cleanResponse strips the markdown code fences some models wrap output in.
func cleanResponse(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```markdown")
		content = strings.TrimPrefix(content, "```text")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}
