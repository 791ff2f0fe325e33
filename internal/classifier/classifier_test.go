package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autolabel/internal/models"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock OpenAI client ---

type mockChatClient struct {
	mockResponse openai.ChatCompletionResponse
	mockError    error
	lastPrompt   string
}

func (m *mockChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if len(req.Messages) > 0 {
		m.lastPrompt = req.Messages[0].Content
	}
	if m.mockError != nil {
		return openai.ChatCompletionResponse{}, m.mockError
	}
	return m.mockResponse, nil
}

func responseWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

// --- tests ---

func TestClassifyParsesValidOutput(t *testing.T) {
	client := &mockChatClient{
		mockResponse: responseWith(`{"labels": ["Khuyến mãi", "Sự kiện"], "confidence": 0.85}`),
	}
	c := NewLLMClassifier(client, "test-model", "", 0.4)

	set := c.Classify(context.Background(), "nội dung bài viết", "Retail", "brand x")

	assert.Equal(t, []string{"Khuyến mãi", "Sự kiện"}, set.Labels)
	assert.Equal(t, 0.85, set.Confidence)
}

func TestClassifyMalformedOutputFallsBackToGeneralMention(t *testing.T) {
	client := &mockChatClient{
		mockResponse: responseWith(`I cannot answer in JSON, sorry.`),
	}
	c := NewLLMClassifier(client, "test-model", "", 0.4)

	set := c.Classify(context.Background(), "nội dung", "Retail", "brand x")

	assert.Equal(t, []string{models.LabelGeneralMention}, set.Labels)
	assert.Equal(t, 1.0, set.Confidence)
}

func TestClassifyEmptyLabelsFallsBackToGeneralMention(t *testing.T) {
	client := &mockChatClient{
		mockResponse: responseWith(`{"labels": [], "confidence": 0.7}`),
	}
	c := NewLLMClassifier(client, "test-model", "", 0.4)

	set := c.Classify(context.Background(), "nội dung", "Retail", "brand x")

	assert.Equal(t, []string{models.LabelGeneralMention}, set.Labels)
	assert.Equal(t, 1.0, set.Confidence)
}

func TestClassifyTransportErrorReturnsEmptySet(t *testing.T) {
	client := &mockChatClient{mockError: errors.New("connection reset by peer")}
	c := NewLLMClassifier(client, "test-model", "", 0.4)

	set := c.Classify(context.Background(), "nội dung", "Retail", "brand x")

	assert.Empty(t, set.Labels)
	assert.Equal(t, 0.0, set.Confidence)
}

func TestClassifyNoChoicesReturnsEmptySet(t *testing.T) {
	client := &mockChatClient{mockResponse: openai.ChatCompletionResponse{}}
	c := NewLLMClassifier(client, "test-model", "", 0.4)

	set := c.Classify(context.Background(), "nội dung", "Retail", "brand x")

	assert.Empty(t, set.Labels)
	assert.Equal(t, 0.0, set.Confidence)
}

func TestClassifyStripsCodeFences(t *testing.T) {
	client := &mockChatClient{
		mockResponse: responseWith("```json\n{\"labels\": [\"Giải trí\"], \"confidence\": 0.6}\n```"),
	}
	c := NewLLMClassifier(client, "test-model", "", 0.4)

	set := c.Classify(context.Background(), "nội dung", "Retail", "brand x")
	assert.Equal(t, []string{"Giải trí"}, set.Labels)
}

func TestClassifyEnforcesSchemaBounds(t *testing.T) {
	client := &mockChatClient{
		mockResponse: responseWith(`{"labels": ["a", "b", "c", "d", ""], "confidence": 1.7}`),
	}
	c := NewLLMClassifier(client, "test-model", "", 0.4)

	set := c.Classify(context.Background(), "nội dung", "Retail", "brand x")

	assert.Len(t, set.Labels, 3, "label list is bounded at three entries")
	assert.Equal(t, 1.0, set.Confidence, "confidence is clamped to [0,1]")
}

func TestClassifySubstitutesPromptPlaceholders(t *testing.T) {
	client := &mockChatClient{
		mockResponse: responseWith(`{"labels": ["x"], "confidence": 0.5}`),
	}
	c := NewLLMClassifier(client, "test-model", "Phân tích {{TEXT}} cho ngành {{CATEGORY}} về {{TOPIC_NAME}}", 0.4)

	c.Classify(context.Background(), "bài viết ngắn", "Banking", "ngân hàng A")

	require.NotEmpty(t, client.lastPrompt)
	assert.True(t, strings.Contains(client.lastPrompt, "bài viết ngắn"))
	assert.True(t, strings.Contains(client.lastPrompt, "Banking"))
	assert.True(t, strings.Contains(client.lastPrompt, "ngân hàng A"))
	assert.False(t, strings.Contains(client.lastPrompt, "{{"))
}
