// Package classifier adapts the external generative classification
// capability. It is the failure-sensitive edge of the pipeline: every
// failure path collapses into one of two fixed fallback shapes and no
// call ever surfaces an error to the batch.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"autolabel/internal/models"
	"autolabel/internal/textprep"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// DefaultPrompt is the compiled-in classification prompt, used unless
// the config points at a replacement.
const DefaultPrompt = `Bạn là chuyên gia phân tích dữ liệu mạng xã hội.

Yêu cầu:
1. Dịch "{{TOPIC_NAME}}" sang tiếng Việt.
2. Phân tích nội dung bên dưới và trích tối đa 3 nhãn (labels) bằng tiếng Việt, phản ánh đúng chủ đề đã dịch.
3. Chỉ chọn nhãn thực sự liên quan đến nội dung.
4. Loại bỏ nhãn nếu:
   - Trùng hoặc gần nghĩa với chủ đề đã dịch;
   - Chứa từ khóa liên quan ngành "{{CATEGORY}}" (bằng tiếng Việt, tiếng Anh, viết tắt hoặc viết hoa/thường);
   - Là tên riêng (công ty, cá nhân, tổ chức, địa danh).
5. Gán độ tin cậy (confidence) từ 0 đến 1.

Chỉ trả về đúng định dạng JSON:
{
  "labels": ["...", "..."],
  "confidence": ...
}

Nội dung: "{{TEXT}}"`

const maxLabels = 3

// ChatCompleter is the minimal slice of the OpenAI client the adapter
// needs, kept as an interface so tests can substitute a mock.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LLMClassifier invokes an OpenAI-compatible chat completion endpoint
// with the labeling prompt and parses its structured output.
type LLMClassifier struct {
	client         ChatCompleter
	model          string
	temperature    float32
	promptTemplate string
}

func NewLLMClassifier(client ChatCompleter, model, promptTemplate string, temperature float32) *LLMClassifier {
	if promptTemplate == "" {
		promptTemplate = DefaultPrompt
	}
	return &LLMClassifier{
		client:         client,
		model:          model,
		temperature:    temperature,
		promptTemplate: promptTemplate,
	}
}

// Classify runs one generative classification. It never returns an
// error: malformed output and empty label arrays degrade to the fixed
// general-mention set, every other failure to the empty set.
func (c *LLMClassifier) Classify(ctx context.Context, text, category, topicName string) models.RawLabelSet {
	if c.client == nil {
		log.Error("LLM classifier invoked without a client")
		return emptySet()
	}

	prompt := c.promptTemplate
	prompt = strings.ReplaceAll(prompt, "{{TEXT}}", textprep.Prepare(text))
	prompt = strings.ReplaceAll(prompt, "{{CATEGORY}}", category)
	prompt = strings.ReplaceAll(prompt, "{{TOPIC_NAME}}", topicName)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Errorf("chat completion failed: %v", err)
		return emptySet()
	}
	if len(resp.Choices) == 0 {
		log.Error("chat completion returned no choices")
		return emptySet()
	}

	set, err := parseLabelSet(resp.Choices[0].Message.Content)
	if err != nil {
		if errors.Is(err, models.ErrMalformedOutput) {
			log.Warnf("classifier returned malformed JSON, using general-mention fallback: %v", err)
			return generalMention()
		}
		log.Errorf("unexpected parse failure: %v", err)
		return emptySet()
	}
	if len(set.Labels) == 0 {
		return generalMention()
	}
	return set
}

// parseLabelSet validates the expected {labels, confidence} schema.
// Schema violations are reported as ErrMalformedOutput.
func parseLabelSet(content string) (models.RawLabelSet, error) {
	content = stripCodeFence(strings.TrimSpace(content))

	var parsed struct {
		Labels     []string `json:"labels"`
		Confidence float64  `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return models.RawLabelSet{}, models.ErrMalformedOutput
	}

	labels := make([]string, 0, len(parsed.Labels))
	for _, l := range parsed.Labels {
		l = strings.TrimSpace(l)
		if l != "" {
			labels = append(labels, l)
		}
	}
	if len(labels) > maxLabels {
		labels = labels[:maxLabels]
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}
	return models.RawLabelSet{Labels: labels, Confidence: parsed.Confidence}, nil
}

// stripCodeFence removes a surrounding markdown fence, which chat
// models add around JSON despite instructions not to.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func generalMention() models.RawLabelSet {
	return models.RawLabelSet{Labels: []string{models.LabelGeneralMention}, Confidence: 1.0}
}

func emptySet() models.RawLabelSet {
	return models.RawLabelSet{Labels: []string{}, Confidence: 0.0}
}
