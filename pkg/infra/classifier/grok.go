package classifier

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"

	"github.com/promptgauge/promptgauge/pkg/domain/assessment"
	"github.com/promptgauge/promptgauge/pkg/infra/cache"
	"github.com/promptgauge/promptgauge/pkg/infra/httpx"
)

const (
	DefaultBaseURL = "https://api.x.ai"
	DefaultModel   = "grok-3-mini"

	chatCompletionsPath = "/v1/chat/completions"

	verdictTTLMapName = "classifier_verdict"
)

// moderationPolicy is the fixed system prompt. The bias is deliberately
// conservative: uncertain cases lean unsafe.
const moderationPolicy = `You are a content moderation classifier for a generative image/video service.
Judge whether the user's prompt would be rejected by a conservative content policy
covering sexual content, graphic violence, depictions of real people, minors,
and other sensitive topics. When uncertain, lean towards unsafe.
Respond with a single JSON object and nothing else:
{"safe": boolean, "confidence": number between 0 and 1, "issues": [short strings], "suggestions": [short strings], "reasoning": string}`

type Config struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type GrokClassifier struct {
	client  httpx.Client
	cache   cache.Client
	memory  *cache.TTLMap
	logger  *logrus.Logger
	baseURL string
	apiKey  string
	model   string
	ttl     time.Duration
}

// NewGrokClassifier builds the external classifier adapter. It satisfies
// risk.Classifier: every failure is converted to a neutral safe verdict
// with confidence 0, so callers can treat zero confidence as "no signal".
func NewGrokClassifier(
	cfg Config,
	client httpx.Client,
	cacheClient cache.Client,
	logger *logrus.Logger,
) *GrokClassifier {
	if client == nil {
		client = &http.Client{}
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = cache.DefaultVerdictTTL
	}
	var memory *cache.TTLMap
	if cacheClient != nil {
		memory = cacheClient.CreateTTLMap(verdictTTLMapName, ttl)
	} else {
		memory = cache.NewTTLMap(ttl)
	}
	return &GrokClassifier{
		client:  client,
		cache:   cacheClient,
		memory:  memory,
		logger:  logger,
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
		ttl:     ttl,
	}
}

// Classify submits the prompt to the moderation model and normalizes the
// answer. It never returns a non-nil error; the error value exists only to
// satisfy the consumer interface.
func (c *GrokClassifier) Classify(ctx context.Context, prompt string) (*assessment.TextModerationResult, error) {
	digest := promptDigest(prompt)

	if verdict := c.cachedVerdict(ctx, digest); verdict != nil {
		return verdict, nil
	}

	verdict := c.classify(ctx, prompt)
	if verdict.Confidence > 0 {
		c.storeVerdict(ctx, digest, verdict)
	}
	return verdict, nil
}

func (c *GrokClassifier) classify(ctx context.Context, prompt string) *assessment.TextModerationResult {
	body, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: moderationPolicy},
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
	})
	if err != nil {
		return c.neutralVerdict(fmt.Sprintf("failed to marshal request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return c.neutralVerdict(fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return c.neutralVerdict(fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.neutralVerdict(fmt.Sprintf("failed to read response: %v", err))
	}
	if resp.StatusCode != http.StatusOK {
		return c.neutralVerdict(fmt.Sprintf("classifier returned status %d", resp.StatusCode))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return c.neutralVerdict(fmt.Sprintf("failed to unmarshal response: %v", err))
	}
	if len(completion.Choices) == 0 {
		return c.neutralVerdict("classifier returned no choices")
	}

	verdict, err := parseVerdict(completion.Choices[0].Message.Content)
	if err != nil {
		return c.neutralVerdict(fmt.Sprintf("invalid verdict: %v", err))
	}
	return verdict
}

// parseVerdict extracts the verdict object from the model's reply. Models
// wrap JSON in prose or code fences, so the object is located by brace
// boundaries and parsed leniently.
func parseVerdict(content string) (*assessment.TextModerationResult, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	value, err := fastjson.Parse(content[start : end+1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse reply: %w", err)
	}

	safeValue := value.Get("safe")
	if safeValue == nil || (safeValue.Type() != fastjson.TypeTrue && safeValue.Type() != fastjson.TypeFalse) {
		return nil, fmt.Errorf("'safe' is missing or not a boolean")
	}
	confidenceValue := value.Get("confidence")
	if confidenceValue == nil || confidenceValue.Type() != fastjson.TypeNumber {
		return nil, fmt.Errorf("'confidence' is missing or not a number")
	}

	confidence := confidenceValue.GetFloat64()
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	issues, err := stringArray(value, "issues")
	if err != nil {
		return nil, err
	}
	suggestions, err := stringArray(value, "suggestions")
	if err != nil {
		return nil, err
	}

	return &assessment.TextModerationResult{
		Safe:        safeValue.GetBool(),
		Confidence:  confidence,
		Issues:      issues,
		Suggestions: suggestions,
		Reasoning:   string(value.GetStringBytes("reasoning")),
	}, nil
}

func stringArray(value *fastjson.Value, key string) ([]string, error) {
	field := value.Get(key)
	if field == nil {
		return []string{}, nil
	}
	items, err := field.Array()
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a list", key)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		text := item.GetStringBytes()
		if len(text) == 0 {
			continue
		}
		out = append(out, string(text))
	}
	return out, nil
}

func (c *GrokClassifier) cachedVerdict(ctx context.Context, digest string) *assessment.TextModerationResult {
	if cached, found := c.memory.Get(digest); found {
		if verdict, ok := cached.(*assessment.TextModerationResult); ok {
			return verdict
		}
	}
	if c.cache == nil {
		return nil
	}
	verdict, err := c.cache.GetVerdict(ctx, digest)
	if err != nil {
		return nil
	}
	c.memory.Set(digest, verdict)
	return verdict
}

func (c *GrokClassifier) storeVerdict(ctx context.Context, digest string, verdict *assessment.TextModerationResult) {
	c.memory.Set(digest, verdict)
	if c.cache == nil {
		return
	}
	if err := c.cache.SaveVerdict(ctx, digest, verdict, c.ttl); err != nil {
		c.logger.WithError(err).Debug("failed to cache classifier verdict")
	}
}

func (c *GrokClassifier) neutralVerdict(reason string) *assessment.TextModerationResult {
	c.logger.WithField("reason", reason).Warn("classifier fallback to neutral verdict")
	return &assessment.TextModerationResult{
		Safe:        true,
		Confidence:  0,
		Issues:      []string{},
		Suggestions: []string{},
		Reasoning:   "classifier unavailable: " + reason,
	}
}

func promptDigest(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
