package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/vc-sourcer/internal/utils"
)

const (
	defaultModel      = "gemini-embedding-001"
	defaultMaxRetries = 3
	defaultTaskType   = "SEMANTIC_SIMILARITY"

	baseBackoff   = time.Second
	maxRetryDelay = 30 * time.Second
	maxLogLength  = 120
)

var (
	sleep = time.Sleep

	retryAfterRe = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)
)

type embedAPI interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

type Options struct {
	APIKey     string
	Model      string
	MaxRetries int
	Dimensions int
	Logger     *zap.Logger
}

// Embedder produces sentence embeddings through the Gemini API.
type Embedder struct {
	api        embedAPI
	model      string
	maxRetries int
	dimensions int32
	logger     *zap.Logger
}

// NewEmbedder creates an Embedder configured for the Gemini API backend.
func NewEmbedder(ctx context.Context, opts Options) (*Embedder, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newEmbedder(client.Models, opts), nil
}

func newEmbedder(api embedAPI, opts Options) *Embedder {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Embedder{
		api:        api,
		model:      model,
		maxRetries: retries,
		dimensions: int32(max(opts.Dimensions, 0)),
		logger:     logger,
	}
}

// Embed returns the embedding of text. Temporary API failures are retried
// with a linear backoff unless the server asks for a longer pause.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e == nil || e.api == nil {
		return nil, errors.New("gemini embedder is not initialized")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	cfg := &genai.EmbedContentConfig{TaskType: defaultTaskType}
	if e.dimensions > 0 {
		dims := e.dimensions
		cfg.OutputDimensionality = &dims
	}

	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := e.api.EmbedContent(ctx, e.model, genai.Text(text), cfg)
		if err == nil {
			return firstEmbedding(resp)
		}
		lastErr = err

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == e.maxRetries {
			break
		}

		e.logger.Warn("gemini embed request failed, retrying",
			zap.String("model", e.model),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.String("text_preview", utils.TruncateForLog(text, maxLogLength)),
			zap.Error(err),
		)
		sleep(delay)
	}

	return nil, fmt.Errorf("embed content: %w", lastErr)
}

func (e *Embedder) Model() string {
	if e == nil {
		return ""
	}
	return e.model
}

func firstEmbedding(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, errors.New("gemini api returned empty response")
	}
	for _, emb := range resp.Embeddings {
		if emb != nil && len(emb.Values) > 0 {
			return emb.Values, nil
		}
	}
	return nil, errors.New("gemini api returned no embedding values")
}

// retryDelay reports whether err is temporary and how long to wait before the next attempt.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return 0, false
		}
		apiErr = *apiErrPtr
	}

	delay := time.Duration(attempt) * baseBackoff

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		if m := retryAfterRe.FindStringSubmatch(apiErr.Message); m != nil {
			seconds, parseErr := strconv.ParseFloat(m[1], 64)
			if parseErr == nil {
				delay = time.Duration(seconds * float64(time.Second))
			}
		}
		if delay > maxRetryDelay {
			return 0, false
		}
		return delay, true
	case apiErr.Code >= http.StatusInternalServerError:
		return delay, true
	default:
		return 0, false
	}
}
