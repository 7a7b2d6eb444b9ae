package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qnaweb/qna-web-app/src/apperror"
	"github.com/qnaweb/qna-web-app/src/logging"
	"github.com/rs/zerolog"
)

// maxUpstreamBody caps how much of an upstream response is read
const maxUpstreamBody = 1 << 20

// CensorCache remembers censored text between calls
type CensorCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// CensorConfig configures the bad words API client
type CensorConfig struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// CensorService masks profanity through the APILayer bad words API.
// Without an API key it returns text unchanged.
type CensorService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      CensorCache
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewCensorService creates a censor client. cache may be nil.
func NewCensorService(cfg CensorConfig, cache CensorCache) *CensorService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.apilayer.com"
	}

	return &CensorService{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		logger:   logging.NewLogger("censor"),
	}
}

// Enabled reports whether text is sent to the API
func (s *CensorService) Enabled() bool {
	return s.apiKey != ""
}

type badWordsResponse struct {
	Content         string `json:"content"`
	BadWordsTotal   int    `json:"bad_words_total"`
	CensoredContent string `json:"censored_content"`
}

// Censor returns text with offensive words replaced by asterisks.
// A 4xx response is an upstream client failure, a 5xx an upstream server
// failure, and a call that cannot complete an upstream transport failure.
func (s *CensorService) Censor(ctx context.Context, text string) (string, error) {
	if !s.Enabled() || text == "" {
		return text, nil
	}

	key := cacheKey(text)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn().Err(err).Msg("censor cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	censored, err := s.call(ctx, text)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, censored, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("censor cache write failed")
		}
	}

	return censored, nil
}

func (s *CensorService) call(ctx context.Context, text string) (string, error) {
	endpoint := s.baseURL + "/bad_words?" + url.Values{"censor_character": {"*"}}.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(text))
	if err != nil {
		return "", apperror.UpstreamTransport(fmt.Errorf("failed to create censor request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "text/plain")
	httpReq.Header.Set("apikey", s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", apperror.UpstreamTransport(fmt.Errorf("failed to send censor request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return "", apperror.UpstreamTransport(fmt.Errorf("failed to read censor response: %w", err))
	}

	switch {
	case resp.StatusCode >= 500:
		return "", apperror.UpstreamServer(resp.StatusCode, string(body))
	case resp.StatusCode >= 400:
		return "", apperror.UpstreamClient(resp.StatusCode, string(body))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", apperror.UpstreamTransport(fmt.Errorf("unexpected censor response status %d", resp.StatusCode))
	}

	var result badWordsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", apperror.UpstreamTransport(fmt.Errorf("failed to decode censor response: %w", err))
	}

	if result.BadWordsTotal > 0 {
		s.logger.Debug().Int("bad_words", result.BadWordsTotal).Msg("text censored")
	}

	return result.CensoredContent, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
