package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mwhitlock/aviary/internal/logger"
	"github.com/mwhitlock/aviary/internal/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-3-flash-preview"
)

// Fallback texts returned when the upstream call fails. Callers render these
// directly instead of surfacing an error.
const (
	fallbackAdvice    = "Error fetching advice. Please try again."
	fallbackFactsheet = "Failed to fetch species information."
	fallbackDiet      = "Unable to analyze diet balance at the moment."
)

// Client talks to the Gemini generateContent API. All advice methods degrade
// to a fallback string on failure so the surrounding UI never breaks.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   defaultModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	body := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: temperature, MaxOutputTokens: 4000},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("advice call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("advice status %d: %s", resp.StatusCode, data)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	var result generateResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// BirdAdvice answers a free-form care question about one bird.
func (c *Client) BirdAdvice(ctx context.Context, bird models.Bird, query, language string) string {
	text, err := c.generate(ctx, advicePrompt(bird, query, language), 0.7)
	if err != nil {
		logger.Error("Advice request failed", "error", err)
		return fallbackAdvice
	}
	return text
}

// SpeciesFactsheet returns an encyclopedia-style writeup for a species.
func (c *Client) SpeciesFactsheet(ctx context.Context, species, language string) string {
	text, err := c.generate(ctx, factsheetPrompt(species, language), 0.4)
	if err != nil {
		logger.Error("Factsheet request failed", "error", err)
		return fallbackFactsheet
	}
	return text
}

// AnalyzeDiet reviews recent diet logs for nutritional balance.
func (c *Client) AnalyzeDiet(ctx context.Context, logs []models.DietLog, species, language string) string {
	text, err := c.generate(ctx, dietPrompt(logs, species, language), 0.5)
	if err != nil {
		logger.Error("Diet analysis request failed", "error", err)
		return fallbackDiet
	}
	return text
}
