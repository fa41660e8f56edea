package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yashtriyar/stock-watchlist-bot/internal/config"
	"github.com/yashtriyar/stock-watchlist-bot/internal/logger"
	"github.com/yashtriyar/stock-watchlist-bot/internal/market"
	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

// Client generates market commentary through an OpenAI-compatible chat API.
// The base URL is configurable; the default points at Gemini's
// OpenAI-compatible endpoint.
type Client struct {
	client  *openai.Client
	model   string
	enabled bool
	cfg     *config.Config
	logger  *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	if !cfg.AIEnabled() {
		log.Info("AI commentary disabled: no API key configured")
		return &Client{enabled: false, cfg: cfg, logger: log}
	}

	ocfg := openai.DefaultConfig(cfg.AI.APIKey)
	ocfg.BaseURL = cfg.AI.BaseURL

	return &Client{
		client:  openai.NewClientWithConfig(ocfg),
		model:   cfg.AI.Model,
		enabled: true,
		cfg:     cfg,
		logger:  log,
	}
}

func (c *Client) Enabled() bool {
	return c.enabled
}

// StockInsight returns a short actionable commentary for one symbol based
// on its indicator snapshot and (optionally) the open position.
func (c *Client) StockInsight(ctx context.Context, symbol string, snap *market.Snapshot, pos *watchlist.Position) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("AI commentary is not configured")
	}
	if snap == nil {
		return "", fmt.Errorf("no indicator data for %s", symbol)
	}
	return c.complete(ctx, BuildStockPrompt(symbol, snap, pos))
}

// PortfolioInsight returns commentary for the whole watchlist.
func (c *Client) PortfolioInsight(ctx context.Context, positions []watchlist.Position) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("AI commentary is not configured")
	}
	if len(positions) == 0 {
		return "", fmt.Errorf("watchlist is empty")
	}
	return c.complete(ctx, BuildPortfolioPrompt(positions))
}

func (c *Client) complete(ctx context.Context, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.AITimeout())
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("AI API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	text := CleanResponse(resp.Choices[0].Message.Content)
	c.logger.Debug("AI response received", "length", len(text))

	if text == "" {
		return "", fmt.Errorf("AI returned an empty response")
	}
	return text, nil
}
