package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/yashtriyar/stock-watchlist-bot/internal/config"
	"github.com/yashtriyar/stock-watchlist-bot/internal/logger"
	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

const (
	nseQuoteURL   = "https://www.nseindia.com/api/quote-equity?symbol=%s"
	nseRefererURL = "https://www.nseindia.com/get-quotes/equity?symbol=%s"
	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

	// pause between bulk quote requests, keeps the public endpoints happy
	bulkFetchDelay = 500 * time.Millisecond
)

type Client struct {
	httpClient  *http.Client
	historyDays int
	logger      *logger.Logger

	mu       sync.Mutex
	cache    map[string]cachedQuote
	cacheTTL time.Duration
}

type cachedQuote struct {
	price     float64
	fetchedAt time.Time
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.QuoteTimeout()},
		historyDays: cfg.Market.HistoryDays,
		logger:      log,
		cache:       make(map[string]cachedQuote),
		cacheTTL:    cfg.QuoteCacheTTL(),
	}
}

type nseQuoteResponse struct {
	PriceInfo struct {
		LastPrice float64 `json:"lastPrice"`
	} `json:"priceInfo"`
}

// GetPrice fetches the last traded price for an NSE symbol. The NSE quote
// API is tried first, the Yahoo chart API is the fallback. Results are
// cached for the configured TTL.
func (c *Client) GetPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = watchlist.NormalizeSymbol(symbol)

	c.mu.Lock()
	if q, ok := c.cache[symbol]; ok && time.Since(q.fetchedAt) < c.cacheTTL {
		c.mu.Unlock()
		return q.price, nil
	}
	c.mu.Unlock()

	price, err := c.fetchNSEPrice(ctx, symbol)
	if err != nil {
		c.logger.Debug("NSE quote failed, trying yahoo", "symbol", symbol, "error", err)
		price, err = c.fetchYahooPrice(ctx, symbol)
		if err != nil {
			return 0, fmt.Errorf("all quote sources failed for %s: %w", symbol, err)
		}
	}

	c.mu.Lock()
	c.cache[symbol] = cachedQuote{price: price, fetchedAt: time.Now()}
	c.mu.Unlock()

	return price, nil
}

// BulkPrices fetches quotes for multiple symbols sequentially with a small
// delay between requests. Symbols that fail are simply absent from the
// result; one bad ticker never aborts the batch.
func (c *Client) BulkPrices(ctx context.Context, symbols []string) map[string]float64 {
	prices := make(map[string]float64, len(symbols))
	for i, symbol := range symbols {
		if i > 0 {
			select {
			case <-ctx.Done():
				return prices
			case <-time.After(bulkFetchDelay):
			}
		}
		price, err := c.GetPrice(ctx, symbol)
		if err != nil {
			c.logger.Warn("quote fetch failed", "symbol", symbol, "error", err)
			continue
		}
		prices[watchlist.NormalizeSymbol(symbol)] = price
	}
	return prices
}

// ValidateSymbol reports whether a quote can be fetched for the symbol.
func (c *Client) ValidateSymbol(ctx context.Context, symbol string) bool {
	_, err := c.GetPrice(ctx, symbol)
	return err == nil
}

func (c *Client) fetchNSEPrice(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf(nseQuoteURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", fmt.Sprintf(nseRefererURL, symbol))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch NSE quote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("NSE returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	var quote nseQuoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, fmt.Errorf("parse NSE response: %w", err)
	}
	if quote.PriceInfo.LastPrice <= 0 {
		return 0, fmt.Errorf("NSE returned no price for %s", symbol)
	}

	return quote.PriceInfo.LastPrice, nil
}

func (c *Client) fetchYahooPrice(ctx context.Context, symbol string) (float64, error) {
	chart, err := c.fetchYahooChart(ctx, symbol, "1d")
	if err != nil {
		return 0, err
	}
	if chart.Meta.RegularMarketPrice <= 0 {
		return 0, fmt.Errorf("yahoo returned no price for %s", symbol)
	}
	return chart.Meta.RegularMarketPrice, nil
}
