package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/yashtriyar/stock-watchlist-bot/internal/watchlist"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s.NS?range=%s&interval=1d"

type yahooChartResult struct {
	Meta struct {
		RegularMarketPrice float64 `json:"regularMarketPrice"`
	} `json:"meta"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	default:
		return "1y"
	}
}

// DailyCloses returns the closing prices for the configured history window,
// oldest first. Null bars (holidays, halts) are skipped.
func (c *Client) DailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	chart, err := c.fetchYahooChart(ctx, symbol, rangeForDays(c.historyDays))
	if err != nil {
		return nil, err
	}

	if len(chart.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	var closes []float64
	for _, v := range chart.Indicators.Quote[0].Close {
		if v == nil || *v <= 0 {
			continue
		}
		closes = append(closes, *v)
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("no close prices for %s", symbol)
	}

	return closes, nil
}

func (c *Client) fetchYahooChart(ctx context.Context, symbol, rng string) (*yahooChartResult, error) {
	symbol = watchlist.NormalizeSymbol(symbol)
	url := fmt.Sprintf(yahooChartURL, symbol, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch yahoo chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var chart yahooChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("parse yahoo response: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo returned no result for %s", symbol)
	}

	return &chart.Chart.Result[0], nil
}
