package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	xhttp "StockPulse/pkg/http"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

const (
	// DefaultBaseURL is the Yahoo Finance public API host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	defaultUserAgent = "Mozilla/5.0"
)

// ClientOption configures Client.
type ClientOption func(*Client)

// Client fetches candles, quotes and company profiles from the Yahoo
// Finance chart and quoteSummary endpoints. Implements repository.MarketData.
type Client struct {
	baseURL string
	http    *xhttp.Client
	l       *applogger.Logger
}

// New creates a Yahoo market data client.
func New(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(
			xhttp.WithTimeout(30*time.Second),
			xhttp.WithUserAgent(defaultUserAgent),
		)
	}
	return c
}

// WithBaseURL overrides the API host (useful for tests).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient injects a configured HTTP client.
func WithHTTPClient(h *xhttp.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// WithLogger injects a structured logger.
func WithLogger(l *applogger.Logger) ClientOption {
	return func(c *Client) {
		c.l = l
	}
}

// chartResponse is the shape of the v8 chart endpoint. Price arrays use
// interface{} because Yahoo emits JSON null for halted or missing bars.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector             string `json:"sector"`
				Industry           string `json:"industry"`
				Website            string `json:"website"`
				Country            string `json:"country"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			Price struct {
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
				Currency  string `json:"currency"`
				Exchange  string `json:"exchangeName"`
				MarketCap struct {
					Raw float64 `json:"raw"`
				} `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				FiftyTwoWeekHigh struct {
					Raw float64 `json:"raw"`
				} `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow struct {
					Raw float64 `json:"raw"`
				} `json:"fiftyTwoWeekLow"`
				DayHigh struct {
					Raw float64 `json:"raw"`
				} `json:"dayHigh"`
				DayLow struct {
					Raw float64 `json:"raw"`
				} `json:"dayLow"`
				Volume struct {
					Raw float64 `json:"raw"`
				} `json:"volume"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (c *Client) fetchChart(ctx context.Context, symbol string, rng drepo.Range, interval string) (*chartResponse, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))

	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    u,
		QueryParams: map[string][]string{
			"range":    {string(rng)},
			"interval": {interval},
		},
	}, &resp)
	if err != nil {
		return nil, xhttp.UpstreamError("yahoo chart fetch failed").WithError(err)
	}
	if resp.Chart.Error != nil {
		return nil, xhttp.NotFoundErrorf("yahoo: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, xhttp.NotFoundErrorf("yahoo: no data for %s", symbol)
	}
	return &resp, nil
}

// GetHistory fetches the OHLCV series for a symbol over a range. The
// interval follows the range. Null bars (holidays, halts) are dropped
// and the result is sorted ascending by timestamp.
func (c *Client) GetHistory(ctx context.Context, symbol string, rng drepo.Range) (*models.History, error) {
	interval := drepo.IntervalFor(rng)
	resp, err := c.fetchChart(ctx, symbol, rng, interval)
	if err != nil {
		return nil, err
	}

	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, xhttp.NotFoundErrorf("yahoo: empty series for %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	// Yahoo normally keeps the arrays equal length, but a truncated
	// response must not panic; treat missing entries as null bars.
	at := func(vals []interface{}, i int) float64 {
		if i >= len(vals) {
			return 0
		}
		return toFloat(vals[i])
	}

	candles := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		cl := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // skip null bars (holidays etc.)
		}
		vol := at(quote.Volume, i)
		// the trailing in-progress bar carries a live timestamp; align
		// every bar to its interval boundary
		candles = append(candles, models.Candle{
			Timestamp: util.AlignToInterval(time.Unix(ts, 0).UTC(), interval),
			Open:      o,
			High:      h,
			Low:       l,
			Close:     cl,
			Volume:    vol,
		})
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].Timestamp.Before(candles[j].Timestamp) })

	if c.l != nil {
		c.l.Debug("history fetched",
			applogger.String("symbol", symbol),
			applogger.String("range", string(rng)),
			applogger.Int("candles", len(candles)),
		)
	}

	return &models.History{
		Symbol:   symbol,
		Range:    string(rng),
		Interval: interval,
		Candles:  candles,
	}, nil
}

// GetQuote fetches the latest price snapshot from chart metadata.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	resp, err := c.fetchChart(ctx, symbol, drepo.Range1D, "5m")
	if err != nil {
		return nil, err
	}

	meta := resp.Chart.Result[0].Meta
	q := &models.Quote{
		Symbol:        symbol,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.ChartPreviousClose,
		Timestamp:     time.Unix(meta.RegularMarketTime, 0).UTC(),
	}
	if q.PreviousClose != 0 {
		q.Change = q.Price - q.PreviousClose
		q.ChangePct = q.Change / q.PreviousClose * 100
	}

	// Day high/low and volume come from the intraday bars.
	quote := resp.Chart.Result[0].Indicators.Quote
	if len(quote) > 0 {
		for i := range quote[0].High {
			if h := toFloat(quote[0].High[i]); h > q.DayHigh {
				q.DayHigh = h
			}
			if i < len(quote[0].Low) {
				if l := toFloat(quote[0].Low[i]); l > 0 && (q.DayLow == 0 || l < q.DayLow) {
					q.DayLow = l
				}
			}
			if i < len(quote[0].Volume) {
				q.Volume += toFloat(quote[0].Volume[i])
			}
		}
	}

	return q, nil
}

// GetProfile fetches company metadata from the quoteSummary endpoint.
func (c *Client) GetProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s", c.baseURL, url.PathEscape(symbol))

	var resp quoteSummaryResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    u,
		QueryParams: map[string][]string{
			"modules": {"assetProfile,price,summaryDetail"},
		},
	}, &resp)
	if err != nil {
		return nil, xhttp.UpstreamError("yahoo profile fetch failed").WithError(err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, xhttp.NotFoundErrorf("yahoo: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, xhttp.NotFoundErrorf("yahoo: no profile for %s", symbol)
	}

	r := resp.QuoteSummary.Result[0]
	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}

	return &models.CompanyProfile{
		Symbol:           symbol,
		Name:             name,
		Exchange:         r.Price.Exchange,
		Currency:         r.Price.Currency,
		Sector:           r.AssetProfile.Sector,
		Industry:         r.AssetProfile.Industry,
		Website:          r.AssetProfile.Website,
		Country:          r.AssetProfile.Country,
		Summary:          r.AssetProfile.LongBusinessSummary,
		MarketCap:        r.Price.MarketCap.Raw,
		FiftyTwoWeekHigh: r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		FiftyTwoWeekLow:  r.SummaryDetail.FiftyTwoWeekLow.Raw,
	}, nil
}

var _ drepo.MarketData = (*Client)(nil)
