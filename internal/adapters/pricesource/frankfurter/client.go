// Package frankfurter fetches daily reference rates from a frankfurter.dev compatible API.
package frankfurter

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/SscSPs/mma_fx/internal/core/ports/providers"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	dateLayout = "2006-01-02"

	// DefaultBaseURL is the public frankfurter.dev API.
	DefaultBaseURL = "https://api.frankfurter.dev/v1"
)

// HistoryStart is the first day the ECB reference rates are published for.
// It is used when a pair has no stored prices yet.
var HistoryStart = time.Date(1999, time.January, 4, 0, 0, 0, 0, time.UTC)

// Config configures the client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements providers.PriceSource over HTTP.
type Client struct {
	cli *resty.Client
}

var _ providers.PriceSource = (*Client)(nil)

// New creates a Client.
func New(c Config) *Client {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}

	cli := resty.New()
	cli.SetBaseURL(strings.TrimRight(c.BaseURL, "/"))
	cli.SetTimeout(c.Timeout)
	cli.SetHeader("Accept", "application/json")

	return &Client{cli: cli}
}

// FetchPrices returns the daily prices of base/quote from `from` (inclusive) to the
// latest published day, in ascending date order. A nil from fetches the full history.
func (c *Client) FetchPrices(ctx context.Context, base, quote string, from *time.Time) ([]domain.PricePoint, error) {
	start := HistoryStart
	if from != nil {
		start = domain.StartOfDayUTC(*from)
	}

	resp, err := c.cli.R().
		SetContext(ctx).
		SetPathParam("range", start.Format(dateLayout)+"..").
		SetQueryParam("base", base).
		SetQueryParam("symbols", quote).
		Get("/{range}")
	if err != nil {
		return nil, fmt.Errorf("request for %s/%s failed: %w", base, quote, err)
	}
	if resp.StatusCode() != http.StatusOK {
		msg := gjson.GetBytes(resp.Body(), "message").String()
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("price source answered %d for %s/%s: %s", resp.StatusCode(), base, quote, msg)
	}

	return parseTimeSeries(resp.Body(), quote, start)
}

// parseTimeSeries reads {"rates": {"2020-01-02": {"USD": 1.1193}, ...}}.
// Values are taken from the raw JSON text so no float rounding is introduced.
func parseTimeSeries(body []byte, quote string, start time.Time) ([]domain.PricePoint, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("price source returned invalid JSON")
	}
	rates := gjson.GetBytes(body, "rates")
	if !rates.Exists() {
		return []domain.PricePoint{}, nil
	}

	var (
		points  []domain.PricePoint
		iterErr error
	)
	rates.ForEach(func(key, value gjson.Result) bool {
		date, err := time.Parse(dateLayout, key.String())
		if err != nil {
			iterErr = fmt.Errorf("invalid date %q in price source response: %w", key.String(), err)
			return false
		}
		if date.Before(start) {
			return true
		}
		raw := value.Get(quote)
		if !raw.Exists() {
			return true
		}
		v, err := decimal.NewFromString(raw.Raw)
		if err != nil {
			iterErr = fmt.Errorf("invalid %s price %q on %s: %w", quote, raw.Raw, key.String(), err)
			return false
		}
		points = append(points, domain.PricePoint{Date: date, Value: v})
		return true
	})
	if iterErr != nil {
		return nil, iterErr
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	if points == nil {
		points = []domain.PricePoint{}
	}
	return points, nil
}
