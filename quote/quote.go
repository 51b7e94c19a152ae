// Package quote fetches daily stock prices from the Alpha Vantage API.
//
// A daily series answer looks like
//
//	{
//	    "Meta Data": {
//	        "1. Information": "Daily Prices (open, high, low, close) and Volumes",
//	        "2. Symbol": "IBM",
//	        "3. Last Refreshed": "2025-08-01",
//	        "4. Output Size": "Compact",
//	        "5. Time Zone": "US/Eastern"
//	    },
//	    "Time Series (Daily)": {
//	        "2025-08-01": {
//	            "1. open": "251.4050",
//	            "2. high": "252.6500",
//	            "3. low": "248.7800",
//	            "4. close": "250.0500",
//	            "5. volume": "5234718"
//	        },
//	        ...
//
// Failures come back with a 200 status and an "Error Message", "Note" or "Information" field
// instead.
package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/findash/holdings/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the Alpha Vantage query endpoint.
const DefaultBaseURL = "https://www.alphavantage.co/query"

var (
	ErrInvalidSymbol = errors.New("invalid symbol")
	ErrRateLimited   = errors.New("API rate limit reached")
	ErrNoData        = errors.New("no data available for this symbol")
)

// Bar is the trading summary of one day.
type Bar struct {
	Date   date.Date       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Series is a daily price series, most recent day first.
type Series struct {
	Symbol        string `json:"symbol"`
	LastRefreshed string `json:"lastRefreshed"`
	TimeZone      string `json:"timeZone"`
	Bars          []Bar  `json:"data"`
}

// Client queries Alpha Vantage.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   *diskCache
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL replaces the API endpoint.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithCacheDir sets the directory of the daily response cache, the system temporary
// directory by default.
func WithCacheDir(dir string) Option { return func(c *Client) { c.cache.dir = dir } }

// WithLogger sets the logger of HTTP exchanges.
func WithLogger(log zerolog.Logger) Option { return func(c *Client) { c.log, c.cache.log = log, log } }

// NewClient returns a client using 'apiKey', with responses cached on disk for the day.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		cache: &diskCache{
			base:  http.DefaultTransport,
			dir:   filepath.Join(os.TempDir(), "findash"),
			today: date.Today,
			log:   zerolog.Nop(),
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = &http.Client{Transport: c.cache}
	return c
}

// Daily returns the daily series of 'symbol': the latest 100 days, or the full history if
// 'full' is set.
func (c *Client) Daily(ctx context.Context, symbol string, full bool) (*Series, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidSymbol)
	}
	size := "compact"
	if full {
		size = "full"
	}
	q := url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {symbol},
		"outputsize": {size},
		"apikey":     {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot query %q: %w", symbol, err)
	}

	var jobj any
	if err := jwget(c.http, req, &jobj); err != nil {
		return nil, fmt.Errorf("cannot query %q: %w", symbol, err)
	}
	series, err := parseDaily(jobj)
	if err != nil {
		c.cache.evict(req)
		return nil, fmt.Errorf("cannot query %q: %w", symbol, err)
	}
	c.log.Debug().Str("symbol", symbol).Int("days", len(series.Bars)).Msg("daily series fetched")
	return series, nil
}

// jwget performs the request and unmarshals the JSON response into data.
func jwget(client *http.Client, req *http.Request, data any) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// lookup returns the value at 'path', or false if there is none.
func lookup(jobj any, path string) (any, bool) {
	v, err := jsonpath.Get(path, jobj)
	return v, err == nil && v != nil
}

func lookupString(jobj any, path string) string {
	v, _ := lookup(jobj, path)
	s, _ := v.(string)
	return s
}

func parseDaily(jobj any) (*Series, error) {
	if msg, ok := lookup(jobj, `$["Error Message"]`); ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSymbol, msg)
	}
	for _, path := range []string{`$["Note"]`, `$["Information"]`} {
		if msg, ok := lookup(jobj, path); ok {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, msg)
		}
	}
	jseries, ok := lookup(jobj, `$["Time Series (Daily)"]`)
	if !ok {
		return nil, ErrNoData
	}
	days, ok := jseries.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected time series %T", ErrNoData, jseries)
	}

	s := &Series{
		Symbol:        lookupString(jobj, `$["Meta Data"]["2. Symbol"]`),
		LastRefreshed: lookupString(jobj, `$["Meta Data"]["3. Last Refreshed"]`),
		TimeZone:      lookupString(jobj, `$["Meta Data"]["5. Time Zone"]`),
		Bars:          make([]Bar, 0, len(days)),
	}
	for day, jbar := range days {
		bar, err := parseBar(day, jbar)
		if err != nil {
			return nil, err
		}
		s.Bars = append(s.Bars, bar)
	}
	slices.SortFunc(s.Bars, func(a, b Bar) int { return b.Date.Compare(a.Date) })
	return s, nil
}

func parseBar(day string, jbar any) (Bar, error) {
	var (
		bar Bar
		err error
	)
	if bar.Date, err = date.Parse(day); err != nil {
		return bar, fmt.Errorf("invalid day %q: %w", day, err)
	}
	fields := []struct {
		key string
		dst *decimal.Decimal
	}{
		{"1. open", &bar.Open},
		{"2. high", &bar.High},
		{"3. low", &bar.Low},
		{"4. close", &bar.Close},
	}
	for _, f := range fields {
		v := lookupString(jbar, fmt.Sprintf(`$["%s"]`, f.key))
		if *f.dst, err = decimal.NewFromString(v); err != nil {
			return bar, fmt.Errorf("invalid %q on %s: %q", f.key, day, v)
		}
	}
	v := lookupString(jbar, `$["5. volume"]`)
	if bar.Volume, err = strconv.ParseInt(v, 10, 64); err != nil {
		return bar, fmt.Errorf("invalid volume on %s: %q", day, v)
	}
	return bar, nil
}
