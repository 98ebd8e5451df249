package nse

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"nsefetch/internal/browser"
	"nsefetch/internal/config"
	"nsefetch/internal/extractor"
	"nsefetch/internal/fetcher"
	"nsefetch/internal/scraper"

	"github.com/rs/zerolog"
)

// AggregateKeyword selects the NIFTY 50 stock watch instead of a single symbol
const AggregateKeyword = "NIFTY50"

func init() {
	scraper.Register(&NSEScraper{})
}

// Fetcher is satisfied by *fetcher.HTTPFetcher and *fetcher.BrowserFetcher
type Fetcher interface {
	Fetch(ctx context.Context, url string) fetcher.Result
}

// Endpoints NSE host and resource paths
type Endpoints struct {
	BaseURL       string
	QuotePath     string
	AggregatePath string
}

// DefaultEndpoints returns the public NSE endpoints
func DefaultEndpoints() Endpoints {
	return Endpoints{
		BaseURL:       config.DefaultBaseURL,
		QuotePath:     config.DefaultQuotePath,
		AggregatePath: config.DefaultAggregatePath,
	}
}

// ResolveTarget derives the request URL and extraction mode from the identifier
func ResolveTarget(ep Endpoints, identifier string) (string, extractor.Mode) {
	base := strings.TrimRight(ep.BaseURL, "/") + "/"
	if strings.EqualFold(identifier, AggregateKeyword) {
		return base + strings.TrimLeft(ep.AggregatePath, "/"), extractor.Aggregate
	}
	symbol := strings.ToUpper(identifier)
	return base + strings.TrimLeft(ep.QuotePath, "/") + "?symbol=" + url.QueryEscape(symbol), extractor.SingleSymbol
}

// NSEScraper implements scraper.Scraper interface
type NSEScraper struct{}

// Name returns site name
func (n *NSEScraper) Name() string {
	return "nse"
}

// Scrape builds the fetcher and extractor from opts and runs one lookup
func (n *NSEScraper) Scrape(ctx context.Context, target string, opts scraper.Options) (scraper.Content, error) {
	log := zerolog.Ctx(ctx)

	ep := DefaultEndpoints()
	if opts.BaseURL != "" {
		ep.BaseURL = opts.BaseURL
	}
	if v, ok := opts.Extra["quote-path"]; ok && v != "" {
		ep.QuotePath = v
	}
	if v, ok := opts.Extra["aggregate-path"]; ok && v != "" {
		ep.AggregatePath = v
	}

	var f Fetcher
	if opts.Browser {
		f = fetcher.NewBrowserFetcher(browser.Config{
			ProxyURL: opts.ProxyURL,
			Headless: !opts.ShowUI,
			Bin:      opts.ChromeBin,
		})
	} else {
		f = fetcher.NewHTTPFetcher(fetcher.Options{
			Cookie:   opts.Cookie,
			ProxyURL: opts.ProxyURL,
			Timeout:  opts.Timeout,
			Logger:   log,
		})
	}

	return Lookup(ctx, f, extractor.NewExtractor(opts.ScratchPath, *log), ep, target)
}

// Lookup fetches the resource selected by identifier and extracts the part
// the mode asks for. A body without the marker line yields extractor.ErrNotFound.
func Lookup(ctx context.Context, f Fetcher, ex *extractor.Extractor, ep Endpoints, identifier string) (*QuoteContent, error) {
	log := zerolog.Ctx(ctx)
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("symbol must not be empty")
	}

	start := time.Now()
	defer func() {
		log.Info().Dur("elapsed", time.Since(start)).Msg("total time")
	}()

	target, mode := ResolveTarget(ep, identifier)
	if mode == extractor.Aggregate {
		log.Info().Msg("looking for top 50 from NIFTY")
	} else {
		log.Info().Str("symbol", strings.ToUpper(identifier)).Msg("looking for stock details")
	}

	res := f.Fetch(ctx, target)
	log.Debug().Str("url", target).Stringer("result", res.Kind).Int("status", res.Status).Msg("fetched")
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", identifier, err)
	}

	out, err := ex.Extract(res.Body, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", identifier, err)
	}
	if out.Kind == extractor.NotFound {
		return nil, fmt.Errorf("%s: %w", identifier, extractor.ErrNotFound)
	}

	return &QuoteContent{
		Symbol:  strings.ToUpper(identifier),
		Mode:    mode,
		URL:     target,
		Status:  res.Status,
		Output:  out.Text,
		Elapsed: time.Since(start),
	}, nil
}
