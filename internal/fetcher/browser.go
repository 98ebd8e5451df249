package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"nsefetch/internal/browser"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// fetchJS runs inside the page. The body is only read for statuses the
// caller is going to consume, matching the HTTP fetcher.
const fetchJS = `async (url, lang) => {
	const r = await fetch(url, {headers: {'Accept-Language': lang}, credentials: 'include'});
	if (r.status === 200 || r.status === 201) {
		return {status: r.status, body: await r.text()};
	}
	return {status: r.status, body: ''};
}`

type browserReply struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// BrowserFetcher issues the request from a real Chrome page. Cookies and the
// user agent come from the browser, so only Accept-Language is set explicitly.
type BrowserFetcher struct {
	cfg browser.Config
}

// NewBrowserFetcher creates a new BrowserFetcher instance
func NewBrowserFetcher(cfg browser.Config) *BrowserFetcher {
	return &BrowserFetcher{cfg: cfg}
}

// Fetch launches the browser, opens the target origin and fetches url from it
func (f *BrowserFetcher) Fetch(ctx context.Context, target string) Result {
	ctx, span := tracer.Start(ctx, "fetcher.BrowserFetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", target))

	res := f.fetch(ctx, target)
	if res.Kind == KindTransportFailure {
		span.RecordError(res.Cause)
		span.SetStatus(codes.Error, "browser fetch failed")
	} else {
		span.SetAttributes(attribute.Int("http.status_code", res.Status))
	}
	return res
}

func (f *BrowserFetcher) fetch(ctx context.Context, target string) Result {
	origin, err := originOf(target)
	if err != nil {
		return transportFailure(err)
	}

	b, err := browser.New(f.cfg)
	if err != nil {
		return transportFailure(err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close browser")
		}
	}()

	page, err := b.NewPage()
	if err != nil {
		return transportFailure(fmt.Errorf("failed to create page: %w", err))
	}
	defer page.Close()
	page = page.Context(ctx)
	_, _ = page.EvalOnNewDocument(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`)

	if err := page.Navigate(origin); err != nil {
		return transportFailure(fmt.Errorf("failed to navigate: %w", err))
	}
	if err := page.WaitLoad(); err != nil {
		return transportFailure(fmt.Errorf("failed to wait for page load: %w", err))
	}

	obj, err := page.Eval(fetchJS, target, AcceptLanguage)
	if err != nil {
		return transportFailure(fmt.Errorf("failed to execute fetch: %w", err))
	}

	var reply browserReply
	if err := obj.Value.Unmarshal(&reply); err != nil {
		return transportFailure(fmt.Errorf("failed to decode fetch reply: %w", err))
	}

	kind := Classify(reply.Status)
	if kind != KindSuccess {
		return Result{Kind: kind, Status: reply.Status}
	}
	return success(reply.Status, reply.Body)
}

// originOf returns scheme://host/ for an absolute URL
func originOf(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", target, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("url must be absolute: " + target)
	}
	return u.Scheme + "://" + u.Host + "/", nil
}
