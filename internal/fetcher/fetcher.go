package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("nsefetch/fetcher")

// Options HTTP fetcher settings
type Options struct {
	Cookie   string        // Cookie header value, empty by default
	ProxyURL string        // optional proxy, e.g. http://127.0.0.1:7890
	Timeout  time.Duration // 0 keeps the transport defaults
	Logger   *zerolog.Logger
}

// HTTPFetcher fetches over plain HTTP with a browser-like TLS handshake
type HTTPFetcher struct {
	http   *resty.Client
	cookie string
}

// NewHTTPFetcher creates a new HTTPFetcher instance
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	log := opts.Logger
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	client := resty.New()
	client.SetLogger(restyLogger{log: log})
	client.SetTLSClientConfig(browserTLSConfig())
	if opts.ProxyURL != "" {
		client.SetProxy(opts.ProxyURL)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	instrumentClient(client, log)

	return &HTTPFetcher{http: client, cookie: opts.Cookie}
}

// browserTLSConfig curve order as offered by desktop browsers
func browserTLSConfig() *tls.Config {
	return &tls.Config{
		CurvePreferences: []tls.CurveID{tls.CurveP256, tls.CurveP384, tls.CurveP521, tls.X25519},
	}
}

// Fetch executes one GET against url and classifies the response
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) Result {
	ctx, span := tracer.Start(ctx, "fetcher.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	req := NewRequest(url, f.cookie)
	res, err := f.http.R().
		SetContext(ctx).
		SetHeaders(req.Headers()).
		SetDoNotParseResponse(true).
		Get(req.URL())
	if res != nil && res.RawBody() != nil {
		defer res.RawBody().Close()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return transportFailure(fmt.Errorf("failed to request %s: %w", url, err))
	}

	status := res.StatusCode()
	span.SetAttributes(attribute.Int("http.status_code", status))

	kind := Classify(status)
	if kind != KindSuccess {
		span.SetStatus(codes.Error, kind.String())
		return Result{Kind: kind, Status: status}
	}

	body, err := io.ReadAll(res.RawBody())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read body")
		return transportFailure(fmt.Errorf("failed to read response body: %w", err))
	}
	return success(status, string(body))
}
