package fetcher

import (
	"net/http"
)

const (
	// UserAgent neutral identity marker, sent in place of a browser string
	UserAgent      = "-"
	AcceptLanguage = "en-US"
)

// Request outbound request, immutable once built
type Request struct {
	url     string
	headers http.Header
}

// NewRequest builds the request for url with the fixed identity headers.
// cookie is empty unless a session value was configured.
func NewRequest(url, cookie string) Request {
	h := http.Header{}
	h.Set("User-Agent", UserAgent)
	h.Set("Accept-Language", AcceptLanguage)
	h.Set("Cookie", cookie)
	return Request{url: url, headers: h}
}

// URL returns the target URL
func (r Request) URL() string {
	return r.url
}

// Headers returns a copy of the identity headers
func (r Request) Headers() map[string]string {
	out := make(map[string]string, len(r.headers))
	for k := range r.headers {
		out[k] = r.headers.Get(k)
	}
	return out
}
