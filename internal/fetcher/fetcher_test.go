package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		status   int
		expected Kind
	}{
		{200, KindSuccess},
		{201, KindSuccess},
		{204, KindUnhandledStatus},
		{301, KindUnhandledStatus},
		{400, KindClientError},
		{401, KindClientError},
		{403, KindUnhandledStatus},
		{404, KindClientError},
		{500, KindUnhandledStatus},
		{503, KindUnhandledStatus},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			require.Equal(t, tc.expected, Classify(tc.status))
		})
	}
}

func TestFetchStatuses(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		kind   Kind
	}{
		{"ok", 200, `{"tradedDate":"10-May-2020"}`, KindSuccess},
		{"created", 201, "created", KindSuccess},
		{"bad request", 400, "nope", KindClientError},
		{"unauthorized", 401, "", KindClientError},
		{"not found", 404, "", KindClientError},
		{"server error", 500, "boom", KindUnhandledStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			res := NewHTTPFetcher(Options{}).Fetch(context.Background(), srv.URL)
			require.Equal(t, tc.kind, res.Kind)
			require.Equal(t, tc.status, res.Status)
			if tc.kind == KindSuccess {
				require.Equal(t, tc.body, res.Body)
				require.NoError(t, res.Err())
			} else {
				require.Empty(t, res.Body)
				require.Error(t, res.Err())
			}
		})
	}
}

func TestFetchErrorTypes(t *testing.T) {
	var clientErr *ClientError
	require.True(t, errors.As(Result{Kind: KindClientError, Status: 404}.Err(), &clientErr))
	require.Equal(t, 404, clientErr.Status)

	var unhandled *UnhandledStatusError
	require.True(t, errors.As(Result{Kind: KindUnhandledStatus, Status: 500}.Err(), &unhandled))
	require.Equal(t, 500, unhandled.Status)

	cause := errors.New("connection refused")
	var transportErr *TransportError
	err := Result{Kind: KindTransportFailure, Cause: cause}.Err()
	require.True(t, errors.As(err, &transportErr))
	require.ErrorIs(t, err, cause)
}

func TestFetchSendsIdentityHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	res := NewHTTPFetcher(Options{}).Fetch(context.Background(), srv.URL)
	require.Equal(t, KindSuccess, res.Kind)

	require.Equal(t, "-", got.Get("User-Agent"))
	require.Equal(t, "en-US", got.Get("Accept-Language"))
	cookie, ok := got["Cookie"]
	require.True(t, ok, "Cookie header must be sent even when empty")
	require.Equal(t, []string{""}, cookie)
}

func TestFetchSendsOnlyIdentityHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	res := NewHTTPFetcher(Options{}).Fetch(context.Background(), srv.URL)
	require.Equal(t, KindSuccess, res.Kind)

	// Accept-Encoding is added by net/http itself
	delete(got, "Accept-Encoding")
	keys := make([]string, 0, len(got))
	for k := range got {
		keys = append(keys, k)
	}
	require.ElementsMatch(t, []string{"User-Agent", "Accept-Language", "Cookie"}, keys)
}

func TestBrowserTLSConfig(t *testing.T) {
	f := NewHTTPFetcher(Options{ProxyURL: "http://127.0.0.1:7890"})
	tr, ok := f.http.GetClient().Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, tr.TLSClientConfig)
	require.Equal(t, browserTLSConfig().CurvePreferences, tr.TLSClientConfig.CurvePreferences)
	require.NotNil(t, tr.Proxy)
}

func TestFetchConfiguredCookie(t *testing.T) {
	var cookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie = r.Header.Get("Cookie")
	}))
	defer srv.Close()

	res := NewHTTPFetcher(Options{Cookie: "nsit=abc"}).Fetch(context.Background(), srv.URL)
	require.Equal(t, KindSuccess, res.Kind)
	require.Equal(t, "nsit=abc", cookie)
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := NewHTTPFetcher(Options{}).Fetch(context.Background(), url)
	require.Equal(t, KindTransportFailure, res.Kind)
	require.Error(t, res.Cause)
	require.Empty(t, res.Body)
}

func TestFetchTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "{\n  \"tradedDate\"")
		w.(http.Flusher).Flush()
		hj, ok := w.(http.Hijacker)
		if !ok {
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			conn.Close()
		}
	}))
	defer srv.Close()

	res := NewHTTPFetcher(Options{}).Fetch(context.Background(), srv.URL)
	require.Equal(t, KindTransportFailure, res.Kind)
}

func TestRequestHeadersAreCopied(t *testing.T) {
	req := NewRequest("https://example.com", "")
	h := req.Headers()
	h["User-Agent"] = "Mozilla/5.0"
	require.Equal(t, "-", req.Headers()["User-Agent"])
	require.Equal(t, "https://example.com", req.URL())
}

func TestOriginOf(t *testing.T) {
	origin, err := originOf("https://www1.nseindia.com/live_market/x.json?symbol=WIPRO")
	require.NoError(t, err)
	require.Equal(t, "https://www1.nseindia.com/", origin)

	_, err = originOf("live_market/x.json")
	require.Error(t, err)
}
