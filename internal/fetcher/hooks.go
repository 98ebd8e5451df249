package fetcher

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type messageIDKey struct{}

type instrumentCtx struct {
	log       *zerolog.Logger
	idcounter *uint64
}

// instrumentClient attaches debug logging hooks to client
func instrumentClient(client *resty.Client, log *zerolog.Logger) {
	var idcounter uint64
	i := instrumentCtx{log: log, idcounter: &idcounter}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

func (i instrumentCtx) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	messageID := strconv.FormatUint(atomic.AddUint64(i.idcounter, 1), 10)
	i.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Str("message_id", messageID).
		Msg("start request")
	req.SetContext(context.WithValue(req.Context(), messageIDKey{}, messageID))
	return nil
}

func (i instrumentCtx) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	messageID, _ := res.Request.Context().Value(messageIDKey{}).(string)
	i.log.Debug().
		Str("method", res.Request.Method).
		Str("url", res.Request.URL).
		Int("status", res.StatusCode()).
		Str("message_id", messageID).
		Msg("request finished")
	return nil
}

func (i instrumentCtx) onError(req *resty.Request, err error) {
	messageID, _ := req.Context().Value(messageIDKey{}).(string)
	i.log.Debug().
		Err(err).
		Str("method", req.Method).
		Str("url", req.URL).
		Str("message_id", messageID).
		Msg("request failed")
}

// restyLogger routes resty's internal warnings through zerolog
type restyLogger struct {
	log *zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msgf(format, v...)
}
