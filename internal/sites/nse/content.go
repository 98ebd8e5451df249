package nse

import (
	"encoding/json"
	"time"

	"nsefetch/internal/extractor"
)

// QuoteContent result of one NSE lookup
type QuoteContent struct {
	Symbol  string
	Mode    extractor.Mode
	URL     string
	Status  int
	Output  string // full payload (aggregate) or the matched line
	Elapsed time.Duration
}

type quoteJSON struct {
	Symbol    string `json:"symbol"`
	Mode      string `json:"mode"`
	URL       string `json:"url"`
	Status    int    `json:"status"`
	Output    string `json:"output"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// ToText returns the payload exactly as extracted
func (q *QuoteContent) ToText() (string, error) {
	return q.Output, nil
}

// ToJSON returns the payload with lookup metadata
func (q *QuoteContent) ToJSON() ([]byte, error) {
	return json.MarshalIndent(quoteJSON{
		Symbol:    q.Symbol,
		Mode:      q.Mode.String(),
		URL:       q.URL,
		Status:    q.Status,
		Output:    q.Output,
		ElapsedMs: q.Elapsed.Milliseconds(),
	}, "", "  ")
}
