package scraper

import (
	"context"
	"time"
)

type Scraper interface {
	Name() string
	Scrape(ctx context.Context, target string, opts Options) (Content, error)
}

type Content interface {
	ToText() (string, error)
	ToJSON() ([]byte, error)
}

type Options struct {
	BaseURL     string
	ScratchPath string
	Cookie      string
	Timeout     time.Duration // 0 keeps transport defaults
	ProxyURL    string        // --proxy flag or NSEFETCH_PROXY env var
	Browser     bool          // fetch through headless Chrome instead of plain HTTP
	ShowUI      bool
	ChromeBin   string
	Extra       map[string]string // Site-specific parameters (endpoint paths, etc.)
}
