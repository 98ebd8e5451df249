package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nsefetch/internal/config"
	"nsefetch/internal/extractor"
	"nsefetch/internal/formatter"
	"nsefetch/internal/output"
	"nsefetch/internal/scraper"
	_ "nsefetch/internal/sites/nse"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath   string
	baseURL      string
	scratchPath  string
	outputFormat string
	outputFile   string
	timeout      time.Duration
	proxyURL     string
	cookie       string
	useBrowser   bool
	showUI       bool
	verbose      bool
	site         string
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "nsefetch [SYMBOL|NIFTY50]",
		Short:   "Fetch live quotes from the NSE website",
		Version: version,
		Long: `nsefetch fetches the quote of a single NSE symbol, or the NIFTY 50 stock
watch, with browser-like request headers. For a symbol only the line holding
the traded date is printed; NIFTY50 prints the whole payload.`,
		Example: `  # Quote line for one symbol
  nsefetch WIPRO

  # NIFTY 50 stock watch as JSON, written to a file
  nsefetch NIFTY50 -f json -o nifty.json

  # Go through a proxy and a real Chrome page
  nsefetch --browser -p http://127.0.0.1:7890 TCS`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Usage()
				return fmt.Errorf("missing symbol argument")
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().StringVar(&baseURL, "base-url", config.DefaultBaseURL, "NSE base URL")
	rootCmd.Flags().StringVar(&scratchPath, "scratch", extractor.DefaultScratchFile, "Scratch file used while scanning a symbol quote")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (format inferred from extension if -f not specified)")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Request timeout, 0 waits indefinitely")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", os.Getenv("NSEFETCH_PROXY"), "Proxy URL (e.g. http://127.0.0.1:7890), defaults to NSEFETCH_PROXY env var")
	rootCmd.Flags().StringVar(&cookie, "cookie", "", "Cookie header value")
	rootCmd.Flags().BoolVar(&useBrowser, "browser", false, "Fetch through a headless Chrome page")
	rootCmd.Flags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.Flags().StringVar(&site, "site", "nse", "Site to query ("+strings.Join(scraper.Names(), ", ")+")")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	target := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lvl, _ := cfg.LogLevel()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	s, ok := scraper.Get(site)
	if !ok {
		return fmt.Errorf("unknown site: %s", site)
	}

	content, err := s.Scrape(ctx, target, scraper.Options{
		BaseURL:     cfg.NSE.BaseURL,
		ScratchPath: cfg.ScratchFile,
		Cookie:      cfg.Fetch.Cookie,
		Timeout:     cfg.Fetch.Timeout,
		ProxyURL:    cfg.Fetch.Proxy,
		Browser:     cfg.Fetch.Browser,
		ShowUI:      cfg.Fetch.ShowUI,
		ChromeBin:   cfg.Fetch.ChromeBin,
		Extra: map[string]string{
			"quote-path":     cfg.NSE.QuotePath,
			"aggregate-path": cfg.NSE.AggregatePath,
		},
	})
	if err != nil {
		return err
	}

	outputContent, err := formatter.Format(content, cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if err := output.Write(cmd.OutOrStdout(), outputFile, outputContent); err != nil {
		return err
	}
	if outputFile != "" {
		logger.Info().Str("path", outputFile).Msg("output written")
	}
	return nil
}

// loadConfig layers defaults, the config file, NSEFETCH_* variables and
// flags the user set explicitly, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(os.Getenv)

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.NSE.BaseURL = baseURL
	}
	if flags.Changed("scratch") {
		cfg.ScratchFile = scratchPath
	}
	if flags.Changed("format") {
		cfg.Output.Format = outputFormat
	} else if outputFile != "" {
		if inferred := inferFormatFromExtension(outputFile); inferred != "" {
			cfg.Output.Format = inferred
		}
	}
	if flags.Changed("timeout") {
		cfg.Fetch.Timeout = timeout
	}
	if flags.Changed("proxy") {
		cfg.Fetch.Proxy = proxyURL
	}
	if flags.Changed("cookie") {
		cfg.Fetch.Cookie = cookie
	}
	if flags.Changed("browser") {
		cfg.Fetch.Browser = useBrowser
	}
	if flags.Changed("showui") {
		cfg.Fetch.ShowUI = showUI
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// inferFormatFromExtension infers output format from file extension
func inferFormatFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "json"
	case ".txt":
		return "text"
	default:
		return ""
	}
}
