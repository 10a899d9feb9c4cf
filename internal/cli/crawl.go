package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rjmelnik/deedtrace/internal/crawl"
	"github.com/rjmelnik/deedtrace/internal/model"
	"github.com/rjmelnik/deedtrace/internal/sink"
)

var (
	outPath      string
	outFormat    string
	baseURL      string
	region       string
	fetchTimeout time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	noRobots     bool
	rps          float64
	burst        int
)

// defaultCities is the preselected crawl area when no cities are given
var defaultCities = []string{
	"lafayette", "moraga", "orinda", "walnut creek",
	"danville", "san ramon", "pleasanton", "alamo",
}

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl [city]...",
	Short: "Crawl cities and extract original-purchase records",
	Long: `Crawl harvests street and property URLs for each city, parses every
property page, and writes one record per property:
- Street and property discovery runs until pagination converges
- Sale events are deduplicated and ordered chronologically
- The current owners' original purchase is attributed by name matching
- Records are saved as CSV or XLSX in a fixed column order

Progress is reported as plain numeric lines: per-street property counts,
the city total, then "done left" pairs while properties are parsed.

Example:
  deedtrace crawl lafayette
  deedtrace crawl "walnut creek" danville --out wc.csv
  deedtrace crawl orinda --format xlsx --out orinda.xlsx --no-cache`,
	Args: cobra.ArbitraryArgs,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	// Output flags
	crawlCmd.Flags().StringVar(&outPath, "out", "deedtrace.csv", "output path")
	crawlCmd.Flags().StringVar(&outFormat, "format", "csv", "output format (csv, xlsx)")

	// Site flags
	crawlCmd.Flags().StringVar(&baseURL, "base-url", "https://blockshopper.com", "listing site root")
	crawlCmd.Flags().StringVar(&region, "region", "ca/contra-costa-county", "region path prefix")

	// HTTP flags
	crawlCmd.Flags().DurationVar(&fetchTimeout, "timeout", 45*time.Second, "per-request timeout")
	crawlCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default: browser-like)")
	crawlCmd.Flags().Int64Var(&maxBytes, "max-bytes", 5_000_000, "max response bytes to read")
	crawlCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh fetches)")
	crawlCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	crawlCmd.Flags().Float64Var(&rps, "rps", 2, "per-domain request ceiling, requests per second")
	crawlCmd.Flags().IntVar(&burst, "burst", 1, "rate limiter burst size")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cities := crawl.GatherCities(args)
	if len(cities) == 0 {
		cities = crawl.GatherCities(defaultCities)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Crawl.BaseURL = baseURL
	cfg.Crawl.Region = region
	cfg.HTTP.Timeout = fetchTimeout
	cfg.HTTP.MaxBodyBytes = maxBytes
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	cfg.Cache.Enabled = !noCache
	cfg.Robots.Enabled = !noRobots
	cfg.RateLimiting.RequestsPerSecond = rps
	cfg.RateLimiting.BurstSize = burst
	cfg.Output.Path = outPath
	cfg.Output.Format = outFormat
	cfg.Output.Verbose = verbose

	out, err := sink.ForFormat(cfg.Output.Format, cfg.Output.Path)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Cities: %v\n", cities)
		fmt.Fprintf(os.Stderr, "Output: %s (%s)\n", cfg.Output.Path, cfg.Output.Format)
		fmt.Fprintf(os.Stderr, "Cache: %v, robots: %v\n", cfg.Cache.Enabled, cfg.Robots.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	runner := crawl.NewRunner(cfg, out)

	// A first interrupt requests a cooperative stop: the worker finishes its
	// current unit of work, then persists nothing (stopped runs don't save).
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "stopping after current unit of work...")
		runner.Stop()
	}()

	go runner.Run(context.Background(), cities)

	var runErr error
	for ev := range runner.Events() {
		switch ev.Type {
		case model.EventStreetCount:
			fmt.Println(ev.Count)
		case model.EventCityTotal:
			fmt.Println(ev.Count)
			if verbose {
				fmt.Fprintf(os.Stderr, "City total (%s): %d\n", ev.City, ev.Count)
			}
		case model.EventPropertyProgress:
			fmt.Printf("%d %d\n", ev.Done, ev.Left)
		case model.EventSaved:
			if ev.Path != "" {
				fmt.Printf("Saved -> %s\n", ev.Path)
			}
		case model.EventError:
			runErr = fmt.Errorf("crawl failed: %s", ev.Message)
		case model.EventDone:
		}
	}

	return runErr
}
