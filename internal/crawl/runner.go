// Package crawl sequences the city -> street -> property traversal on a
// single background worker and reports progress through typed events.
package crawl

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rjmelnik/deedtrace/internal/harvest"
	"github.com/rjmelnik/deedtrace/internal/model"
	"github.com/rjmelnik/deedtrace/internal/pipeline"
	"github.com/rjmelnik/deedtrace/internal/sink"
)

// crawlSleepFunc is overridden in tests to avoid real inter-property delays
var crawlSleepFunc = time.Sleep

var whitespaceRe = regexp.MustCompile(`\s+`)

// SlugifyCity converts a city name to its URL slug: lowercase with
// whitespace runs joined by hyphens. Cities whose site slug differs from
// this convention (punctuation, unusual word joins) will harvest zero links;
// that is a known limitation, not an error.
func SlugifyCity(city string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(city)), "-")
}

// GatherCities slugifies the given city names, dropping empties and
// duplicates while preserving order
func GatherCities(cities []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range cities {
		slug := SlugifyCity(c)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}

// Runner executes one crawl over a list of cities. The worker goroutine
// writes events and reads the stop flag; the presentation side reads events
// and writes the stop flag. No other state crosses that boundary.
type Runner struct {
	cfg       *model.Config
	harvester *harvest.Harvester
	pipeline  *pipeline.Pipeline
	out       sink.Sink

	events  chan model.Event
	stopped atomic.Bool
}

// NewRunner wires a runner from the configuration and output sink
func NewRunner(cfg *model.Config, out sink.Sink) *Runner {
	return newRunner(cfg, out, pipeline.NewFetcher(cfg))
}

func newRunner(cfg *model.Config, out sink.Sink, fetcher pipeline.PageFetcher) *Runner {
	return &Runner{
		cfg:       cfg,
		harvester: harvest.NewHarvester(fetcher, cfg.Crawl.PageDelay, cfg.Crawl.PageDelayJitter),
		pipeline:  pipeline.NewPipeline(fetcher),
		out:       out,
		events:    make(chan model.Event, 1024),
	}
}

// Events is the ordered progress stream. It is closed after the terminal
// done event, so consumers can simply range over it.
func (r *Runner) Events() <-chan model.Event {
	return r.events
}

// Stop requests cooperative cancellation. The worker finishes its current
// unit of work before observing the flag; it never aborts a fetch mid-flight.
func (r *Runner) Stop() {
	r.stopped.Store(true)
}

// Stopped reports whether a stop has been requested
func (r *Runner) Stopped() bool {
	return r.stopped.Load()
}

// Run crawls the given cities, persisting accumulated records at the end.
// It blocks until the run finishes; callers typically invoke it on its own
// goroutine and drain Events on another. The done event is always emitted
// last, exactly once, regardless of success, failure or cancellation.
func (r *Runner) Run(ctx context.Context, cities []string) {
	defer func() {
		r.events <- model.Event{Type: model.EventDone}
		close(r.events)
	}()

	if err := r.run(ctx, cities); err != nil {
		r.events <- model.Event{Type: model.EventError, Message: err.Error()}
	}
}

func (r *Runner) run(ctx context.Context, cities []string) error {
	var records []model.PropertyRecord

	for _, slug := range cities {
		cityIndex := fmt.Sprintf("%s/%s/cities/%s", r.cfg.Crawl.BaseURL, r.cfg.Crawl.Region, slug)
		streets := r.harvester.Harvest(ctx, cityIndex, harvest.StreetLinks(r.cfg.Crawl.BaseURL, r.cfg.Crawl.Region, slug))

		cityProperties := make(map[string]struct{})
		for _, streetURL := range sortedKeys(streets) {
			if r.stopped.Load() {
				break
			}
			props := r.harvester.Harvest(ctx, streetURL, harvest.PropertyLinks(r.cfg.Crawl.BaseURL, r.cfg.Crawl.Region, slug))
			r.events <- model.Event{Type: model.EventStreetCount, Count: len(props)}
			for u := range props {
				cityProperties[u] = struct{}{}
			}
		}
		if r.stopped.Load() {
			break
		}

		r.events <- model.Event{Type: model.EventCityTotal, City: slug, Count: len(cityProperties)}

		urls := sortedKeys(cityProperties)
		for i, u := range urls {
			if r.stopped.Load() {
				break
			}
			records = append(records, r.pipeline.ParseProperty(ctx, u))
			r.events <- model.Event{Type: model.EventPropertyProgress, Done: i + 1, Left: len(urls) - i - 1}
			crawlSleepFunc(r.cfg.Crawl.PropertyDelay +
				time.Duration(rand.Float64()*float64(r.cfg.Crawl.PropertyDelayJitter)))
		}
		if r.stopped.Load() {
			break
		}
	}

	// Partial results are preserved, but a stopped run saves nothing.
	if len(records) > 0 && !r.stopped.Load() {
		path, err := r.out.Write(records)
		if err != nil {
			return fmt.Errorf("save records: %w", err)
		}
		r.events <- model.Event{Type: model.EventSaved, Path: path}
	} else {
		r.events <- model.Event{Type: model.EventSaved}
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
