// Package harvest discovers street and property URLs from paginated listings
// without prior knowledge of page counts.
package harvest

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// harvestSleepFunc is overridden in tests to avoid real pagination delays
var harvestSleepFunc = time.Sleep

// Fetcher is the fetch contract consumed by the harvester
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, bool)
}

// ExtractFunc extracts candidate URLs from one page of a listing
type ExtractFunc func(html string) map[string]struct{}

// Harvester accumulates listing URLs across pagination rounds
type Harvester struct {
	fetcher     Fetcher
	delay       time.Duration
	delayJitter time.Duration
}

// NewHarvester creates a harvester that pauses delay plus up to delayJitter
// between pagination rounds
func NewHarvester(fetcher Fetcher, delay, delayJitter time.Duration) *Harvester {
	return &Harvester{fetcher: fetcher, delay: delay, delayJitter: delayJitter}
}

// Harvest fetches successive pages of the listing at startURL and merges the
// extracted URLs into a discovery set until convergence. Page 1 is startURL
// itself; page n is startURL with a page query parameter. Harvesting stops
// when a fetch reports absence, when a round contributes no URL not already
// discovered, or when ctx is cancelled — always returning whatever has been
// accumulated. The no-new-items check is what guarantees termination on
// sites that repeat content forever.
func (h *Harvester) Harvest(ctx context.Context, startURL string, extract ExtractFunc) map[string]struct{} {
	discovered := make(map[string]struct{})
	for page := 1; ; page++ {
		if ctx.Err() != nil {
			return discovered
		}

		url := startURL
		if page > 1 {
			url = fmt.Sprintf("%s?page=%d", startURL, page)
		}
		html, ok := h.fetcher.Fetch(ctx, url)
		if !ok {
			return discovered
		}

		progressed := false
		for u := range extract(html) {
			if _, seen := discovered[u]; !seen {
				discovered[u] = struct{}{}
				progressed = true
			}
		}
		if !progressed {
			return discovered
		}

		harvestSleepFunc(h.delay + time.Duration(rand.Float64()*float64(h.delayJitter)))
	}
}
