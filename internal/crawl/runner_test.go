package crawl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rjmelnik/deedtrace/internal/model"
)

// siteFetcher serves a canned site keyed by URL; anything else is absent
type siteFetcher struct {
	pages map[string]string
}

func (s *siteFetcher) Fetch(_ context.Context, url string) (string, bool) {
	html, ok := s.pages[url]
	return html, ok
}

// captureSink records what was written and returns a fixed path
type captureSink struct {
	records []model.PropertyRecord
	err     error
}

func (s *captureSink) Write(records []model.PropertyRecord) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.records = records
	return "out.csv", nil
}

func noDelays(t *testing.T) *model.Config {
	t.Helper()
	prev := crawlSleepFunc
	crawlSleepFunc = func(time.Duration) {}
	t.Cleanup(func() { crawlSleepFunc = prev })

	cfg := model.DefaultConfig()
	cfg.Crawl.BaseURL = "https://x.test"
	cfg.Crawl.Region = "r"
	cfg.Crawl.PageDelay = 0
	cfg.Crawl.PageDelayJitter = 0
	cfg.Crawl.PropertyDelay = 0
	cfg.Crawl.PropertyDelayJitter = 0
	return cfg
}

func propertyPage(owner string) string {
	return `<html><body>
	<section id="property-info">
		<div class="row"><div class="info-type">Current Owners</div><div class="info-data">` + owner + `</div></div>
	</section>
	</body></html>`
}

// fakeSite is one city with one street and two properties
func fakeSite() *siteFetcher {
	return &siteFetcher{pages: map[string]string{
		"https://x.test/r/cities/lafayette": `<html><body>
			<a href="/r/cities/lafayette/streets/main-st">Main St</a>
		</body></html>`,
		"https://x.test/r/cities/lafayette/streets/main-st": `<html><body>
			<a href="/r/lafayette/property/1/123-main-st">123</a>
			<a href="/r/lafayette/property/2/125-main-st">125</a>
		</body></html>`,
		"https://x.test/r/lafayette/property/1/123-main-st": propertyPage("Jane Doe"),
		"https://x.test/r/lafayette/property/2/125-main-st": propertyPage("John Smith"),
	}}
}

func collectEvents(r *Runner) []model.Event {
	var events []model.Event
	for ev := range r.Events() {
		events = append(events, ev)
	}
	return events
}

func TestSlugifyCity(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Lafayette", "lafayette"},
		{"Walnut Creek", "walnut-creek"},
		{"  San  Ramon  ", "san-ramon"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SlugifyCity(tt.in); got != tt.want {
			t.Errorf("SlugifyCity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGatherCities(t *testing.T) {
	got := GatherCities([]string{"Walnut Creek", "lafayette", "", "WALNUT CREEK", "Moraga"})
	want := []string{"walnut-creek", "lafayette", "moraga"}
	if len(got) != len(want) {
		t.Fatalf("GatherCities = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GatherCities[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRun_FullCrawl(t *testing.T) {
	cfg := noDelays(t)
	out := &captureSink{}
	r := newRunner(cfg, out, fakeSite())

	r.Run(context.Background(), []string{"lafayette"})
	events := collectEvents(r)

	want := []model.EventType{
		model.EventStreetCount,
		model.EventCityTotal,
		model.EventPropertyProgress,
		model.EventPropertyProgress,
		model.EventSaved,
		model.EventDone,
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events %v, want %d", len(events), events, len(want))
	}
	for i, typ := range want {
		if events[i].Type != typ {
			t.Errorf("event %d = %q, want %q", i, events[i].Type, typ)
		}
	}

	if events[0].Count != 2 {
		t.Errorf("street_count = %d, want 2", events[0].Count)
	}
	if events[1].City != "lafayette" || events[1].Count != 2 {
		t.Errorf("city_total = %+v", events[1])
	}
	if events[2].Done != 1 || events[2].Left != 1 || events[3].Done != 2 || events[3].Left != 0 {
		t.Errorf("property progress = %+v then %+v", events[2], events[3])
	}
	if events[4].Path != "out.csv" {
		t.Errorf("saved path = %q", events[4].Path)
	}

	if len(out.records) != 2 {
		t.Fatalf("expected 2 saved records, got %d", len(out.records))
	}
	// Property URLs are visited in sorted order
	if out.records[0].CurrentOwners != "Jane Doe" || out.records[1].CurrentOwners != "John Smith" {
		t.Errorf("records out of order: %q then %q",
			out.records[0].CurrentOwners, out.records[1].CurrentOwners)
	}
}

func TestRun_StoppedRunSavesNothing(t *testing.T) {
	cfg := noDelays(t)
	out := &captureSink{}
	r := newRunner(cfg, out, fakeSite())

	r.Stop()
	r.Run(context.Background(), []string{"lafayette"})
	events := collectEvents(r)

	if len(events) != 2 {
		t.Fatalf("expected saved+done only, got %v", events)
	}
	if events[0].Type != model.EventSaved || events[0].Path != "" {
		t.Errorf("expected an empty saved event, got %+v", events[0])
	}
	if events[1].Type != model.EventDone {
		t.Errorf("done must be last, got %+v", events[1])
	}
	if out.records != nil {
		t.Errorf("stopped run must not write, got %d records", len(out.records))
	}
}

func TestRun_SinkFailureReported(t *testing.T) {
	cfg := noDelays(t)
	out := &captureSink{err: errors.New("disk full")}
	r := newRunner(cfg, out, fakeSite())

	r.Run(context.Background(), []string{"lafayette"})
	events := collectEvents(r)

	if len(events) < 2 {
		t.Fatalf("got %v", events)
	}
	errEvent := events[len(events)-2]
	if errEvent.Type != model.EventError || errEvent.Message == "" {
		t.Errorf("expected an error event before done, got %+v", errEvent)
	}
	if events[len(events)-1].Type != model.EventDone {
		t.Error("done must still be emitted after a sink failure")
	}
}

func TestRun_UnknownCityYieldsNoRecords(t *testing.T) {
	cfg := noDelays(t)
	out := &captureSink{}
	r := newRunner(cfg, out, fakeSite())

	r.Run(context.Background(), []string{"atlantis"})
	events := collectEvents(r)

	// city index is absent, so the city contributes zero properties
	if events[0].Type != model.EventCityTotal || events[0].Count != 0 {
		t.Errorf("expected an empty city_total first, got %+v", events[0])
	}
	if out.records != nil {
		t.Errorf("expected nothing saved, got %d records", len(out.records))
	}
}
