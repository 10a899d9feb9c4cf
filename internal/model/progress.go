package model

// EventType classifies a progress event emitted by the crawl worker
type EventType string

const (
	// EventStreetCount reports the property-URL count for one street
	EventStreetCount EventType = "street_count"
	// EventCityTotal reports the total distinct property URLs for a city
	EventCityTotal EventType = "city_total"
	// EventPropertyProgress is emitted once per parsed property
	EventPropertyProgress EventType = "property_progress"
	// EventSaved reports the output path, or "" when nothing was saved
	EventSaved EventType = "saved"
	// EventError reports an unrecovered run-level error
	EventError EventType = "error"
	// EventDone is always the last event of a run, emitted exactly once
	EventDone EventType = "done"
)

// Event is one typed progress message. The crawl worker writes events, the
// presentation layer reads them; no other state crosses that boundary.
type Event struct {
	Type    EventType
	City    string // city slug, for EventCityTotal
	Count   int    // street_count / city_total payload
	Done    int    // parsed so far, for EventPropertyProgress
	Left    int    // remaining, for EventPropertyProgress
	Path    string // output path, for EventSaved
	Message string // error text, for EventError
}
