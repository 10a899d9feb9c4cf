package pipeline

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rjmelnik/deedtrace/internal/attribute"
	"github.com/rjmelnik/deedtrace/internal/extract"
	"github.com/rjmelnik/deedtrace/internal/model"
)

// PageFetcher is the fetch contract the pipeline consumes: page content or
// absence, never an error.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, bool)
}

// Pipeline turns one property URL into one PropertyRecord
type Pipeline struct {
	fetcher PageFetcher
}

// NewPipeline creates a pipeline over the given fetcher
func NewPipeline(fetcher PageFetcher) *Pipeline {
	return &Pipeline{fetcher: fetcher}
}

// ParseProperty fetches and parses a property page, attributing the current
// owners' original purchase among its sale events. An absent page or an
// unattributable owner yields a record with the affected fields empty; the
// source URL is always set.
func (p *Pipeline) ParseProperty(ctx context.Context, url string) model.PropertyRecord {
	record := model.PropertyRecord{URL: url}

	html, ok := p.fetcher.Fetch(ctx, url)
	if !ok {
		return record
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record
	}

	record.Street, record.City, record.State, record.Zip = extract.AddressParts(doc)
	record.CurrentOwners = extract.CurrentOwners(doc)

	sales := extract.Sales(doc)
	if chosen := attribute.OriginalPurchase(record.CurrentOwners, sales); chosen != nil {
		record.PurchaseDate = chosen.DateText
		record.PurchaseMonth, record.PurchaseYear = extract.SplitDateParts(chosen.DateText)
		record.PurchasePrice = model.FormatPrice(chosen.Price)
		record.BuyerName = chosen.Buyer
		record.SellerName = chosen.Seller
	}

	record.Address = composeAddress(record.Street, record.City, record.State, record.Zip)
	return record
}

// composeAddress joins the non-empty address fields with ", "
func composeAddress(parts ...string) string {
	var keep []string
	for _, p := range parts {
		if p != "" {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, ", ")
}
