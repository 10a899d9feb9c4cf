// Package extract parses property pages: sale-event timelines, the address
// panel and the current-owners row.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/rjmelnik/deedtrace/internal/model"
)

var (
	partyLabelRe = regexp.MustCompile(`(?i)^\s*(?:Buyer|Seller)\s*:?\s*`)
	nonMoneyRe   = regexp.MustCompile(`[^\d.]`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// saleDateLayouts are tried in order after normalizing "Sept." to "Sep."
var saleDateLayouts = []string{"Jan. 2, 2006", "Jan 2, 2006", "January 2, 2006"}

// Sales extracts the normalized, deduplicated, chronologically ordered sale
// events from a property page.
//
// Each timeline card carries parallel sub-lists for date, price, buyer(s) and
// seller(s). The sub-lists may have unequal lengths when a field is missing,
// so they are zipped by positional index up to the longest sub-list, with
// out-of-range indices read as empty strings.
func Sales(doc *goquery.Document) []model.SaleEvent {
	var events []model.SaleEvent
	doc.Find("#property-sales .timeline article.card").Each(func(_ int, card *goquery.Selection) {
		dates := selectionTexts(card.Find("p.sale-date"))
		prices := selectionTexts(card.Find("p.sale-price"))
		buyers := selectionTexts(card.Find(".sale-people .sale-buyer"))
		sellers := selectionTexts(card.Find(".sale-people .sale-seller"))

		n := max(max(len(dates), len(prices)), max(len(buyers), len(sellers)))
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			dateText := at(dates, i)
			events = append(events, model.SaleEvent{
				DateText: dateText,
				Date:     ParseSaleDate(dateText),
				Price:    CleanPrice(at(prices, i)),
				Buyer:    stripPartyLabel(at(buyers, i)),
				Seller:   stripPartyLabel(at(sellers, i)),
			})
		}
	})
	return orderEvents(events)
}

// orderEvents deduplicates on (date text, buyer, seller, price) keeping the
// first occurrence, then sorts dated events ascending with undated events
// after all dated ones, preserving encounter order among the undated.
func orderEvents(events []model.SaleEvent) []model.SaleEvent {
	seen := make(map[string]struct{}, len(events))
	uniq := events[:0:0]
	for _, e := range events {
		key := e.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, e)
	}
	sort.SliceStable(uniq, func(i, j int) bool {
		if uniq[i].HasDate() != uniq[j].HasDate() {
			return uniq[i].HasDate()
		}
		if !uniq[i].HasDate() {
			return false
		}
		return uniq[i].Date.Before(uniq[j].Date)
	})
	return uniq
}

// ParseSaleDate parses human-readable sale dates like "Jan. 5, 2010",
// "Mar 10, 2020" or "January 5, 2010". Unparseable text yields the zero time.
func ParseSaleDate(text string) time.Time {
	if text == "" {
		return time.Time{}
	}
	norm := strings.ReplaceAll(text, "Sept.", "Sep.")
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, norm); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CleanPrice reduces a money string to an integer number of currency units.
// "N/A", empty, or digit-free text yields nil.
func CleanPrice(text string) *int {
	if text == "" || strings.Contains(text, "N/A") {
		return nil
	}
	cleaned := nonMoneyRe.ReplaceAllString(text, "")
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

// stripPartyLabel drops a leading "Buyer:"/"Seller:" label and collapses
// whitespace in a party box
func stripPartyLabel(s string) string {
	s = partyLabelRe.ReplaceAllString(s, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// selectionTexts collects the whitespace-normalized text of each matched node
func selectionTexts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, nodeText(s))
	})
	return out
}

// nodeText returns the node's text with runs of whitespace collapsed
func nodeText(sel *goquery.Selection) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(sel.Text(), " "))
}

func at(items []string, i int) string {
	if i < len(items) {
		return items[i]
	}
	return ""
}
