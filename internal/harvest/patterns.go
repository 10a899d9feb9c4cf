package harvest

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StreetLinks extracts street-listing URLs for one city. Links are matched
// against /<region>/cities/<city-slug>/streets/<segment> (trailing slash
// optional) and scoped to the given city slug, so listings that link into
// neighboring cities contribute nothing.
func StreetLinks(baseURL, region, citySlug string) ExtractFunc {
	pattern := regexp.MustCompile(fmt.Sprintf(
		`^/%s/cities/%s/streets/[^/]+/?$`,
		regexp.QuoteMeta(region), regexp.QuoteMeta(citySlug),
	))
	return matchLinks(baseURL, pattern)
}

// PropertyLinks extracts property URLs for one city, matched against
// /<region>/<city-slug>/property/<digits>/<segment> (trailing slash optional)
func PropertyLinks(baseURL, region, citySlug string) ExtractFunc {
	pattern := regexp.MustCompile(fmt.Sprintf(
		`^/%s/%s/property/\d+/[^/]+/?$`,
		regexp.QuoteMeta(region), regexp.QuoteMeta(citySlug),
	))
	return matchLinks(baseURL, pattern)
}

// matchLinks collects every anchor href matching pattern, resolved to an
// absolute URL against base. Unparseable pages or hrefs yield nothing.
func matchLinks(baseURL string, pattern *regexp.Regexp) ExtractFunc {
	base, baseErr := url.Parse(baseURL)
	return func(html string) map[string]struct{} {
		links := make(map[string]struct{})
		if baseErr != nil {
			return links
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return links
		}
		doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if !pattern.MatchString(href) {
				return
			}
			ref, err := url.Parse(href)
			if err != nil {
				return
			}
			links[base.ResolveReference(ref).String()] = struct{}{}
		})
		return links
	}
}
