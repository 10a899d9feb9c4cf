package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// subtitleRe matches free-text address subtitles like "Lafayette, CA 94549"
// or "Lafayette, CA 94549-1234"
var subtitleRe = regexp.MustCompile(`([^,]+),\s*([A-Za-z.]+)\s+(\d{5}(?:-\d{4})?)`)

// monthDayYearRe extracts the first "Month Day, Year" occurrence of a date
var monthDayYearRe = regexp.MustCompile(`([A-Za-z.]+)\s+\d{1,2},\s*(\d{4})`)

// monthNames maps abbreviated month forms, period-tolerant, to canonical names
var monthNames = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "sept": "September", "oct": "October",
	"nov": "November", "dec": "December",
}

// AddressParts parses the street, city, state and zip of a property page.
// The structured info panel is authoritative; the free-text subtitle line
// fills only the fields the panel lacks.
func AddressParts(doc *goquery.Document) (street, city, state, zip string) {
	doc.Find(".presenter-info h5").Each(func(_ int, h5 *goquery.Selection) {
		label := nodeText(h5.Find("span").First())
		val := nodeText(h5.Find("a").First())
		if val == "" {
			return
		}
		switch strings.TrimSpace(label) {
		case "City":
			city = val
		case "State":
			state = val
		case "Zip":
			zip = val
		}
	})

	// Street comes from the hidden heading when present, else the visible one.
	heading := nodeText(doc.Find(".main-title h1.d-none").First())
	if heading == "" {
		heading = nodeText(doc.Find(".navbar-center address h2").First())
	}
	if heading == "" {
		heading = nodeText(doc.Find(".main-title h2").First())
	}
	if candidate := strings.TrimSpace(strings.SplitN(heading, ",", 2)[0]); candidate != "" {
		street = candidate
	}

	if city == "" || state == "" || zip == "" {
		subtitle := nodeText(doc.Find(".navbar-center address h3").First())
		if subtitle == "" {
			subtitle = nodeText(doc.Find(".main-title h2").First())
		}
		if m := subtitleRe.FindStringSubmatch(subtitle); m != nil {
			if city == "" {
				city = strings.TrimSpace(m[1])
			}
			if state == "" {
				state = strings.TrimSpace(m[2])
			}
			if zip == "" {
				zip = strings.TrimSpace(m[3])
			}
		}
	}

	if state == "CA" {
		state = "California"
	}
	return street, city, state, zip
}

// CurrentOwners reads the "Current Owners" row of the property info panel
func CurrentOwners(doc *goquery.Document) string {
	owners := ""
	doc.Find("section#property-info div.row").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label := nodeText(row.Find(".info-type").First())
		val := nodeText(row.Find(".info-data").First())
		if strings.Contains(label, "Current Owners") && val != "" {
			owners = val
			return false
		}
		return true
	})
	return owners
}

// SplitDateParts decomposes a purchase date string into a canonical month
// name and a four-digit year. Text without a "Month Day, Year" occurrence
// yields ("", 0).
func SplitDateParts(dateText string) (string, int) {
	if dateText == "" {
		return "", 0
	}
	m := monthDayYearRe.FindStringSubmatch(dateText)
	if m == nil {
		return "", 0
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0
	}
	month := strings.ToLower(strings.TrimSuffix(m[1], "."))
	if canonical, ok := monthNames[month]; ok {
		return canonical, year
	}
	return titleCase(m[1]), year
}

// titleCase uppercases the first letter of an unrecognized month token
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
