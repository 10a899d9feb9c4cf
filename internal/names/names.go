// Package names converts free-text party names into comparable token sets.
// Owner and buyer strings on property pages are noisy: co-owner lists joined
// by commas or "&", trust suffixes, middle initials, stray years. Everything
// here is a pure function over strings.
package names

import (
	"regexp"
	"strings"
)

var orgNoiseWords = []string{"trust", "trustee", "living", "revocable"}

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "et": {}, "al": {}, "jr": {}, "sr": {},
	"i": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
	"ua": {}, "fbo": {}, "buyer": {}, "seller": {}, "family": {},
}

var (
	segmentRe    = regexp.MustCompile(`\s*(?:,|&| and )\s*`)
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
	orgNoiseRe   = regexp.MustCompile(`(?i)\b(?:trust|trustee|living|revocable)\b`)
	bareNumberRe = regexp.MustCompile(`\b\d{2,4}\b`)
	punctRe      = regexp.MustCompile(`[^\w\s]`)
	spaceRe      = regexp.MustCompile(`\s+`)
	alphaWordRe  = regexp.MustCompile(`[A-Za-z]+`)
	anyLetterRe  = regexp.MustCompile(`[A-Za-z]`)
)

// Set is a set of normalized name tokens
type Set map[string]struct{}

// Contains reports whether t is in the set
func (s Set) Contains(t string) bool {
	_, ok := s[t]
	return ok
}

// SubsetOf reports whether every token of s is in other
func (s Set) SubsetOf(other Set) bool {
	for t := range s {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// Equal reports whether s and other hold exactly the same tokens
func (s Set) Equal(other Set) bool {
	return len(s) == len(other) && s.SubsetOf(other)
}

// IntersectionSize counts tokens present in both s and other
func (s Set) IntersectionSize(other Set) int {
	n := 0
	for t := range s {
		if other.Contains(t) {
			n++
		}
	}
	return n
}

// Normalize lowercases, expands "&" to "and", strips punctuation and
// collapses whitespace. Used both for tokenization and for the
// whitespace/punctuation-insensitive full-string comparison.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")
	s = punctRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// cleanSegment strips parenthetical asides, organizational noise words and
// bare 2-4 digit numbers from one party segment
func cleanSegment(seg string) string {
	seg = parenRe.ReplaceAllString(seg, " ")
	seg = orgNoiseRe.ReplaceAllString(seg, " ")
	seg = bareNumberRe.ReplaceAllString(seg, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(seg, " "))
}

// segments splits a multi-party string on comma, "&" or the word "and",
// cleans each part and keeps those that still contain a letter
func segments(s string) []string {
	if s == "" {
		return nil
	}
	var keep []string
	for _, p := range segmentRe.Split(s, -1) {
		if p2 := cleanSegment(p); anyLetterRe.MatchString(p2) {
			keep = append(keep, p2)
		}
	}
	return keep
}

// BareTokens tokenizes without per-segment cleanup: normalized words longer
// than one character that are not stop words. Years and trust words survive
// here, which is what makes it the permissive side of the superset checks.
func BareTokens(s string) Set {
	out := Set{}
	if s == "" {
		return out
	}
	for _, t := range strings.Fields(Normalize(s)) {
		if len(t) > 1 {
			if _, stop := stopWords[t]; !stop {
				out[t] = struct{}{}
			}
		}
	}
	return out
}

// TokenSet tokenizes after full per-segment cleanup: split into party
// segments, strip asides/noise/numbers, then tokenize each segment.
func TokenSet(s string) Set {
	out := Set{}
	for _, seg := range segments(s) {
		for t := range BareTokens(seg) {
			out[t] = struct{}{}
		}
	}
	return out
}

// FirstNameSet takes the first alphabetic word of each cleaned segment,
// ignoring stop words, keeping names of length >= 2
func FirstNameSet(s string) Set {
	return edgeNames(s, false, 2)
}

// LastNameSet takes the last alphabetic word of each cleaned segment,
// ignoring stop words, keeping names of length >= 3
func LastNameSet(s string) Set {
	return edgeNames(s, true, 3)
}

func edgeNames(s string, last bool, minLen int) Set {
	out := Set{}
	for _, seg := range segments(s) {
		var words []string
		for _, w := range alphaWordRe.FindAllString(seg, -1) {
			lw := strings.ToLower(w)
			if _, stop := stopWords[lw]; !stop {
				words = append(words, lw)
			}
		}
		if len(words) == 0 {
			continue
		}
		name := words[0]
		if last {
			name = words[len(words)-1]
		}
		if len(name) >= minLen {
			out[name] = struct{}{}
		}
	}
	return out
}

// HasOrgNoise reports whether the normalized text contains an organizational
// noise word as a substring
func HasOrgNoise(s string) bool {
	norm := Normalize(s)
	for _, w := range orgNoiseWords {
		if strings.Contains(norm, w) {
			return true
		}
	}
	return false
}
