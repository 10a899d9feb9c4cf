package names

import (
	"sort"
	"strings"
	"testing"
)

func sorted(s Set) []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func equalTokens(got Set, want ...string) bool {
	sort.Strings(want)
	return strings.Join(sorted(got), ",") == strings.Join(want, ",")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Jane Doe", "jane doe"},
		{"Smith, John A.", "smith john a"},
		{"John & Mary Smith", "john and mary smith"},
		{"  Doe,   Jane  ", "doe jane"},
		{"O'Brien-Smith", "o brien smith"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenSet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single person", "Jane Doe", []string{"jane", "doe"}},
		{"co-owners with ampersand", "John A. Smith & Mary Smith", []string{"john", "smith", "mary"}},
		{"stop words dropped", "John Smith Jr and The Smith Family", []string{"john", "smith"}},
		{"trust noise stripped", "Smith Living Trust 2010", []string{"smith"}},
		{"parenthetical stripped", "Jane Doe (deceased)", []string{"jane", "doe"}},
		{"single letters dropped", "J Smith", []string{"smith"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSet(tt.in); !equalTokens(got, tt.want...) {
				t.Errorf("TokenSet(%q) = %v, want %v", tt.in, sorted(got), tt.want)
			}
		})
	}
}

func TestBareTokens_KeepsNoiseWords(t *testing.T) {
	// BareTokens skips per-segment cleanup, so trust words and years survive.
	got := BareTokens("Smith Living Trust 2010")
	for _, tok := range []string{"smith", "living", "trust", "2010"} {
		if !got.Contains(tok) {
			t.Errorf("expected BareTokens to contain %q, got %v", tok, sorted(got))
		}
	}
}

func TestFirstNameSet(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Jane Doe", []string{"jane"}},
		{"John A. Smith & Mary Smith", []string{"john", "mary"}},
		{"Smith, Jane", []string{"smith", "jane"}},
		{"The John Smith", []string{"john"}},
	}
	for _, tt := range tests {
		if got := FirstNameSet(tt.in); !equalTokens(got, tt.want...) {
			t.Errorf("FirstNameSet(%q) = %v, want %v", tt.in, sorted(got), tt.want)
		}
	}
}

func TestLastNameSet(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Jane Doe", []string{"doe"}},
		{"John Smith & Mary Jones", []string{"smith", "jones"}},
		// "Ng" is below the 3-character minimum for last names
		{"Amy Ng", nil},
		{"John Smith Jr", []string{"smith"}},
	}
	for _, tt := range tests {
		if got := LastNameSet(tt.in); !equalTokens(got, tt.want...) {
			t.Errorf("LastNameSet(%q) = %v, want %v", tt.in, sorted(got), tt.want)
		}
	}
}

func TestSetOperations(t *testing.T) {
	a := Set{"jane": {}, "doe": {}}
	b := Set{"jane": {}, "doe": {}, "john": {}}

	if !a.SubsetOf(b) {
		t.Error("expected {jane,doe} to be a subset of {jane,doe,john}")
	}
	if b.SubsetOf(a) {
		t.Error("did not expect {jane,doe,john} to be a subset of {jane,doe}")
	}
	if a.Equal(b) {
		t.Error("sets of different size must not be equal")
	}
	if got := a.IntersectionSize(b); got != 2 {
		t.Errorf("IntersectionSize = %d, want 2", got)
	}
	if !(Set{}).SubsetOf(a) {
		t.Error("empty set must be a subset of anything")
	}
}

func TestHasOrgNoise(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Jane Doe", false},
		{"Smith Family Trust", true},
		{"Smith Revocable Living Trust", true},
		{"TRUSTEE OF THE DOE ESTATE", true},
		{"Acme Holdings LLC", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasOrgNoise(tt.in); got != tt.want {
			t.Errorf("HasOrgNoise(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
