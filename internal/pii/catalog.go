// Package pii locates PII-shaped fragments in plain text. The set of
// recognized shapes is a closed enumeration; matching is a pure function
// of the input text.
package pii

import "regexp"

// Kind identifies one recognized PII shape.
type Kind int

const (
	Phone Kind = iota
	Email
	NationalID
	PaymentCard
)

// Kinds lists every kind in catalog evaluation order.
var Kinds = []Kind{Phone, Email, NationalID, PaymentCard}

func (k Kind) String() string {
	switch k {
	case Phone:
		return "phone"
	case Email:
		return "email"
	case NationalID:
		return "national_id"
	case PaymentCard:
		return "payment_card"
	}
	return "unknown"
}

// Match is one pattern hit inside a text fragment. Start and End are byte
// offsets into the scanned string.
type Match struct {
	Kind  Kind
	Start int
	End   int
}

// Catalog holds one compiled matcher per kind.
type Catalog struct {
	patterns map[Kind]*regexp.Regexp
}

// NewCatalog compiles the built-in patterns. An invalid pattern is a
// configuration error and aborts at startup, not per call.
func NewCatalog() *Catalog {
	return &Catalog{
		patterns: map[Kind]*regexp.Regexp{
			Phone:       regexp.MustCompile(`\b(\+?\d{1,3}[-.]?)?\(?\d{3}\)?[-.]?\d{3}[-.]?\d{4}\b`),
			Email:       regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
			NationalID:  regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			PaymentCard: regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
		},
	}
}

// Match reports every pattern hit in text, in kind order. Kinds match
// independently: the same fragment may produce hits for more than one
// kind, and no de-duplication happens across kinds. Over-reporting is
// preferred to missing a region.
func (c *Catalog) Match(text string) []Match {
	var out []Match
	for _, k := range Kinds {
		for _, loc := range c.patterns[k].FindAllStringIndex(text, -1) {
			out = append(out, Match{Kind: k, Start: loc[0], End: loc[1]})
		}
	}
	return out
}

// Contains reports whether text holds at least one hit of any kind.
func (c *Catalog) Contains(text string) bool {
	for _, k := range Kinds {
		if c.patterns[k].MatchString(text) {
			return true
		}
	}
	return false
}
