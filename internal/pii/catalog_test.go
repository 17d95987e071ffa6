package pii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogMatch(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name string
		text string
		want []Kind
	}{
		{name: "dashed phone", text: "Call 212-555-0100", want: []Kind{Phone}},
		{name: "parenthesized phone", text: "(212)555-0100", want: []Kind{Phone}},
		{name: "bare ten digit phone", text: "dial 2125550100 now", want: []Kind{Phone}},
		{name: "email", text: "Email: a@b.com", want: []Kind{Email}},
		{name: "uppercase domain email", text: "ADMIN@EXAMPLE.COM", want: []Kind{Email}},
		{name: "national id", text: "SSN 123-45-6789", want: []Kind{NationalID}},
		{name: "payment card spaced", text: "card 4111 1111 1111 1111", want: []Kind{PaymentCard}},
		{name: "payment card dashed", text: "4111-1111-1111-1111", want: []Kind{PaymentCard}},
		{name: "plain prose", text: "nothing sensitive here", want: nil},
		{name: "price is not a card", text: "total $12.50", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			matches := catalog.Match(tc.text)
			var kinds []Kind
			for _, m := range matches {
				kinds = append(kinds, m.Kind)
			}
			assert.Equal(t, tc.want, kinds)
		})
	}
}

func TestCatalogMatchMultipleKindsInOneFragment(t *testing.T) {
	catalog := NewCatalog()

	matches := catalog.Match("Email a@b.com or call 212-555-0100")
	require.Len(t, matches, 2)
	// Results come back in kind declaration order, not text order.
	assert.Equal(t, Phone, matches[0].Kind)
	assert.Equal(t, Email, matches[1].Kind)
}

func TestCatalogMatchSpans(t *testing.T) {
	catalog := NewCatalog()

	matches := catalog.Match("Email: a@b.com")
	require.Len(t, matches, 1)
	assert.Equal(t, "a@b.com", "Email: a@b.com"[matches[0].Start:matches[0].End])
}

func TestCatalogContains(t *testing.T) {
	catalog := NewCatalog()

	assert.True(t, catalog.Contains("reach me at a@b.com"))
	assert.False(t, catalog.Contains("no pii"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "phone", Phone.String())
	assert.Equal(t, "email", Email.String())
	assert.Equal(t, "national_id", NationalID.String())
	assert.Equal(t, "payment_card", PaymentCard.String())
}
