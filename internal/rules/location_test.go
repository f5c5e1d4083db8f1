package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		city    string
		state   string
		country string
	}{
		{
			name:    "city state country",
			in:      "Current Location: Foster City, CA, USA",
			city:    "Foster City",
			state:   "CA",
			country: "USA",
		},
		{
			name:  "city state only",
			in:    "Location: Hyderabad, Telangana",
			city:  "Hyderabad",
			state: "Telangana",
		},
		{
			name: "city only",
			in:   "Residing at: Bangalore",
			city: "Bangalore",
		},
		{
			name:  "zip stripped from state",
			in:    "Address: Edison, NJ 08817",
			city:  "Edison",
			state: "NJ",
		},
		{
			name:    "zip stripped with country",
			in:      "Location: Fremont, CA 94536, USA",
			city:    "Fremont",
			state:   "CA",
			country: "USA",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, state, country := ExtractLocation(tt.in)
			assert.Equal(t, tt.city, city)
			assert.Equal(t, tt.state, state)
			assert.Equal(t, tt.country, country)
		})
	}
}

func TestExtractLocationAbsent(t *testing.T) {
	city, state, country := ExtractLocation("Name: Ravi\nHeight: 5ft10in")
	assert.Empty(t, city)
	assert.Empty(t, state)
	assert.Empty(t, country)
}
