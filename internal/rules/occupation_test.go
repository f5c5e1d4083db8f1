package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitOccupation(t *testing.T) {
	tests := []struct {
		name       string
		occupation string
		company    string
		title      string
		employer   string
		city       string
		state      string
	}{
		{
			name:       "title at employer",
			occupation: "Software Engineer at Google",
			title:      "Software Engineer",
			employer:   "Google",
		},
		{
			name:       "employer with city and state code",
			occupation: "Business Analyst in Gilead Sciences, Foster City CA",
			title:      "Business Analyst",
			employer:   "Gilead Sciences",
			city:       "Foster City",
			state:      "CA",
		},
		{
			name:       "zip stripped from location",
			occupation: "Consultant with Deloitte, Edison NJ 08817",
			title:      "Consultant",
			employer:   "Deloitte",
			city:       "Edison",
			state:      "NJ",
		},
		{
			name:       "trailing city without employer",
			occupation: "Software Engineer in Bangalore",
			title:      "Software Engineer",
			employer:   "Bangalore",
		},
		{
			name:       "labeled company wins",
			occupation: "Senior Developer",
			company:    "Infosys",
			title:      "Senior Developer",
			employer:   "Infosys",
		},
		{
			name:       "no split",
			occupation: "Doctor",
			title:      "Doctor",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, employer, city, state := SplitOccupation(tt.occupation, tt.company)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.employer, employer)
			assert.Equal(t, tt.city, city)
			assert.Equal(t, tt.state, state)
		})
	}
}

func TestSplitOccupationTrailingCommaPart(t *testing.T) {
	t.Run("final comma part read as city", func(t *testing.T) {
		title, employer, city, state := SplitOccupation("Chartered Accountant, Mumbai", "")
		assert.Equal(t, "Chartered Accountant, Mumbai", title)
		assert.Equal(t, "", employer)
		assert.Equal(t, "Mumbai", city)
		assert.Equal(t, "", state)
	})
	t.Run("company-form suffix not a city", func(t *testing.T) {
		_, _, city, _ := SplitOccupation("Director, Tata Consultancy Services Ltd", "")
		assert.Equal(t, "", city)
	})
}
