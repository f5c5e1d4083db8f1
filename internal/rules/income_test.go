package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIncome(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"labeled income", "Income: 25 LPA", "25 LPA"},
		{"labeled salary", "Salary - $120,000 per year", "$120,000 per year"},
		{"labeled ctc", "CTC: 18 Lakhs", "18 Lakhs"},
		{"bare money token", "He earns 100K at his current job", "100K"},
		{"bare lpa token", "Package of 12 LPA offered", "of 12 LPA offered"},
		{"indian annual", "Makes 12,00,000 Per Annum", "00,000 Per Annum"},
		{"nothing", "Name: Ravi", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIncome(tt.in))
		})
	}
}

func TestIncomeFromOccupation(t *testing.T) {
	assert.Equal(t, "140K", incomeFromOccupation("Software Engineer making 140K"))
	assert.Equal(t, "around 90K a year", incomeFromOccupation("Analyst earning around 90K a year"))
	assert.Equal(t, "", incomeFromOccupation("Software Engineer at Google"))
}

func TestExtractPartnerPreferences(t *testing.T) {
	in := "Looking for: well educated girl\nDietary preference: Vegetarian only\nPartner Preferences: working professional"
	want := "well educated girl\nVegetarian only\nworking professional"
	assert.Equal(t, want, ExtractPartnerPreferences(in))

	assert.Equal(t, "", ExtractPartnerPreferences("Name: Ravi"))
}
