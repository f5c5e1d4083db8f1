package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractDOBLayouts(t *testing.T) {
	today := date(2024, time.June, 20)
	tests := []struct {
		name string
		in   string
		dob  string
		age  string
	}{
		{"iso", "DOB: 1995-01-01", "1995-01-01", "29"},
		{"ordinal day month year", "DOB: 1st Jan 1995", "1995-01-01", "29"},
		{"day month year", "Date of Birth: 2 Jan 1992", "1992-01-02", "32"},
		{"month day comma year", "Born: Jan 2, 1992", "1992-01-02", "32"},
		{"full month", "DOB: 15 June 1990", "1990-06-15", "34"},
		{"us slashes month first", "DOB: 6/15/1990", "1990-06-15", "34"},
		{"dashes month first", "DOB: 6-15-1990", "1990-06-15", "34"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dob, age := ExtractDOB(tt.in, today)
			assert.Equal(t, tt.dob, dob)
			assert.Equal(t, tt.age, age)
		})
	}
}

func TestExtractDOBUnparseablePassesThrough(t *testing.T) {
	dob, age := ExtractDOB("DOB: sometime in winter", date(2024, time.June, 20))
	assert.Equal(t, "sometime in winter", dob)
	assert.Equal(t, "", age)
}

func TestExtractDOBAbsent(t *testing.T) {
	dob, age := ExtractDOB("Name: Ravi", date(2024, time.June, 20))
	assert.Equal(t, "", dob)
	assert.Equal(t, "", age)
}

func TestAgeAtBirthdayBoundary(t *testing.T) {
	birth := date(1990, time.June, 15)

	t.Run("day before birthday", func(t *testing.T) {
		assert.Equal(t, 33, AgeAt(birth, date(2024, time.June, 14)))
	})
	t.Run("on birthday", func(t *testing.T) {
		assert.Equal(t, 34, AgeAt(birth, date(2024, time.June, 15)))
	})
	t.Run("day after birthday", func(t *testing.T) {
		assert.Equal(t, 34, AgeAt(birth, date(2024, time.June, 16)))
	})
	t.Run("earlier month", func(t *testing.T) {
		assert.Equal(t, 33, AgeAt(birth, date(2024, time.May, 20)))
	})
}
