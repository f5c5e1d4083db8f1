package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFamilyDetailsLabeled(t *testing.T) {
	in := "Father Name: Suresh Rao\nFather Occupation: Retired banker\nMother's Name: Lakshmi Rao\nMother Occupation: Homemaker"
	want := "Father Name: Suresh Rao\n" +
		"Father Occupation: Retired banker\n" +
		"Mother Name: Lakshmi Rao\n" +
		"Mother Occupation: Homemaker"
	assert.Equal(t, want, ExtractFamilyDetails(in))
}

func TestExtractFamilyDetailsBareLabels(t *testing.T) {
	in := "Father: Suresh Rao\nMother: Lakshmi Rao\nBrother: Ajay, works in Pune"
	got := ExtractFamilyDetails(in)
	assert.Contains(t, got, "Father Name: Suresh Rao")
	assert.Contains(t, got, "Mother Name: Lakshmi Rao")
	assert.Contains(t, got, "Brother Name: Ajay, works in Pune")
}

func TestExtractFamilyDetailsBackgroundAndLocation(t *testing.T) {
	in := "Family Details: Well educated middle class family\nFamily residing in Chennai"
	want := "Family Details: Well educated middle class family\n" +
		"Family Location: Chennai"
	assert.Equal(t, want, ExtractFamilyDetails(in))
}

func TestExtractFamilyDetailsImplicitOccupation(t *testing.T) {
	t.Run("plain sentence", func(t *testing.T) {
		got := ExtractFamilyDetails("Father is a retired banker")
		assert.Equal(t, "Father Occupation: a retired banker", got)
	})

	t.Run("name line does not hide a later occupation sentence", func(t *testing.T) {
		in := "Father Name: Suresh Rao\nFather is a retired banker"
		got := ExtractFamilyDetails(in)
		assert.Contains(t, got, "Father Name: Suresh Rao")
		assert.Contains(t, got, "Father Occupation: a retired banker")
	})

	t.Run("title sentence does not hide a later occupation sentence", func(t *testing.T) {
		in := "Mother Mrs. Lakshmi Rao attended\nMother is a school teacher"
		got := ExtractFamilyDetails(in)
		assert.Contains(t, got, "Mother Occupation: a school teacher")
	})

	t.Run("labeled occupation wins over implicit", func(t *testing.T) {
		in := "Father Occupation: Civil engineer\nFather is also a farmer"
		got := ExtractFamilyDetails(in)
		assert.Contains(t, got, "Father Occupation: Civil engineer")
		assert.NotContains(t, got, "also a farmer")
	})

	t.Run("honorific title rejected", func(t *testing.T) {
		assert.Equal(t, "", ExtractFamilyDetails("Father Mr. Suresh Rao attended"))
		assert.Equal(t, "", ExtractFamilyDetails("Mother Mrs. Lakshmi Rao attended"))
		assert.Equal(t, "", ExtractFamilyDetails("Father Sri Venkatesh attended"))
	})

	t.Run("digits rejected", func(t *testing.T) {
		got := ExtractFamilyDetails("Father can be reached on 98450 12345")
		assert.Equal(t, "", got)
	})
}

func TestExtractFamilyDetailsStripsNestedLabel(t *testing.T) {
	got := ExtractFamilyDetails("Father: Name: Suresh Rao")
	assert.Equal(t, "Father Name: Suresh Rao", got)
}

func TestExtractFamilyDetailsEmpty(t *testing.T) {
	assert.Equal(t, "", ExtractFamilyDetails("Name: Ravi\nHeight: 5ft10in"))
}
