package mapper

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/common"
)

func validFields() constants.BiodataFields {
	var f constants.BiodataFields
	f.Name = "Asha Rao"
	f.LookingFor = constants.LookingForGroom
	f.DOB = "1995-01-01"
	f.LocationCity = "Foster City"
	f.LocationState = "CA"
	f.LocationCountry = "USA"
	return f
}

func TestToFinalProfile(t *testing.T) {
	out, err := ToFinalProfile(validFields())
	require.NoError(t, err)

	assert.Equal(t, "Asha", out.FirstName)
	assert.Equal(t, "Rao", out.LastName)
	assert.Equal(t, "Female", out.Gender)
	assert.Equal(t, "1995-01-01", out.DatetimeOfBirth)
	assert.Equal(t, "Foster City, CA, USA", out.CurrentLocation)
	assert.Equal(t, "verified", out.Status)
}

func TestToFinalProfileGenderInversion(t *testing.T) {
	t.Run("groom seeker is female", func(t *testing.T) {
		f := validFields()
		f.LookingFor = constants.LookingForGroom
		out, err := ToFinalProfile(f)
		require.NoError(t, err)
		assert.Equal(t, "Female", out.Gender)
	})
	t.Run("bride seeker is male", func(t *testing.T) {
		f := validFields()
		f.LookingFor = constants.LookingForBride
		out, err := ToFinalProfile(f)
		require.NoError(t, err)
		assert.Equal(t, "Male", out.Gender)
	})
}

func TestToFinalProfileValidation(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		f := validFields()
		f.Name = ""
		_, err := ToFinalProfile(f)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrValidation))
	})
	t.Run("missing looking_for", func(t *testing.T) {
		f := validFields()
		f.LookingFor = ""
		_, err := ToFinalProfile(f)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrValidation))
	})
	t.Run("over-long name", func(t *testing.T) {
		f := validFields()
		f.Name = strings.Repeat("a", 256)
		_, err := ToFinalProfile(f)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrValidation))
	})
	t.Run("unknown looking_for value", func(t *testing.T) {
		f := validFields()
		f.LookingFor = "Partner"
		_, err := ToFinalProfile(f)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrValidation))
	})
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in    string
		first string
		last  string
	}{
		{"Asha Rao", "Asha", "Rao"},
		{"Asha", "Asha", ""},
		{"  Asha   Kumari   Rao  ", "Asha", "Kumari Rao"},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := SplitName(tt.in)
		assert.Equal(t, tt.first, first)
		assert.Equal(t, tt.last, last)
	}
}

func TestJoinLocation(t *testing.T) {
	assert.Equal(t, "Foster City, CA, USA", JoinLocation("Foster City", "CA", "USA"))
	assert.Equal(t, "Foster City, USA", JoinLocation("Foster City", "", "USA"))
	assert.Equal(t, "CA", JoinLocation("", "CA", ""))
	assert.Equal(t, "", JoinLocation("", "  ", ""))
}
