package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/biodata-intake/constants"
)

func TestExtractLookingFor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"looking for groom", "Looking for Groom", constants.LookingForGroom},
		{"alliance for daughter", "Alliance for our daughter, well settled family", constants.LookingForGroom},
		{"seeking match for sister", "Seeking a suitable match for my sister", constants.LookingForGroom},
		{"looking for bride", "Looking for a bride for our son", constants.LookingForBride},
		{"match for brother", "Match for my brother, US based", constants.LookingForBride},
		{"no signal", "Name: Ravi\nHeight: 5ft10in", ""},
		{"keyword without seek phrase", "He has one brother", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLookingFor(tt.in))
		})
	}
}

// When both signals appear, the Bride check runs second and overwrites.
func TestExtractLookingForBothSignals(t *testing.T) {
	in := "Looking for a groom. Also seeking a bride for her brother."
	assert.Equal(t, constants.LookingForBride, ExtractLookingFor(in))
}
