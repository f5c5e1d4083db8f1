// Package mapper translates a review-approved field record into the
// destination profile schema. This is the only hard validation gate in
// the pipeline; everything upstream stays permissive so the reviewer
// always gets a preview to fix.
package mapper

import (
	"strings"

	"github.com/joseph-ayodele/biodata-intake/constants"
	"github.com/joseph-ayodele/biodata-intake/internal/common"
)

// FinalProfile is the destination-schema record. UI-only inputs
// (looking_for, age, the split location parts) are consumed during
// mapping and do not appear here.
type FinalProfile struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Gender          string `json:"gender"`
	DatetimeOfBirth string `json:"datetime_of_birth"`
	Height          string `json:"height"`
	MaritalStatus   string `json:"marital_status"`
	Religion        string `json:"religion"`
	Caste           string `json:"caste"`
	Subcaste        string `json:"subcaste"`
	MotherTongue    string `json:"mother_tongue"`
	Education       string `json:"education"`
	Occupation      string `json:"occupation"`
	Company         string `json:"company"`
	Income          string `json:"income"`
	CurrentLocation string `json:"current_location"`
	Citizenship     string `json:"citizenship"`
	PhoneNumber     string `json:"phone_number"`
	FamilyDetails   string `json:"family_details"`
	Bio             string `json:"bio"`
	PartnerPrefs    string `json:"partner_preferences"`
	AdditionalNotes string `json:"additional_notes"`
	Status          string `json:"status"`
}

// maxNameLength caps the full name; anything longer is pasted text that
// landed in the wrong field.
const maxNameLength = 255

// ToFinalProfile maps corrected fields to the destination schema. It
// fails with a validation error when name or the looking_for selector is
// absent; every other field is optional.
//
// The gender mapping is an intentional inversion: the biodata is written
// on behalf of the candidate's family, so "looking for Groom" means the
// profile subject is the bride. Do not "fix" this without product
// sign-off; downstream matching depends on it.
func ToFinalProfile(corrected constants.BiodataFields) (FinalProfile, error) {
	v := common.NewValidator()
	v.Field(constants.FieldName, corrected.Name, common.Required, common.MaxLength(maxNameLength))
	v.Field(constants.FieldLookingFor, corrected.LookingFor, common.Required)
	if !v.HasErrors() {
		v.Field(constants.FieldLookingFor, corrected.LookingFor,
			common.OneOf(constants.LookingForBride, constants.LookingForGroom))
	}
	if err := v.Error(); err != nil {
		return FinalProfile{}, err
	}

	first, last := SplitName(corrected.Name)

	out := FinalProfile{
		FirstName:       first,
		LastName:        last,
		Gender:          GenderFor(corrected.LookingFor),
		DatetimeOfBirth: strings.TrimSpace(corrected.DOB),
		Height:          strings.TrimSpace(corrected.Height),
		MaritalStatus:   strings.TrimSpace(corrected.MaritalStatus),
		Religion:        strings.TrimSpace(corrected.Religion),
		Caste:           strings.TrimSpace(corrected.Caste),
		Subcaste:        strings.TrimSpace(corrected.Subcaste),
		MotherTongue:    strings.TrimSpace(corrected.MotherTongue),
		Education:       strings.TrimSpace(corrected.Education),
		Occupation:      strings.TrimSpace(corrected.Occupation),
		Company:         strings.TrimSpace(corrected.Company),
		Income:          strings.TrimSpace(corrected.Income),
		CurrentLocation: JoinLocation(corrected.LocationCity, corrected.LocationState, corrected.LocationCountry),
		Citizenship:     strings.TrimSpace(corrected.Citizenship),
		PhoneNumber:     strings.TrimSpace(corrected.Phone),
		FamilyDetails:   strings.TrimSpace(corrected.FamilyDetails),
		Bio:             strings.TrimSpace(corrected.Bio),
		PartnerPrefs:    strings.TrimSpace(corrected.PartnerPreferences),
		AdditionalNotes: strings.TrimSpace(corrected.AdditionalNotes),
		Status:          "verified",
	}
	return out, nil
}

// SplitName takes the first whitespace-separated token as the given name;
// the remainder, joined by single spaces, is the family name (possibly
// empty).
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// GenderFor inverts the looking_for selector: a Groom-seeker is recorded
// as Female, a Bride-seeker as Male.
func GenderFor(lookingFor string) string {
	switch lookingFor {
	case constants.LookingForGroom:
		return "Female"
	case constants.LookingForBride:
		return "Male"
	}
	return ""
}

// JoinLocation merges the split location parts into one display string,
// omitting absent parts.
func JoinLocation(city, state, country string) string {
	var parts []string
	for _, p := range []string{city, state, country} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
