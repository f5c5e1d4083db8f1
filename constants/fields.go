package constants

// Field vocabulary for biodata extraction. This is a closed, versioned set
// shared by the extractor, the preview assembler, and the final profile
// mapper; adding a key means updating all three.
const (
	FieldLookingFor         = "looking_for"
	FieldName               = "name"
	FieldDOB                = "dob"
	FieldAge                = "age"
	FieldHeight             = "height"
	FieldMaritalStatus      = "marital_status"
	FieldReligion           = "religion"
	FieldCaste              = "caste"
	FieldSubcaste           = "subcaste"
	FieldMotherTongue       = "mother_tongue"
	FieldEducation          = "education"
	FieldOccupation         = "occupation"
	FieldCompany            = "company"
	FieldIncome             = "income"
	FieldLocationCity       = "location_city"
	FieldLocationState      = "location_state"
	FieldLocationCountry    = "location_country"
	FieldCitizenship        = "citizenship"
	FieldPhone              = "phone"
	FieldFamilyDetails      = "family_details"
	FieldBio                = "bio"
	FieldPartnerPreferences = "partner_preferences"
	FieldAdditionalNotes    = "additional_notes"
)

// vocabulary lists every field key in review-form order.
var vocabulary = []string{
	FieldLookingFor,
	FieldName,
	FieldDOB,
	FieldAge,
	FieldHeight,
	FieldMaritalStatus,
	FieldReligion,
	FieldCaste,
	FieldSubcaste,
	FieldMotherTongue,
	FieldEducation,
	FieldOccupation,
	FieldCompany,
	FieldIncome,
	FieldLocationCity,
	FieldLocationState,
	FieldLocationCountry,
	FieldCitizenship,
	FieldPhone,
	FieldFamilyDetails,
	FieldBio,
	FieldPartnerPreferences,
	FieldAdditionalNotes,
}

// FieldKeys returns a copy of the full vocabulary in canonical order.
func FieldKeys() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// IsFieldKey reports whether key belongs to the vocabulary.
func IsFieldKey(key string) bool {
	for _, k := range vocabulary {
		if k == key {
			return true
		}
	}
	return false
}

// MaritalStatuses holds the allowed values for the marital_status field.
var MaritalStatuses = []string{"Never Married", "Divorced", "Widowed", "Separated", "Annulled"}

// LookingFor values. The subject of the profile is the opposite party:
// a record "looking for Groom" describes a bride-to-be.
const (
	LookingForBride = "Bride"
	LookingForGroom = "Groom"
)

// BiodataFields is the fixed-schema extraction record. Every vocabulary key
// is always present; an empty string means "not found". No sparse maps.
type BiodataFields struct {
	LookingFor         string `json:"looking_for"`
	Name               string `json:"name"`
	DOB                string `json:"dob"` // YYYY-MM-DD
	Age                string `json:"age"`
	Height             string `json:"height"`
	MaritalStatus      string `json:"marital_status"`
	Religion           string `json:"religion"`
	Caste              string `json:"caste"`
	Subcaste           string `json:"subcaste"`
	MotherTongue       string `json:"mother_tongue"`
	Education          string `json:"education"`
	Occupation         string `json:"occupation"`
	Company            string `json:"company"`
	Income             string `json:"income"`
	LocationCity       string `json:"location_city"`
	LocationState      string `json:"location_state"`
	LocationCountry    string `json:"location_country"`
	Citizenship        string `json:"citizenship"`
	Phone              string `json:"phone"`
	FamilyDetails      string `json:"family_details"`
	Bio                string `json:"bio"`
	PartnerPreferences string `json:"partner_preferences"`
	AdditionalNotes    string `json:"additional_notes"`
}

// Get returns the value for a vocabulary key. The second result is false
// for keys outside the vocabulary.
func (f *BiodataFields) Get(key string) (string, bool) {
	switch key {
	case FieldLookingFor:
		return f.LookingFor, true
	case FieldName:
		return f.Name, true
	case FieldDOB:
		return f.DOB, true
	case FieldAge:
		return f.Age, true
	case FieldHeight:
		return f.Height, true
	case FieldMaritalStatus:
		return f.MaritalStatus, true
	case FieldReligion:
		return f.Religion, true
	case FieldCaste:
		return f.Caste, true
	case FieldSubcaste:
		return f.Subcaste, true
	case FieldMotherTongue:
		return f.MotherTongue, true
	case FieldEducation:
		return f.Education, true
	case FieldOccupation:
		return f.Occupation, true
	case FieldCompany:
		return f.Company, true
	case FieldIncome:
		return f.Income, true
	case FieldLocationCity:
		return f.LocationCity, true
	case FieldLocationState:
		return f.LocationState, true
	case FieldLocationCountry:
		return f.LocationCountry, true
	case FieldCitizenship:
		return f.Citizenship, true
	case FieldPhone:
		return f.Phone, true
	case FieldFamilyDetails:
		return f.FamilyDetails, true
	case FieldBio:
		return f.Bio, true
	case FieldPartnerPreferences:
		return f.PartnerPreferences, true
	case FieldAdditionalNotes:
		return f.AdditionalNotes, true
	}
	return "", false
}

// Set assigns value to a vocabulary key and reports whether the key exists.
func (f *BiodataFields) Set(key, value string) bool {
	switch key {
	case FieldLookingFor:
		f.LookingFor = value
	case FieldName:
		f.Name = value
	case FieldDOB:
		f.DOB = value
	case FieldAge:
		f.Age = value
	case FieldHeight:
		f.Height = value
	case FieldMaritalStatus:
		f.MaritalStatus = value
	case FieldReligion:
		f.Religion = value
	case FieldCaste:
		f.Caste = value
	case FieldSubcaste:
		f.Subcaste = value
	case FieldMotherTongue:
		f.MotherTongue = value
	case FieldEducation:
		f.Education = value
	case FieldOccupation:
		f.Occupation = value
	case FieldCompany:
		f.Company = value
	case FieldIncome:
		f.Income = value
	case FieldLocationCity:
		f.LocationCity = value
	case FieldLocationState:
		f.LocationState = value
	case FieldLocationCountry:
		f.LocationCountry = value
	case FieldCitizenship:
		f.Citizenship = value
	case FieldPhone:
		f.Phone = value
	case FieldFamilyDetails:
		f.FamilyDetails = value
	case FieldBio:
		f.Bio = value
	case FieldPartnerPreferences:
		f.PartnerPreferences = value
	case FieldAdditionalNotes:
		f.AdditionalNotes = value
	default:
		return false
	}
	return true
}

// Map renders the record as key -> value over the full vocabulary.
func (f *BiodataFields) Map() map[string]string {
	out := make(map[string]string, len(vocabulary))
	for _, k := range vocabulary {
		v, _ := f.Get(k)
		out[k] = v
	}
	return out
}

// FieldsFromMap builds a record from a string map. Keys outside the
// vocabulary are ignored; absent keys stay empty.
func FieldsFromMap(m map[string]string) BiodataFields {
	var f BiodataFields
	for k, v := range m {
		f.Set(k, v)
	}
	return f
}
