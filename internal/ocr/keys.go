package ocr

// Role prefixes of the person-keyed OCR fields. The paper form's
// convention is that an appointee fills in person1 fields for themselves
// and person2 fields for the person they act for.
const (
	RolePerson1        = "person1"
	RolePerson2        = "person2"
	RoleRepresentative = "representative"
	RoleOtherParty     = "other_party"
)

// Suffixes shared by all person-keyed fields.
const (
	SuffixTitle        = "_title"
	SuffixFirstName    = "_first_name"
	SuffixLastName     = "_last_name"
	SuffixAddressLine1 = "_address_line1"
	SuffixAddressLine2 = "_address_line2"
	SuffixAddressLine3 = "_address_line3"
	SuffixAddressLine4 = "_address_line4"
	SuffixPostcode     = "_postcode"
	SuffixPhone        = "_phone"
	SuffixMobile       = "_mobile"
	SuffixEmail        = "_email"
	SuffixDOB          = "_dob"
	SuffixNino         = "_nino"
)

// Non-person field keys.
const (
	KeyBenefitTypeDescription = "benefit_type_description"
	KeyMrnDate                = "mrn_date"
	KeyMrnLateReason          = "appeal_late_reason"
	KeyOffice                 = "office"
	KeyRepresentativeCompany  = "representative_company"

	KeyIsHearingTypeOral  = "is_hearing_type_oral"
	KeyIsHearingTypePaper = "is_hearing_type_paper"

	KeyHearingOptionsExcludeDates     = "hearing_options_exclude_dates"
	KeyHearingOptionsAccessibleRooms  = "hearing_options_accessible_hearing_rooms"
	KeyHearingOptionsHearingLoop      = "hearing_options_hearing_loop"
	KeyHearingOptionsSignLanguage     = "hearing_options_sign_language_interpreter"
	KeyHearingOptionsSignLanguageType = "hearing_options_sign_language_type"
	KeyHearingOptionsLanguage         = "hearing_options_language"
	KeyHearingOptionsLanguageType     = "hearing_options_language_type"

	KeySignatureName = "signature_name"

	// SSCS2 child-maintenance role flags; mutually exclusive on the form.
	KeyIsPayingParent    = "is_paying_parent"
	KeyIsReceivingParent = "is_receiving_parent"
	KeyIsAnotherParty    = "is_another_party"
)

// PersonKeys returns the full set of keys for a person role prefix.
func PersonKeys(role string) []string {
	suffixes := []string{
		SuffixTitle, SuffixFirstName, SuffixLastName,
		SuffixAddressLine1, SuffixAddressLine2, SuffixAddressLine3,
		SuffixAddressLine4, SuffixPostcode,
		SuffixPhone, SuffixMobile, SuffixEmail,
		SuffixDOB, SuffixNino,
	}
	keys := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		keys = append(keys, role+s)
	}
	return keys
}
