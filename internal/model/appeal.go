package model

import "time"

// Hearing types resolved from the paired boolean OCR flags.
const (
	HearingTypeOral  = "oral"
	HearingTypePaper = "paper"
)

// Arrangement tags contributed by the hearing support flags.
const (
	ArrangementDisabledAccess          = "disabledAccess"
	ArrangementHearingLoop             = "hearingLoop"
	ArrangementSignLanguageInterpreter = "signLanguageInterpreter"
)

// DefaultSignLanguage is recorded when the sign-language-interpreter flag
// is true but the form left the language type blank.
const DefaultSignLanguage = "British Sign Language (BSL)"

// Name holds a person's name as written on the form.
type Name struct {
	Title     string `json:"title,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Address is a UK postal address; Line2 and County are frequently blank on
// scanned forms.
type Address struct {
	Line1    string `json:"line1,omitempty"`
	Line2    string `json:"line2,omitempty"`
	Town     string `json:"town,omitempty"`
	County   string `json:"county,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// Identity carries the identifying details used by the downstream case
// index. DOB is nil when the raw value was absent or unparseable.
type Identity struct {
	DOB  *time.Time `json:"dob,omitempty"`
	Nino string     `json:"nino,omitempty"`
}

// Contact holds the contact details of the directly-contactable party.
type Contact struct {
	Phone  string `json:"phone,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Appointee is a person legally acting on behalf of the actual appellant.
type Appointee struct {
	Name     *Name     `json:"name,omitempty"`
	Address  *Address  `json:"address,omitempty"`
	Identity *Identity `json:"identity,omitempty"`
	Contact  *Contact  `json:"contact,omitempty"`
}

// Appellant is the person the appeal is about. Contact is nil when an
// appointee is acting for them, since only the directly-contactable party
// carries contact details.
type Appellant struct {
	Name        *Name      `json:"name,omitempty"`
	Address     *Address   `json:"address,omitempty"`
	Identity    *Identity  `json:"identity,omitempty"`
	Contact     *Contact   `json:"contact,omitempty"`
	Appointee   *Appointee `json:"appointee,omitempty"`
	IsAppointee string     `json:"is_appointee,omitempty"`
}

// Representative is always emitted with a consistent shape: when no
// representative fields were present on the form, HasRepresentative is
// "No" and every other field is empty.
type Representative struct {
	HasRepresentative string   `json:"has_representative"`
	Organisation      string   `json:"organisation,omitempty"`
	Name              *Name    `json:"name,omitempty"`
	Address           *Address `json:"address,omitempty"`
	Contact           *Contact `json:"contact,omitempty"`
}

// MrnDetails describe the Mandatory Reconsideration Notice the appeal is
// lodged against. Date is nil when the raw value was absent or failed the
// dd/mm/yyyy parse.
type MrnDetails struct {
	Date          *time.Time `json:"date,omitempty"`
	LateReason    string     `json:"late_reason,omitempty"`
	IssuingOffice string     `json:"issuing_office,omitempty"`
}

// DateRange is one excluded hearing-date entry. Start carries the raw
// string exactly as scanned; normalization happens only on case-bound
// date fields.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// HearingOptions collects the appellant's hearing accommodations.
type HearingOptions struct {
	ExcludeDates        []DateRange `json:"exclude_dates,omitempty"`
	Arrangements        []string    `json:"arrangements,omitempty"`
	LanguageInterpreter string      `json:"language_interpreter,omitempty"`
	Languages           string      `json:"languages,omitempty"`
	SignLanguageType    string      `json:"sign_language_type,omitempty"`
	WantsToAttend       string      `json:"wants_to_attend,omitempty"`
}

// BenefitType is the classified benefit the appeal concerns. Code may be a
// canonical short code or, when classification found no confident match,
// the raw scanned description unchanged.
type BenefitType struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Appeal is the structured appeal record built from a raw OCR field map.
// It is assembled once by the transformer and never mutated afterwards.
type Appeal struct {
	BenefitType    *BenefitType    `json:"benefit_type,omitempty"`
	Appellant      *Appellant      `json:"appellant,omitempty"`
	Rep            *Representative `json:"rep,omitempty"`
	Mrn            *MrnDetails     `json:"mrn,omitempty"`
	HearingType    string          `json:"hearing_type,omitempty"`
	HearingOptions *HearingOptions `json:"hearing_options,omitempty"`
	Signer         string          `json:"signer,omitempty"`
}
