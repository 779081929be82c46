// Package transform assembles the structured appeal record from the flat
// OCR field map. It never fails outright for missing data: anything it
// cannot parse is recorded as an error entry or left nil on the appeal,
// for the rule validator to judge.
package transform

import (
	"fmt"
	"strings"
	"time"

	"bulkscan/internal/benefit"
	"bulkscan/internal/model"
	"bulkscan/internal/ocr"
)

// CaseDateFormat is the date layout used on case-bound fields.
const CaseDateFormat = "2006-01-02"

// Transform builds an Appeal from the raw field map. The returned error
// strings are transform errors in the pipeline's taxonomy: a field that
// was present but could not be parsed into its target shape. Missing
// fields never produce errors here.
func Transform(fields ocr.Fields) (*model.Appeal, []string) {
	b := &builder{fields: fields}

	appeal := &model.Appeal{
		BenefitType: b.buildBenefitType(),
		Appellant:   b.buildAppellant(),
		Rep:         b.buildRepresentative(),
		Mrn:         b.buildMrn(),
		HearingType: b.hearingType(),
		Signer:      b.get(ocr.KeySignatureName),
	}
	appeal.HearingOptions = b.buildHearingOptions(appeal.HearingType)

	return appeal, b.errs
}

// BuildDocuments maps the scanned evidence onto the case document list.
// Content is copied by reference; only the date is reformatted for the
// case index.
func BuildDocuments(docs []model.ScannedDocument) []model.CaseDocument {
	if len(docs) == 0 {
		return nil
	}
	out := make([]model.CaseDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.CaseDocument{
			DocumentFileName:  d.URL.DocumentFilename,
			DocumentDateAdded: d.ScannedDate.Format(CaseDateFormat),
			DocumentType:      model.OtherDocumentType,
			DocumentLink:      d.URL,
		})
	}
	return out
}

type builder struct {
	fields ocr.Fields
	errs   []string
}

func (b *builder) get(key string) string {
	return strings.TrimSpace(b.fields.Get(key))
}

// dateField parses a dd/mm/yyyy field, recording a transform error when
// a value is present but does not parse. Absent or blank values yield
// nil silently.
func (b *builder) dateField(key string) *time.Time {
	raw := b.get(key)
	if raw == "" {
		return nil
	}
	d, ok := b.fields.Date(key)
	if !ok {
		b.errs = append(b.errs, fmt.Sprintf(
			"%s is an invalid date field. Needs to be a valid date and in the format dd/mm/yyyy", key))
		return nil
	}
	return d
}

func (b *builder) buildBenefitType() *model.BenefitType {
	raw := b.get(ocr.KeyBenefitTypeDescription)
	if raw == "" {
		return nil
	}
	code := benefit.Classify(raw)
	bt := &model.BenefitType{Code: code}
	if found, ok := benefit.Lookup(code); ok {
		bt.Description = found.Description
	}
	return bt
}

// buildAppellant applies the form's appointee convention: when any
// person2 field is filled in, person1 is the appointee acting for the
// person2 appellant and only the appointee carries contact details.
func (b *builder) buildAppellant() *model.Appellant {
	person1 := b.fields.ExistsAny(ocr.PersonKeys(ocr.RolePerson1)...)
	person2 := b.fields.ExistsAny(ocr.PersonKeys(ocr.RolePerson2)...)

	switch {
	case person2:
		appellant := &model.Appellant{
			Name:        b.buildName(ocr.RolePerson2),
			Address:     b.buildAddress(ocr.RolePerson2),
			Identity:    b.buildIdentity(ocr.RolePerson2),
			IsAppointee: "Yes",
		}
		if person1 {
			appellant.Appointee = &model.Appointee{
				Name:     b.buildName(ocr.RolePerson1),
				Address:  b.buildAddress(ocr.RolePerson1),
				Identity: b.buildIdentity(ocr.RolePerson1),
				Contact:  b.buildContact(ocr.RolePerson1),
			}
		}
		return appellant
	case person1:
		return &model.Appellant{
			Name:        b.buildName(ocr.RolePerson1),
			Address:     b.buildAddress(ocr.RolePerson1),
			Identity:    b.buildIdentity(ocr.RolePerson1),
			Contact:     b.buildContact(ocr.RolePerson1),
			IsAppointee: "No",
		}
	default:
		return nil
	}
}

// buildRepresentative always emits a consistently shaped record so the
// downstream case data never has to null-check the representative.
func (b *builder) buildRepresentative() *model.Representative {
	keys := append(ocr.PersonKeys(ocr.RoleRepresentative), ocr.KeyRepresentativeCompany)
	if !b.fields.ExistsAny(keys...) {
		return &model.Representative{HasRepresentative: "No"}
	}
	return &model.Representative{
		HasRepresentative: "Yes",
		Organisation:      b.get(ocr.KeyRepresentativeCompany),
		Name:              b.buildName(ocr.RoleRepresentative),
		Address:           b.buildAddress(ocr.RoleRepresentative),
		Contact:           b.buildContact(ocr.RoleRepresentative),
	}
}

func (b *builder) buildMrn() *model.MrnDetails {
	raw := b.get(ocr.KeyMrnDate)
	date := b.dateField(ocr.KeyMrnDate)
	lateReason := b.get(ocr.KeyMrnLateReason)
	office := b.get(ocr.KeyOffice)
	if raw == "" && lateReason == "" && office == "" {
		return nil
	}
	return &model.MrnDetails{Date: date, LateReason: lateReason, IssuingOffice: office}
}

// hearingType resolves the paired boolean flags. Contradictory or invalid
// flags leave the type empty; the rule validator owns the error.
func (b *builder) hearingType() string {
	oral, oralValid := b.fields.Bool(ocr.KeyIsHearingTypeOral)
	paper, paperValid := b.fields.Bool(ocr.KeyIsHearingTypePaper)

	if !oralValid || !paperValid || (oral && paper) {
		return ""
	}
	if oral {
		return model.HearingTypeOral
	}
	return model.HearingTypePaper
}

func (b *builder) buildHearingOptions(hearingType string) *model.HearingOptions {
	opts := &model.HearingOptions{}

	// An excluded-dates key present on the form produces exactly one
	// entry, even when the scanned value is blank; the raw string is kept
	// as-is and normalized only on case-bound date fields.
	if b.fields.Has(ocr.KeyHearingOptionsExcludeDates) {
		opts.ExcludeDates = []model.DateRange{{Start: b.fields.Get(ocr.KeyHearingOptionsExcludeDates)}}
	}

	if b.fields.IsTrue(ocr.KeyHearingOptionsAccessibleRooms) {
		opts.Arrangements = append(opts.Arrangements, model.ArrangementDisabledAccess)
	}
	if b.fields.IsTrue(ocr.KeyHearingOptionsHearingLoop) {
		opts.Arrangements = append(opts.Arrangements, model.ArrangementHearingLoop)
	}

	if b.fields.IsTrue(ocr.KeyHearingOptionsSignLanguage) {
		opts.Arrangements = append(opts.Arrangements, model.ArrangementSignLanguageInterpreter)
		opts.SignLanguageType = b.get(ocr.KeyHearingOptionsSignLanguageType)
		if opts.SignLanguageType == "" {
			opts.SignLanguageType = model.DefaultSignLanguage
		}
	} else if b.fields.IsTrue(ocr.KeyHearingOptionsLanguage) {
		// The form has a single dedicated field per accommodation, so a
		// spoken-language interpreter is only recorded when no sign
		// language interpreter was requested.
		opts.LanguageInterpreter = "Yes"
		opts.Languages = b.get(ocr.KeyHearingOptionsLanguageType)
	}

	switch hearingType {
	case model.HearingTypeOral:
		opts.WantsToAttend = "Yes"
	case model.HearingTypePaper:
		opts.WantsToAttend = "No"
	}

	return opts
}

func (b *builder) buildName(role string) *model.Name {
	n := &model.Name{
		Title:     b.get(role + ocr.SuffixTitle),
		FirstName: b.get(role + ocr.SuffixFirstName),
		LastName:  b.get(role + ocr.SuffixLastName),
	}
	if *n == (model.Name{}) {
		return nil
	}
	return n
}

func (b *builder) buildAddress(role string) *model.Address {
	a := &model.Address{
		Line1:    b.get(role + ocr.SuffixAddressLine1),
		Line2:    b.get(role + ocr.SuffixAddressLine2),
		Town:     b.get(role + ocr.SuffixAddressLine3),
		County:   b.get(role + ocr.SuffixAddressLine4),
		Postcode: b.get(role + ocr.SuffixPostcode),
	}
	if *a == (model.Address{}) {
		return nil
	}
	return a
}

func (b *builder) buildIdentity(role string) *model.Identity {
	dob := b.dateField(role + ocr.SuffixDOB)
	nino := b.get(role + ocr.SuffixNino)
	if dob == nil && nino == "" {
		return nil
	}
	return &model.Identity{DOB: dob, Nino: nino}
}

func (b *builder) buildContact(role string) *model.Contact {
	c := &model.Contact{
		Phone:  b.get(role + ocr.SuffixPhone),
		Mobile: b.get(role + ocr.SuffixMobile),
		Email:  b.get(role + ocr.SuffixEmail),
	}
	if *c == (model.Contact{}) {
		return nil
	}
	return c
}
