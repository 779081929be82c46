// Package validation applies the mandatory-field, cross-field-consistency
// and format rules to a raw OCR field map and its transformed appeal. It
// never raises for data problems; every finding is a list entry.
package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"bulkscan/internal/benefit"
	"bulkscan/internal/model"
	"bulkscan/internal/ocr"
	"bulkscan/internal/postcode"
)

// Options select the caller's severity policy.
type Options struct {
	// StrictMandatory promotes missing mandatory fields from warnings to
	// errors. The validate-only callback path uses this: an existing case
	// cannot progress without the data, whereas the creation path can
	// proceed under the incomplete-application event.
	StrictMandatory bool
	// CombineErrorsIntoWarnings merges errors into the warning list and
	// clears the error list, for callers with a single severity axis.
	CombineErrorsIntoWarnings bool
}

// booleanKeys are the non-indicator OCR keys whose values must be literal
// booleans when present.
var booleanKeys = []string{
	ocr.KeyIsHearingTypeOral,
	ocr.KeyIsHearingTypePaper,
	ocr.KeyHearingOptionsAccessibleRooms,
	ocr.KeyHearingOptionsHearingLoop,
	ocr.KeyHearingOptionsSignLanguage,
	ocr.KeyHearingOptionsLanguage,
}

// mandatorySuffixes are the person attributes every appeal must carry for
// its appellant role.
var mandatorySuffixes = []string{
	ocr.SuffixLastName,
	ocr.SuffixAddressLine1,
	ocr.SuffixAddressLine3,
	ocr.SuffixPostcode,
	ocr.SuffixNino,
}

var ninoPattern = regexp.MustCompile(`^[A-CEGHJ-PR-TW-Z]{2}[0-9]{6}[A-D]$`)

// Validator applies the rule set. It holds only the postcode collaborator
// and is safe for concurrent use.
type Validator struct {
	postcodes postcode.Lookup
	log       *logrus.Entry
}

// New constructs a Validator. The postcode lookup may be nil, in which
// case postcodes are not externally confirmed.
func New(postcodes postcode.Lookup) *Validator {
	return &Validator{
		postcodes: postcodes,
		log:       logrus.WithField("component", "validation"),
	}
}

// Validate runs every rule against the raw fields and the transformed
// appeal. indicators carries the form variant's mutually-exclusive role
// flags (empty for forms without them).
func (v *Validator) Validate(ctx context.Context, fields ocr.Fields, appeal *model.Appeal, indicators []string, opts Options) Outcome {
	var out Outcome

	out = out.Append(v.checkBooleans(fields, indicators))
	out = out.Append(v.checkHearingContradiction(fields))
	out = out.Append(v.checkIndicatorExclusivity(fields, indicators))
	out = out.Append(v.checkMandatory(fields, opts))
	out = out.Append(v.checkBenefitType(appeal))
	out = out.Append(v.checkNino(fields))
	out = out.Append(v.checkPostcode(ctx, fields))

	if opts.CombineErrorsIntoWarnings {
		out = out.Combined()
	}
	return out
}

// checkBooleans flags any present boolean-typed key whose value is not a
// literal true/false.
func (v *Validator) checkBooleans(fields ocr.Fields, indicators []string) Outcome {
	var out Outcome
	for _, k := range append(append([]string{}, booleanKeys...), indicators...) {
		if !fields.Has(k) || fields.Get(k) == "" {
			continue
		}
		if _, valid := fields.Bool(k); !valid {
			out.Errors = append(out.Errors,
				fmt.Sprintf("%s has an invalid value. Needs to be a valid boolean: true or false", k))
		}
	}
	return out
}

// checkHearingContradiction raises a single error naming both hearing
// flags when they are both valid booleans and both true.
func (v *Validator) checkHearingContradiction(fields ocr.Fields) Outcome {
	oral, oralValid := fields.Bool(ocr.KeyIsHearingTypeOral)
	paper, paperValid := fields.Bool(ocr.KeyIsHearingTypePaper)
	if oralValid && paperValid && oral && paper {
		return Outcome{Errors: []string{fmt.Sprintf(
			"%s and %s have contradicting values",
			ocr.KeyIsHearingTypeOral, ocr.KeyIsHearingTypePaper)}}
	}
	return Outcome{}
}

// checkIndicatorExclusivity raises a single error naming every role flag
// that is set when more than one of the variant's mutually-exclusive
// indicators is true.
func (v *Validator) checkIndicatorExclusivity(fields ocr.Fields, indicators []string) Outcome {
	var set []string
	for _, k := range indicators {
		if fields.IsTrue(k) {
			set = append(set, k)
		}
	}
	if len(set) < 2 {
		return Outcome{}
	}
	return Outcome{Errors: []string{fmt.Sprintf(
		"%s and %s have contradicting values",
		strings.Join(set[:len(set)-1], ", "), set[len(set)-1])}}
}

// checkMandatory verifies presence of the appellant's mandatory fields,
// the MRN date and the benefit type. The appellant role prefix follows
// the appointee convention: person2 when present, else person1.
func (v *Validator) checkMandatory(fields ocr.Fields, opts Options) Outcome {
	role := ocr.RolePerson1
	if fields.ExistsAny(ocr.PersonKeys(ocr.RolePerson2)...) {
		role = ocr.RolePerson2
	}

	var missing []string
	for _, suffix := range mandatorySuffixes {
		key := role + suffix
		if strings.TrimSpace(fields.Get(key)) == "" {
			missing = append(missing, key)
		}
	}
	if strings.TrimSpace(fields.Get(ocr.KeyMrnDate)) == "" {
		missing = append(missing, ocr.KeyMrnDate)
	}
	if strings.TrimSpace(fields.Get(ocr.KeyBenefitTypeDescription)) == "" {
		missing = append(missing, ocr.KeyBenefitTypeDescription)
	}

	var out Outcome
	for _, key := range missing {
		msg := fmt.Sprintf("%s is empty", key)
		if opts.StrictMandatory {
			out.Errors = append(out.Errors, msg)
		} else {
			out.Warnings = append(out.Warnings, msg)
		}
	}
	return out
}

// checkBenefitType warns when the scanned benefit description classified
// to no canonical benefit: the case can still be created and a
// caseworker picks the benefit by hand.
func (v *Validator) checkBenefitType(appeal *model.Appeal) Outcome {
	if appeal == nil || appeal.BenefitType == nil {
		return Outcome{}
	}
	if _, ok := benefit.Lookup(appeal.BenefitType.Code); !ok {
		return Outcome{Warnings: []string{fmt.Sprintf(
			"%s is invalid", ocr.KeyBenefitTypeDescription)}}
	}
	return Outcome{}
}

// checkNino validates the national insurance number shape for whichever
// roles supplied one.
func (v *Validator) checkNino(fields ocr.Fields) Outcome {
	var out Outcome
	for _, role := range []string{ocr.RolePerson1, ocr.RolePerson2, ocr.RoleRepresentative, ocr.RoleOtherParty} {
		key := role + ocr.SuffixNino
		raw := strings.ToUpper(strings.ReplaceAll(fields.Get(key), " ", ""))
		if raw == "" {
			continue
		}
		if !ninoPattern.MatchString(raw) {
			out.Errors = append(out.Errors, fmt.Sprintf("%s is invalid", key))
		}
	}
	return out
}

// checkPostcode confirms the appellant-role postcodes against the
// external lookup. Lookup failure degrades to the same unconfirmed
// warning; a paper form is never blocked on a reference service.
func (v *Validator) checkPostcode(ctx context.Context, fields ocr.Fields) Outcome {
	if v.postcodes == nil {
		return Outcome{}
	}
	var out Outcome
	for _, role := range []string{ocr.RolePerson1, ocr.RolePerson2, ocr.RoleRepresentative} {
		key := role + ocr.SuffixPostcode
		raw := strings.TrimSpace(fields.Get(key))
		if raw == "" {
			continue
		}
		exists, err := v.postcodes.Exists(ctx, raw)
		if err != nil {
			v.log.WithError(err).WithField("field", key).Warn("postcode lookup failed")
		}
		if err != nil || !exists {
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s is not a valid postcode", key))
		}
	}
	return out
}
