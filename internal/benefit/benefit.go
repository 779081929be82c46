// Package benefit resolves the free-text benefit description scanned off
// a paper form to a canonical benefit code. Exact table lookups run
// first; a fuzzy-distance search is the fallback for misspellings.
package benefit

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// minFuzzyScore is the acceptance threshold for the fuzzy fallback, on
// the scorer's 0-100 scale.
const minFuzzyScore = 90

// Benefit is one supported benefit with the codes the downstream case
// index expects.
type Benefit struct {
	Code        string
	Description string
	BenefitCode string
	IssueCode   string
	Synonyms    []string
	LegacyCodes []string
}

// CaseCode returns the combined benefit/issue code used for case routing.
func (b Benefit) CaseCode() string {
	return b.BenefitCode + b.IssueCode
}

var benefits = []Benefit{
	{
		Code: "ESA", Description: "Employment and Support Allowance",
		BenefitCode: "051", IssueCode: "DD",
		Synonyms: []string{"employment"},
	},
	{
		Code: "JSA", Description: "Job Seekers Allowance",
		BenefitCode: "073", IssueCode: "DD",
		Synonyms: []string{"jobseeker", "jobseekers"},
	},
	{
		Code: "PIP", Description: "Personal Independence Payment",
		BenefitCode: "002", IssueCode: "DD",
		Synonyms: []string{"personal", "independence"},
	},
	{
		Code: "DLA", Description: "Disability Living Allowance",
		BenefitCode: "037", IssueCode: "DD",
		Synonyms: []string{"disability", "living"},
	},
	{
		Code: "UC", Description: "Universal Credit",
		BenefitCode: "001", IssueCode: "UM",
		Synonyms: []string{"universal"},
	},
	{
		Code: "AA", Description: "Attendance Allowance",
		BenefitCode: "013", IssueCode: "DD",
		Synonyms:    []string{"attendance"},
		LegacyCodes: []string{"AA"},
	},
	{
		Code: "IS", Description: "Income Support",
		BenefitCode: "061", IssueCode: "DD",
		LegacyCodes: []string{"IS"},
	},
	{
		Code: "RP", Description: "Retirement Pension",
		BenefitCode: "082", IssueCode: "DD",
		Synonyms:    []string{"retirement"},
		LegacyCodes: []string{"RP"},
	},
	{
		Code: "BB", Description: "Bereavement Benefit",
		BenefitCode: "094", IssueCode: "DD",
		Synonyms:    []string{"bereavement"},
		LegacyCodes: []string{"BB"},
	},
	{
		Code: "CA", Description: "Carers Allowance",
		BenefitCode: "070", IssueCode: "DD",
		Synonyms:    []string{"carer", "carers"},
		LegacyCodes: []string{"CA"},
	},
	{
		Code: "MA", Description: "Maternity Allowance",
		BenefitCode: "079", IssueCode: "DD",
		Synonyms:    []string{"maternity"},
		LegacyCodes: []string{"MA"},
	},
}

// normalize strips the periods OCR tends to insert into abbreviations and
// folds case and whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, ".", "")))
}

// Lookup returns the benefit for a canonical code.
func Lookup(code string) (Benefit, bool) {
	for _, b := range benefits {
		if strings.EqualFold(b.Code, code) {
			return b, true
		}
	}
	return Benefit{}, false
}

// Classify resolves raw to a canonical benefit code, or returns raw
// unchanged when no confident match exists.
//
// Resolution order, each stage short-circuiting on first hit: short-name
// exact, description exact, synonym exact, legacy-code exact, then the
// fuzzy-distance search across every benefit's short name, description
// and synonym keywords.
func Classify(raw string) string {
	norm := normalize(raw)
	if norm == "" {
		return raw
	}

	for _, b := range benefits {
		if norm == strings.ToLower(b.Code) {
			return b.Code
		}
	}
	for _, b := range benefits {
		if norm == strings.ToLower(b.Description) {
			return b.Code
		}
	}
	for _, b := range benefits {
		for _, syn := range b.Synonyms {
			if norm == syn {
				return b.Code
			}
		}
	}
	for _, b := range benefits {
		for _, lc := range b.LegacyCodes {
			if norm == strings.ToLower(lc) {
				return b.Code
			}
		}
	}

	bestScore := 0
	bestCode := ""
	for _, b := range benefits {
		candidates := append([]string{b.Code, b.Description}, b.Synonyms...)
		for _, c := range candidates {
			if score := fuzzy.Ratio(norm, strings.ToLower(c)); score > bestScore {
				bestScore = score
				bestCode = b.Code
			}
		}
	}
	if bestScore >= minFuzzyScore {
		return bestCode
	}
	return raw
}
