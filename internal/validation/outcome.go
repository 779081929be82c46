package validation

// Status classifies a validation outcome. It is always derived from the
// error and warning lists, never set directly.
type Status string

const (
	StatusValid    Status = "VALID"
	StatusWarnings Status = "WARNINGS"
	StatusErrors   Status = "ERRORS"
)

// Outcome carries the ordered error and warning lists produced by a
// validation pass.
type Outcome struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Status derives the outcome status: errors dominate warnings.
func (o Outcome) Status() Status {
	switch {
	case len(o.Errors) > 0:
		return StatusErrors
	case len(o.Warnings) > 0:
		return StatusWarnings
	default:
		return StatusValid
	}
}

// Combined returns an outcome with the errors merged into the warnings
// list and the error list cleared. Used by callers that only ever want a
// single severity axis.
func (o Outcome) Combined() Outcome {
	if len(o.Errors) == 0 {
		return o
	}
	warnings := make([]string, 0, len(o.Warnings)+len(o.Errors))
	warnings = append(warnings, o.Warnings...)
	warnings = append(warnings, o.Errors...)
	return Outcome{Warnings: warnings}
}

// Append adds another outcome's lists onto this one, preserving order.
func (o Outcome) Append(other Outcome) Outcome {
	return Outcome{
		Errors:   append(append([]string{}, o.Errors...), other.Errors...),
		Warnings: append(append([]string{}, o.Warnings...), other.Warnings...),
	}
}
