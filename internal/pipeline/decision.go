package pipeline

import (
	"time"

	"bulkscan/internal/model"
	"bulkscan/internal/validation"
)

// mrnWindowMonths is how far back an MRN date may lie before the appeal
// is routed to the non-compliant event.
const mrnWindowMonths = 13

// Decide selects the downstream case-creation event for a record that
// passed validation without errors.
//
// Warnings the caller did not ask to ignore route to the incomplete-
// application event: the record is still created, and a caseworker
// completes it. Otherwise an MRN older than the 13-month window selects
// the non-compliant event, and a clean record the standard one. The
// window is calendar-based: a notice dated exactly 13 months ago is
// still compliant.
func Decide(out validation.Outcome, ignoreWarnings bool, mrnDate *time.Time, now time.Time) string {
	if len(out.Warnings) > 0 && !ignoreWarnings {
		return model.EventIncompleteApplication
	}
	if mrnDate != nil && mrnDate.Before(now.AddDate(0, -mrnWindowMonths, 0)) {
		return model.EventNonCompliant
	}
	return model.EventValidAppealCreated
}
