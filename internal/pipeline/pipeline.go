// Package pipeline orchestrates the transform-and-validate stages for an
// exception record: schema check, domain build, rule validation, event
// decision, and the downstream case-creation call. Each request is
// processed on its own values; the package holds no mutable state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"bulkscan/internal/benefit"
	"bulkscan/internal/ccd"
	"bulkscan/internal/model"
	"bulkscan/internal/ocr"
	"bulkscan/internal/refdata"
	"bulkscan/internal/schema"
	"bulkscan/internal/transform"
	"bulkscan/internal/validation"
)

var (
	ErrRecordRequired     = errors.New("exception record is required")
	ErrValidatorRequired  = errors.New("validator is required")
	ErrCaseClientRequired = errors.New("case client is required")
)

// Result is the pipeline outcome for one exception record. A non-empty
// Errors list means the record was rejected and no case was created.
type Result struct {
	CaseID   string          `json:"case_id,omitempty"`
	EventID  string          `json:"event_id,omitempty"`
	Data     *model.CaseData `json:"data,omitempty"`
	Errors   []string        `json:"errors"`
	Warnings []string        `json:"warnings"`
}

// Status derives the outcome status from the error and warning lists.
func (r *Result) Status() validation.Status {
	return validation.Outcome{Errors: r.Errors, Warnings: r.Warnings}.Status()
}

// Rejected reports whether the record was refused.
func (r *Result) Rejected() bool {
	return len(r.Errors) > 0
}

// Service defines the two callback paths over the pipeline.
type Service interface {
	// ProcessExceptionRecord runs the full pipeline and, unless the
	// record is rejected, creates the case downstream. Data problems are
	// reported inside the Result; the error return is reserved for
	// collaborator and programming failures.
	ProcessExceptionRecord(ctx context.Context, rec *model.ExceptionRecord) (*Result, error)

	// ValidateRecord runs schema, transform and rule validation without
	// creating a case. Missing mandatory fields are errors on this path:
	// an existing case cannot progress without them. combineErrors merges
	// errors into the warning list for single-severity-axis callers.
	ValidateRecord(ctx context.Context, rec *model.ExceptionRecord, combineErrors bool) (*Result, error)
}

type service struct {
	validator *validation.Validator
	cases     ccd.Client
	now       func() time.Time
	log       *logrus.Entry
}

// New constructs the pipeline service. Both collaborators are required.
func New(validator *validation.Validator, cases ccd.Client) (Service, error) {
	if validator == nil {
		return nil, ErrValidatorRequired
	}
	if cases == nil {
		return nil, ErrCaseClientRequired
	}
	return &service{
		validator: validator,
		cases:     cases,
		now:       time.Now,
		log:       logrus.WithField("component", "pipeline"),
	}, nil
}

func (s *service) ProcessExceptionRecord(ctx context.Context, rec *model.ExceptionRecord) (*Result, error) {
	if rec == nil {
		return nil, ErrRecordRequired
	}
	log := s.log.WithFields(logrus.Fields{
		"exception_record_id": rec.ID,
		"form_type":           rec.FormType,
	})

	variant, fields, result := s.prepare(rec)
	if result != nil {
		log.WithField("errors", len(result.Errors)).Info("record rejected before transform")
		return result, nil
	}

	appeal, transformErrs := transform.Transform(fields)
	if len(transformErrs) > 0 {
		log.WithField("errors", len(transformErrs)).Info("record rejected by transform")
		return &Result{Errors: transformErrs}, nil
	}

	out := s.validator.Validate(ctx, fields, appeal, variant.Indicators, validation.Options{})
	if len(out.Errors) > 0 {
		log.WithField("errors", len(out.Errors)).Info("record rejected by validation")
		return &Result{Errors: out.Errors, Warnings: out.Warnings}, nil
	}

	var mrnDate *time.Time
	if appeal.Mrn != nil {
		mrnDate = appeal.Mrn.Date
	}
	event := Decide(out, rec.IgnoreWarnings, mrnDate, s.now())

	data, err := buildCaseData(appeal, rec.ScannedDocuments)
	if err != nil {
		return nil, fmt.Errorf("build case data: %w", err)
	}

	caseID, err := s.cases.CreateCase(ctx, model.CaseCreationRequest{
		CaseTypeID:   model.CaseTypeID,
		Jurisdiction: model.Jurisdiction,
		EventID:      event,
		Data:         *data,
	})
	if err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}

	log.WithFields(logrus.Fields{
		"case_id":  caseID,
		"event_id": event,
		"warnings": len(out.Warnings),
	}).Info("case created")

	return &Result{
		CaseID:   caseID,
		EventID:  event,
		Data:     data,
		Warnings: out.Warnings,
	}, nil
}

func (s *service) ValidateRecord(ctx context.Context, rec *model.ExceptionRecord, combineErrors bool) (*Result, error) {
	if rec == nil {
		return nil, ErrRecordRequired
	}

	variant, fields, result := s.prepare(rec)
	if result != nil {
		if combineErrors {
			out := validation.Outcome{Errors: result.Errors, Warnings: result.Warnings}.Combined()
			return &Result{Errors: out.Errors, Warnings: out.Warnings}, nil
		}
		return result, nil
	}

	appeal, transformErrs := transform.Transform(fields)
	if len(transformErrs) > 0 {
		out := validation.Outcome{Errors: transformErrs}
		if combineErrors {
			out = out.Combined()
		}
		return &Result{Errors: out.Errors, Warnings: out.Warnings}, nil
	}

	out := s.validator.Validate(ctx, fields, appeal, variant.Indicators, validation.Options{
		StrictMandatory:           true,
		CombineErrorsIntoWarnings: combineErrors,
	})
	return &Result{Errors: out.Errors, Warnings: out.Warnings}, nil
}

// prepare resolves the form variant and raw fields, running the schema
// stage. A non-nil Result means the record was rejected before transform.
func (s *service) prepare(rec *model.ExceptionRecord) (schema.Variant, ocr.Fields, *Result) {
	ft, ok := model.ParseFormType(rec.FormType)
	if !ok {
		return schema.Variant{}, nil, &Result{Errors: []string{
			fmt.Sprintf("form type %q is not supported", rec.FormType)}}
	}

	variant, err := schema.ForFormType(ft)
	if err != nil {
		// A malformed embedded schema is a programming error, but it is
		// contained to the request rather than crashing the process.
		return schema.Variant{}, nil, &Result{Errors: []string{err.Error()}}
	}

	fields := ocr.FromPairs(rec.OcrDataFields)
	if schemaErrs := variant.Schema.Validate(fields); len(schemaErrs) > 0 {
		return schema.Variant{}, nil, &Result{Errors: schemaErrs}
	}
	return variant, fields, nil
}

// buildCaseData flattens the appeal into the case payload, deriving the
// summary fields the downstream case index searches on.
func buildCaseData(appeal *model.Appeal, docs []model.ScannedDocument) (*model.CaseData, error) {
	data := &model.CaseData{
		Appeal:    appeal,
		Documents: transform.BuildDocuments(docs),
	}

	postcode := ""
	if a := appeal.Appellant; a != nil {
		if a.Name != nil {
			data.GeneratedSurname = a.Name.LastName
		}
		if a.Identity != nil {
			data.GeneratedNino = a.Identity.Nino
			if a.Identity.DOB != nil {
				data.GeneratedDOB = a.Identity.DOB.Format(transform.CaseDateFormat)
			}
		}
		if a.Address != nil {
			postcode = a.Address.Postcode
		}
	}

	if bt := appeal.BenefitType; bt != nil {
		if b, ok := benefit.Lookup(bt.Code); ok {
			data.BenefitCode = b.BenefitCode
			data.IssueCode = b.IssueCode
			data.CaseCode = b.CaseCode()

			if appeal.Mrn != nil && appeal.Mrn.IssuingOffice != "" {
				centre, err := refdata.DwpRegionalCentre(b.Code, appeal.Mrn.IssuingOffice)
				if err != nil {
					return nil, err
				}
				data.DwpRegionalCentre = centre
			}
		}
	}

	rpc, region, err := refdata.RegionalProcessingCentre(postcode)
	if err != nil {
		return nil, err
	}
	data.RegionalProcessingCentre = rpc
	data.Region = region

	return data, nil
}
