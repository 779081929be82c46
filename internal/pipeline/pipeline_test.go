package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ccdMocks "bulkscan/internal/ccd/mocks"
	"bulkscan/internal/model"
	"bulkscan/internal/validation"
)

// testNow anchors the MRN window for every pipeline test.
var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, cases *ccdMocks.MockClient) *service {
	t.Helper()
	svc, err := New(validation.New(nil), cases)
	require.NoError(t, err)
	s := svc.(*service)
	s.now = func() time.Time { return testNow }
	return s
}

func record(fields map[string]any) *model.ExceptionRecord {
	rec := &model.ExceptionRecord{
		ID:       "1539878003972756",
		FormType: string(model.FormTypeSSCS1),
	}
	for k, v := range fields {
		rec.OcrDataFields = append(rec.OcrDataFields, model.OcrField{Name: k, Value: v})
	}
	return rec
}

// cleanFields carries every mandatory field plus an issuing office, with
// an MRN date inside the thirteen-month window.
func cleanFields() map[string]any {
	return map[string]any{
		"person1_last_name":        "Smith",
		"person1_address_line1":    "1 High Street",
		"person1_address_line3":    "Leeds",
		"person1_postcode":         "LS1 1AB",
		"person1_nino":             "AB123456C",
		"mrn_date":                 "01/06/2026",
		"office":                   "DWP PIP (3)",
		"benefit_type_description": "PIP",
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(nil, new(ccdMocks.MockClient))
	assert.ErrorIs(t, err, ErrValidatorRequired)

	_, err = New(validation.New(nil), nil)
	assert.ErrorIs(t, err, ErrCaseClientRequired)
}

func TestProcessExceptionRecord_NilRecord(t *testing.T) {
	svc := newTestService(t, new(ccdMocks.MockClient))
	_, err := svc.ProcessExceptionRecord(context.Background(), nil)
	assert.ErrorIs(t, err, ErrRecordRequired)
}

func TestProcessExceptionRecord_CleanRecordCreatesCase(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	cases.On("CreateCase", mock.Anything, mock.MatchedBy(func(req model.CaseCreationRequest) bool {
		return req.EventID == model.EventValidAppealCreated &&
			req.CaseTypeID == model.CaseTypeID &&
			req.Jurisdiction == model.Jurisdiction
	})).Return("1577546001234567", nil)

	svc := newTestService(t, cases)
	res, err := svc.ProcessExceptionRecord(context.Background(), record(cleanFields()))

	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "1577546001234567", res.CaseID)
	assert.Equal(t, model.EventValidAppealCreated, res.EventID)
	assert.False(t, res.Rejected())
	cases.AssertExpectations(t)
}

func TestProcessExceptionRecord_DerivedCaseFields(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	cases.On("CreateCase", mock.Anything, mock.Anything).Return("1", nil)

	svc := newTestService(t, cases)
	res, err := svc.ProcessExceptionRecord(context.Background(), record(cleanFields()))
	require.NoError(t, err)
	require.NotNil(t, res.Data)

	assert.Equal(t, "Smith", res.Data.GeneratedSurname)
	assert.Equal(t, "AB123456C", res.Data.GeneratedNino)
	assert.Equal(t, "002", res.Data.BenefitCode)
	assert.Equal(t, "DD", res.Data.IssueCode)
	assert.Equal(t, "002DD", res.Data.CaseCode)
	assert.Equal(t, "Bellevale", res.Data.DwpRegionalCentre)
	assert.Equal(t, "Bradford", res.Data.RegionalProcessingCentre)
	assert.Equal(t, "North East", res.Data.Region)
}

func TestProcessExceptionRecord_UnsupportedFormType(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	svc := newTestService(t, cases)

	rec := record(cleanFields())
	rec.FormType = "SSCS99"

	res, err := svc.ProcessExceptionRecord(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, res.Rejected())
	assert.Equal(t, []string{`form type "SSCS99" is not supported`}, res.Errors)
	cases.AssertNotCalled(t, "CreateCase")
}

func TestProcessExceptionRecord_ExtraneousKeyRejects(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	svc := newTestService(t, cases)

	fields := cleanFields()
	fields["first_name"] = "Bob"

	res, err := svc.ProcessExceptionRecord(context.Background(), record(fields))
	require.NoError(t, err)
	assert.Equal(t, []string{"#: extraneous key [first_name] is not permitted"}, res.Errors)
	cases.AssertNotCalled(t, "CreateCase")
}

func TestProcessExceptionRecord_InvalidDateRejectsWithOneError(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	svc := newTestService(t, cases)

	fields := cleanFields()
	fields["mrn_date"] = "31/02/2020"

	res, err := svc.ProcessExceptionRecord(context.Background(), record(fields))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"mrn_date is an invalid date field. Needs to be a valid date and in the format dd/mm/yyyy",
	}, res.Errors)
	cases.AssertNotCalled(t, "CreateCase")
}

func TestProcessExceptionRecord_MissingMandatoryCreatesIncomplete(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	cases.On("CreateCase", mock.Anything, mock.MatchedBy(func(req model.CaseCreationRequest) bool {
		return req.EventID == model.EventIncompleteApplication
	})).Return("2", nil)

	svc := newTestService(t, cases)
	fields := cleanFields()
	delete(fields, "person1_nino")

	res, err := svc.ProcessExceptionRecord(context.Background(), record(fields))
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"person1_nino is empty"}, res.Warnings)
	assert.Equal(t, model.EventIncompleteApplication, res.EventID)
	cases.AssertExpectations(t)
}

func TestProcessExceptionRecord_IgnoreWarnings(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	cases.On("CreateCase", mock.Anything, mock.MatchedBy(func(req model.CaseCreationRequest) bool {
		return req.EventID == model.EventValidAppealCreated
	})).Return("3", nil)

	svc := newTestService(t, cases)
	fields := cleanFields()
	delete(fields, "person1_nino")

	rec := record(fields)
	rec.IgnoreWarnings = true

	res, err := svc.ProcessExceptionRecord(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, model.EventValidAppealCreated, res.EventID)
	assert.Equal(t, []string{"person1_nino is empty"}, res.Warnings)
	cases.AssertExpectations(t)
}

func TestProcessExceptionRecord_LateMrnIsNonCompliant(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	cases.On("CreateCase", mock.Anything, mock.MatchedBy(func(req model.CaseCreationRequest) bool {
		return req.EventID == model.EventNonCompliant
	})).Return("4", nil)

	svc := newTestService(t, cases)
	fields := cleanFields()
	fields["mrn_date"] = "01/04/2025"

	res, err := svc.ProcessExceptionRecord(context.Background(), record(fields))
	require.NoError(t, err)
	assert.Equal(t, model.EventNonCompliant, res.EventID)
	cases.AssertExpectations(t)
}

func TestProcessExceptionRecord_ContradictionRejects(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	svc := newTestService(t, cases)

	fields := cleanFields()
	fields["is_hearing_type_oral"] = true
	fields["is_hearing_type_paper"] = true

	res, err := svc.ProcessExceptionRecord(context.Background(), record(fields))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"is_hearing_type_oral and is_hearing_type_paper have contradicting values",
	}, res.Errors)
	cases.AssertNotCalled(t, "CreateCase")
}

func TestProcessExceptionRecord_DocumentsCarriedOntoCase(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	cases.On("CreateCase", mock.Anything, mock.Anything).Return("5", nil)

	svc := newTestService(t, cases)
	rec := record(cleanFields())
	rec.ScannedDocuments = []model.ScannedDocument{{
		Type:        "other",
		URL:         model.DocumentLink{DocumentURL: "http://evidence/abc", DocumentFilename: "appeal.pdf"},
		ScannedDate: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
	}}

	res, err := svc.ProcessExceptionRecord(context.Background(), rec)
	require.NoError(t, err)
	require.Len(t, res.Data.Documents, 1)
	doc := res.Data.Documents[0]
	assert.Equal(t, "appeal.pdf", doc.DocumentFileName)
	assert.Equal(t, "2026-05-02", doc.DocumentDateAdded)
	assert.Equal(t, model.OtherDocumentType, doc.DocumentType)
}

func TestProcessExceptionRecord_CaseClientFailure(t *testing.T) {
	cases := new(ccdMocks.MockClient)
	cases.On("CreateCase", mock.Anything, mock.Anything).Return("", errors.New("upstream unavailable"))

	svc := newTestService(t, cases)
	_, err := svc.ProcessExceptionRecord(context.Background(), record(cleanFields()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create case")
}

func TestValidateRecord_NilRecord(t *testing.T) {
	svc := newTestService(t, new(ccdMocks.MockClient))
	_, err := svc.ValidateRecord(context.Background(), nil, false)
	assert.ErrorIs(t, err, ErrRecordRequired)
}

func TestValidateRecord_CleanRecord(t *testing.T) {
	svc := newTestService(t, new(ccdMocks.MockClient))
	res, err := svc.ValidateRecord(context.Background(), record(cleanFields()), false)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, validation.StatusValid, res.Status())
}

func TestValidateRecord_MissingMandatoryIsError(t *testing.T) {
	svc := newTestService(t, new(ccdMocks.MockClient))
	fields := cleanFields()
	delete(fields, "person1_nino")

	res, err := svc.ValidateRecord(context.Background(), record(fields), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"person1_nino is empty"}, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateRecord_CombineErrorsIntoWarnings(t *testing.T) {
	svc := newTestService(t, new(ccdMocks.MockClient))
	fields := cleanFields()
	delete(fields, "person1_nino")

	res, err := svc.ValidateRecord(context.Background(), record(fields), true)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"person1_nino is empty"}, res.Warnings)
	assert.Equal(t, validation.StatusWarnings, res.Status())
}

func TestValidateRecord_CombineAppliesToSchemaErrors(t *testing.T) {
	svc := newTestService(t, new(ccdMocks.MockClient))
	fields := cleanFields()
	fields["first_name"] = "Bob"

	res, err := svc.ValidateRecord(context.Background(), record(fields), true)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{"#: extraneous key [first_name] is not permitted"}, res.Warnings)
}

func TestProcessExceptionRecord_NeverValidatesNilFields(t *testing.T) {
	// A record with no OCR fields at all passes the schema stage (nothing
	// extraneous) and surfaces only mandatory-field warnings.
	cases := new(ccdMocks.MockClient)
	cases.On("CreateCase", mock.Anything, mock.MatchedBy(func(req model.CaseCreationRequest) bool {
		return req.EventID == model.EventIncompleteApplication
	})).Return("6", nil)

	svc := newTestService(t, cases)
	res, err := svc.ProcessExceptionRecord(context.Background(), record(nil))
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.NotEmpty(t, res.Warnings)
	cases.AssertExpectations(t)
}
