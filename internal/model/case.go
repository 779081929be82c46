package model

// Downstream case-management identifiers. The event selects how the
// created case enters the caseworker queue.
const (
	CaseTypeID   = "Benefit"
	Jurisdiction = "SSCS"

	// EventValidAppealCreated is the standard creation event for a clean
	// record with an in-time MRN.
	EventValidAppealCreated = "validAppealCreated"
	// EventIncompleteApplication routes a record that carried warnings the
	// caller did not ask to ignore; a caseworker completes it later.
	EventIncompleteApplication = "incompleteApplicationReceived"
	// EventNonCompliant routes an appeal whose MRN date is more than 13
	// months old.
	EventNonCompliant = "nonCompliant"
)

// CaseDocument is one evidence entry on the created case. DocumentType is
// always the generic label; subtyping is a caseworker task.
type CaseDocument struct {
	DocumentFileName  string       `json:"document_file_name"`
	DocumentDateAdded string       `json:"document_date_added"`
	DocumentType      string       `json:"document_type"`
	DocumentLink      DocumentLink `json:"document_link"`
}

// OtherDocumentType is the fixed label applied to every scanned document.
const OtherDocumentType = "Other document"

// CaseData is the fully structured payload sent to the case-management
// API: the appeal, its documents, and the flattened summary fields the
// downstream case index searches on.
type CaseData struct {
	Appeal    *Appeal        `json:"appeal"`
	Documents []CaseDocument `json:"sscs_documents,omitempty"`

	GeneratedSurname         string `json:"generated_surname,omitempty"`
	GeneratedNino            string `json:"generated_nino,omitempty"`
	GeneratedDOB             string `json:"generated_dob,omitempty"`
	BenefitCode              string `json:"benefit_code,omitempty"`
	IssueCode                string `json:"issue_code,omitempty"`
	CaseCode                 string `json:"case_code,omitempty"`
	DwpRegionalCentre        string `json:"dwp_regional_centre,omitempty"`
	RegionalProcessingCentre string `json:"regional_processing_centre,omitempty"`
	Region                   string `json:"region,omitempty"`
}

// CaseCreationRequest is the boundary shape accepted by the
// case-management create API.
type CaseCreationRequest struct {
	CaseTypeID   string   `json:"case_type_id"`
	Jurisdiction string   `json:"jurisdiction"`
	EventID      string   `json:"event_id"`
	Data         CaseData `json:"data"`
}
