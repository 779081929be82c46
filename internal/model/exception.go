package model

import "time"

// FormType identifies the paper-form edition an exception record was
// scanned from. Each form type carries its own OCR schema variant.
type FormType string

const (
	FormTypeSSCS1 FormType = "SSCS1"
	FormTypeSSCS2 FormType = "SSCS2"
	FormTypeSSCS5 FormType = "SSCS5"
)

// ParseFormType maps a raw form-type string onto a supported FormType.
// The second return value is false for unsupported editions.
func ParseFormType(s string) (FormType, bool) {
	switch FormType(s) {
	case FormTypeSSCS1, FormTypeSSCS2, FormTypeSSCS5:
		return FormType(s), true
	default:
		return "", false
	}
}

// OcrField is a single key/value pair extracted by OCR from a scanned form.
// Value is a string, a bool, or nil; a field absent from the list means the
// form never asked the question, while a present-but-nil value means it was
// asked and left blank.
type OcrField struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// DocumentLink points at an uploaded evidence binary held by the evidence
// store.
type DocumentLink struct {
	DocumentURL       string `json:"document_url"`
	DocumentBinaryURL string `json:"document_binary_url"`
	DocumentFilename  string `json:"document_filename"`
}

// ScannedDocument is one piece of scanned evidence attached to an
// exception record. It is copied by reference into the output case data;
// the pipeline never rewrites its content.
type ScannedDocument struct {
	Type          string       `json:"type"`
	Subtype       string       `json:"subtype"`
	URL           DocumentLink `json:"url"`
	ControlNumber string       `json:"control_number"`
	ScannedDate   time.Time    `json:"scanned_date"`
}

// ExceptionRecord is the raw bulk-scan submission prior to transformation
// into a case. It is immutable once decoded from the request body.
type ExceptionRecord struct {
	ID               string            `json:"id"`
	FormType         string            `json:"form_type"`
	Jurisdiction     string            `json:"jurisdiction"`
	PoBox            string            `json:"po_box"`
	OpeningDate      time.Time         `json:"opening_date"`
	DeliveryDate     time.Time         `json:"delivery_date"`
	OcrDataFields    []OcrField        `json:"ocr_data_fields"`
	ScannedDocuments []ScannedDocument `json:"scanned_documents"`
	IgnoreWarnings   bool              `json:"ignore_warnings"`
}
