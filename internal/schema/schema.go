// Package schema validates raw OCR field maps against the declarative
// per-form-type schemas. Each schema is parsed from its embedded YAML
// source exactly once and held read-only for the life of the process.
package schema

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-yaml"

	"bulkscan/internal/model"
	"bulkscan/internal/ocr"
)

//go:embed schemas/*.yaml
var schemaFS embed.FS

// Field kinds a schema may declare. The kind constrains the JSON-level
// shape of the raw value; string-content checks (date layouts, literal
// true/false) belong to rule validation.
const (
	KindString  = "string"
	KindBoolean = "boolean"
)

// Schema is one parsed form-type schema: the permitted keys with their
// declared kinds, plus the keys that must be present.
type Schema struct {
	FormType string            `yaml:"form_type"`
	Required []string          `yaml:"required"`
	Fields   map[string]string `yaml:"fields"`
}

// Variant bundles what the orchestrator resolves once per request for a
// form type: its schema and the boolean indicator keys that participate
// in the role mutual-exclusivity rule.
type Variant struct {
	Schema     *Schema
	Indicators []string
}

var (
	loadOnce sync.Once
	loadErr  error
	variants map[model.FormType]Variant
)

// indicator sets per form edition; only SSCS2 carries the child
// maintenance role flags.
var indicatorSets = map[model.FormType][]string{
	model.FormTypeSSCS1: nil,
	model.FormTypeSSCS2: {ocr.KeyIsPayingParent, ocr.KeyIsReceivingParent, ocr.KeyIsAnotherParty},
	model.FormTypeSSCS5: nil,
}

func load() {
	variants = make(map[model.FormType]Variant, len(indicatorSets))
	for ft := range indicatorSets {
		name := fmt.Sprintf("schemas/%s.yaml", lower(string(ft)))
		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			loadErr = fmt.Errorf("read schema %s: %w", name, err)
			return
		}
		var s Schema
		if err := yaml.Unmarshal(raw, &s); err != nil {
			loadErr = fmt.Errorf("parse schema %s: %w", name, err)
			return
		}
		if s.FormType != string(ft) {
			loadErr = fmt.Errorf("schema %s declares form type %q", name, s.FormType)
			return
		}
		variants[ft] = Variant{Schema: &s, Indicators: indicatorSets[ft]}
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// ForFormType returns the schema/indicator pair for a form type. The
// embedded schemas are loaded on first call; a malformed schema source is
// a programming error and is returned as such rather than as a
// validation message.
func ForFormType(ft model.FormType) (Variant, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return Variant{}, loadErr
	}
	v, ok := variants[ft]
	if !ok {
		return Variant{}, fmt.Errorf("unsupported form type %q", ft)
	}
	return v, nil
}

// Validate checks the raw field map against the schema and returns the
// ordered list of schema errors: extraneous keys, missing required keys,
// and values whose JSON-level shape contradicts the declared kind.
// Present-but-nil values always pass the shape check.
func (s *Schema) Validate(fields ocr.Fields) []string {
	var errs []string

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		kind, ok := s.Fields[k]
		if !ok {
			errs = append(errs, fmt.Sprintf("#: extraneous key [%s] is not permitted", k))
			continue
		}
		v := fields[k]
		if v == nil {
			continue
		}
		switch kind {
		case KindString:
			if _, ok := v.(string); !ok {
				errs = append(errs, fmt.Sprintf("#/%s: expected type: String, found: %T", k, v))
			}
		case KindBoolean:
			// OCR engines emit booleans both as JSON booleans and as the
			// literal strings; both shapes are permitted here and the
			// literal check happens in rule validation.
			switch v.(type) {
			case bool, string:
			default:
				errs = append(errs, fmt.Sprintf("#/%s: expected type: Boolean, found: %T", k, v))
			}
		}
	}

	for _, k := range s.Required {
		if !fields.Has(k) {
			errs = append(errs, fmt.Sprintf("#: required key [%s] not found", k))
		}
	}

	return errs
}
