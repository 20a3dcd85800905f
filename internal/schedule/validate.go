package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Schema failure reasons.
const (
	ReasonMissing   = "is missing"
	ReasonNotArray  = "is not an array"
	ReasonNotObject = "is not an object"
	ReasonWrongType = "has the wrong type"
)

var utf8BOM = []byte("\ufeff")

// Parse decodes and validates a schedule document. Invalid JSON yields a
// ParseFailure; a missing or malformed sections field, or a type mismatch
// deeper in the document, yields a SchemaFailure. An empty sections array
// is valid. A leading byte order mark is ignored.
func Parse(body []byte) (*Document, error) {
	body = bytes.TrimPrefix(body, utf8BOM)
	if !json.Valid(body) {
		var probe any
		err := json.Unmarshal(body, &probe)
		if err == nil {
			err = errors.New("invalid JSON")
		}
		return nil, &ParseFailure{Err: err}
	}

	if err := Validate(body); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &SchemaFailure{Field: typeErr.Field, Reason: ReasonWrongType, Err: err}
		}
		return nil, &ParseFailure{Err: err}
	}

	return &doc, nil
}

// Validate checks the top-level shape of a syntactically valid document:
// it must be an object whose sections field is an array.
func Validate(body []byte) error {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(body, utf8BOM))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &SchemaFailure{Field: "(document)", Reason: ReasonNotObject}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return &SchemaFailure{Field: "(document)", Reason: ReasonNotObject, Err: err}
	}

	raw, ok := top["sections"]
	if !ok {
		return &SchemaFailure{Field: "sections", Reason: ReasonMissing}
	}

	value := bytes.TrimSpace(raw)
	if bytes.Equal(value, []byte("null")) {
		return &SchemaFailure{Field: "sections", Reason: ReasonMissing}
	}
	if len(value) == 0 || value[0] != '[' {
		return &SchemaFailure{Field: "sections", Reason: ReasonNotArray}
	}

	return nil
}
