package schedule

import (
	"errors"
	"fmt"
	"strconv"
)

// FetchFailure reports that the document could not be retrieved. StatusCode
// is zero when no HTTP response was received at all.
type FetchFailure struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchFailure) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.Source, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("fetching %s failed", e.Source)
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// ParseFailure reports a body that is not valid JSON.
type ParseFailure struct {
	Err error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("parsing schedule document: %v", e.Err)
}

func (e *ParseFailure) Unwrap() error { return e.Err }

// SchemaFailure reports a missing or wrong-shaped field.
type SchemaFailure struct {
	Field  string
	Reason string
	Err    error
}

func (e *SchemaFailure) Error() string {
	return fmt.Sprintf("invalid schedule document: field %q %s", e.Field, e.Reason)
}

func (e *SchemaFailure) Unwrap() error { return e.Err }

// RenderFailure reports an unexpected error while building the page from
// otherwise valid data.
type RenderFailure struct {
	Err error
}

func (e *RenderFailure) Error() string {
	return fmt.Sprintf("rendering timetable: %v", e.Err)
}

func (e *RenderFailure) Unwrap() error { return e.Err }

// Messages shown in the status region.
const (
	MessageLoading     = "Carregant horaris…"
	MessageNoData      = "No hi ha dades."
	MessageNoSchedules = "No hi ha horaris per a aquesta selecció."
	MessageFetchError  = "Error carregant dades."
	MessageRenderError = "S'ha produït un error inesperat en mostrar els horaris."
)

// StatusMessage turns a load or render error into the plain-text sentence
// that replaces the loading indicator.
func StatusMessage(err error) string {
	if err == nil {
		return ""
	}

	var fetchErr *FetchFailure
	var parseErr *ParseFailure
	var schemaErr *SchemaFailure
	var renderErr *RenderFailure

	switch {
	case errors.As(err, &renderErr):
		return MessageRenderError
	case errors.As(err, &fetchErr):
		if fetchErr.StatusCode != 0 {
			return "Error carregant dades (HTTP " + strconv.Itoa(fetchErr.StatusCode) + ")."
		}
		return MessageFetchError
	case errors.As(err, &parseErr):
		return "Error llegint les dades: el fitxer no és JSON vàlid."
	case errors.As(err, &schemaErr):
		return fmt.Sprintf("Dades no vàlides: el camp \"%s\" %s.", schemaErr.Field, schemaReasonCA(schemaErr.Reason))
	default:
		return MessageRenderError
	}
}

func schemaReasonCA(reason string) string {
	switch reason {
	case ReasonMissing:
		return "no hi és"
	case ReasonNotArray:
		return "no és una llista"
	case ReasonNotObject:
		return "no és un objecte"
	default:
		return "té un format incorrecte"
	}
}
