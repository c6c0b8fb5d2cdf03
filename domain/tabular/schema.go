// Package tabular implements the import/normalize/export pipeline for
// service-desk roster tables. All operations are pure functions over
// value-semantics batches; persistence and UI live elsewhere.
package tabular

import (
	"strings"

	"bearpath/domain/core"
)

// Field identifies one canonical column of the roster schema.
type Field string

const (
	FieldIdentifier  Field = "identifier"
	FieldName        Field = "name"
	FieldAddress     Field = "address"
	FieldEmail       Field = "email"
	FieldStatus      Field = "status"
	FieldWeeksOnList Field = "weeks_on_list"
	FieldNotes       Field = "notes"
)

// CanonicalFields is the fixed export column order. Downstream automation
// (Power Automate flows, shared sheets) keys on this order, so it must not
// change once declared.
var CanonicalFields = []Field{
	FieldIdentifier,
	FieldName,
	FieldAddress,
	FieldEmail,
	FieldStatus,
	FieldWeeksOnList,
	FieldNotes,
}

// synonyms maps lower-cased source column names to canonical fields.
// Miracle exports and the shared sheets have drifted over the years, so the
// table carries every header variant we have seen in the wild.
var synonyms = map[string]Field{
	// identifier
	"identifier":  FieldIdentifier,
	"task id":     FieldIdentifier,
	"taskid":      FieldIdentifier,
	"cust id":     FieldIdentifier,
	"customer id": FieldIdentifier,
	"id":          FieldIdentifier,

	// name
	"name":          FieldName,
	"company name":  FieldName,
	"company":       FieldName,
	"property":      FieldName,
	"property name": FieldName,
	"customer":      FieldName,

	// address
	"address":         FieldAddress,
	"full address":    FieldAddress,
	"service address": FieldAddress,

	// email
	"email":          FieldEmail,
	"e-mail":         FieldEmail,
	"cust email":     FieldEmail,
	"customer email": FieldEmail,
	"caller email":   FieldEmail,

	// status
	"status": FieldStatus,

	// weeks_on_list
	"weeks_on_list": FieldWeeksOnList,
	"weeks on list": FieldWeeksOnList,
	"weeks":         FieldWeeksOnList,

	// notes
	"notes":    FieldNotes,
	"note":     FieldNotes,
	"comments": FieldNotes,
}

// MatchColumn resolves a raw source header to a canonical field.
// Matching is case-insensitive and ignores surrounding whitespace.
func MatchColumn(header string) (Field, bool) {
	f, ok := synonyms[strings.ToLower(strings.TrimSpace(header))]
	return f, ok
}

// ParseField validates a caller-supplied field name against the canonical
// schema. Unlike MatchColumn it accepts canonical names only; the edit
// surface must not grow its own synonym behavior.
func ParseField(s string) (Field, error) {
	f := Field(strings.TrimSpace(s))
	for _, c := range CanonicalFields {
		if f == c {
			return f, nil
		}
	}
	return "", core.NewUnknownFieldError(s)
}
