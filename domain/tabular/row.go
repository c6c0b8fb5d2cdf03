package tabular

import "bearpath/domain/core"

// Row is one service/customer record in canonical form. Every field is a
// trimmed string; absent source data stays "" and never becomes a literal
// "null" in exported CSV.
type Row struct {
	Identifier  string `json:"identifier" db:"identifier"`
	Name        string `json:"name" db:"name"`
	Address     string `json:"address" db:"address"`
	Email       string `json:"email" db:"email"`
	Status      string `json:"status" db:"status"`
	WeeksOnList string `json:"weeks_on_list" db:"weeks_on_list"`
	Notes       string `json:"notes" db:"notes"`
}

// Field returns the value of a canonical field.
func (r Row) Field(f Field) string {
	switch f {
	case FieldIdentifier:
		return r.Identifier
	case FieldName:
		return r.Name
	case FieldAddress:
		return r.Address
	case FieldEmail:
		return r.Email
	case FieldStatus:
		return r.Status
	case FieldWeeksOnList:
		return r.WeeksOnList
	case FieldNotes:
		return r.Notes
	}
	return ""
}

// WithField returns a copy of the row with one canonical field replaced.
func (r Row) WithField(f Field, value string) (Row, error) {
	switch f {
	case FieldIdentifier:
		r.Identifier = value
	case FieldName:
		r.Name = value
	case FieldAddress:
		r.Address = value
	case FieldEmail:
		r.Email = value
	case FieldStatus:
		r.Status = value
	case FieldWeeksOnList:
		r.WeeksOnList = value
	case FieldNotes:
		r.Notes = value
	default:
		return r, core.NewUnknownFieldError(string(f))
	}
	return r, nil
}

// Values returns the row's cells in canonical column order.
func (r Row) Values() []string {
	out := make([]string, len(CanonicalFields))
	for i, f := range CanonicalFields {
		out[i] = r.Field(f)
	}
	return out
}
