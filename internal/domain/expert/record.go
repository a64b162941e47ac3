// Package expert models the regional expert record edited in the admin web.
package expert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okian/talento/internal/domain/datefmt"
)

// ID identifies a record on the backend. The backend may send it as a JSON
// number or string; it is always sent back as a string.
type ID string

// UnmarshalJSON accepts strings, numbers and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expert id: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// Empty reports whether the identifier is blank.
func (id ID) Empty() bool { return strings.TrimSpace(string(id)) == "" }

// Record is the flat field set of one expert. Field names on the wire and in
// HTML forms are the json names.
type Record struct {
	ID                  ID     `json:"id" form:"id" label:"ID"`
	Name                string `json:"name" form:"name" label:"Nombre"`
	LastName            string `json:"lastName" form:"lastName" label:"Apellido"`
	Rol                 string `json:"rol" form:"rol" label:"Rol"`
	DocumentType        string `json:"documentType" form:"documentType" label:"Tipo de documento" validate:"omitempty,catalog"`
	DocumentNumber      string `json:"documentNumber" form:"documentNumber" label:"Número de documento"`
	DocumentDateOfIssue string `json:"documentDateOfissue" form:"documentDateOfissue" label:"Fecha de expedición"`
	Email               string `json:"email" form:"email" label:"Correo electrónico" validate:"omitempty,email"`
	Birthdate           string `json:"birthdate" form:"birthdate" label:"Fecha de nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Phone               string `json:"phone" form:"phone" label:"Número de teléfono"`
	Area                string `json:"area" form:"area" label:"Área"`
	SenaVinculation     string `json:"senaVinculation" form:"senaVinculation" label:"Vinculación SENA"`
	FormationCenter     string `json:"formationCenter" form:"formationCenter" label:"Centro de formación" validate:"omitempty,catalog"`
	BloodType           string `json:"bloodType" form:"bloodType" label:"Tipo de Sangre" validate:"omitempty,catalog"`
	DietPreferences     string `json:"dietPreferences" form:"dietPreferences" label:"Preferencias alimentarias" validate:"omitempty,catalog"`
	CompetitionName     string `json:"competitionName" form:"competitionName" label:"Habilidad"`
}

// Field names, in wire order.
const (
	FieldID                  = "id"
	FieldName                = "name"
	FieldLastName            = "lastName"
	FieldRol                 = "rol"
	FieldDocumentType        = "documentType"
	FieldDocumentNumber      = "documentNumber"
	FieldDocumentDateOfIssue = "documentDateOfissue"
	FieldEmail               = "email"
	FieldBirthdate           = "birthdate"
	FieldPhone               = "phone"
	FieldArea                = "area"
	FieldSenaVinculation     = "senaVinculation"
	FieldFormationCenter     = "formationCenter"
	FieldBloodType           = "bloodType"
	FieldDietPreferences     = "dietPreferences"
	FieldCompetitionName     = "competitionName"
)

// Fields lists every field name of a Record.
var Fields = []string{
	FieldID, FieldName, FieldLastName, FieldRol, FieldDocumentType, FieldDocumentNumber,
	FieldDocumentDateOfIssue, FieldEmail, FieldBirthdate, FieldPhone, FieldArea,
	FieldSenaVinculation, FieldFormationCenter, FieldBloodType, FieldDietPreferences,
	FieldCompetitionName,
}

// FromSource materializes form state from a source record. The only
// transformation is the birthdate, which is normalized for a date input.
func FromSource(src Record) Record {
	rec := src
	rec.ID = ID(strings.TrimSpace(string(src.ID)))
	rec.Birthdate = datefmt.ForInput(src.Birthdate)
	return rec
}

// FullName is the display name used in page titles.
func (r Record) FullName() string {
	return strings.TrimSpace(r.Name + " " + r.LastName)
}

func (r *Record) field(name string) (*string, bool) {
	switch name {
	case FieldName:
		return &r.Name, true
	case FieldLastName:
		return &r.LastName, true
	case FieldRol:
		return &r.Rol, true
	case FieldDocumentType:
		return &r.DocumentType, true
	case FieldDocumentNumber:
		return &r.DocumentNumber, true
	case FieldDocumentDateOfIssue:
		return &r.DocumentDateOfIssue, true
	case FieldEmail:
		return &r.Email, true
	case FieldBirthdate:
		return &r.Birthdate, true
	case FieldPhone:
		return &r.Phone, true
	case FieldArea:
		return &r.Area, true
	case FieldSenaVinculation:
		return &r.SenaVinculation, true
	case FieldFormationCenter:
		return &r.FormationCenter, true
	case FieldBloodType:
		return &r.BloodType, true
	case FieldDietPreferences:
		return &r.DietPreferences, true
	case FieldCompetitionName:
		return &r.CompetitionName, true
	}
	return nil, false
}

// Set reflects a single input change into the record.
func (r *Record) Set(name, value string) error {
	if name == FieldID {
		r.ID = ID(value)
		return nil
	}
	p, ok := r.field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*p = value
	return nil
}

// Get returns the value of a named field, "" for unknown names.
func (r Record) Get(name string) string {
	if name == FieldID {
		return r.ID.String()
	}
	if p, ok := r.field(name); ok {
		return *p
	}
	return ""
}
