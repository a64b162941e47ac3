package site

import "github.com/okian/talento/internal/domain/expert"

type controlKind int

const (
	kindText controlKind = iota
	kindDate
	kindEmail
	kindSelect
	kindHidden
)

type control struct {
	name  string
	label string
	kind  controlKind
}

// editControls is the edit form layout, top to bottom.
var editControls = []control{ //nolint:gochecknoglobals // static layout
	{expert.FieldID, "", kindHidden},
	{expert.FieldDocumentDateOfIssue, "", kindHidden},
	{expert.FieldName, "Nombre", kindText},
	{expert.FieldLastName, "Apellido", kindText},
	{expert.FieldRol, "Rol", kindText},
	{expert.FieldBirthdate, "Fecha de nacimiento", kindDate},
	{expert.FieldDocumentType, "Tipo de documento", kindSelect},
	{expert.FieldDocumentNumber, "Número de documento", kindText},
	{expert.FieldEmail, "Correo electrónico", kindEmail},
	{expert.FieldPhone, "Número de teléfono", kindText},
	{expert.FieldBloodType, "Tipo de Sangre", kindSelect},
	{expert.FieldDietPreferences, "Preferencias alimentarias", kindSelect},
	{expert.FieldArea, "Área", kindText},
	{expert.FieldFormationCenter, "Centro de formación", kindSelect},
	{expert.FieldSenaVinculation, "Vinculación SENA", kindText},
	{expert.FieldCompetitionName, "Habilidad", kindText},
}

// Field is one rendered form control.
type Field struct {
	Name    string
	Label   string
	Type    string
	Value   string
	Options []FieldOption
	Error   string
}

// FieldOption is a select option with its selection state resolved.
type FieldOption struct {
	Value    string
	Label    string
	Selected bool
}

// IsSelect reports whether the field renders as a select.
func (f Field) IsSelect() bool { return f.Type == "select" }

// IsHidden reports whether the field renders as a hidden input.
func (f Field) IsHidden() bool { return f.Type == "hidden" }

func buildFields(rec expert.Record, fieldErrs map[string]string) []Field {
	out := make([]Field, 0, len(editControls))
	for _, c := range editControls {
		f := Field{Name: c.name, Label: c.label, Value: rec.Get(c.name), Error: fieldErrs[c.name]}
		switch c.kind {
		case kindText:
			f.Type = "text"
		case kindDate:
			f.Type = "date"
		case kindEmail:
			f.Type = "email"
		case kindHidden:
			f.Type = "hidden"
		case kindSelect:
			f.Type = "select"
			selected, known := expert.CanonicalOption(c.name, f.Value)
			for _, o := range expert.Catalog(c.name) {
				f.Options = append(f.Options, FieldOption{Value: o.Value, Label: o.Label, Selected: known && o.Value == selected})
			}
			// A stored value outside the catalog stays selectable so a save
			// posts it back unchanged.
			if !known && f.Value != "" {
				f.Options = append(f.Options, FieldOption{Value: f.Value, Label: f.Value, Selected: true})
			}
		}
		out = append(out, f)
	}
	return out
}
