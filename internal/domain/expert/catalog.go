package expert

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// Option is one entry of a select control.
type Option struct {
	Value string
	Label string
}

func options(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}

// Select option catalogs.
var (
	DocumentTypes = options(
		"Cédula de ciudadanía",
		"Tarjeta de identidad",
		"Cédula de extranjería",
	)

	BloodTypes = options("O-", "O+", "A+", "A-", "B-", "B+", "AB-", "AB+")

	DietPreferences = options("Vegetariano", "Vegano", "Ninguna")

	FormationCenters = options(
		"Centro Atención Sector Agropecuario",
		"Centro de Diseño e Innovación Tecnológica Industrial",
		"Centro de comercio y servicios",
	)
)

// Catalog returns the option list backing a select field, nil for free-text fields.
func Catalog(field string) []Option {
	switch field {
	case FieldDocumentType:
		return DocumentTypes
	case FieldBloodType:
		return BloodTypes
	case FieldDietPreferences:
		return DietPreferences
	case FieldFormationCenter:
		return FormationCenters
	}
	return nil
}

// CanonicalOption returns the catalog value equal to v under Unicode NFC, so a
// decomposed "Cédula" from a browser matches the stored composed form.
func CanonicalOption(field, v string) (string, bool) {
	want := norm.NFC.String(v)
	i := slices.IndexFunc(Catalog(field), func(o Option) bool {
		return norm.NFC.String(o.Value) == want
	})
	if i < 0 {
		return v, false
	}
	return Catalog(field)[i].Value, true
}

// Canonicalize rewrites select values to their catalog spelling. Values that
// match no option are left untouched for validation to report.
func (r *Record) Canonicalize() {
	for _, f := range []string{FieldDocumentType, FieldBloodType, FieldDietPreferences, FieldFormationCenter} {
		p, _ := r.field(f)
		if *p == "" {
			continue
		}
		if v, ok := CanonicalOption(f, *p); ok {
			*p = v
		}
	}
}
