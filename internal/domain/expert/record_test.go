package expert

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIDUnmarshal(t *testing.T) {
	Convey("Given backend payloads with different id encodings", t, func() {
		cases := map[string]ID{
			`{"id":"abc-1"}`: "abc-1",
			`{"id":42}`:      "42",
			`{"id":null}`:    "",
			`{}`:             "",
		}
		for payload, want := range cases {
			var rec Record
			So(json.Unmarshal([]byte(payload), &rec), ShouldBeNil)
			So(rec.ID, ShouldEqual, want)
		}

		Convey("Then ids are always sent back as strings", func() {
			b, err := json.Marshal(Record{ID: "42"})
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"id":"42"`)
		})

		Convey("Then a non-scalar id is rejected", func() {
			var rec Record
			So(json.Unmarshal([]byte(`{"id":{"x":1}}`), &rec), ShouldNotBeNil)
		})
	})
}

func TestRecordWireShape(t *testing.T) {
	Convey("Given an empty record", t, func() {
		b, err := json.Marshal(Record{})
		So(err, ShouldBeNil)

		var m map[string]any
		So(json.Unmarshal(b, &m), ShouldBeNil)

		Convey("Then every field is transmitted", func() {
			So(len(m), ShouldEqual, len(Fields))
			for _, f := range Fields {
				So(m, ShouldContainKey, f)
			}
		})
	})
}

func TestFromSource(t *testing.T) {
	Convey("Given a source record from the backend", t, func() {
		src := Record{
			ID:                  " 7 ",
			Name:                "Ana",
			LastName:            "Gómez",
			Birthdate:           "1990-05-17T00:00:00.000Z",
			DocumentDateOfIssue: "2010-01-01T00:00:00.000Z",
		}

		rec := FromSource(src)

		Convey("Then the birthdate is normalized for a date input", func() {
			So(rec.Birthdate, ShouldEqual, "1990-05-17")
		})

		Convey("Then other fields are carried over verbatim", func() {
			So(rec.ID, ShouldEqual, ID("7"))
			So(rec.Name, ShouldEqual, "Ana")
			So(rec.DocumentDateOfIssue, ShouldEqual, "2010-01-01T00:00:00.000Z")
			So(rec.Rol, ShouldEqual, "")
		})

		Convey("Then the display name joins name and last name", func() {
			So(rec.FullName(), ShouldEqual, "Ana Gómez")
			So(Record{Name: "Ana"}.FullName(), ShouldEqual, "Ana")
		})
	})
}

func TestSetAndGet(t *testing.T) {
	Convey("Given a record", t, func() {
		var rec Record

		Convey("When every known field is set", func() {
			for _, f := range Fields {
				So(rec.Set(f, "v-"+f), ShouldBeNil)
			}

			Convey("Then Get reads each one back", func() {
				for _, f := range Fields {
					So(rec.Get(f), ShouldEqual, "v-"+f)
				}
				So(rec.Email, ShouldEqual, "v-email")
				So(rec.ID, ShouldEqual, ID("v-id"))
			})
		})

		Convey("When an unknown field is set", func() {
			err := rec.Set("salary", "1")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, ErrUnknownField), ShouldBeTrue)
				So(rec.Get("salary"), ShouldEqual, "")
			})
		})
	})
}

func TestCatalogs(t *testing.T) {
	Convey("Given the select catalogs", t, func() {
		So(len(DocumentTypes), ShouldEqual, 3)
		So(len(BloodTypes), ShouldEqual, 8)
		So(len(DietPreferences), ShouldEqual, 3)
		So(len(FormationCenters), ShouldEqual, 3)
		So(Catalog(FieldName), ShouldBeNil)

		Convey("When a decomposed accent is submitted", func() {
			decomposed := "Ce\u0301dula de ciudadani\u0301a"
			v, ok := CanonicalOption(FieldDocumentType, decomposed)

			Convey("Then it maps to the catalog spelling", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "Cédula de ciudadanía")
			})

			Convey("And Canonicalize rewrites the record", func() {
				rec := Record{DocumentType: decomposed, BloodType: "O+"}
				rec.Canonicalize()
				So(rec.DocumentType, ShouldEqual, "Cédula de ciudadanía")
				So(rec.BloodType, ShouldEqual, "O+")
			})
		})

		Convey("When a value is not in the catalog", func() {
			_, ok := CanonicalOption(FieldBloodType, "Z+")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given record validation", t, func() {
		ctx := context.Background()

		Convey("When the identifier is empty", func() {
			err := Record{Name: "Ana"}.Validate(ctx)

			Convey("Then it reports the missing id", func() {
				So(errors.Is(err, ErrMissingID), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "ID no encontrado")
			})
		})

		Convey("When the identifier is blank", func() {
			So(errors.Is(Record{ID: "  "}.Validate(ctx), ErrMissingID), ShouldBeTrue)
		})

		Convey("When only the identifier is set", func() {
			So(Record{ID: "1"}.Validate(ctx), ShouldBeNil)
		})

		Convey("When fields look malformed", func() {
			rec := Record{ID: "1", Email: "not-mail", BloodType: "Z+", Birthdate: "17/05/1990"}

			Convey("Then the record may still be sent", func() {
				So(rec.Validate(ctx), ShouldBeNil)
			})
		})
	})
}

func TestHints(t *testing.T) {
	Convey("Given field hints", t, func() {
		ctx := context.Background()

		Convey("When all select values come from the catalogs", func() {
			rec := Record{
				ID:              "1",
				Email:           "ana@example.com",
				Birthdate:       "1990-05-17",
				DocumentType:    "Tarjeta de identidad",
				BloodType:       "AB-",
				DietPreferences: "Vegano",
				FormationCenter: "Centro de comercio y servicios",
			}
			So(rec.Hints(ctx), ShouldBeNil)
		})

		Convey("When only the identifier is set", func() {
			So(Record{ID: "1"}.Hints(ctx), ShouldBeNil)
		})

		Convey("When fields are malformed", func() {
			hints := Record{ID: "1", Email: "not-mail", BloodType: "Z+", Birthdate: "17/05/1990"}.Hints(ctx)

			Convey("Then each field gets a Spanish message with its label", func() {
				So(hints, ShouldNotBeNil)
				So(errors.Is(hints, ErrInvalid), ShouldBeTrue)
				So(hints.Fields, ShouldContainKey, FieldEmail)
				So(hints.Fields[FieldEmail], ShouldEqual, "Correo electrónico debe ser una dirección de correo electrónico válida")
				So(hints.Fields[FieldBloodType], ShouldEqual, "Tipo de Sangre no es una opción válida")
				So(hints.Fields[FieldBirthdate], ShouldEqual, "Fecha de nacimiento debe tener el formato AAAA-MM-DD")
				So(hints.Error(), ShouldContainSubstring, "; ")
			})
		})
	})
}
