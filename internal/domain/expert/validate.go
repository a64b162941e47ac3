package expert

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	estranslations "github.com/go-playground/validator/v10/translations/es"
)

// MsgMissingID is shown when a mutating action is attempted without an identifier.
const MsgMissingID = "ID no encontrado"

// ValidationError carries translated messages keyed by field name.
type ValidationError struct {
	Fields map[string]string
	order  []string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.order))
	for _, f := range e.order {
		msgs = append(msgs, e.Fields[f])
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets callers match errors.Is(err, ErrInvalid).
func (e *ValidationError) Unwrap() error { return ErrInvalid }

type validation struct {
	validate *validator.Validate
	trans    ut.Translator
	jsonName map[string]string // Go field name -> json name
}

var (
	validationOnce sync.Once
	shared         *validation
)

func getValidation() *validation {
	validationOnce.Do(func() {
		shared = newValidation()
	})
	return shared
}

func newValidation() *validation {
	locale := es.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("es")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	if err := estranslations.RegisterDefaultTranslations(v, trans); err != nil {
		panic(err)
	}

	names := map[string]string{}
	rt := reflect.TypeOf(Record{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		names[f.Name] = strings.Split(f.Tag.Get("json"), ",")[0]
	}

	mustRegister := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	mustRegister(v.RegisterValidation("catalog", func(fl validator.FieldLevel) bool {
		_, ok := CanonicalOption(names[fl.StructFieldName()], fl.Field().String())
		return ok
	}))
	for tag, text := range map[string]string{
		"catalog":  "{0} no es una opción válida",
		"email":    "{0} debe ser una dirección de correo electrónico válida",
		"datetime": "{0} debe tener el formato AAAA-MM-DD",
	} {
		mustRegister(v.RegisterTranslation(tag, trans, func(t ut.Translator) error {
			return t.Add(tag, text, true)
		}, func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		}))
	}

	return &validation{validate: v, trans: trans, jsonName: names}
}

// Validate checks the record before it may be sent to the backend. Only a
// blank identifier blocks a submission; it is reported as ErrMissingID.
func (r Record) Validate(_ context.Context) error {
	if r.ID.Empty() {
		return ErrMissingID
	}
	return nil
}

// Hints reports field values that look wrong: malformed email or date, or a
// select value outside its catalog. They are shown next to the inputs and
// never block a submission. It returns nil when every field looks fine.
func (r Record) Hints(ctx context.Context) *ValidationError {
	val := getValidation()
	err := val.validate.StructCtx(ctx, r)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		name := val.jsonName[fe.StructField()]
		if _, seen := out.Fields[name]; seen {
			continue
		}
		out.Fields[name] = fe.Translate(val.trans)
		out.order = append(out.order, name)
	}
	return out
}
