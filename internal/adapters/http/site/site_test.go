package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talento/internal/adapters/clientes"
	"github.com/okian/talento/internal/app"
	"github.com/okian/talento/internal/domain/expert"
)

type fakeBackend struct {
	mu        sync.Mutex
	records   map[expert.ID]expert.Record
	updates   []expert.Record
	deletes   []expert.ID
	confirmed bool
	updateErr error
	deleteErr error
	listErr   error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		confirmed: true,
		records: map[expert.ID]expert.Record{
			"15": {
				ID:           "15",
				Name:         "Ana",
				LastName:     "Gómez",
				Birthdate:    "1990-05-17T00:00:00.000Z",
				DocumentType: "Cédula de ciudadanía",
				BloodType:    "O+",
				Email:        "ana@example.com",
			},
		},
	}
}

func (b *fakeBackend) Update(_ context.Context, rec expert.Record) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updates = append(b.updates, rec)
	return b.confirmed, b.updateErr
}

func (b *fakeBackend) Delete(_ context.Context, id expert.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletes = append(b.deletes, id)
	return b.deleteErr
}

func (b *fakeBackend) Get(_ context.Context, id expert.ID) (expert.Record, error) {
	rec, ok := b.records[id]
	if !ok {
		return expert.Record{}, &clientes.RequestError{Op: "clientes.get", StatusCode: http.StatusNotFound}
	}
	return rec, nil
}

func (b *fakeBackend) List(context.Context) ([]expert.Record, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]expert.Record, 0, len(b.records))
	for _, r := range b.records {
		out = append(out, r)
	}
	return out, nil
}

func newTestMux(b *fakeBackend) *http.ServeMux {
	s, err := New(b)
	So(err, ShouldBeNil)
	mux := http.NewServeMux()
	s.Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func flashFrom(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge >= 0 && c.Value != "" {
			return c
		}
	}
	return nil
}

func editForm() url.Values {
	return url.Values{
		"id":                  {"15"},
		"documentDateOfissue": {""},
		"name":                {"Ana"},
		"lastName":            {"Gómez"},
		"birthdate":           {"1990-05-17"},
		"email":               {"ana@example.com"},
		"bloodType":           {"O+"},
		"area":                {"Software"},
	}
}

func TestPages(t *testing.T) {
	Convey("Given the site registered on a mux", t, func() {
		b := newFakeBackend()
		mux := newTestMux(b)

		Convey("When requesting the root", func() {
			w := do(mux, http.MethodGet, "/", nil)
			So(w.Code, ShouldEqual, http.StatusFound)
			So(w.Header().Get("Location"), ShouldEqual, "/expertos")
		})

		Convey("When requesting the list", func() {
			w := do(mux, http.MethodGet, "/expertos", nil)
			body := w.Body.String()

			Convey("Then each record links to its edit page and the footer is shown", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, "Ana Gómez")
				So(body, ShouldContainSubstring, `href="/expertos/15/editar"`)
				So(body, ShouldContainSubstring, "Talento Risaralda")
				So(body, ShouldContainSubstring, "Ingresar al sistema")
				So(body, ShouldContainSubstring, "Acme Skills")
				So(body, ShouldContainSubstring, "TikTok")
				So(body, ShouldContainSubstring, `src="/static/img/logo.svg"`)
			})
		})

		Convey("When the backend cannot list", func() {
			b.listErr = errors.New("down")
			w := do(mux, http.MethodGet, "/expertos", nil)
			So(w.Code, ShouldEqual, http.StatusBadGateway)
			So(w.Body.String(), ShouldContainSubstring, MsgListFailed)
		})

		Convey("When opening the edit page", func() {
			w := do(mux, http.MethodGet, "/expertos/15/editar", nil)
			body := w.Body.String()

			Convey("Then the form is rendered from the record", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, "Modificar Experto Regional: </b> Ana Gómez")
				So(body, ShouldContainSubstring, `<input type="hidden" name="id" value="15">`)
				So(body, ShouldContainSubstring, `name="documentDateOfissue"`)
				So(body, ShouldContainSubstring, `value="1990-05-17"`)
				So(body, ShouldContainSubstring, `<option value="">Seleccionar</option>`)
				So(body, ShouldContainSubstring, `<option value="O&#43;" selected>O&#43;</option>`)
				So(body, ShouldContainSubstring, "Guardar")
				So(body, ShouldContainSubstring, "Eliminar competidor")
				So(body, ShouldContainSubstring, "Volver atrás")
				So(body, ShouldContainSubstring, `formaction="/expertos/15/eliminar"`)
			})
		})

		Convey("When opening the edit page of an unknown record", func() {
			w := do(mux, http.MethodGet, "/expertos/99/editar", nil)

			Convey("Then the browser is sent back with an error toast", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(w.Header().Get("Location"), ShouldEqual, "/expertos")
				cookie := flashFrom(w)
				So(cookie, ShouldNotBeNil)

				next := do(mux, http.MethodGet, "/expertos", nil, cookie)
				So(next.Body.String(), ShouldContainSubstring, "ID no encontrado")
			})
		})

		Convey("When going back", func() {
			w := do(mux, http.MethodGet, "/expertos/15/volver", nil)
			So(w.Code, ShouldEqual, http.StatusSeeOther)
			So(w.Header().Get("Location"), ShouldEqual, "/expertos")
			So(flashFrom(w), ShouldBeNil)
		})

		Convey("When requesting the stylesheet", func() {
			w := do(mux, http.MethodGet, "/static/css/app.css", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, ".edit-experto-button")
		})
	})
}

func TestSubmit(t *testing.T) {
	Convey("Given the site registered on a mux", t, func() {
		b := newFakeBackend()
		mux := newTestMux(b)

		Convey("When a valid form is posted and the backend confirms", func() {
			w := do(mux, http.MethodPost, "/expertos/15", editForm())

			Convey("Then the full record is sent and the browser returns with a toast", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(w.Header().Get("Location"), ShouldEqual, "/expertos")
				So(len(b.updates), ShouldEqual, 1)
				So(b.updates[0].Area, ShouldEqual, "Software")
				So(b.updates[0].ID, ShouldEqual, expert.ID("15"))

				next := do(mux, http.MethodGet, "/expertos", nil, flashFrom(w))
				So(next.Body.String(), ShouldContainSubstring, app.MsgUpdated)
			})
		})

		Convey("When the posted id is empty", func() {
			form := editForm()
			form.Set("id", "")
			w := do(mux, http.MethodPost, "/expertos/15", form)

			Convey("Then nothing is sent and the form is shown again", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(b.updates, ShouldBeEmpty)
				So(w.Body.String(), ShouldContainSubstring, "ID no encontrado")
				So(w.Body.String(), ShouldContainSubstring, `value="Software"`)
			})
		})

		Convey("When a field looks malformed", func() {
			form := editForm()
			form.Set("email", "nope")
			w := do(mux, http.MethodPost, "/expertos/15", form)

			Convey("Then it is still sent", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(len(b.updates), ShouldEqual, 1)
				So(b.updates[0].Email, ShouldEqual, "nope")
			})
		})

		Convey("When the posted id differs from the path", func() {
			form := editForm()
			form.Set("id", "99")
			w := do(mux, http.MethodPost, "/expertos/15", form)

			Convey("Then nothing is sent and the path record is shown again", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(b.updates, ShouldBeEmpty)
				So(w.Body.String(), ShouldContainSubstring, MsgIDMismatch)
				So(w.Body.String(), ShouldContainSubstring, `<input type="hidden" name="id" value="15">`)
			})
		})

		Convey("When the backend rejects the update with a message", func() {
			b.updateErr = &clientes.RequestError{Op: "clientes.update", StatusCode: http.StatusBadRequest, Message: "Documento duplicado"}
			w := do(mux, http.MethodPost, "/expertos/15", editForm())

			So(w.Code, ShouldEqual, http.StatusBadGateway)
			So(w.Body.String(), ShouldContainSubstring, "Documento duplicado")
		})

		Convey("When the backend fails without a message", func() {
			b.updateErr = &clientes.RequestError{Op: "clientes.update", StatusCode: http.StatusInternalServerError}
			w := do(mux, http.MethodPost, "/expertos/15", editForm())

			So(w.Code, ShouldEqual, http.StatusBadGateway)
			So(w.Body.String(), ShouldContainSubstring, app.MsgUpdateFailed)
		})

		Convey("When the backend answers without confirmation", func() {
			b.confirmed = false
			w := do(mux, http.MethodPost, "/expertos/15", editForm())

			Convey("Then the form stays open without a toast", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldNotContainSubstring, "toast-")
				So(w.Body.String(), ShouldContainSubstring, "Guardar")
			})
		})
	})
}

func TestDelete(t *testing.T) {
	Convey("Given the site registered on a mux", t, func() {
		b := newFakeBackend()
		mux := newTestMux(b)

		Convey("When the delete succeeds", func() {
			w := do(mux, http.MethodPost, "/expertos/15/eliminar", editForm())

			So(w.Code, ShouldEqual, http.StatusSeeOther)
			So(w.Header().Get("Location"), ShouldEqual, "/expertos")
			So(b.deletes, ShouldResemble, []expert.ID{"15"})
			next := do(mux, http.MethodGet, "/expertos", nil, flashFrom(w))
			So(next.Body.String(), ShouldContainSubstring, app.MsgDeleted)
		})

		Convey("When the posted id differs from the path", func() {
			form := editForm()
			form.Set("id", "99")
			w := do(mux, http.MethodPost, "/expertos/15/eliminar", form)

			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(b.deletes, ShouldBeEmpty)
			So(w.Body.String(), ShouldContainSubstring, MsgIDMismatch)
		})

		Convey("When the delete fails", func() {
			b.deleteErr = errors.New("boom")
			w := do(mux, http.MethodPost, "/expertos/15/eliminar", editForm())

			Convey("Then the edit page shows the error", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(w.Header().Get("Location"), ShouldEqual, "/expertos/15/editar")
				next := do(mux, http.MethodGet, "/expertos/15/editar", nil, flashFrom(w))
				So(next.Body.String(), ShouldContainSubstring, app.MsgDeleteFailed)
			})
		})
	})
}

func TestOffCatalogValue(t *testing.T) {
	Convey("Given a record whose blood type is not in the catalog", t, func() {
		b := newFakeBackend()
		rec := b.records["15"]
		rec.BloodType = "O positivo"
		b.records["15"] = rec
		mux := newTestMux(b)

		Convey("When the edit page is opened", func() {
			w := do(mux, http.MethodGet, "/expertos/15/editar", nil)
			body := w.Body.String()

			Convey("Then the stored value is kept selected and hinted at", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, `<option value="O positivo" selected>O positivo</option>`)
				So(body, ShouldNotContainSubstring, `<option value="O&#43;" selected>`)
				So(body, ShouldContainSubstring, "Tipo de Sangre no es una opción válida")
			})
		})

		Convey("When the form is saved as rendered", func() {
			form := editForm()
			form.Set("bloodType", "O positivo")
			w := do(mux, http.MethodPost, "/expertos/15", form)

			Convey("Then the value reaches the backend unchanged", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(len(b.updates), ShouldEqual, 1)
				So(b.updates[0].BloodType, ShouldEqual, "O positivo")
			})
		})
	})
}

func TestFlash(t *testing.T) {
	Convey("Given a flash cookie", t, func() {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		writeFlash(w, r, []app.Notification{{Level: app.LevelSuccess, Message: "ok"}, {Level: "bogus", Message: "x"}})
		cookie := flashFrom(w)
		So(cookie, ShouldNotBeNil)

		Convey("When it is read", func() {
			r2 := httptest.NewRequest(http.MethodGet, "/", nil)
			r2.AddCookie(cookie)
			w2 := httptest.NewRecorder()
			notes := readFlash(w2, r2)

			Convey("Then valid toasts come back and the cookie is cleared", func() {
				So(notes, ShouldResemble, []app.Notification{{Level: app.LevelSuccess, Message: "ok"}})
				cleared := w2.Result().Cookies()
				So(len(cleared), ShouldEqual, 1)
				So(cleared[0].MaxAge, ShouldBeLessThan, 0)
			})
		})

		Convey("When the cookie is garbage", func() {
			r2 := httptest.NewRequest(http.MethodGet, "/", nil)
			r2.AddCookie(&http.Cookie{Name: flashCookie, Value: "%%%"})
			So(readFlash(httptest.NewRecorder(), r2), ShouldBeEmpty)
		})
	})
}
