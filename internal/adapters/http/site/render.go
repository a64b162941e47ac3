package site

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/okian/talento/internal/app"
)

// page is what every template receives.
type page struct {
	Title   string
	Toasts  []app.Notification
	Footer  Footer
	Content any
}

type templates struct {
	list *template.Template
	edit *template.Template
}

func parseTemplates() (*templates, error) {
	parse := func(name string) (*template.Template, error) {
		t, err := template.New("layout.html").ParseFS(siteFS, "templates/layout.html", "templates/footer.html", "templates/"+name)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", name)
		}
		return t, nil
	}
	list, err := parse("list.html")
	if err != nil {
		return nil, err
	}
	edit, err := parse("edit.html")
	if err != nil {
		return nil, err
	}
	return &templates{list: list, edit: edit}, nil
}

// render buffers the whole page; nothing is written if the template fails.
func render(w http.ResponseWriter, status int, t *template.Template, p page) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return errors.Wrap(err, "render template")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
