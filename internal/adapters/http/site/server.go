// Package site serves the server-rendered admin pages for regional experts.
package site

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/form"

	"github.com/okian/talento/internal/adapters/clientes"
	"github.com/okian/talento/internal/adapters/http/api"
	"github.com/okian/talento/internal/app"
	"github.com/okian/talento/internal/domain/expert"
	"github.com/okian/talento/pkg/logger"
)

// Toast texts owned by the pages rather than the form.
const (
	MsgLoadFailed = "Error al cargar el experto"
	MsgListFailed = "Error al cargar los expertos"
	MsgIDMismatch = "El ID del formulario no coincide con el experto"
)

// maxFormBytes caps a posted edit form.
const maxFormBytes = 64 << 10

// Backend is everything the pages need from the clientes API.
type Backend interface {
	app.Updater
	Get(ctx context.Context, id expert.ID) (expert.Record, error)
	List(ctx context.Context) ([]expert.Record, error)
}

// Server renders the list and edit pages.
type Server struct {
	backend    Backend
	tpl        *templates
	decoder    *form.Decoder
	guard      app.Guard
	logger     logger.Logger
	returnPath string
}

// New parses the embedded templates and returns a ready Server.
func New(backend Backend, opts ...Option) (*Server, error) {
	tpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	s := &Server{
		backend:    backend,
		tpl:        tpl,
		decoder:    form.NewDecoder(),
		guard:      app.NewGuard(),
		logger:     logger.Nop(),
		returnPath: "/expertos",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register attaches the page routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.returnPath, http.StatusFound)
	})
	mux.HandleFunc("GET /expertos", api.MetricsMiddleware(s.handleList, "expertos_list"))
	mux.HandleFunc("GET /expertos/{id}/editar", api.MetricsMiddleware(s.handleEdit, "expertos_edit"))
	mux.HandleFunc("GET /expertos/{id}/volver", api.MetricsMiddleware(s.handleBack, "expertos_back"))
	mux.HandleFunc("POST /expertos/{id}", api.MetricsMiddleware(s.handleSubmit, "expertos_submit"))
	mux.HandleFunc("POST /expertos/{id}/eliminar", api.MetricsMiddleware(s.handleDelete, "expertos_delete"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(StaticFS())))
}

type listRow struct {
	Record   expert.Record
	EditPath string
}

type listView struct {
	Rows  []listRow
	Error string
}

type editView struct {
	Record       expert.Record
	Fields       []Field
	Action       string
	DeleteAction string
	BackPath     string
	InFlight     bool
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	toasts := readFlash(w, r)
	view := listView{}
	status := http.StatusOK

	recs, err := s.backend.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "list experts failed", logger.Error(err))
		view.Error = MsgListFailed
		status = http.StatusBadGateway
	}
	for _, rec := range recs {
		row := listRow{Record: rec}
		if !rec.ID.Empty() {
			row.EditPath = editPath(rec.ID)
		}
		view.Rows = append(view.Rows, row)
	}
	s.render(w, r, status, s.tpl.list, page{Title: "Expertos Regionales", Toasts: toasts, Content: view})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := expert.ID(r.PathValue("id"))

	rec, err := s.backend.Get(ctx, id)
	if err != nil {
		msg := MsgLoadFailed
		if errors.Is(err, clientes.ErrNotFound) || errors.Is(err, clientes.ErrMissingID) {
			msg = expert.MsgMissingID
		}
		s.logger.Warn(ctx, "load expert failed", logger.String("id", id.String()), logger.Error(err))
		writeFlash(w, r, []app.Notification{{Level: app.LevelError, Message: msg}})
		http.Redirect(w, r, s.returnPath, http.StatusSeeOther)
		return
	}

	f := s.newForm(nil, nil)
	f.Load(rec)
	s.renderEdit(w, r, http.StatusOK, f, readFlash(w, r))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, ok := s.decode(w, r)
	if !ok {
		return
	}

	notes := &app.Notifications{}
	closed := false
	f := s.newForm(notes, func(expert.Record, bool) { closed = true })
	f.Load(rec)

	err := f.Submit(ctx)
	if closed {
		writeFlash(w, r, notes.Drain())
		http.Redirect(w, r, s.returnPath, http.StatusSeeOther)
		return
	}
	s.renderEdit(w, r, submitStatus(err), f, notes.Drain())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rec, ok := s.decode(w, r)
	if !ok {
		return
	}

	notes := &app.Notifications{}
	closed := false
	f := s.newForm(notes, func(expert.Record, bool) { closed = true })
	f.Load(rec)

	_ = f.Delete(ctx)
	writeFlash(w, r, notes.Drain())
	if closed {
		http.Redirect(w, r, s.returnPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, editPath(expert.ID(r.PathValue("id"))), http.StatusSeeOther)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	f := s.newForm(nil, func(expert.Record, bool) {
		http.Redirect(w, r, s.returnPath, http.StatusSeeOther)
	})
	f.Back()
}

func (s *Server) newForm(n app.Notifier, onClose app.CloseFunc) *app.Form {
	return app.NewForm(s.backend,
		app.WithLogger(s.logger),
		app.WithGuard(s.guard),
		app.WithNotifier(n),
		app.WithOnClose(onClose),
	)
}

// decode reads the posted form into a record. Unknown inputs are ignored. A
// non-empty posted id must name the record in the path; on a mismatch the
// edit page is shown again for the path record and nothing is sent.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (expert.Record, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.logger.Warn(r.Context(), "bad form post", logger.Error(err))
		http.Error(w, "invalid form", http.StatusBadRequest)
		return expert.Record{}, false
	}
	var rec expert.Record
	if err := s.decoder.Decode(&rec, r.PostForm); err != nil {
		s.logger.Warn(r.Context(), "decode form failed", logger.Error(err))
		http.Error(w, "invalid form", http.StatusBadRequest)
		return expert.Record{}, false
	}

	pathID := expert.ID(r.PathValue("id"))
	if posted := expert.ID(strings.TrimSpace(rec.ID.String())); !posted.Empty() && posted != pathID {
		s.logger.Warn(r.Context(), "posted id does not match path",
			logger.String("path_id", pathID.String()), logger.String("posted_id", posted.String()))
		rec.ID = pathID
		f := s.newForm(nil, nil)
		f.Load(rec)
		s.renderEdit(w, r, http.StatusUnprocessableEntity, f, []app.Notification{{Level: app.LevelError, Message: MsgIDMismatch}})
		return expert.Record{}, false
	}
	return rec, true
}

func (s *Server) renderEdit(w http.ResponseWriter, r *http.Request, status int, f *app.Form, toasts []app.Notification) {
	rec := f.Record()
	var hints map[string]string
	if h := f.Hints(r.Context()); h != nil {
		hints = h.Fields
	}
	pathID := expert.ID(r.PathValue("id"))
	view := editView{
		Record:       rec,
		Fields:       buildFields(rec, hints),
		Action:       "/expertos/" + url.PathEscape(pathID.String()),
		DeleteAction: "/expertos/" + url.PathEscape(pathID.String()) + "/eliminar",
		BackPath:     "/expertos/" + url.PathEscape(pathID.String()) + "/volver",
		InFlight:     f.InFlight(),
	}
	title := "Modificar Experto Regional: " + rec.Name + " " + rec.LastName
	s.render(w, r, status, s.tpl.edit, page{Title: title, Toasts: toasts, Content: view})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, t *template.Template, p page) {
	p.Footer = SiteFooter
	if err := render(w, status, t, p); err != nil {
		s.logger.Error(r.Context(), "render page failed", logger.String("template", t.Name()), logger.Error(err))
		http.Error(w, "template render failed", http.StatusInternalServerError)
	}
}

func submitStatus(err error) int {
	switch {
	case err == nil, errors.Is(err, app.ErrUnconfirmed):
		return http.StatusOK
	case errors.Is(err, app.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, app.ErrMissingID):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func editPath(id expert.ID) string {
	return "/expertos/" + url.PathEscape(id.String()) + "/editar"
}
