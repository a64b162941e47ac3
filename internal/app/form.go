// Package app holds the edit-expert form: its state, its actions against the
// backend and the toasts those actions raise.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/talento/internal/domain/expert"
	"github.com/okian/talento/pkg/logger"
	"github.com/okian/talento/pkg/metrics"
)

// User-facing toast texts.
const (
	MsgUpdated      = "Experto modificado exitosamente"
	MsgUpdateFailed = "Error al modificar el experto"
	MsgDeleted      = "Experto eliminado exitosamente"
	MsgDeleteFailed = "Error al eliminar el experto"
)

// Form actions as reported to metrics.
const (
	ActionSubmit = "submit"
	ActionDelete = "delete"
	ActionBack   = "back"
)

// Updater is the backend the form writes to.
type Updater interface {
	Update(ctx context.Context, rec expert.Record) (confirmed bool, err error)
	Delete(ctx context.Context, id expert.ID) error
}

var defaultGuard = NewGuard() //nolint:gochecknoglobals // shared across forms of one process

// Form is the state holder behind the edit page. It is safe for concurrent use.
type Form struct {
	mu       sync.Mutex
	rec      expert.Record
	inFlight bool

	updater  Updater
	notifier Notifier
	onClose  CloseFunc
	guard    Guard
	logger   logger.Logger
}

// NewForm builds an empty form bound to the given backend.
func NewForm(updater Updater, opts ...Option) *Form {
	f := &Form{
		updater:  updater,
		notifier: nopNotifier{},
		onClose:  func(expert.Record, bool) {},
		guard:    defaultGuard,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load replaces the form state with the source record.
func (f *Form) Load(src expert.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rec = expert.FromSource(src)
}

// Change applies one input change.
func (f *Form) Change(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rec.Set(field, value)
}

// Record returns a copy of the current state.
func (f *Form) Record() expert.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rec
}

// Hints returns advisory messages for the current field values, nil when
// there are none.
func (f *Form) Hints(ctx context.Context) *expert.ValidationError {
	return f.Record().Hints(ctx)
}

// InFlight reports whether an update or delete is outstanding.
func (f *Form) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight || f.guard.InFlight(f.rec.ID.String())
}

// Submit sends the full record to the backend. On a confirmed update the
// form closes with updated=true; otherwise it stays open and the returned
// error says why.
func (f *Form) Submit(ctx context.Context) error {
	rec, err := f.begin(ctx, ActionSubmit)
	if err != nil {
		return err
	}

	start := time.Now()
	confirmed, err := f.updater.Update(ctx, rec)
	f.end(ctx, rec.ID)

	log := f.logger.With(logger.String("id", rec.ID.String()), logger.Float64("elapsed_ms", float64(time.Since(start).Milliseconds())))
	switch {
	case err != nil:
		msg := MsgUpdateFailed
		if m, ok := backendMessage(err); ok {
			msg = m
		}
		f.notifier.Error(ctx, msg)
		metrics.RecordFormAction(ActionSubmit, metrics.OutcomeFailed)
		log.Error(ctx, "update failed", logger.Error(err))
		return err
	case !confirmed:
		metrics.RecordFormAction(ActionSubmit, metrics.OutcomeUnconfirmed)
		log.Warn(ctx, "update answered without confirmation, form kept open")
		return ErrUnconfirmed
	}

	f.notifier.Success(ctx, MsgUpdated)
	metrics.RecordFormAction(ActionSubmit, metrics.OutcomeOK)
	log.Info(ctx, "expert updated")
	f.onClose(rec, true)
	return nil
}

// Delete removes the record from the backend and closes the form on success.
func (f *Form) Delete(ctx context.Context) error {
	rec, err := f.begin(ctx, ActionDelete)
	if err != nil {
		return err
	}

	err = f.updater.Delete(ctx, rec.ID)
	f.end(ctx, rec.ID)

	log := f.logger.With(logger.String("id", rec.ID.String()))
	if err != nil {
		f.notifier.Error(ctx, MsgDeleteFailed)
		metrics.RecordFormAction(ActionDelete, metrics.OutcomeFailed)
		log.Error(ctx, "delete failed", logger.Error(err))
		return err
	}

	f.notifier.Success(ctx, MsgDeleted)
	metrics.RecordFormAction(ActionDelete, metrics.OutcomeOK)
	log.Info(ctx, "expert deleted")
	f.onClose(rec, true)
	return nil
}

// Back closes the form without changes.
func (f *Form) Back() {
	metrics.RecordFormAction(ActionBack, metrics.OutcomeOK)
	f.onClose(expert.Record{}, false)
}

// begin checks the identifier and marks the record in flight. Field hints
// never block an action.
func (f *Form) begin(ctx context.Context, action string) (expert.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		metrics.RecordFormAction(action, metrics.OutcomeBusy)
		return expert.Record{}, ErrBusy
	}

	rec := f.rec
	rec.Canonicalize()

	if err := rec.Validate(ctx); err != nil {
		f.notifier.Error(ctx, expert.MsgMissingID)
		metrics.RecordFormAction(action, metrics.OutcomeRejected)
		f.logger.Warn(ctx, "form rejected", logger.String("action", action), logger.Error(err))
		return expert.Record{}, err
	}

	if !f.guard.Acquire(ctx, rec.ID.String()) {
		metrics.RecordFormAction(action, metrics.OutcomeBusy)
		return expert.Record{}, ErrBusy
	}
	f.inFlight = true
	metrics.AddFormsInFlight(1)
	return rec, nil
}

func (f *Form) end(ctx context.Context, id expert.ID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	f.guard.Release(ctx, id.String())
	metrics.AddFormsInFlight(-1)
}

// backendMessage finds an explanation supplied by the backend in err.
func backendMessage(err error) (string, bool) {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage(), true
	}
	return "", false
}
