package leadform

import (
	"context"
	"strings"
	"sync"
	"time"

	perr "firstvibe/internal/platform/errors"
	"firstvibe/internal/platform/logger"
)

// MsgUnknownFailure is shown when a failed dispatch carries no message
const MsgUnknownFailure = "An unknown error occurred."

// Refusals returned by Apply and Submit, state is unchanged when one is returned
var (
	ErrNotEditable      = perr.New(perr.ErrorCodeConflict, "form is not editable")
	ErrSubmitInFlight   = perr.New(perr.ErrorCodeConflict, "submission already in progress")
	ErrAlreadySubmitted = perr.New(perr.ErrorCodeConflict, "form already submitted")
	ErrSubmitTooEarly   = perr.New(perr.ErrorCodeTooManyRequests, "submit is not enabled yet")
)

// Deps are the collaborators of a Controller, nil members fall back to no-ops
type Deps struct {
	Gateway       Gateway
	Sink          Sink
	Counter       CounterStore
	Env           EnvironmentReader
	WarnThreshold int
	// SubmitDelay refuses submits that arrive sooner than this after New
	SubmitDelay time.Duration
	Now         func() time.Time
}

// Controller owns one form session
type Controller struct {
	mu sync.Mutex

	fields      FormFields
	honeypot    string
	errors      FieldErrors
	phase       Phase
	submitError string
	openedAt    time.Time

	gw    Gateway
	sink  Sink
	guard RepeatGuard
	env   EnvironmentReader
	delay time.Duration
	now   func() time.Time
}

// New constructs an Idle controller with empty fields
func New(d Deps) *Controller {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	sink := d.Sink
	if sink == nil {
		sink = NopSink{}
	}
	env := d.Env
	if env == nil {
		env = StaticEnvironment{}
	}
	gw := d.Gateway
	if gw == nil {
		gw = NewMockGateway()
	}
	return &Controller{
		errors:   FieldErrors{},
		phase:    PhaseIdle,
		openedAt: now(),
		gw:       gw,
		sink:     sink,
		guard:    RepeatGuard{Store: d.Counter, Threshold: d.WarnThreshold},
		env:      env,
		delay:    d.SubmitDelay,
		now:      now,
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:       c.phase,
		Fields:      c.fields,
		Errors:      c.errors.Clone(),
		SubmitError: c.submitError,
	}
}

// Apply runs one field edit through the reducer
// visible fields are editable only while Idle, the honeypot until success
func (c *Controller) Apply(u Update) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, isHoneypot := u.(HoneypotChanged)
	switch {
	case c.phase == PhaseSucceeded:
		return c.snapshotLocked(), ErrNotEditable
	case c.phase != PhaseIdle && !isHoneypot:
		return c.snapshotLocked(), ErrNotEditable
	}

	field, visible := u.apply(&c.fields, &c.honeypot)
	if visible && c.errors.Has(field) {
		delete(c.errors, field)
	}
	return c.snapshotLocked(), nil
}

// Submit runs one attempt to completion and returns the resulting state
// validation and dispatch failures are reported in the Snapshot, not the error
// the error is non nil only when the attempt was refused outright
func (c *Controller) Submit(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	switch c.phase {
	case PhaseSubmitting:
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, ErrSubmitInFlight
	case PhaseSucceeded:
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, ErrAlreadySubmitted
	}
	if c.delay > 0 && c.now().Sub(c.openedAt) < c.delay {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, ErrSubmitTooEarly
	}

	c.submitError = ""
	log := logger.C(ctx)

	if Honeypot(c.honeypot) {
		log.Warn().Msg("honeypot field filled, blocking submission")
		c.sink.Record(EventLeadError, leadError(CodeHoneypot))
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, nil
	}

	c.sink.Record(EventSubmitLead, nil)

	if errs := Validate(c.fields); len(errs) > 0 {
		c.errors = errs
		c.sink.Record(EventLeadError, leadError(CodeValidation))
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, nil
	}

	fields := c.fields
	c.phase = PhaseSubmitting
	c.mu.Unlock()

	// counter failures never block the dispatch
	_, _ = c.guard.Record(ctx, fields.Email)

	payload := FullSubmission{
		FormFields:        fields,
		SubmissionContext: BuildContext(c.env.Location(ctx), c.now()),
	}
	err := c.gw.Submit(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		// coded errors show their message without the wrapped cause
		msg := strings.TrimSpace(perr.WireFrom(err).Message)
		if msg == "" {
			msg = MsgUnknownFailure
		}
		log.Error().Err(err).Msg("lead submission failed")
		c.submitError = msg
		c.phase = PhaseIdle
		c.sink.Record(EventLeadError, leadError(CodeNetwork))
		return c.snapshotLocked(), nil
	}

	c.phase = PhaseSucceeded
	c.sink.Record(EventLeadSuccess, nil)
	return c.snapshotLocked(), nil
}
