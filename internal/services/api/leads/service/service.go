// Package service runs lead form sessions on top of the leadform controller
package service

import (
	"context"
	"time"

	"firstvibe/internal/core/leadform"
	perr "firstvibe/internal/platform/errors"
	"firstvibe/internal/platform/logger"
	pnet "firstvibe/internal/platform/net"
	"firstvibe/internal/services/api/leads/domain"

	"github.com/google/uuid"
)

// Service defines the leads service contract
type Service interface {
	domain.ServicePort
}

// Options tune form sessions
type Options struct {
	WarnThreshold int
	// SubmitDelay refuses a session submit that comes sooner than this after Open
	SubmitDelay time.Duration
	SessionTTL  time.Duration
}

// Svc implements the leads service
type Svc struct {
	gw       leadform.Gateway
	counter  leadform.CounterStore
	sinks    domain.SinkFactory
	sessions *Sessions
	opt      Options

	now   func() time.Time
	newID func() string
}

// New constructs a leads service, sinks may be nil to drop form events
func New(gw leadform.Gateway, counter leadform.CounterStore, sinks domain.SinkFactory, opt Options) *Svc {
	if gw == nil {
		panic("leads.Service requires a non nil Gateway")
	}
	s := &Svc{
		gw:      gw,
		counter: counter,
		sinks:   sinks,
		opt:     opt,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	s.sessions = NewSessions(opt.SessionTTL, func() time.Time { return s.now() })
	return s
}

// Sessions exposes the registry for background sweeping
func (s *Svc) Sessions() *Sessions { return s.sessions }

// Open starts a form session bound to the page it was opened from
func (s *Svc) Open(ctx context.Context, in domain.PageIn) (domain.Session, error) {
	id, ctl := s.start(ctx, in, s.opt.SubmitDelay)
	exp := s.sessions.Add(id, ctl)
	logger.C(logger.WithSession(ctx, id)).Debug().Msg("form session opened")
	return view(id, ctl.Snapshot(), exp), nil
}

// Get returns the current snapshot of a session
func (s *Svc) Get(_ context.Context, id string) (domain.Session, error) {
	ctl, exp, err := s.lookup(id)
	if err != nil {
		return domain.Session{}, err
	}
	return view(id, ctl.Snapshot(), exp), nil
}

// Patch applies field edits in name, email, consent, company order
// the first refused edit stops the patch and is returned
func (s *Svc) Patch(_ context.Context, id string, in domain.PatchIn) (domain.Session, error) {
	ctl, exp, err := s.lookup(id)
	if err != nil {
		return domain.Session{}, err
	}
	snap := ctl.Snapshot()
	for _, u := range in.Updates() {
		if snap, err = ctl.Apply(u); err != nil {
			return domain.Session{}, err
		}
	}
	return view(id, snap, exp), nil
}

// Submit runs one attempt for a session
func (s *Svc) Submit(ctx context.Context, id string) (domain.Session, error) {
	ctl, exp, err := s.lookup(id)
	if err != nil {
		return domain.Session{}, err
	}
	return s.submit(ctx, id, ctl, exp)
}

// Capture opens a session, fills every field and submits at once
// the submit delay does not apply
func (s *Svc) Capture(ctx context.Context, in domain.CaptureIn) (domain.Session, error) {
	id, ctl := s.start(ctx, in.PageIn, 0)
	exp := s.sessions.Add(id, ctl)
	for _, u := range in.Patch().Updates() {
		if _, err := ctl.Apply(u); err != nil {
			return domain.Session{}, err
		}
	}
	return s.submit(ctx, id, ctl, exp)
}

func (s *Svc) start(ctx context.Context, in domain.PageIn, delay time.Duration) (string, *leadform.Controller) {
	client := pnet.ClientFrom(ctx)
	page := in.PageURL
	if page == "" {
		page = client.Referrer
	}

	id := s.newID()
	var sink leadform.Sink = leadform.NopSink{}
	if s.sinks != nil {
		sink = s.sinks.SinkFor(id)
	}
	ctl := leadform.New(leadform.Deps{
		Gateway:       s.gw,
		Sink:          sink,
		Counter:       s.counter,
		Env:           leadform.StaticEnvironment(leadform.LocationFromURL(page, in.Referrer, client.Agent)),
		WarnThreshold: s.opt.WarnThreshold,
		SubmitDelay:   delay,
		Now:           s.now,
	})
	return id, ctl
}

// submit detaches from request cancellation so an attempt always resolves
func (s *Svc) submit(ctx context.Context, id string, ctl *leadform.Controller, exp time.Time) (domain.Session, error) {
	ctx = context.WithoutCancel(logger.WithSession(ctx, id))
	snap, err := ctl.Submit(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	return view(id, snap, exp), nil
}

func (s *Svc) lookup(id string) (*leadform.Controller, time.Time, error) {
	ctl, exp, ok := s.sessions.Get(id)
	if !ok {
		return nil, time.Time{}, perr.NotFoundf("form session %s not found", id)
	}
	return ctl, exp, nil
}

func view(id string, snap leadform.Snapshot, exp time.Time) domain.Session {
	return domain.Session{ID: id, Snapshot: snap, Failed: snap.Failed(), ExpiresAt: exp.UTC()}
}
