package leadform

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	perr "firstvibe/internal/platform/errors"

	"github.com/google/go-cmp/cmp"
)

type recorded struct {
	Name   string
	Params Params
}

// recorder is a Sink that keeps events in order
type recorder struct {
	mu     sync.Mutex
	events []recorded
}

func (r *recorder) Record(name string, params Params) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recorded{Name: name, Params: params})
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		if code, ok := e.Params["error_code"]; ok {
			out = append(out, e.Name+"("+code.(string)+")")
			continue
		}
		out = append(out, e.Name)
	}
	return out
}

// spyGateway counts calls and returns err
type spyGateway struct {
	calls atomic.Int32
	err   error
	last  FullSubmission
}

func (g *spyGateway) Submit(_ context.Context, s FullSubmission) error {
	g.calls.Add(1)
	g.last = s
	return g.err
}

func fill(t *testing.T, c *Controller, us ...Update) {
	t.Helper()
	for _, u := range us {
		if _, err := c.Apply(u); err != nil {
			t.Fatalf("apply %#v: %v", u, err)
		}
	}
}

func TestController_ScenarioA_Success(t *testing.T) {
	rec, gw := &recorder{}, &spyGateway{}
	c := New(Deps{Gateway: gw, Sink: rec, Counter: newMemCounter()})
	fill(t, c, NameChanged("Kim"), EmailChanged("kim@test.com"), ConsentChanged(true))

	s, err := c.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase != PhaseSucceeded {
		t.Fatalf("phase %v", s.Phase)
	}
	if diff := cmp.Diff([]string{"submit_lead", "lead_success"}, rec.names()); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
	if gw.calls.Load() != 1 {
		t.Fatalf("gateway calls %d", gw.calls.Load())
	}
}

func TestController_ScenarioB_ValidationError(t *testing.T) {
	rec, gw := &recorder{}, &spyGateway{}
	store := newMemCounter()
	c := New(Deps{Gateway: gw, Sink: rec, Counter: store})
	fill(t, c, NameChanged(""), EmailChanged("kim@test.com"), ConsentChanged(true))

	s, err := c.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase != PhaseIdle {
		t.Fatalf("phase %v", s.Phase)
	}
	if !reflect.DeepEqual(s.Errors, FieldErrors{FieldName: MsgNameRequired}) {
		t.Fatalf("errors %v", s.Errors)
	}
	if diff := cmp.Diff([]string{"submit_lead", "lead_error(validation_error)"}, rec.names()); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
	if gw.calls.Load() != 0 {
		t.Fatal("gateway must not be called")
	}
	if len(store.keys) != 0 {
		t.Fatal("invalid attempts must not be counted")
	}
}

func TestController_ScenarioC_GatewayFailure(t *testing.T) {
	rec, gw := &recorder{}, &spyGateway{err: errors.New("boom")}
	c := New(Deps{Gateway: gw, Sink: rec})
	fill(t, c, NameChanged("Kim"), EmailChanged("kim@test.com"), ConsentChanged(true))

	s, err := c.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase != PhaseIdle || s.SubmitError != "boom" || !s.Failed() {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if diff := cmp.Diff([]string{"submit_lead", "lead_error(network_error)"}, rec.names()); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
}

func TestController_ScenarioD_Honeypot(t *testing.T) {
	rec, gw := &recorder{}, &spyGateway{}
	store := newMemCounter()
	c := New(Deps{Gateway: gw, Sink: rec, Counter: store})
	fill(t, c, NameChanged("Kim"), EmailChanged("kim@test.com"), ConsentChanged(true), HoneypotChanged("x"))

	s, err := c.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase != PhaseIdle || len(s.Errors) != 0 || s.SubmitError != "" {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if diff := cmp.Diff([]string{"lead_error(honeypot_flagged)"}, rec.names()); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
	if gw.calls.Load() != 0 || len(store.keys) != 0 {
		t.Fatal("honeypot attempts must not reach the counter or gateway")
	}
}

func TestController_HoneypotKeepsPriorFieldErrors(t *testing.T) {
	c := New(Deps{Gateway: &spyGateway{}})
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := c.Snapshot().Errors
	fill(t, c, HoneypotChanged("bot"))
	s, _ := c.Submit(context.Background())
	if !reflect.DeepEqual(s.Errors, before) {
		t.Fatalf("errors changed: %v -> %v", before, s.Errors)
	}
}

func TestController_EditClearsOnlyThatField(t *testing.T) {
	c := New(Deps{Gateway: &spyGateway{}})
	s, _ := c.Submit(context.Background())
	if len(s.Errors) != 3 {
		t.Fatalf("expected three errors, got %v", s.Errors)
	}

	s, err := c.Apply(EmailChanged("still-bad"))
	if err != nil {
		t.Fatal(err)
	}
	want := FieldErrors{FieldName: MsgNameRequired, FieldConsent: MsgConsentRequired}
	if !reflect.DeepEqual(s.Errors, want) {
		t.Fatalf("errors %v want %v", s.Errors, want)
	}

	s, _ = c.Apply(HoneypotChanged(""))
	if !reflect.DeepEqual(s.Errors, want) {
		t.Fatalf("honeypot edit touched errors: %v", s.Errors)
	}
}

func TestController_CounterReachesThreeAcrossSessions(t *testing.T) {
	store := newMemCounter()
	// surrounding whitespace fails the format check, so case is the only variation that reaches dispatch
	for _, e := range []string{"kim@test.com", "KIM@test.com", "Kim@Test.COM"} {
		c := New(Deps{Gateway: &spyGateway{}, Counter: store})
		fill(t, c, NameChanged("Kim"), EmailChanged(e), ConsentChanged(true))
		s, err := c.Submit(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if s.Phase != PhaseSucceeded {
			t.Fatalf("%q: phase %v", e, s.Phase)
		}
	}
	if got := store.m["lead_submissions:kim@test.com"]; got != 3 {
		t.Fatalf("count %d want 3", got)
	}
}

func TestController_SubmitsEmailAsTyped(t *testing.T) {
	gw := &spyGateway{}
	c := New(Deps{
		Gateway: gw,
		Env: StaticEnvironment{
			Path:        "/",
			ClientAgent: "ua",
		},
		Now: func() time.Time { return time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC) },
	})
	fill(t, c, NameChanged("Kim"), EmailChanged("Kim@Test.com"), ConsentChanged(true))
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gw.last.Email != "Kim@Test.com" {
		t.Fatalf("email rewritten to %q", gw.last.Email)
	}
	if gw.last.Timestamp != "2025-08-24T00:00:00.000Z" || gw.last.PagePath != "/" || gw.last.ClientAgent != "ua" {
		t.Fatalf("unexpected context %+v", gw.last.SubmissionContext)
	}
}

func TestController_FailureFallbackMessage(t *testing.T) {
	c := New(Deps{Gateway: &spyGateway{err: errors.New("  ")}})
	fill(t, c, NameChanged("Kim"), EmailChanged("kim@test.com"), ConsentChanged(true))
	s, _ := c.Submit(context.Background())
	if s.SubmitError != MsgUnknownFailure {
		t.Fatalf("submit error %q", s.SubmitError)
	}
}

func TestController_CodedFailureShowsMessageOnly(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:443: connection refused")
	c := New(Deps{Gateway: &spyGateway{err: perr.Wrap(cause, perr.ErrorCodeUnavailable, ErrServer.Error())}})
	fill(t, c, NameChanged("Kim"), EmailChanged("kim@test.com"), ConsentChanged(true))
	s, _ := c.Submit(context.Background())
	if s.SubmitError != ErrServer.Error() {
		t.Fatalf("submit error %q", s.SubmitError)
	}
}

func TestController_RetryAfterFailureClearsError(t *testing.T) {
	gw := &spyGateway{err: errors.New("boom")}
	rec := &recorder{}
	c := New(Deps{Gateway: gw, Sink: rec})
	fill(t, c, NameChanged("Kim"), EmailChanged("kim@test.com"), ConsentChanged(true))
	_, _ = c.Submit(context.Background())

	gw.err = nil
	s, err := c.Submit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase != PhaseSucceeded || s.SubmitError != "" {
		t.Fatalf("unexpected %+v", s)
	}
	want := []string{"submit_lead", "lead_error(network_error)", "submit_lead", "lead_success"}
	if diff := cmp.Diff(want, rec.names()); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
}

func TestController_SucceededIsTerminal(t *testing.T) {
	c := New(Deps{Gateway: &spyGateway{}})
	fill(t, c, NameChanged("Kim"), EmailChanged("kim@test.com"), ConsentChanged(true))
	_, _ = c.Submit(context.Background())

	if _, err := c.Apply(NameChanged("Lee")); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("edit after success: %v", err)
	}
	if _, err := c.Apply(HoneypotChanged("x")); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("honeypot after success: %v", err)
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("resubmit: %v", err)
	}
	if perr.CodeOf(ErrAlreadySubmitted) != perr.ErrorCodeConflict {
		t.Fatal("refusals should be conflicts")
	}
}

func TestController_ReentrantSubmitRefused(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var calls atomic.Int32
	gw := GatewayFunc(func(ctx context.Context, _ FullSubmission) error {
		calls.Add(1)
		close(entered)
		<-release
		return nil
	})
	c := New(Deps{Gateway: gw})
	fill(t, c, NameChanged("Kim"), EmailChanged("kim@test.com"), ConsentChanged(true))

	done := make(chan Snapshot)
	go func() {
		s, _ := c.Submit(context.Background())
		done <- s
	}()
	<-entered

	if s := c.Snapshot(); s.Phase != PhaseSubmitting {
		t.Fatalf("phase %v", s.Phase)
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("second submit: %v", err)
	}
	if _, err := c.Apply(NameChanged("Lee")); !errors.Is(err, ErrNotEditable) {
		t.Fatalf("edit while submitting: %v", err)
	}
	if _, err := c.Apply(HoneypotChanged("x")); err != nil {
		t.Fatalf("honeypot while submitting: %v", err)
	}

	close(release)
	if s := <-done; s.Phase != PhaseSucceeded {
		t.Fatalf("final phase %v", s.Phase)
	}
	if calls.Load() != 1 {
		t.Fatalf("gateway calls %d", calls.Load())
	}
}

func TestController_SubmitDelayGuard(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := &recorder{}
	c := New(Deps{
		Gateway:     &spyGateway{},
		Sink:        rec,
		SubmitDelay: 200 * time.Millisecond,
		Now:         func() time.Time { return now },
	})
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitTooEarly) {
		t.Fatalf("early submit: %v", err)
	}
	if len(rec.names()) != 0 {
		t.Fatalf("refused submit emitted %v", rec.names())
	}

	now = now.Add(200 * time.Millisecond)
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit after delay: %v", err)
	}
}

func TestPhase_MarshalText(t *testing.T) {
	for p, want := range map[Phase]string{PhaseIdle: "idle", PhaseSubmitting: "submitting", PhaseSucceeded: "succeeded", Phase(9): "unknown"} {
		b, _ := p.MarshalText()
		if string(b) != want {
			t.Fatalf("%d: %s", p, b)
		}
	}
}
