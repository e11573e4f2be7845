package service

import (
	"context"
	"testing"
	"time"

	"firstvibe/internal/core/leadform"
	pnet "firstvibe/internal/platform/net"
	"firstvibe/internal/services/api/analytics/domain"

	"github.com/google/go-cmp/cmp"
)

func newSvc(got *[]domain.Event) *Svc {
	s := New(domain.WriterFunc(func(_ context.Context, e domain.Event) { *got = append(*got, e) }))
	s.now = func() time.Time { return time.Unix(100, 0) }
	n := 0
	s.newID = func() string {
		n++
		return "ev-" + string(rune('0'+n))
	}
	return s
}

func TestTrack_PageParams(t *testing.T) {
	var got []domain.Event
	s := newSvc(&got)
	ctx := pnet.WithRequest(context.Background(), "req-1")
	four := 4

	ins := []domain.EventIn{
		{Name: leadform.EventViewHero},
		{Name: leadform.EventClickCTA, CTAID: "hero_subscribe", SessionID: "sid"},
		{Name: leadform.EventViewCards, CardsCount: &four},
	}
	for _, in := range ins {
		if _, err := s.Track(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	want := []domain.Event{
		{ID: "ev-1", Name: "view_hero", RequestID: "req-1", Source: domain.SourcePage, At: time.Unix(100, 0)},
		{ID: "ev-2", Name: "click_cta", Params: leadform.Params{"cta_id": "hero_subscribe"}, SessionID: "sid", RequestID: "req-1", Source: domain.SourcePage, At: time.Unix(100, 0)},
		{ID: "ev-3", Name: "view_cards", Params: leadform.Params{"cards_count": 4}, RequestID: "req-1", Source: domain.SourcePage, At: time.Unix(100, 0)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
}

func TestTrack_ReturnsEventID(t *testing.T) {
	var got []domain.Event
	out, _ := newSvc(&got).Track(context.Background(), domain.EventIn{Name: leadform.EventViewHero})
	if out.ID != "ev-1" || got[0].ID != out.ID {
		t.Fatalf("id %q vs %+v", out.ID, got)
	}
}

func TestSinkFor_TagsSession(t *testing.T) {
	var got []domain.Event
	sink := newSvc(&got).SinkFor("sid-9")
	sink.Record(leadform.EventLeadError, leadform.Params{"error_code": leadform.CodeValidation})

	if len(got) != 1 {
		t.Fatalf("events %d", len(got))
	}
	e := got[0]
	if e.SessionID != "sid-9" || e.Source != domain.SourceForm || e.Params["error_code"] != "validation_error" {
		t.Fatalf("event %+v", e)
	}
}

func TestNew_NilWriterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(nil)
}
