// Package service turns page and form interactions into analytics events
package service

import (
	"context"
	"time"

	"firstvibe/internal/core/leadform"
	pnet "firstvibe/internal/platform/net"
	"firstvibe/internal/services/api/analytics/domain"

	"github.com/google/uuid"
)

// Service defines the analytics service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the analytics service
type Svc struct {
	w     domain.Writer
	now   func() time.Time
	newID func() string
}

// New constructs an analytics service writing to w
func New(w domain.Writer) *Svc {
	if w == nil {
		panic("analytics.Service requires a non nil Writer")
	}
	return &Svc{w: w, now: time.Now, newID: uuid.NewString}
}

// Track records a page interaction and returns its event id
func (s *Svc) Track(ctx context.Context, in domain.EventIn) (domain.Accepted, error) {
	e := domain.Event{
		ID:        s.newID(),
		Name:      in.Name,
		Params:    pageParams(in),
		SessionID: in.SessionID,
		RequestID: pnet.RequestID(ctx),
		Source:    domain.SourcePage,
		At:        s.now(),
	}
	s.w.Write(ctx, e)
	return domain.Accepted{ID: e.ID}, nil
}

// SinkFor returns a leadform.Sink that tags events with sessionID
func (s *Svc) SinkFor(sessionID string) leadform.Sink {
	return leadform.SinkFunc(func(name string, params leadform.Params) {
		s.w.Write(context.Background(), domain.Event{
			ID:        s.newID(),
			Name:      name,
			Params:    params,
			SessionID: sessionID,
			Source:    domain.SourceForm,
			At:        s.now(),
		})
	})
}

func pageParams(in domain.EventIn) leadform.Params {
	switch in.Name {
	case leadform.EventClickCTA:
		return leadform.Params{"cta_id": in.CTAID}
	case leadform.EventViewCards:
		n := 0
		if in.CardsCount != nil {
			n = *in.CardsCount
		}
		return leadform.Params{"cards_count": n}
	default:
		return nil
	}
}
