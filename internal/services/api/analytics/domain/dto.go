// Package domain holds analytics event DTOs and ports
package domain

import (
	"time"

	"firstvibe/internal/core/leadform"
)

// Event sources
const (
	SourcePage = "page"
	SourceForm = "form"
)

// EventIn is a landing page interaction reported by the browser
type EventIn struct {
	Name       string `json:"name" validate:"required,oneof=view_hero click_cta view_cards" example:"click_cta"`
	CTAID      string `json:"cta_id,omitempty" validate:"required_if=Name click_cta,omitempty,max=64" example:"hero_subscribe"`
	CardsCount *int   `json:"cards_count,omitempty" validate:"required_if=Name view_cards,omitempty,min=0,max=100" example:"4"`
	SessionID  string `json:"session_id,omitempty" validate:"omitempty,uuid" example:"9b2f7a4e-8c1d-4f7a-9a53-0d6c2e1b7f10"`
}

// Accepted acknowledges an event, delivery is asynchronous
type Accepted struct {
	ID string `json:"id" example:"0b7a5d4c-2f6e-4f1b-8d2a-6c9e1f3a5b70"`
}

// Event is one recorded instrumentation event
type Event struct {
	ID        string
	Name      string
	Params    leadform.Params
	SessionID string
	RequestID string
	Source    string
	At        time.Time
}
