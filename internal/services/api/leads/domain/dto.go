// Package domain holds DTOs for the lead form http and service contracts
package domain

import (
	"time"

	"firstvibe/internal/core/leadform"
)

// PageIn is what the page knows about itself, captured when a form opens
type PageIn struct {
	PageURL  string `json:"page_url,omitempty" validate:"omitempty,max=2048" example:"https://firstvibe.com/?utm_source=news&utm_medium=email"`
	Referrer string `json:"referrer,omitempty" validate:"omitempty,max=2048" example:"https://news.example/"`
}

// PatchIn carries field edits, absent fields are left alone
// company is the hidden honeypot input
type PatchIn struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200" example:"Kim"`
	Email   *string `json:"email,omitempty" validate:"omitempty,max=320" example:"kim@test.com"`
	Consent *bool   `json:"consent,omitempty" example:"true"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200" example:""`
}

// CaptureIn is a whole form submitted in one call
type CaptureIn struct {
	PageIn
	Name    string `json:"name" validate:"max=200" example:"Kim"`
	Email   string `json:"email" validate:"max=320" example:"kim@test.com"`
	Consent bool   `json:"consent" example:"true"`
	Company string `json:"company,omitempty" validate:"max=200" example:""`
}

// Session is a form session snapshot
type Session struct {
	ID string `json:"id" example:"9b2f7a4e-8c1d-4f7a-9a53-0d6c2e1b7f10"`
	leadform.Snapshot
	Failed    bool      `json:"failed" example:"false"`
	ExpiresAt time.Time `json:"expires_at" example:"2025-08-24T10:00:00Z"`
}

// Updates turns a patch into reducer updates in a fixed field order
func (p PatchIn) Updates() []leadform.Update {
	var out []leadform.Update
	if p.Name != nil {
		out = append(out, leadform.NameChanged(*p.Name))
	}
	if p.Email != nil {
		out = append(out, leadform.EmailChanged(*p.Email))
	}
	if p.Consent != nil {
		out = append(out, leadform.ConsentChanged(*p.Consent))
	}
	if p.Company != nil {
		out = append(out, leadform.HoneypotChanged(*p.Company))
	}
	return out
}

// Patch returns the capture as a full patch
func (c CaptureIn) Patch() PatchIn {
	return PatchIn{Name: &c.Name, Email: &c.Email, Consent: &c.Consent, Company: &c.Company}
}
