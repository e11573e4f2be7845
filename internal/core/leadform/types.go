// Package leadform implements the lead capture form workflow
// validation, spam heuristics, submission context and the form controller state machine
package leadform

// Field names a user editable form field
type Field string

const (
	// FieldName is the subscriber display name
	FieldName Field = "name"
	// FieldEmail is the delivery address
	FieldEmail Field = "email"
	// FieldConsent is the privacy and mailing consent checkbox
	FieldConsent Field = "consent"
)

// FormFields is the visible form state, always fully populated
type FormFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Consent bool   `json:"consent"`
}

// FieldErrors maps a failing field to its message
// a missing key means no known error, not that the field is valid
type FieldErrors map[Field]string

// Has reports whether f currently carries an error
func (e FieldErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Clone returns an independent copy, never nil
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// SubmissionContext is the ambient snapshot attached to a dispatched lead
type SubmissionContext struct {
	CampaignSource   string `json:"campaign_source"`
	CampaignMedium   string `json:"campaign_medium"`
	CampaignCampaign string `json:"campaign_campaign"`
	Referrer         string `json:"referrer"`
	Timestamp        string `json:"timestamp"`
	PagePath         string `json:"page_path"`
	ClientAgent      string `json:"client_agent"`
}

// FullSubmission is the payload handed to a Gateway
type FullSubmission struct {
	FormFields
	SubmissionContext
}

// Phase is the submission lifecycle stage
type Phase uint8

const (
	// PhaseIdle accepts edits and submits
	PhaseIdle Phase = iota
	// PhaseSubmitting has one dispatch in flight
	PhaseSubmitting
	// PhaseSucceeded is terminal for the session
	PhaseSucceeded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase name in JSON payloads
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Snapshot is a read only copy of controller state
// Idle with a non empty SubmitError is the Failed(message) state
type Snapshot struct {
	Phase       Phase       `json:"phase"`
	Fields      FormFields  `json:"fields"`
	Errors      FieldErrors `json:"errors"`
	SubmitError string      `json:"submit_error,omitempty"`
}

// Failed reports whether the last dispatch failed and the form awaits a retry
func (s Snapshot) Failed() bool { return s.Phase == PhaseIdle && s.SubmitError != "" }
