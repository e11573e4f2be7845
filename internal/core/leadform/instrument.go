package leadform

// Event names recorded by the controller and the landing page
const (
	EventSubmitLead  = "submit_lead"
	EventLeadSuccess = "lead_success"
	EventLeadError   = "lead_error"

	EventViewHero  = "view_hero"
	EventClickCTA  = "click_cta"
	EventViewCards = "view_cards"
)

// lead_error codes
const (
	CodeHoneypot   = "honeypot_flagged"
	CodeValidation = "validation_error"
	CodeNetwork    = "network_error"
)

// Params are event parameters; values are string, number or bool
type Params map[string]any

// Sink records instrumentation events, fire and forget
// implementations must not block or panic
type Sink interface {
	Record(name string, params Params)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(name string, params Params)

// Record implements Sink
func (f SinkFunc) Record(name string, params Params) { f(name, params) }

// NopSink discards events
type NopSink struct{}

// Record implements Sink
func (NopSink) Record(string, Params) {}

func leadError(code string) Params { return Params{"error_code": code} }
