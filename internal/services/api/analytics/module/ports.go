package module

import "firstvibe/internal/services/api/analytics/domain"

// Ports is what analytics offers other modules
type Ports struct {
	Sinks domain.SinkFactory
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Sinks: m.svc} }
