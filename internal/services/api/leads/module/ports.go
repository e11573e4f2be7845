package module

import "firstvibe/internal/services/api/leads/domain"

// Ports is what leads offers other modules
type Ports struct {
	Leads domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Leads: m.svc} }
