package module

import (
	"time"

	"firstvibe/internal/core/leadform"
	"firstvibe/internal/platform/config"
	"firstvibe/internal/services/api/leads/service"
)

// Counter backends
const (
	CounterMemory = "memory"
	CounterPG     = "pg"
	CounterRedis  = "redis"
)

// Gateways
const (
	GatewayMock    = "mock"
	GatewayWebhook = "webhook"
)

// Options configure the lead form
type Options struct {
	Counter string
	// CounterTimeout bounds one postgres increment
	CounterTimeout time.Duration

	Gateway        string
	GatewayURL     string
	GatewayTimeout time.Duration
	Mock           leadform.MockGateway

	Service service.Options
}

// FromConfig reads CORE_LEADS_* keys
func FromConfig(root config.Conf) Options {
	cfg := root.Prefix("CORE_LEADS_")
	o := Options{
		Counter:        cfg.MayEnum("COUNTER_BACKEND", CounterMemory, CounterMemory, CounterPG, CounterRedis),
		CounterTimeout: cfg.MayDuration("COUNTER_TIMEOUT", 2*time.Second),
		Gateway:        cfg.MayEnum("GATEWAY", GatewayMock, GatewayMock, GatewayWebhook),
		GatewayTimeout: cfg.MayDuration("GATEWAY_TIMEOUT", 10*time.Second),
		Mock: leadform.MockGateway{
			Delay:       cfg.MayDuration("MOCK_DELAY", time.Second),
			FailureRate: cfg.MayFloat64("MOCK_FAILURE_RATE", 0.1),
		},
		Service: service.Options{
			WarnThreshold: cfg.MayInt("WARN_THRESHOLD", leadform.DefaultWarnThreshold),
			SubmitDelay:   cfg.MayDuration("SUBMIT_DELAY", 200*time.Millisecond),
			SessionTTL:    cfg.MayDuration("SESSION_TTL", 30*time.Minute),
		},
	}
	if o.Gateway == GatewayWebhook {
		o.GatewayURL = cfg.MustURL("GATEWAY_URL").String()
	}
	return o
}
