package module

import (
	"time"

	"firstvibe/internal/platform/config"
	"firstvibe/internal/services/api/analytics/sink"
)

// Sink targets
const (
	SinkLog        = "log"
	SinkClickHouse = "clickhouse"
	SinkBoth       = "both"
)

// Options configure where events go
type Options struct {
	Sink       string
	ClickHouse sink.ClickHouseOptions
}

// FromConfig reads CORE_ANALYTICS_* keys
func FromConfig(root config.Conf) Options {
	cfg := root.Prefix("CORE_ANALYTICS_")
	return Options{
		Sink: cfg.MayEnum("SINK", SinkLog, SinkLog, SinkClickHouse, SinkBoth),
		ClickHouse: sink.ClickHouseOptions{
			Table:      cfg.MayString("TABLE", sink.DefaultTable),
			Buffer:     cfg.MayInt("BUFFER", 1024),
			Batch:      cfg.MayInt("BATCH", 256),
			FlushEvery: cfg.MayDuration("FLUSH_EVERY", 2*time.Second),
		},
	}
}
