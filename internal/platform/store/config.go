package store

import "time"

// Config selects and configures the backends Open dials
type Config struct {
	// AppName is reported to postgres and clickhouse
	AppName string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig is the postgres pool plus sql tracing
// SlowQuery zero never flags a query as slow
type PGConfig struct {
	Enabled   bool
	URL       string
	MaxConns  int32
	LogSQL    bool
	SlowQuery time.Duration

	// boot knobs, zero picks the defaults in openPG
	ConnectRetries int
	PingTimeout    time.Duration
}

type CHConfig struct {
	Enabled bool
	URL     string
	Role    string // client info product, ie "api"
}

// RedisConfig URL is a redis:// url or a bare host:port
type RedisConfig struct {
	Enabled bool
	URL     string
	DB      int
}
