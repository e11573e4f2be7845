// Package logger holds the process root zerolog logger and pulls
// request and lead session ids off the context
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"firstvibe/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type used across the module
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	// Level is a zerolog level name, unknown names mean debug
	Level string
	// Format is json or console
	Format  string
	Service string
	// Component tags the root logger, modules add their own via Named
	Component string
	Writer    io.Writer
	Caller    bool
	// SampleEvery keeps one line in N when above 1
	SampleEvery int
	Fields      map[string]string
}

// FromEnv reads LOG_* through raw, config itself logs through this package
func FromEnv() Options {
	env := raw.Load("LOG_")
	return Options{
		Level:       env.String("LEVEL", "debug"),
		Format:      strings.ToLower(env.String("FORMAT", "console")),
		Service:     env.String("SERVICE", ""),
		Component:   env.String("COMPONENT", ""),
		Caller:      env.Bool("CALLER", false),
		SampleEvery: env.Int("SAMPLE_EVERY", 0),
	}
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
)

// Init installs the root logger, only the first call has an effect
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, built from the environment when Init was never called
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func build(opt Options) Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opt.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
	}

	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	c := zerolog.New(w).Level(lvl).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		c = c.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Component != "" {
		c = c.Str("component", opt.Component)
	}
	for k, v := range opt.Fields {
		c = c.Str(k, v)
	}
	if opt.Caller {
		c = c.Caller()
	}

	l := c.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keySessionID
)

// WithRequest tags ctx with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRequestID, reqID)
}

// WithSession tags ctx with the lead form session id
func WithSession(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, keySessionID, sessionID)
}

// C is the root logger with request_id and session_id taken from ctx
func C(ctx context.Context) *Logger {
	c := Get().With()
	if id, _ := ctx.Value(keyRequestID).(string); id != "" {
		c = c.Str("request_id", id)
	}
	if id, _ := ctx.Value(keySessionID).(string); id != "" {
		c = c.Str("session_id", id)
	}
	l := c.Logger()
	return &l
}

// Named is the root logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
