package store

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type stubKV struct{ closed bool }

func (s *stubKV) Incr(context.Context, string) (int64, error) { return 1, nil }
func (s *stubKV) Close() error                                { s.closed = true; return nil }

func TestOptions_LoggerAndInjectedSeams(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	kv := &stubKV{}
	// redis is enabled with an unusable url, the injected seam wins
	s, err := Open(context.Background(), Config{RDS: RedisConfig{Enabled: true, URL: "redis://h:1/x"}},
		WithLogger(zerolog.New(&buf)), WithKV(kv))
	if err != nil {
		t.Fatal(err)
	}
	if s.KV != kv {
		t.Fatalf("kv = %T", s.KV)
	}

	s.Log.Info().Msg("store ready")
	if !strings.Contains(buf.String(), "store ready") {
		t.Fatalf("log %q", buf.String())
	}

	if err := s.Close(context.Background()); err != nil || !kv.closed {
		t.Fatalf("close err=%v closed=%v", err, kv.closed)
	}
}

func TestOptions_RejectNil(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}, WithKV(nil)); err == nil {
		t.Fatal("WithKV(nil) accepted")
	}
	if _, err := Open(context.Background(), Config{}, WithPG(nil)); err == nil {
		t.Fatal("WithPG(nil) accepted")
	}
}
