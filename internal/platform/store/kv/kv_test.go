package kv

import (
	"context"
	"errors"
	"testing"

	"firstvibe/internal/platform/testkit"

	"github.com/redis/go-redis/v9"
)

type fakeClient struct {
	n       map[string]int64
	err     error
	pingErr error
	closed  bool
}

func (f *fakeClient) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.n[key]++
	return redis.NewIntResult(f.n[key], nil)
}

func (f *fakeClient) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.pingErr)
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func TestOptions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cfg    Config
		addr   string
		db     int
		hasErr bool
	}{
		{cfg: Config{URL: "localhost:6379", DB: 2}, addr: "localhost:6379", db: 2},
		{cfg: Config{URL: "redis://:pw@cache:6380/3"}, addr: "cache:6380", db: 3},
		{cfg: Config{URL: "redis://cache:6380", DB: 4}, addr: "cache:6380", db: 4},
		{cfg: Config{URL: "redis://cache:6380/", DB: 4}, addr: "cache:6380", db: 4},
		{cfg: Config{URL: "redis://cache:6380/0", DB: 3}, addr: "cache:6380", db: 0},
		{cfg: Config{URL: "rediss://cache:6380/5", DB: 3}, addr: "cache:6380", db: 5},
		{cfg: Config{URL: "  "}, hasErr: true},
		{cfg: Config{URL: "redis://cache:6380/notadb"}, hasErr: true},
	}
	for _, c := range cases {
		o, err := Options(c.cfg)
		if c.hasErr {
			if err == nil {
				t.Fatalf("%q: expected error", c.cfg.URL)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", c.cfg.URL, err)
		}
		if o.Addr != c.addr || o.DB != c.db {
			t.Fatalf("%q: got addr=%s db=%d", c.cfg.URL, o.Addr, o.DB)
		}
	}
}

func TestOpen_UsesClientSeam(t *testing.T) {
	testkit.Serial(t)

	fc := &fakeClient{n: map[string]int64{}}
	testkit.Swap(t, &newClient, func(*redis.Options) client { return fc })

	k, err := Open(context.Background(), Config{URL: "localhost:6379"})
	if err != nil {
		t.Fatal(err)
	}
	for want := int64(1); want <= 3; want++ {
		got, err := k.Incr(context.Background(), "lead_submissions:a@b.co")
		if err != nil || got != want {
			t.Fatalf("incr got %d, %v want %d", got, err, want)
		}
	}
	if err := k.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
	_ = k.Close()
	if !fc.closed {
		t.Fatal("expected close")
	}
}

func TestIncr_Errors(t *testing.T) {
	t.Parallel()

	k := &KV{c: &fakeClient{err: errors.New("down")}}
	if _, err := k.Incr(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}

	var nilKV *KV
	if _, err := nilKV.Incr(context.Background(), "x"); err == nil {
		t.Fatal("expected nil client error")
	}
	if err := nilKV.Close(); err != nil {
		t.Fatal(err)
	}
}
