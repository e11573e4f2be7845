//go:build integration_pg

package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"firstvibe/internal/core/leadform"
	"firstvibe/internal/platform/store"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns its DSN
func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "leads",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/leads?sslmode=disable", host, mp.Port())
}

func TestPGCounter_Integration_ConcurrentUpsert(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4}})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	c := NewPGCounter(st.PG, 2*time.Second)
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	// idempotent
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema again: %v", err)
	}

	key := leadform.CounterKey(" Kim@Test.com ")
	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Incr(ctx, key); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("incr: %v", err)
	}

	got, err := store.Scalar[int64](ctx, st.PG, `select count from lead_submissions where key = $1`, key)
	if err != nil {
		t.Fatal(err)
	}
	if got != n {
		t.Fatalf("count %d want %d", got, n)
	}
}
