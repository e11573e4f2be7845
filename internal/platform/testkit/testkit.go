// Package testkit holds assertions and seam helpers shared by package tests
package testkit

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// global is held by tests that touch process wide state such as env vars or package seams
var global sync.Mutex

// Serial blocks until no other Serial test is running
// the lock is released in t.Cleanup
func Serial(t testing.TB) {
	t.Helper()
	global.Lock()
	t.Cleanup(global.Unlock)
}

// Swap points *target at v until the test ends
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// MustPanic fails t unless fn panics, and returns what was recovered
func MustPanic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatalf("expected a panic")
		}
	}()
	fn()
	return nil
}

// MustNotPanic fails t if fn panics
func MustNotPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails t when body lacks want, quoting at most 2KiB of body
func MustContain(t testing.TB, body, want string) {
	t.Helper()
	if strings.Contains(body, want) {
		return
	}
	t.Fatalf("missing %q in:\n%s", want, clip(body, 2048))
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + fmt.Sprintf("\n... (%d more bytes)", len(s)-n)
}
