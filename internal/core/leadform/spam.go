package leadform

import (
	"context"
	"strings"

	"firstvibe/internal/platform/logger"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CounterKeyPrefix namespaces repeated submission counters in the KV store
const CounterKeyPrefix = "lead_submissions:"

// DefaultWarnThreshold is the count at which repeated submissions are flagged
const DefaultWarnThreshold = 3

// CounterStore is the persistent per key counter port
type CounterStore interface {
	// Incr adds one to key and returns the resulting count
	Incr(ctx context.Context, key string) (int64, error)
}

// Honeypot reports whether the hidden field signals an automated submitter
func Honeypot(value string) bool { return value != "" }

// NormalizeEmail trims and lowercases an address for counter keys only
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// CounterKey returns the store key for an address
func CounterKey(email string) string { return CounterKeyPrefix + NormalizeEmail(email) }

// RepeatGuard counts dispatched attempts per normalized email and flags repeats
// it never blocks a submission
type RepeatGuard struct {
	Store     CounterStore
	Threshold int
}

// Check is the outcome of one RepeatGuard.Record call
type Check struct {
	Key     string
	Count   int64
	Flagged bool
}

// Record increments the counter for email and logs a warning once the threshold is reached
// store failures are logged and reported in err, callers proceed regardless
func (g RepeatGuard) Record(ctx context.Context, email string) (Check, error) {
	key := CounterKey(email)
	c := Check{Key: key}
	if g.Store == nil {
		return c, nil
	}

	n, err := g.Store.Incr(ctx, key)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("key", key).Msg("submission counter unavailable")
		return c, err
	}

	threshold := g.Threshold
	if threshold <= 0 {
		threshold = DefaultWarnThreshold
	}
	c.Count = n
	c.Flagged = n >= int64(threshold)
	if c.Flagged {
		logger.C(ctx).Warn().Str("key", key).Int64("count", n).Msg("same email submitted repeatedly")
	}
	return c, nil
}
