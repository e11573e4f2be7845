// Package config reads settings from environment variables under a key prefix
package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"firstvibe/internal/platform/logger"
)

// Conf is a view over the environment, scoped by Prefix
// the zero value reads unprefixed keys
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix, ie New().Prefix("CORE_").Prefix("LEADS_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// lookup returns the full variable name and its trimmed value
func (c Conf) lookup(key string) (name, val string) {
	name = c.prefix + key
	return name, strings.TrimSpace(os.Getenv(name))
}

// may parses the value at key with parse and falls back to def when it is
// unset or does not parse. The fallback is logged at warn.
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", name).Str("value", s).Interface("default", def).Msg("invalid env value, using default")
		return def
	}
	return v
}

func (c Conf) MayString(key, def string) string {
	if _, s := c.lookup(key); s != "" {
		return s
	}
	return def
}

func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayAddr returns a listen address. A bare port like "4000" becomes ":4000",
// host:port is kept, and a port outside 0..65535 falls back to def.
func (c Conf) MayAddr(key, def string) string {
	return may(c, key, def, func(s string) (string, error) {
		if !strings.Contains(s, ":") {
			s = ":" + s
		}
		_, port, err := net.SplitHostPort(s)
		if err != nil {
			return "", err
		}
		if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
			return "", strconv.ErrRange
		}
		return s, nil
	})
}

// MayCSV splits a comma separated value, dropping blanks
// def is returned when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	_, s := c.lookup(key)
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it matches one of allowed, case insensitively
// A value outside allowed is a deployment error and panics.
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	name, _ := c.lookup(key)
	logger.Get().Panic().Str("key", name).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

// MustString panics when key is unset or blank
func (c Conf) MustString(key string) string {
	name, s := c.lookup(key)
	if s == "" {
		logger.Get().Panic().Str("key", name).Msg("missing required env")
	}
	return s
}

// MustURL panics unless key holds an absolute url
func (c Conf) MustURL(key string) *url.URL {
	s := c.MustString(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		name, _ := c.lookup(key)
		logger.Get().Panic().Str("key", name).Str("value", s).Msg("invalid absolute url")
	}
	return u
}
