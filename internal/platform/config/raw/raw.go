// Package raw reads environment variables without logging so the logger can use it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Env is a snapshot of the variables under one prefix, keyed without the prefix
type Env map[string]string

// Load snapshots every non blank variable that starts with prefix
func Load(prefix string) Env {
	env := Env{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			env[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return env
}

func (e Env) String(key, def string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return def
}

// Bool accepts 1, true and yes in any case, other values are false
func (e Env) Bool(key string, def bool) bool {
	v, ok := e[key]
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Int returns def for values that are not a non negative integer
func (e Env) Int(key string, def int) int {
	n, err := strconv.Atoi(e[key])
	if err != nil || n < 0 {
		return def
	}
	return n
}
