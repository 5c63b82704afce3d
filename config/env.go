package config

import (
	"strconv"
	"strings"
	"time"
)

// LookupFunc matches os.LookupEnv so tests can feed a map instead of the
// process environment.
type LookupFunc func(key string) (string, bool)

type env struct {
	lookup LookupFunc
}

func (e env) String(key, defaultVal string) string {
	if value, ok := e.lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultVal
}

func (e env) Int(key string, defaultVal int) int {
	if value, ok := e.lookup(key); ok {
		if result, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return result
		}
	}
	return defaultVal
}

func (e env) Int64(key string, defaultVal int64) int64 {
	if value, ok := e.lookup(key); ok {
		if result, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return result
		}
	}
	return defaultVal
}

func (e env) Uint64(key string, defaultVal uint64) uint64 {
	if value, ok := e.lookup(key); ok {
		if result, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64); err == nil {
			return result
		}
	}
	return defaultVal
}

// Duration accepts Go duration strings ("5s") and bare integers as seconds.
func (e env) Duration(key string, defaultVal time.Duration) time.Duration {
	value, ok := e.lookup(key)
	if !ok {
		return defaultVal
	}
	value = strings.TrimSpace(value)
	if result, err := time.ParseDuration(value); err == nil {
		return result
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func (e env) Bool(key string, defaultVal bool) bool {
	if value, ok := e.lookup(key); ok {
		if result, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return result
		}
	}
	return defaultVal
}

// List splits a comma separated value, dropping blanks.
func (e env) List(key string, defaultVal []string) []string {
	value, ok := e.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
