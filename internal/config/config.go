// Package config provides small helpers for reading environment-backed
// configuration with fallbacks.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Get returns the environment value for key, or fallback when unset/empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetFloat parses the environment value for key as a float64, returning
// fallback when unset and an error when malformed.
func GetFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q as float: %w", key, raw, err)
	}
	return v, nil
}
