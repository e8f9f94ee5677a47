package env

import (
	"os"
	"strconv"
)

// GetString returns the value of the environment variable or the fallback
// when the variable is unset or empty.
func GetString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetBool parses the environment variable as a boolean, returning the
// fallback when the variable is unset or malformed.
func GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// GetInt parses the environment variable as an integer, returning the
// fallback when the variable is unset or malformed.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
