package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration reads a config duration such as "1s" or "250ms". Empty and
// malformed values yield fallback; negative values are clamped to zero.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	if d < 0 {
		return 0
	}
	return d
}
