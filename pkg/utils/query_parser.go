package utils

import (
	"net/url"
	"strings"
	"time"

	"gearguard/pkg/types"
)

// ParseTimeParam reads an optional date query parameter. ok is false when
// the value is present but malformed.
func ParseTimeParam(values url.Values, key string) (*time.Time, bool) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, true
	}
	t, err := types.ParseDate(raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func QueryString(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}
