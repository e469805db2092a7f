package services

import (
	"strings"

	"github.com/aarondl/null/v8"

	"gearguard/pkg/types"
)

// patchString overwrites dst when the field was sent. The value is stored as
// sent; callers check required fields with blank.
func patchString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}

// patchNullString overwrites dst when the field was sent; a blank string clears it.
func patchNullString(dst *null.String, value *string) {
	if value == nil {
		return
	}
	*dst = optionalString(value)
}

func patchNullTime(dst *null.Time, value *types.Date) {
	if value == nil {
		return
	}
	*dst = optionalTime(value)
}

func optionalString(value *string) null.String {
	if value == nil {
		return null.String{}
	}
	if blank(*value) {
		return null.String{}
	}
	return null.StringFrom(*value)
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func optionalTime(value *types.Date) null.Time {
	if value == nil || value.IsZero() {
		return null.Time{}
	}
	return null.TimeFrom(value.Time)
}
