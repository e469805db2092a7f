package services

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"

	"gearguard/pkg/utils"
)

func TestPatchString(t *testing.T) {
	name := "Lathe"
	patchString(&name, nil)
	assert.Equal(t, "Lathe", name)

	patchString(&name, utils.ToPtr("  Lathe #2\t"))
	assert.Equal(t, "  Lathe #2\t", name)
}

func TestPatchNullString(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  null.String
	}{
		{name: "not sent keeps value", value: nil, want: null.StringFrom("Hall A")},
		{name: "empty clears", value: utils.ToPtr(""), want: null.String{}},
		{name: "whitespace clears", value: utils.ToPtr(" \n "), want: null.String{}},
		{name: "stored as sent", value: utils.ToPtr("  Bay 3 \n"), want: null.StringFrom("  Bay 3 \n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := null.StringFrom("Hall A")
			patchNullString(&dst, tt.value)
			assert.Equal(t, tt.want, dst)
		})
	}
}
