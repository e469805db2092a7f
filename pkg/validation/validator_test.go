package validation

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Role     string      `json:"role" validate:"required,role"`
	Status   *string     `json:"status" validate:"omitempty,request_status"`
	Priority string      `json:"priority" validate:"omitempty,priority"`
	Note     null.String `json:"note" validate:"omitempty,max=5"`
}

func TestValidate_EnumRules(t *testing.T) {
	v := New()

	status := "IN_PROGRESS"
	assert.NoError(t, v.Validate(&sample{Role: "ADMIN", Status: &status, Priority: "HIGH"}))

	bad := "DONE"
	err := v.Validate(&sample{Role: "ADMIN", Status: &bad})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "status", verrs[0].Field())
	assert.Equal(t, "request_status", verrs[0].Tag())
}

func TestValidate_RejectsUnknownRole(t *testing.T) {
	err := New().Validate(&sample{Role: "ROOT"})
	assert.Error(t, err)
}

func TestValidate_NullTypes(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&sample{Role: "EMPLOYEE", Note: null.String{}}))
	assert.NoError(t, v.Validate(&sample{Role: "EMPLOYEE", Note: null.StringFrom("ok")}))
	assert.Error(t, v.Validate(&sample{Role: "EMPLOYEE", Note: null.StringFrom("too long")}))
}
